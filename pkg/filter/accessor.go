package filter

// Record is anything exposing named attributes. Lookups of unknown keys
// report false rather than failing.
type Record interface {
	Attribute(key string) (any, bool)
}

// Attributes is the plain attribute bag most records decode into.
type Attributes map[string]any

func (a Attributes) Attribute(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Accessor resolves a value from a record. Implemented by Scalar and Nested only.
type Accessor interface {
	Resolve(r Record) (any, bool)
	accessor()
}

// Scalar reads record[Key].
type Scalar struct {
	Key string
}

// Nested reads record[Key][SubKey].
type Nested struct {
	Key    string
	SubKey string
}

func (Scalar) accessor() {}
func (Nested) accessor() {}

func (s Scalar) Resolve(r Record) (any, bool) {
	if r == nil || s.Key == "" {
		return nil, false
	}
	return r.Attribute(s.Key)
}

func (n Nested) Resolve(r Record) (any, bool) {
	parent, ok := Scalar{Key: n.Key}.Resolve(r)
	if !ok || parent == nil {
		return nil, false
	}
	return lookup(parent, n.SubKey)
}

func lookup(parent any, key string) (any, bool) {
	switch p := parent.(type) {
	case map[string]any:
		v, ok := p[key]
		return v, ok
	case map[string]string:
		v, ok := p[key]
		return v, ok
	case Record:
		return p.Attribute(key)
	}
	return nil, false
}
