package filter

// CoreGroups is the number of leading groups that can never be removed
// and whose ids never follow their label.
const CoreGroups = 3

// Config is the editable filter taxonomy: groups of fields, each field
// offering a list of selectable options. A Config is treated as an
// immutable snapshot; every mutation returns a new one.
type Config struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Group is a top-level section of the taxonomy (e.g. category, string, voltage).
type Group struct {
	ID     string  `json:"id"     yaml:"id"`
	Label  string  `json:"label"  yaml:"label"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is one filterable attribute. PartField names the record attribute
// to read; SubField, when set, selects a key inside that attribute.
type Field struct {
	ID        string   `json:"id"                 yaml:"id"`
	Label     string   `json:"label"              yaml:"label"`
	PartField string   `json:"partField"          yaml:"part_field"`
	SubField  string   `json:"subField,omitempty" yaml:"sub_field,omitempty"`
	IsList    bool     `json:"isList,omitempty"   yaml:"is_list,omitempty"`
	Options   []Option `json:"options"            yaml:"options"`
}

// Option is a selectable value. Value is the match key stored on records,
// Label is only ever displayed.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Accessor returns how this field addresses a record attribute.
func (f Field) Accessor() Accessor {
	if f.SubField != "" {
		return Nested{Key: f.PartField, SubKey: f.SubField}
	}
	return Scalar{Key: f.PartField}
}

// Clone returns a deep copy. Cloning nil yields nil.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	groups := make([]Group, len(c.Groups))
	for i, g := range c.Groups {
		groups[i] = g.clone()
	}
	return &Config{Groups: groups}
}

func (g Group) clone() Group {
	fields := make([]Field, len(g.Fields))
	for i, f := range g.Fields {
		fields[i] = f.clone()
	}
	g.Fields = fields
	return g
}

func (f Field) clone() Field {
	options := make([]Option, len(f.Options))
	copy(options, f.Options)
	f.Options = options
	return f
}

// Field returns the first field with the given id.
func (c *Config) Field(id string) (Field, bool) {
	if c == nil {
		return Field{}, false
	}
	for _, g := range c.Groups {
		for _, f := range g.Fields {
			if f.ID == id {
				return f, true
			}
		}
	}
	return Field{}, false
}

// KeyOf resolves a field id to its selection key.
func (c *Config) KeyOf(fieldID string) (FieldKey, bool) {
	if c == nil {
		return FieldKey{}, false
	}
	for gi, g := range c.Groups {
		for fi, f := range g.Fields {
			if f.ID == fieldID {
				return FieldKey{Group: gi, Field: fi}, true
			}
		}
	}
	return FieldKey{}, false
}

// FieldAt returns the field addressed by key.
func (c *Config) FieldAt(key FieldKey) (Field, bool) {
	if c == nil || key.Group < 0 || key.Group >= len(c.Groups) {
		return Field{}, false
	}
	fields := c.Groups[key.Group].Fields
	if key.Field < 0 || key.Field >= len(fields) {
		return Field{}, false
	}
	return fields[key.Field], true
}

func (c *Config) hasFieldID(id string) bool {
	_, ok := c.Field(id)
	return ok
}
