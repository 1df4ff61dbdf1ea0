package filter

import (
	"fmt"
	"sort"
)

// FieldKey addresses a field by its position in the schema.
type FieldKey struct {
	Group int
	Field int
}

func (k FieldKey) String() string {
	return fmt.Sprintf("cfg-%d-%d", k.Group, k.Field)
}

// ParseFieldKey parses the "cfg-<group>-<field>" form produced by String.
func ParseFieldKey(s string) (FieldKey, error) {
	var k FieldKey
	if _, err := fmt.Sscanf(s, "cfg-%d-%d", &k.Group, &k.Field); err != nil {
		return FieldKey{}, fmt.Errorf("invalid field key '%s': %w", s, err)
	}
	if k.Group < 0 || k.Field < 0 || k.String() != s {
		return FieldKey{}, fmt.Errorf("invalid field key '%s'", s)
	}
	return k, nil
}

// Selection holds the option values chosen per field during a browsing
// session. A missing or empty set means the field is unconstrained.
type Selection map[FieldKey]map[string]struct{}

func NewSelection() Selection {
	return Selection{}
}

// Toggle adds value to the field's set, or removes it if already present.
func (s Selection) Toggle(key FieldKey, value string) {
	set, ok := s[key]
	if !ok {
		set = map[string]struct{}{}
		s[key] = set
	}

	if _, selected := set[value]; selected {
		delete(set, value)
	} else {
		set[value] = struct{}{}
	}
}

// Select adds values to the field's set.
func (s Selection) Select(key FieldKey, values ...string) {
	set, ok := s[key]
	if !ok {
		set = map[string]struct{}{}
		s[key] = set
	}
	for _, v := range values {
		set[v] = struct{}{}
	}
}

// Has reports whether value is selected for the field.
func (s Selection) Has(key FieldKey, value string) bool {
	_, ok := s[key][value]
	return ok
}

// Count returns how many values are selected for the field.
func (s Selection) Count(key FieldKey) int {
	return len(s[key])
}

// Values returns the field's selected values in sorted order.
func (s Selection) Values(key FieldKey) []string {
	values := make([]string, 0, len(s[key]))
	for v := range s[key] {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func (s Selection) Clear() {
	for k := range s {
		delete(s, k)
	}
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, set := range s {
		copied := make(map[string]struct{}, len(set))
		for v := range set {
			copied[v] = struct{}{}
		}
		out[k] = copied
	}
	return out
}
