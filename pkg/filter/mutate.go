package filter

import (
	"fmt"
	"strings"
)

// AddGroup appends an empty group named after its position.
func (c *Config) AddGroup() *Config {
	if c == nil {
		return nil
	}

	next := c.Clone()
	n := len(next.Groups) + 1
	next.Groups = append(next.Groups, Group{
		ID:     fmt.Sprintf("group_%d", n),
		Label:  fmt.Sprintf("GROUP %d", n),
		Fields: []Field{},
	})
	return next
}

// RemoveGroup drops the group at index. The core groups are kept.
func (c *Config) RemoveGroup(index int) *Config {
	if c == nil {
		return nil
	}
	if index < CoreGroups || index >= len(c.Groups) {
		return c
	}

	next := c.Clone()
	next.Groups = append(next.Groups[:index], next.Groups[index+1:]...)
	return next
}

// RenameGroup sets the label of the group at index. Non-core groups also
// take the upper-cased label as their id.
func (c *Config) RenameGroup(index int, label string) *Config {
	if c == nil {
		return nil
	}
	if index < 0 || index >= len(c.Groups) {
		return c
	}

	next := c.Clone()
	group := &next.Groups[index]
	group.Label = label
	if trimmed := strings.TrimSpace(label); index >= CoreGroups && trimmed != "" {
		group.ID = strings.ToUpper(trimmed)
	}
	return next
}

// AddField appends an unbound field to every group with the given id.
// Generated field ids are unique across the whole schema.
func (c *Config) AddField(groupID string) *Config {
	if c == nil {
		return nil
	}

	next := c.Clone()
	for gi := range next.Groups {
		group := &next.Groups[gi]
		if group.ID != groupID {
			continue
		}

		n := len(group.Fields) + 1
		id := fmt.Sprintf("%s_field_%d", groupID, n)
		for next.hasFieldID(id) {
			n++
			id = fmt.Sprintf("%s_field_%d", groupID, n)
		}

		group.Fields = append(group.Fields, Field{
			ID:      id,
			Options: []Option{},
		})
	}
	return next
}

// RenameField sets the label of the field with the given id.
func (c *Config) RenameField(fieldID, label string) *Config {
	return c.updateField(fieldID, func(f *Field) {
		f.Label = label
	})
}

// BindField sets which record attribute a field reads.
func (c *Config) BindField(fieldID, partField, subField string, isList bool) *Config {
	return c.updateField(fieldID, func(f *Field) {
		f.PartField = partField
		f.SubField = subField
		f.IsList = isList
	})
}

// RemoveField drops every field with the given id.
func (c *Config) RemoveField(fieldID string) *Config {
	if c == nil {
		return nil
	}

	next := c.Clone()
	for gi := range next.Groups {
		fields := next.Groups[gi].Fields[:0]
		for _, f := range next.Groups[gi].Fields {
			if f.ID != fieldID {
				fields = append(fields, f)
			}
		}
		next.Groups[gi].Fields = fields
	}
	return next
}

// AddOption appends an empty option to the field.
func (c *Config) AddOption(fieldID string) *Config {
	return c.updateField(fieldID, func(f *Field) {
		f.Options = append(f.Options, Option{})
	})
}

func (c *Config) UpdateOptionValue(fieldID string, index int, value string) *Config {
	return c.updateField(fieldID, func(f *Field) {
		if index >= 0 && index < len(f.Options) {
			f.Options[index].Value = value
		}
	})
}

func (c *Config) UpdateOptionLabel(fieldID string, index int, label string) *Config {
	return c.updateField(fieldID, func(f *Field) {
		if index >= 0 && index < len(f.Options) {
			f.Options[index].Label = label
		}
	})
}

func (c *Config) RemoveOption(fieldID string, index int) *Config {
	return c.updateField(fieldID, func(f *Field) {
		if index >= 0 && index < len(f.Options) {
			f.Options = append(f.Options[:index], f.Options[index+1:]...)
		}
	})
}

// updateField applies fn to a copy of every field matching id.
func (c *Config) updateField(fieldID string, fn func(*Field)) *Config {
	if c == nil {
		return nil
	}

	next := c.Clone()
	for gi := range next.Groups {
		for fi := range next.Groups[gi].Fields {
			if next.Groups[gi].Fields[fi].ID == fieldID {
				fn(&next.Groups[gi].Fields[fi])
			}
		}
	}
	return next
}
