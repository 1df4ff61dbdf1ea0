package filter

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type constraint struct {
	accessor Accessor
	isList   bool
	values   map[string]struct{}
}

// Apply returns the records that pass every field with an active selection,
// in their original order. Values within a list field are OR'ed, fields
// and groups are AND'ed. Neither records nor sel are modified.
func Apply[R Record](records []R, cfg *Config, sel Selection) []R {
	constraints := activeConstraints(cfg, sel)

	out := make([]R, 0, len(records))
	for _, r := range records {
		if passes(r, constraints) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record passes the selection.
func Matches(r Record, cfg *Config, sel Selection) bool {
	return passes(r, activeConstraints(cfg, sel))
}

func activeConstraints(cfg *Config, sel Selection) []constraint {
	if cfg == nil {
		return nil
	}

	var constraints []constraint
	for gi, g := range cfg.Groups {
		for fi, f := range g.Fields {
			values := sel[FieldKey{Group: gi, Field: fi}]
			if len(values) == 0 {
				continue
			}
			constraints = append(constraints, constraint{
				accessor: f.Accessor(),
				isList:   f.IsList,
				values:   values,
			})
		}
	}
	return constraints
}

func passes(r Record, constraints []constraint) bool {
	for _, c := range constraints {
		v, ok := c.accessor.Resolve(r)
		if !ok || isFalsy(v) {
			return false
		}

		if c.isList {
			if items, ok := listItems(v); ok {
				if !anySelected(items, c.values) {
					return false
				}
				continue
			}
		}

		if _, ok := c.values[Stringify(v)]; !ok {
			return false
		}
	}
	return true
}

func anySelected(items []any, values map[string]struct{}) bool {
	for _, item := range items {
		if _, ok := values[Stringify(item)]; ok {
			return true
		}
	}
	return false
}

func listItems(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		items := make([]any, len(l))
		for i, s := range l {
			items[i] = s
		}
		return items, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// isFalsy treats nil, empty strings, false, zero and NaN as missing values.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}

	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0 || math.IsNaN(t)
	case float32:
		return t == 0 || math.IsNaN(float64(t))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Stringify renders an attribute value the way it is compared against
// option values: numbers in their shortest form, lists comma joined.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t, 64)
	case float32:
		return formatNumber(float64(t), 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return t.String()
	}

	if items, ok := listItems(v); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// formatNumber follows Number.prototype.toString: shortest round-trip digits,
// exponent notation below 1e-6 and from 1e21 on.
func formatNumber(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, bitSize), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
