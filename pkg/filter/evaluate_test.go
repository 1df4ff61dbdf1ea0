package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []Attributes) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = r["name"].(string)
	}
	return out
}

func voltageConfig() *Config {
	return &Config{
		Groups: []Group{
			{
				ID:    "VOLTAGE",
				Label: "VOLTAGE",
				Fields: []Field{
					{
						ID:        "voltage",
						PartField: "specs",
						SubField:  "voltage",
						Options: []Option{
							{Value: "600VDC", Label: "600 VDC"},
							{Value: "1000VDC", Label: "1000 VDC"},
						},
					},
				},
			},
		},
	}
}

func TestApplyVoltageScenario(t *testing.T) {
	records := []Attributes{
		{"name": "A", "specs": map[string]any{"voltage": "600VDC"}},
		{"name": "B", "specs": map[string]any{"voltage": "1000VDC"}},
		{"name": "C", "specs": map[string]any{}},
	}
	cfg := voltageConfig()
	key := FieldKey{Group: 0, Field: 0}

	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{"Single", []string{"600VDC"}, []string{"A"}},
		{"Both", []string{"600VDC", "1000VDC"}, []string{"A", "B"}},
		{"None", nil, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection()
			sel.Select(key, tt.values...)
			assert.Equal(t, tt.expected, names(Apply(records, cfg, sel)))
		})
	}
}

func contactConfig() *Config {
	return &Config{
		Groups: []Group{
			{
				ID: "contacts",
				Fields: []Field{
					{ID: "contacts", PartField: "availableContactTypes", IsList: true},
				},
			},
			{
				ID: "design",
				Fields: []Field{
					{ID: "bezel", PartField: "colorFrontBezel"},
				},
			},
		},
	}
}

func TestApplyListOrScalarAnd(t *testing.T) {
	records := []Attributes{
		{"name": "p1", "availableContactTypes": []any{"1NO", "2NC"}, "colorFrontBezel": "Black"},
	}
	cfg := contactConfig()
	list := FieldKey{Group: 0, Field: 0}
	scalar := FieldKey{Group: 1, Field: 0}

	sel := NewSelection()
	sel.Select(list, "1NO")
	sel.Select(scalar, "Black")
	assert.Len(t, Apply(records, cfg, sel), 1)

	white := sel.Clone()
	delete(white, scalar)
	white.Select(scalar, "White")
	assert.Empty(t, Apply(records, cfg, white))

	anyOf := NewSelection()
	anyOf.Select(list, "1NO", "9XX")
	assert.Len(t, Apply(records, cfg, anyOf), 1)
}

func TestApplySharedOptionValue(t *testing.T) {
	cfg := contactConfig().
		AddOption("bezel").UpdateOptionValue("bezel", 0, "Black").UpdateOptionLabel("bezel", 0, "Black").
		AddOption("bezel").UpdateOptionValue("bezel", 1, "Black").UpdateOptionLabel("bezel", 1, "Jet black")
	records := []Attributes{
		{"name": "black", "colorFrontBezel": "Black"},
		{"name": "silver", "colorFrontBezel": "Silver"},
	}
	key := FieldKey{Group: 1, Field: 0}

	sel := NewSelection()
	sel.Toggle(key, "Black")
	assert.Equal(t, []string{"black"}, names(Apply(records, cfg, sel)))

	// Both options carry the same value, so either checkbox selects it.
	assert.True(t, sel.Has(key, cfg.Groups[1].Fields[0].Options[1].Value))
	assert.Equal(t, 1, sel.Count(key))
}

func TestApplyMissingAttribute(t *testing.T) {
	records := []Attributes{
		{"name": "with", "colorFrontBezel": "Black"},
		{"name": "without"},
		{"name": "empty", "colorFrontBezel": ""},
	}
	cfg := contactConfig()
	key := FieldKey{Group: 1, Field: 0}

	sel := NewSelection()
	assert.Equal(t, []string{"with", "without", "empty"}, names(Apply(records, cfg, sel)))

	sel.Select(key, "Black", "")
	assert.Equal(t, []string{"with"}, names(Apply(records, cfg, sel)))
}

func TestApplyEmptySelectionReturnsInput(t *testing.T) {
	records := []Attributes{
		{"name": "a"}, {"name": "b", "categoryType": "DC Combiner Box"}, {"name": "c"},
	}

	for _, cfg := range []*Config{nil, {}, DefaultConfig()} {
		got := Apply(records, cfg, NewSelection())
		assert.Equal(t, records, got)
	}

	// Emptied sets after toggling twice impose nothing either.
	sel := NewSelection()
	sel.Toggle(FieldKey{Group: 0, Field: 0}, "DC Combiner Box")
	sel.Toggle(FieldKey{Group: 0, Field: 0}, "DC Combiner Box")
	assert.Equal(t, records, Apply(records, DefaultConfig(), sel))
}

func TestApplyNarrowsMonotonically(t *testing.T) {
	records := []Attributes{
		{"name": "a", "inputString": "1", "outputString": "1"},
		{"name": "b", "inputString": "2", "outputString": "1"},
		{"name": "c", "inputString": "2", "outputString": "2"},
		{"name": "d", "technicalSpecs": map[string]any{"voltage": "600VDC"}},
	}
	cfg := DefaultConfig()

	sel := NewSelection()
	prev := Apply(records, cfg, sel)
	require.Len(t, prev, 4)

	steps := []struct {
		key   FieldKey
		value string
		left  int
	}{
		{FieldKey{Group: 1, Field: 0}, "1", 1},
		{FieldKey{Group: 1, Field: 0}, "2", 3},
		{FieldKey{Group: 1, Field: 1}, "1", 2},
		{FieldKey{Group: 2, Field: 0}, "600VDC", 0},
	}

	for i, step := range steps {
		wider := sel.Clone()
		wider.Select(step.key, step.value)
		next := Apply(records, cfg, wider)

		assert.Len(t, next, step.left, "step %d", i)
		if sel.Count(step.key) == 0 {
			// A newly constrained field can only remove records.
			assert.Subset(t, prev, next, "step %d", i)
		}
		sel, prev = wider, next
	}
}

func TestApplyStringifiesScalars(t *testing.T) {
	records := []Attributes{
		{"name": "float", "inputString": float64(2)},
		{"name": "int", "inputString": 3},
		{"name": "bool", "flag": true},
		{"name": "zero", "inputString": 0},
	}
	cfg := &Config{Groups: []Group{{Fields: []Field{
		{ID: "in", PartField: "inputString"},
		{ID: "flag", PartField: "flag"},
	}}}}

	sel := NewSelection()
	sel.Select(FieldKey{Group: 0, Field: 0}, "2", "3", "0")
	assert.Equal(t, []string{"float", "int"}, names(Apply(records, cfg, sel)))

	flags := NewSelection()
	flags.Select(FieldKey{Group: 0, Field: 1}, "true")
	assert.Equal(t, []string{"bool"}, names(Apply(records, cfg, flags)))
}

func TestApplyListFieldWithScalarValue(t *testing.T) {
	records := []Attributes{
		{"name": "scalar", "availableContactTypes": "1NO"},
		{"name": "typed", "availableContactTypes": []string{"2NC"}},
		{"name": "empty", "availableContactTypes": []any{}},
	}
	cfg := contactConfig()
	sel := NewSelection()
	sel.Select(FieldKey{Group: 0, Field: 0}, "1NO", "2NC")

	assert.Equal(t, []string{"scalar", "typed"}, names(Apply(records, cfg, sel)))
}

func TestApplyIgnoresUnknownKeys(t *testing.T) {
	records := []Attributes{{"name": "a"}}
	sel := NewSelection()
	sel.Select(FieldKey{Group: 7, Field: 0}, "x")
	sel.Select(FieldKey{Group: 0, Field: 9}, "x")

	assert.Len(t, Apply(records, DefaultConfig(), sel), 1)
}

func TestApplyDoesNotMutateInputs(t *testing.T) {
	records := []Attributes{{"name": "a", "categoryType": "AC Combiner Box"}, {"name": "b"}}
	cfg := DefaultConfig()
	sel := NewSelection()
	sel.Select(FieldKey{Group: 0, Field: 0}, "AC Combiner Box")

	before := sel.Clone()
	got := Apply(records, cfg, sel)

	require.Len(t, got, 1)
	assert.Len(t, records, 2)
	assert.Equal(t, before, sel)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNestedAccessor(t *testing.T) {
	nested := Nested{Key: "technicalSpecs", SubKey: "voltage"}

	v, ok := nested.Resolve(Attributes{"technicalSpecs": map[string]string{"voltage": "600VDC"}})
	assert.True(t, ok)
	assert.Equal(t, "600VDC", v)

	v, ok = nested.Resolve(Attributes{"technicalSpecs": Attributes{"voltage": "1000VDC"}})
	assert.True(t, ok)
	assert.Equal(t, "1000VDC", v)

	_, ok = nested.Resolve(Attributes{"technicalSpecs": "flat"})
	assert.False(t, ok)

	_, ok = nested.Resolve(Attributes{})
	assert.False(t, ok)

	_, ok = Scalar{}.Resolve(Attributes{"": "x"})
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "2.5", Stringify(2.5))
	assert.Equal(t, "1000", Stringify(float64(1000)))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, "a,b", Stringify([]any{"a", "b"}))
	assert.Equal(t, "null", Stringify(nil))
}

func TestStringifyNumbers(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1000, "1000"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-1.5e-10, "-1.5e-10"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stringify(tt.in), "%v", tt.in)
	}
	assert.Equal(t, "1e-7", Stringify(float32(1e-7)))
}
