package costing

import (
	"testing"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var library = []catalog.Component{
	{ID: "c1", Name: "DC Switch 32A", Model: "DS-32", PurchasePrice: 40},
	{ID: "c2", Name: "SPD Type 2", PurchasePrice: 25},
	{ID: "c3", Name: "Gland M20", Model: "GM20", PurchasePrice: 2},
}

func TestCalculate(t *testing.T) {
	product := catalog.Product{
		"id":               "p1",
		"dcIsolatedSwitch": "DS-32",
		"spd":              "SPD Type 2",
		"spdQty":           float64(2),
		"cableGland":       "GM20",
		"cableGlandQty":    float64(4),
		"rcbo":             "unknown",
	}

	opts := DefaultOptions()
	opts.WireAndTerminal = 10
	opts.Labor = 12
	opts.Quantity = 3

	b := Calculate(product, library, opts)

	require.Len(t, b.Components, 3)
	assert.Equal(t, Line{Label: "DC Isolated Switch", Value: "DS-32", Quantity: 1, UnitCost: 40, Total: 40}, b.Components[0])
	assert.Equal(t, Line{Label: "SPD", Value: "SPD Type 2", Quantity: 2, UnitCost: 25, Total: 50}, b.Components[1])
	assert.Equal(t, 0.0, b.Components[2].Total)

	require.Len(t, b.Materials, 1)
	assert.Equal(t, 8.0, b.Materials[0].Total)

	assert.InDelta(t, 90.0, b.ComponentTotal, 1e-9)
	assert.InDelta(t, 120.0, b.Subtotal, 1e-9)
	assert.InDelta(t, 18.0, b.Overhead, 1e-9)
	assert.InDelta(t, 138.0, b.TotalCost, 1e-9)
	assert.InDelta(t, 27.6, b.ProfitMargin, 1e-9)
	assert.InDelta(t, 165.6, b.PriceBeforeVAT, 1e-9)
	assert.InDelta(t, 187.128, b.SellingPrice, 1e-9)
	assert.InDelta(t, 21.528, b.VAT, 1e-9)
	assert.InDelta(t, 561.384, b.TotalPrice, 1e-9)
}

func TestCalculateOverridesAndDefaults(t *testing.T) {
	product := catalog.Product{"spd": "SPD Type 2", "spdQty": float64(0)}

	opts := Options{Overrides: map[string]float64{"SPD": 30}}
	b := Calculate(product, library, opts)

	require.Len(t, b.Components, 1)
	assert.Equal(t, 1, b.Components[0].Quantity)
	assert.Equal(t, 30.0, b.Components[0].UnitCost)
	assert.Equal(t, 1, b.Quantity)
	assert.InDelta(t, 30*VATRate, b.SellingPrice, 1e-9)
}

func TestUnitCost(t *testing.T) {
	assert.Equal(t, 40.0, UnitCost(library, "DC Switch 32A"))
	assert.Equal(t, 40.0, UnitCost(library, "DS-32"))
	assert.Equal(t, 0.0, UnitCost(library, "missing"))
	assert.Equal(t, 0.0, UnitCost(nil, "DS-32"))
}
