package costing

import (
	"github.com/mwantia/switchcraft/pkg/catalog"
)

const (
	DefaultOverheadPercent = 15.0
	DefaultMarginPercent   = 20.0

	// VATRate is applied on top of the price before VAT.
	VATRate = 1.13
)

// Slot is a product attribute naming a component; the quantity is read from
// the attribute with the "Qty" suffix.
type Slot struct {
	Field string
	Label string
}

var ComponentSlots = []Slot{
	{"dcIsolatedSwitch", "DC Isolated Switch"},
	{"acIsolatedSwitch", "AC Isolated Switch"},
	{"spd", "SPD"},
	{"dcMcb", "DC MCB"},
	{"acMcb", "AC MCB"},
	{"dcFuse", "DC Fuse"},
	{"acFuse", "AC Fuse"},
	{"dcFuseHolder", "DC Fuse Holder"},
	{"acFuseHolder", "AC Fuse Holder"},
	{"rccd", "RCCD"},
	{"rcbo", "RCBO"},
	{"enclosureType", "Enclosure Type"},
}

var MaterialSlots = []Slot{
	{"terminalBlock", "Terminal Block"},
	{"cableGland", "Cable Gland"},
	{"mc4", "MC4"},
}

type Options struct {
	Quantity        int
	WireAndTerminal float64
	Labor           float64
	OverheadPercent float64
	MarginPercent   float64

	// Overrides replaces the unit cost of a line, keyed by slot label.
	Overrides map[string]float64
}

func DefaultOptions() Options {
	return Options{
		Quantity:        1,
		OverheadPercent: DefaultOverheadPercent,
		MarginPercent:   DefaultMarginPercent,
	}
}

type Line struct {
	Label    string  `json:"label"    yaml:"label"`
	Value    string  `json:"value"    yaml:"value"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	UnitCost float64 `json:"unitCost" yaml:"unit_cost"`
	Total    float64 `json:"total"    yaml:"total"`
}

type Breakdown struct {
	Components      []Line  `json:"components"      yaml:"components"`
	Materials       []Line  `json:"materials"       yaml:"materials"`
	ComponentTotal  float64 `json:"componentTotal"  yaml:"component_total"`
	MaterialTotal   float64 `json:"materialTotal"   yaml:"material_total"`
	WireAndTerminal float64 `json:"wireAndTerminal" yaml:"wire_and_terminal"`
	Labor           float64 `json:"labor"           yaml:"labor"`
	Subtotal        float64 `json:"subtotal"        yaml:"subtotal"`
	Overhead        float64 `json:"overhead"        yaml:"overhead"`
	TotalCost       float64 `json:"totalCost"       yaml:"total_cost"`
	ProfitMargin    float64 `json:"profitMargin"    yaml:"profit_margin"`
	PriceBeforeVAT  float64 `json:"priceBeforeVat"  yaml:"price_before_vat"`
	VAT             float64 `json:"vat"             yaml:"vat"`
	SellingPrice    float64 `json:"sellingPrice"    yaml:"selling_price"`
	Quantity        int     `json:"quantity"        yaml:"quantity"`
	TotalPrice      float64 `json:"totalPrice"      yaml:"total_price"`
}

// Calculate prices a product from its bill of materials. Slots the product
// leaves empty are skipped; unit costs come from the first library component
// whose name or model equals the slot value, unless overridden.
func Calculate(product catalog.Product, library []catalog.Component, opts Options) Breakdown {
	if opts.Quantity < 1 {
		opts.Quantity = 1
	}

	b := Breakdown{
		Components:      lines(product, ComponentSlots, library, opts.Overrides),
		Materials:       lines(product, MaterialSlots, library, opts.Overrides),
		WireAndTerminal: opts.WireAndTerminal,
		Labor:           opts.Labor,
		Quantity:        opts.Quantity,
	}
	for _, l := range b.Components {
		b.ComponentTotal += l.Total
	}
	for _, l := range b.Materials {
		b.MaterialTotal += l.Total
	}

	b.Subtotal = b.ComponentTotal + b.MaterialTotal + b.WireAndTerminal + b.Labor
	b.Overhead = b.Subtotal * opts.OverheadPercent / 100
	b.TotalCost = b.Subtotal + b.Overhead
	b.ProfitMargin = b.TotalCost * opts.MarginPercent / 100
	b.PriceBeforeVAT = b.TotalCost + b.ProfitMargin
	b.SellingPrice = b.PriceBeforeVAT * VATRate
	b.VAT = b.SellingPrice - b.PriceBeforeVAT
	b.TotalPrice = b.SellingPrice * float64(opts.Quantity)
	return b
}

func lines(product catalog.Product, slots []Slot, library []catalog.Component, overrides map[string]float64) []Line {
	result := []Line{}
	for _, slot := range slots {
		value := product.String(slot.Field)
		if value == "" {
			continue
		}

		qty := 1
		if n, ok := product.Number(slot.Field + "Qty"); ok && n >= 1 {
			qty = int(n)
		}

		unit := UnitCost(library, value)
		if cost, ok := overrides[slot.Label]; ok {
			unit = cost
		}

		result = append(result, Line{
			Label:    slot.Label,
			Value:    value,
			Quantity: qty,
			UnitCost: unit,
			Total:    unit * float64(qty),
		})
	}
	return result
}

// UnitCost returns the purchase price of the library component matching
// value by name or model, or 0.
func UnitCost(library []catalog.Component, value string) float64 {
	for _, c := range library {
		if c.Name == value || c.Model == value {
			return c.PurchasePrice
		}
	}
	return 0
}
