package catalog

import (
	"encoding/json"
	"time"

	"github.com/mwantia/switchcraft/pkg/filter"
)

// Product is a catalog entry kept as a free-form attribute bag, so filter
// fields can address any attribute the editors add later.
type Product map[string]any

var _ filter.Record = Product{}

func (p Product) Attribute(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

func (p Product) ID() string {
	return p.String("id")
}

func (p Product) Name() string {
	return p.String("name")
}

// String returns the attribute if it holds a string, or "" otherwise.
func (p Product) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Number returns a numeric attribute, accepting JSON floats and Go integers.
func (p Product) Number(key string) (float64, bool) {
	switch n := p[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Component is a purchasable part used to assemble products. Parameters
// beyond the known fields are kept in Extra and survive a round-trip.
type Component struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Specifications string  `json:"specifications"`
	Manufacturer   string  `json:"manufacturer,omitempty"`
	SupplierID     string  `json:"supplierId,omitempty"`
	Model          string  `json:"model,omitempty"`
	Description    string  `json:"description,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	PurchasePrice  float64 `json:"purchasePrice,omitempty"`

	Extra map[string]any `json:"-"`
}

var componentKeys = []string{
	"id", "name", "category", "specifications", "manufacturer", "supplierId",
	"model", "description", "imageUrl", "purchasePrice",
}

type plainComponent Component

func (c Component) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(plainComponent(c))
	if err != nil || len(c.Extra) == 0 {
		return data, err
	}

	merged := map[string]any{}
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (c *Component) UnmarshalJSON(data []byte) error {
	var plain plainComponent
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range componentKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		plain.Extra = raw
	}

	*c = Component(plain)
	return nil
}

// Supplier is a vendor components are bought from.
type Supplier struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Website       string    `json:"website,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Settings holds the storefront presentation values.
type Settings struct {
	HeroImageURL string `json:"heroImageUrl" yaml:"hero_image_url"`
	HeroTitle    string `json:"heroTitle"    yaml:"hero_title"`
	HeroSubtitle string `json:"heroSubtitle" yaml:"hero_subtitle"`
	LogoURL      string `json:"logoUrl,omitempty"     yaml:"logo_url,omitempty"`
	CompanyName  string `json:"companyName,omitempty" yaml:"company_name,omitempty"`
}

// Backup is the full export document.
type Backup struct {
	Version      string         `json:"version"`
	ExportDate   time.Time      `json:"exportDate"`
	Parts        []Product      `json:"parts"`
	Components   []Component    `json:"components"`
	Suppliers    []Supplier     `json:"suppliers"`
	Settings     Settings       `json:"settings"`
	FilterConfig *filter.Config `json:"filterConfig"`
}
