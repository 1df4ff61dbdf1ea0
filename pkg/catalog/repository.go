package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/switchcraft/pkg/db/store"
	"github.com/mwantia/switchcraft/pkg/filter"
	"github.com/mwantia/switchcraft/pkg/log"
)

// Storage keys, kept compatible with documents exported by earlier releases.
const (
	ProductsKey     = "switchcraft_db_v3"
	SettingsKey     = "switchcraft_settings_v1"
	FilterConfigKey = "switchcraft_filters_v4"
	ComponentsKey   = "switchcraft_components_v1"
	SuppliersKey    = "switchcraft_suppliers_v1"

	BackupVersion = "1.0"
)

var ErrNotFound = errors.New("record not found")

// Repository persists every catalog collection as one JSON document per key.
// Each call reads the current document, so the last writer wins.
type Repository struct {
	store store.Store
	log   log.LoggerService

	now   func() time.Time
	newID func() string
}

func NewRepository(s store.Store, logger log.LoggerService) *Repository {
	return &Repository{
		store: s,
		log:   logger,
		now: func() time.Time {
			return time.Now().UTC()
		},
		newID: func() string {
			return uuid.New().String()
		},
	}
}

// Init seeds the demo products, default settings and default filter
// schema for every key that has never been written.
func (r *Repository) Init(ctx context.Context) error {
	seeds := []struct {
		key  string
		what string
		v    any
	}{
		{ProductsKey, "products", SeedProducts()},
		{SettingsKey, "settings", DefaultSettings()},
		{FilterConfigKey, "filter configuration", filter.DefaultConfig()},
	}

	for _, seed := range seeds {
		_, err := r.store.Get(ctx, seed.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to read '%s': %w", seed.key, err)
		}

		r.log.Debug("Seeding %s into '%s'", seed.what, seed.key)
		if err := r.write(ctx, seed.key, seed.what, seed.v); err != nil {
			return err
		}
	}
	return nil
}

// LoadFilterConfig returns the stored schema, or the built-in default when
// nothing usable is stored.
func (r *Repository) LoadFilterConfig(ctx context.Context) (*filter.Config, error) {
	var cfg filter.Config
	found, err := r.read(ctx, FilterConfigKey, &cfg)
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			r.log.Warn("Stored filter configuration is unreadable, using defaults: %v", err)
			return filter.DefaultConfig(), nil
		}
		return nil, err
	}
	if !found {
		return filter.DefaultConfig(), nil
	}
	return &cfg, nil
}

func (r *Repository) SaveFilterConfig(ctx context.Context, cfg *filter.Config) error {
	if cfg == nil {
		return nil
	}
	return r.write(ctx, FilterConfigKey, "filter configuration", cfg)
}

// Products

func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	products := []Product{}
	if _, err := r.read(ctx, ProductsKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product '%s': %w", id, ErrNotFound)
}

// SaveProduct replaces the product with the same id or appends it.
// Products without an id get a generated one, which is returned.
func (r *Repository) SaveProduct(ctx context.Context, product Product) (string, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return "", err
	}

	if product == nil {
		product = Product{}
	}
	if product.ID() == "" {
		product["id"] = r.newID()
	}
	products = upsert(products, product, Product.ID)

	if err := r.write(ctx, ProductsKey, "product", products); err != nil {
		return "", err
	}
	r.log.Debug("Saved product '%s'", product.ID())
	return product.ID(), nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, ProductsKey, "product", remove(products, id, Product.ID))
}

// FilterProducts evaluates sel against the stored schema and products.
func (r *Repository) FilterProducts(ctx context.Context, sel filter.Selection) ([]Product, error) {
	cfg, err := r.LoadFilterConfig(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(products, cfg, sel), nil
}

// Components

func (r *Repository) ListComponents(ctx context.Context) ([]Component, error) {
	components := []Component{}
	if _, err := r.read(ctx, ComponentsKey, &components); err != nil {
		return nil, err
	}
	return components, nil
}

func (r *Repository) SaveComponent(ctx context.Context, component Component) (string, error) {
	if component.ID == "" {
		component.ID = r.newID()
	}
	if err := r.ImportComponents(ctx, []Component{component}); err != nil {
		return "", err
	}
	return component.ID, nil
}

func (r *Repository) DeleteComponent(ctx context.Context, id string) error {
	components, err := r.ListComponents(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, ComponentsKey, "component", remove(components, id, componentID))
}

// ImportComponents merges by id, replacing existing entries in place and
// appending new ones in the given order.
func (r *Repository) ImportComponents(ctx context.Context, imported []Component) error {
	components, err := r.ListComponents(ctx)
	if err != nil {
		return err
	}
	for _, c := range imported {
		if c.ID == "" {
			c.ID = r.newID()
		}
		components = upsert(components, c, componentID)
	}
	return r.write(ctx, ComponentsKey, "component", components)
}

// Suppliers

func (r *Repository) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	suppliers := []Supplier{}
	if _, err := r.read(ctx, SuppliersKey, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *Repository) GetSupplier(ctx context.Context, id string) (Supplier, error) {
	suppliers, err := r.ListSuppliers(ctx)
	if err != nil {
		return Supplier{}, err
	}
	for _, s := range suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return Supplier{}, fmt.Errorf("supplier '%s': %w", id, ErrNotFound)
}

// SaveSupplier stamps UpdatedAt, and CreatedAt for new suppliers.
func (r *Repository) SaveSupplier(ctx context.Context, supplier Supplier) (Supplier, error) {
	suppliers, err := r.ListSuppliers(ctx)
	if err != nil {
		return Supplier{}, err
	}

	now := r.now()
	if supplier.ID == "" {
		supplier.ID = r.newID()
	}
	supplier.UpdatedAt = now
	if existing, ok := find(suppliers, supplier.ID, supplierID); ok {
		supplier.CreatedAt = existing.CreatedAt
	} else {
		supplier.CreatedAt = now
	}

	suppliers = upsert(suppliers, supplier, supplierID)
	if err := r.write(ctx, SuppliersKey, "supplier", suppliers); err != nil {
		return Supplier{}, err
	}
	return supplier, nil
}

func (r *Repository) DeleteSupplier(ctx context.Context, id string) error {
	suppliers, err := r.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, SuppliersKey, "supplier", remove(suppliers, id, supplierID))
}

// Settings

func (r *Repository) LoadSettings(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	if _, err := r.read(ctx, SettingsKey, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings Settings) error {
	return r.write(ctx, SettingsKey, "settings", settings)
}

// Backup

func (r *Repository) Export(ctx context.Context) (*Backup, error) {
	backup := &Backup{
		Version:    BackupVersion,
		ExportDate: r.now(),
	}

	var err error
	if backup.Parts, err = r.ListProducts(ctx); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	if backup.Components, err = r.ListComponents(ctx); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	if backup.Suppliers, err = r.ListSuppliers(ctx); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	if backup.Settings, err = r.LoadSettings(ctx); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	if backup.FilterConfig, err = r.LoadFilterConfig(ctx); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	return backup, nil
}

type backupDocument struct {
	Parts        json.RawMessage `json:"parts"`
	Components   json.RawMessage `json:"components"`
	Suppliers    json.RawMessage `json:"suppliers"`
	Settings     json.RawMessage `json:"settings"`
	FilterConfig json.RawMessage `json:"filterConfig"`
}

// Import restores the sections present in an exported document. Sections
// that are missing or null are left untouched; all sections are decoded
// before anything is written.
func (r *Repository) Import(ctx context.Context, data []byte) error {
	var doc backupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid data format: %w", err)
	}

	type section struct {
		key  string
		what string
		raw  json.RawMessage
		v    any
	}
	sections := []section{
		{ProductsKey, "products", doc.Parts, &[]Product{}},
		{ComponentsKey, "components", doc.Components, &[]Component{}},
		{SuppliersKey, "suppliers", doc.Suppliers, &[]Supplier{}},
		{SettingsKey, "settings", doc.Settings, &Settings{}},
		{FilterConfigKey, "filter configuration", doc.FilterConfig, &filter.Config{}},
	}

	var pending []section
	for _, s := range sections {
		if len(s.raw) == 0 || string(s.raw) == "null" {
			continue
		}
		if err := json.Unmarshal(s.raw, s.v); err != nil {
			return fmt.Errorf("invalid %s in backup: %w", s.what, err)
		}
		pending = append(pending, s)
	}

	for _, s := range pending {
		if err := r.write(ctx, s.key, s.what, s.v); err != nil {
			return fmt.Errorf("failed to import data: %w", err)
		}
		r.log.Info("Imported %s", s.what)
	}
	return nil
}

// Clear removes every stored collection.
func (r *Repository) Clear(ctx context.Context) error {
	for _, key := range []string{ProductsKey, ComponentsKey, SuppliersKey, SettingsKey, FilterConfigKey} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}
	return nil
}

func (r *Repository) read(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read '%s': %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode '%s': %w", key, err)
	}
	return true, nil
}

func (r *Repository) write(ctx context.Context, key, what string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", what, err)
	}

	if err := r.store.Set(ctx, key, data); err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			return fmt.Errorf("storage full, %s is too large: %w", what, err)
		}
		return fmt.Errorf("failed to save %s: %w", what, err)
	}
	return nil
}

func componentID(c Component) string { return c.ID }
func supplierID(s Supplier) string   { return s.ID }

func find[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func upsert[T any](items []T, item T, idOf func(T) string) []T {
	for i := range items {
		if idOf(items[i]) == idOf(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func remove[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
