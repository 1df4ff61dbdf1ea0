package catalog

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	config "github.com/mwantia/switchcraft/internal/config/server"
	"github.com/mwantia/switchcraft/pkg/db/store"
	"github.com/mwantia/switchcraft/pkg/filter"
	"github.com/mwantia/switchcraft/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, s store.Store) *Repository {
	t.Helper()

	logger := log.NewLoggerServiceWithWriter("test", config.LogServerConfig{Level: "debug"}, io.Discard)
	repo := NewRepository(s, logger)

	ids := 0
	repo.newID = func() string {
		ids++
		return "id-" + string(rune('0'+ids))
	}
	repo.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return repo
}

func TestInitSeedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())

	require.NoError(t, repo.Init(ctx))
	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	require.NoError(t, repo.DeleteProduct(ctx, "p1"))
	require.NoError(t, repo.Init(ctx))

	products, err = repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4, "init must not reseed existing keys")
}

func TestFilterConfigDefaultsAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := newTestRepository(t, s)

	cfg, err := repo.LoadFilterConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, filter.DefaultConfig(), cfg)

	edited := cfg.AddGroup().AddField("group_4").
		BindField("group_4_field_1", "availableContactTypes", "", true).
		AddOption("group_4_field_1").
		UpdateOptionValue("group_4_field_1", 0, "1NO").
		UpdateOptionLabel("group_4_field_1", 0, "1 NO")
	require.NoError(t, repo.SaveFilterConfig(ctx, edited))

	loaded, err := repo.LoadFilterConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, edited, loaded)

	require.NoError(t, s.Set(ctx, FilterConfigKey, []byte("{not json")))
	loaded, err = repo.LoadFilterConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, filter.DefaultConfig(), loaded)
}

func TestFilterProducts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())
	require.NoError(t, repo.Init(ctx))

	cfg, err := repo.LoadFilterConfig(ctx)
	require.NoError(t, err)
	cfg = cfg.AddGroup().AddField("group_4").
		BindField("group_4_field_1", "availableContactTypes", "", true).
		AddField("group_4").
		BindField("group_4_field_2", "technicalSpecs", "protectionClass", false)
	require.NoError(t, repo.SaveFilterConfig(ctx, cfg))

	contacts, ok := cfg.KeyOf("group_4_field_1")
	require.True(t, ok)
	protection, ok := cfg.KeyOf("group_4_field_2")
	require.True(t, ok)

	sel := filter.NewSelection()
	sel.Select(contacts, "1NO")
	products, err := repo.FilterProducts(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p4"}, productIDs(products))

	sel.Select(protection, "IP40")
	products, err = repo.FilterProducts(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4"}, productIDs(products))
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())

	id, err := repo.SaveProduct(ctx, Product{"name": "DC Box", "inputString": "2"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	_, err = repo.SaveProduct(ctx, Product{"id": id, "name": "DC Box v2"})
	require.NoError(t, err)

	product, err := repo.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "DC Box v2", product.Name())

	_, err = repo.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComponentsPreserveExtraParameters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())

	raw := `[{"id":"c1","name":"MCB 16A","category":"MCB","specifications":"16A","purchasePrice":12.5,"poles":2}]`
	var imported []Component
	require.NoError(t, json.Unmarshal([]byte(raw), &imported))
	require.NoError(t, repo.ImportComponents(ctx, imported))

	_, err := repo.SaveComponent(ctx, Component{Name: "SPD", Category: "SPD"})
	require.NoError(t, err)

	require.NoError(t, repo.ImportComponents(ctx, []Component{{ID: "c1", Name: "MCB 20A", Category: "MCB"}}))

	components, err := repo.ListComponents(ctx)
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.Equal(t, "MCB 20A", components[0].Name)
	assert.Equal(t, "SPD", components[1].Name)

	require.NoError(t, repo.ImportComponents(ctx, imported))
	components, err = repo.ListComponents(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(2), components[0].Extra["poles"])
	assert.Equal(t, 12.5, components[0].PurchasePrice)

	require.NoError(t, repo.DeleteComponent(ctx, "c1"))
	components, err = repo.ListComponents(ctx)
	require.NoError(t, err)
	assert.Len(t, components, 1)
}

func TestSuppliersTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())

	created, err := repo.SaveSupplier(ctx, Supplier{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	later := created.CreatedAt.Add(time.Hour)
	repo.now = func() time.Time { return later }

	created.Name = "Acme Ltd"
	updated, err := repo.SaveSupplier(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	got, err := repo.GetSupplier(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", got.Name)

	require.NoError(t, repo.DeleteSupplier(ctx, created.ID))
	_, err = repo.GetSupplier(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	settings.CompanyName = "ONCCY"
	require.NoError(t, repo.SaveSettings(ctx, settings))

	settings, err = repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ONCCY", settings.CompanyName)
}

func TestQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.WithQuota(store.NewMemoryStore(), 64))

	err := repo.SaveFilterConfig(ctx, filter.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "storage full, filter configuration is too large")

	cfg, err := repo.LoadFilterConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, filter.DefaultConfig(), cfg)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	source := newTestRepository(t, store.NewMemoryStore())
	require.NoError(t, source.Init(ctx))
	_, err := source.SaveSupplier(ctx, Supplier{Name: "Acme"})
	require.NoError(t, err)

	backup, err := source.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, BackupVersion, backup.Version)

	data, err := json.Marshal(backup)
	require.NoError(t, err)

	target := newTestRepository(t, store.NewMemoryStore())
	require.NoError(t, target.Import(ctx, data))

	restored, err := target.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, backup, restored)
}

func TestImportPartialAndInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, store.NewMemoryStore())
	require.NoError(t, repo.Init(ctx))

	require.NoError(t, repo.Import(ctx, []byte(`{"settings":{"heroTitle":"HELLO"}}`)))

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", settings.HeroTitle)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	assert.Error(t, repo.Import(ctx, []byte(`[]`)))
	assert.Error(t, repo.Import(ctx, []byte(`{"parts":{"id":"x"},"settings":{"heroTitle":"NOPE"}}`)))

	settings, err = repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", settings.HeroTitle, "invalid documents must not be partially applied")
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := newTestRepository(t, s)
	require.NoError(t, repo.Init(ctx))
	_, err := repo.SaveSupplier(ctx, Supplier{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func productIDs(products []Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID()
	}
	return ids
}
