package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/switchcraft/pkg/db/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) Store {
	t.Helper()

	s, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { s.Close() })
	return s
}

func newRedis(t *testing.T) Store {
	t.Helper()

	addr := os.Getenv("SWITCHCRAFT_TEST_REDIS")
	if addr == "" {
		t.Skip("SWITCHCRAFT_TEST_REDIS not set, skipping")
	}

	s, err := NewRedisStore(RedisConfig{Address: addr, Prefix: "switchcraft-test:" + t.Name() + ":"})
	require.NoError(t, err)
	require.NoError(t, s.Connect(context.Background()))

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := s.Keys(ctx)
		for _, k := range keys {
			s.Delete(ctx, k)
		}
		s.Close()
	})
	return s
}

func TestStores(t *testing.T) {
	backends := map[string]func(*testing.T) Store{
		"Memory": func(*testing.T) Store { return NewMemoryStore() },
		"SQLite": newSQLite,
		"Redis":  newRedis,
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "b", []byte("22")))
			require.NoError(t, s.Set(ctx, "a", []byte("1")))
			require.NoError(t, s.Set(ctx, "b", []byte("333")))

			value, err := s.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, []byte("333"), value)

			keys, err := s.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			usage, err := s.Usage(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(len("a1")+len("b333")), usage)

			require.NoError(t, s.Delete(ctx, "a"))
			_, err = s.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Health(ctx))
		})
	}
}

func TestQuota(t *testing.T) {
	ctx := context.Background()
	s := WithQuota(NewMemoryStore(), 10)

	require.NoError(t, s.Set(ctx, "k", []byte("12345")))

	// Replacing a value only counts the difference.
	require.NoError(t, s.Set(ctx, "k", []byte("123456789")))

	err := s.Set(ctx, "k2", []byte("1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "k2", quotaErr.Key)
	assert.Equal(t, int64(13), quotaErr.Usage)
	assert.Equal(t, int64(10), quotaErr.Limit)

	value, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("123456789"), value)
}

func TestQuotaDisabled(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, WithQuota(inner, 0))
}

func TestUnwrap(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, Unwrap(WithQuota(inner, 10)))
	assert.Same(t, inner, Unwrap(WithQuota(WithQuota(inner, 10), 20)))
	assert.Same(t, inner, Unwrap(inner))
}

func TestMigratorStatusAndRollback(t *testing.T) {
	s := newSQLite(t).(*SQLiteStore)
	ctx := context.Background()
	migrator := migrations.NewMigrator(s.DB())

	statuses, err := migrator.Status(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, status := range statuses {
		assert.True(t, status.Applied, "migration %d", status.Version)
	}

	// Migrating twice is a no-op.
	require.NoError(t, s.Migrate(ctx))

	require.NoError(t, migrator.Rollback(ctx))
	assert.False(t, s.DB().Migrator().HasTable("entries"))

	require.NoError(t, migrator.Migrate(ctx))
	assert.True(t, s.DB().Migrator().HasTable("entries"))
}
