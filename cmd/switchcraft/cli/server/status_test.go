package server

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/mwantia/switchcraft/pkg/db/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, storeType string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "status.db")
	viper.Reset()
	viper.Set("store.type", storeType)
	viper.Set("store.sqlite.path", path)
	viper.Set("log.no_terminal", true)
	t.Cleanup(viper.Reset)
	return path
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatusShowsMigrations(t *testing.T) {
	setupStore(t, "sqlite")

	out, err := run(t, NewStatusCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Store:  sqlite")
	assert.Contains(t, out, "Health: ok")
	assert.Contains(t, out, "switchcraft_filters_v4")
	assert.Contains(t, out, "Migrations:")
	assert.Contains(t, out, "applied  Create key-value entries table")
}

func TestStatusWithoutMigrations(t *testing.T) {
	setupStore(t, "memory")

	out, err := run(t, NewStatusCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Store:  memory")
	assert.NotContains(t, out, "Migrations:")

	_, err = run(t, NewMigrateCommand(), "status")
	assert.Error(t, err)
}

func TestMigrateRollback(t *testing.T) {
	path := setupStore(t, "sqlite")

	_, err := run(t, NewMigrateCommand(), "rollback")
	assert.Error(t, err)

	out, err := run(t, NewMigrateCommand(), "rollback", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "pending  Create key-value entries table")

	s, err := store.NewSQLiteStore(store.SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Connect(context.Background()))
	defer s.Close()
	assert.False(t, s.DB().Migrator().HasTable("entries"))
}
