package server

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/switchcraft/internal/agent"
	"github.com/mwantia/switchcraft/pkg/db/migrations"
	"github.com/mwantia/switchcraft/pkg/db/store"
	"github.com/spf13/cobra"

	config "github.com/mwantia/switchcraft/internal/config/server"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store health, usage and migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAgent(cmd, func(ctx context.Context, cfg *config.BaseServerConfig, a *agent.Agent) error {
				s := a.Store()
				out := cmd.OutOrStdout()

				health := "ok"
				if err := s.Health(ctx); err != nil {
					health = err.Error()
				}

				usage, err := s.Usage(ctx)
				if err != nil {
					return fmt.Errorf("failed to read store usage: %w", err)
				}
				keys, err := s.Keys(ctx)
				if err != nil {
					return fmt.Errorf("failed to list store keys: %w", err)
				}

				fmt.Fprintf(out, "Store:  %s\n", cfg.Store.Type)
				fmt.Fprintf(out, "Health: %s\n", health)
				if cfg.Store.Quota > 0 {
					fmt.Fprintf(out, "Usage:  %d / %d bytes (%.1f%%)\n", usage, cfg.Store.Quota, float64(usage)*100/float64(cfg.Store.Quota))
				} else {
					fmt.Fprintf(out, "Usage:  %d bytes (no quota)\n", usage)
				}
				fmt.Fprintf(out, "Keys:   %d\n", len(keys))
				for _, key := range keys {
					fmt.Fprintf(out, "  %s\n", key)
				}

				if migrator, ok := migratorFor(s); ok {
					return printMigrations(ctx, out, migrator)
				}
				return nil
			})
		},
	}

	return cmd
}

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect or roll back SQLite schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, migrator *migrations.Migrator) error {
				return printMigrations(ctx, cmd.OutOrStdout(), migrator)
			})
		},
	})

	var confirm bool
	rollback := &cobra.Command{
		Use:   "rollback",
		Short: "Revert the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to roll back without --yes")
			}
			return withMigrator(cmd, func(ctx context.Context, migrator *migrations.Migrator) error {
				if err := migrator.Rollback(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back the most recent migration")
				return printMigrations(ctx, cmd.OutOrStdout(), migrator)
			})
		},
	}
	rollback.Flags().BoolVar(&confirm, "yes", false, "confirm reverting the schema, dropping its data")
	cmd.AddCommand(rollback)

	return cmd
}

func withAgent(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.BaseServerConfig, a *agent.Agent) error) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	a := agent.NewAgent(cfg)
	defer a.Close()

	ctx := cmd.Context()
	if err := a.Open(ctx); err != nil {
		return err
	}
	return fn(ctx, cfg, a)
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, migrator *migrations.Migrator) error) error {
	return withAgent(cmd, func(ctx context.Context, cfg *config.BaseServerConfig, a *agent.Agent) error {
		migrator, ok := migratorFor(a.Store())
		if !ok {
			return fmt.Errorf("store type '%s' has no schema migrations", cfg.Store.Type)
		}
		return fn(ctx, migrator)
	})
}

// migratorFor returns a migrator when the store is backed by SQLite.
func migratorFor(s store.Store) (*migrations.Migrator, bool) {
	sqlite, ok := store.Unwrap(s).(*store.SQLiteStore)
	if !ok {
		return nil, false
	}
	return migrations.NewMigrator(sqlite.DB()), true
}

func printMigrations(ctx context.Context, w io.Writer, migrator *migrations.Migrator) error {
	statuses, err := migrator.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Migrations:")
	for _, status := range statuses {
		state := "pending"
		if status.Applied {
			state = "applied"
		}
		fmt.Fprintf(w, "  %3d  %-8s %s\n", status.Version, state, status.Description)
	}
	return nil
}
