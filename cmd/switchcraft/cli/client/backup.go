package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewBackupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, import or clear all catalog data",
	}

	cmd.AddCommand(newBackupExportCommand())
	cmd.AddCommand(newBackupImportCommand())
	cmd.AddCommand(newBackupClearCommand())

	return cmd
}

func newBackupExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection into one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				backup, err := repo.Export(ctx)
				if err != nil {
					return err
				}

				data, err := json.MarshalIndent(backup, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode backup: %w", err)
				}

				if output == "-" {
					_, err := cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if output == "" {
					output = fmt.Sprintf("switchcraft-backup-%s.json", backup.ExportDate.Format(time.DateOnly))
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("failed to write backup %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output file, - for stdout (default switchcraft-backup-<date>.json)")
	return cmd
}

func newBackupImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the collections present in a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				if err := repo.Import(ctx, data); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Import complete")
				return nil
			})
		},
	}

	return cmd
}

func newBackupClearCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored catalog data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to clear all data without --yes")
			}
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				if err := repo.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deleting everything")
	return cmd
}
