package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Manage the component library",
	}

	cmd.AddCommand(newComponentsListCommand())
	cmd.AddCommand(newComponentsImportCommand())
	cmd.AddCommand(newComponentsRemoveCommand())

	return cmd
}

func newComponentsListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				components, err := repo.ListComponents(ctx)
				if err != nil {
					return err
				}

				if category != "" {
					filtered := components[:0]
					for _, c := range components {
						if strings.EqualFold(c.Category, category) {
							filtered = append(filtered, c)
						}
					}
					components = filtered
				}

				if handled, err := printValue(cmd, components); handled {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tMODEL\tPRICE")
				for _, c := range components {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", c.ID, c.Name, c.Category, c.Model, c.PurchasePrice)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list components of this category")
	addFormatFlag(cmd, "text")
	return cmd
}

func newComponentsImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge components from a JSON list by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			var components []catalog.Component
			if err := json.Unmarshal(data, &components); err != nil {
				return fmt.Errorf("invalid component list: %w", err)
			}

			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				if err := repo.ImportComponents(ctx, components); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d component(s)\n", len(components))
				return nil
			})
		},
	}

	return cmd
}

func newComponentsRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				return repo.DeleteComponent(ctx, args[0])
			})
		},
	}

	return cmd
}
