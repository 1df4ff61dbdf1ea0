package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/mwantia/switchcraft/pkg/filter"
	"github.com/spf13/cobra"
)

func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"parts"},
		Short:   "List, filter and edit products",
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsShowCommand())
	cmd.AddCommand(newProductsImportCommand())
	cmd.AddCommand(newProductsRemoveCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	var selections []string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List products matching the selected filter options",
		Long: `List products matching the selected filter options.

Each --select takes <field>=<value>, where <field> is a field id or a
cfg-<group>-<field> key. Values of one field are alternatives, different
fields must all match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				cfg, err := repo.LoadFilterConfig(ctx)
				if err != nil {
					return err
				}
				sel, err := parseSelection(cfg, selections)
				if err != nil {
					return err
				}

				products, err := repo.FilterProducts(ctx, sel)
				if err != nil {
					return err
				}
				if handled, err := printValue(cmd, products); handled {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tSERIES\tRUBRIC")
				for _, p := range products {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID(), p.Name(), p.String("series"), p.String("rubric"))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d product(s)\n", len(products))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&selections, "select", "s", nil, "select an option as <field>=<value>")
	addFormatFlag(cmd, "text")
	return cmd
}

func newProductsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				product, err := repo.GetProduct(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = printValue(cmd, product)
				return err
			})
		},
	}

	addFormatFlag(cmd, "json")
	return cmd
}

func newProductsImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create or replace products from a JSON file",
		Long:  "Create or replace products from a JSON file holding one product or a list of products. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			products, err := decodeProducts(data)
			if err != nil {
				return err
			}

			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				for _, p := range products {
					id, err := repo.SaveProduct(ctx, p)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Saved product '%s'\n", id)
				}
				return nil
			})
		},
	}

	return cmd
}

func newProductsRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				if _, err := repo.GetProduct(ctx, args[0]); err != nil {
					return err
				}
				return repo.DeleteProduct(ctx, args[0])
			})
		},
	}

	return cmd
}

// parseSelection turns <field>=<value> pairs into a selection. Unknown
// fields are rejected, unknown values are kept and simply match nothing.
func parseSelection(cfg *filter.Config, pairs []string) (filter.Selection, error) {
	sel := filter.NewSelection()
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid selection '%s', expected <field>=<value>", pair)
		}

		key, found := cfg.KeyOf(name)
		if !found {
			parsed, err := filter.ParseFieldKey(name)
			if err != nil {
				return nil, fmt.Errorf("unknown filter field '%s'", name)
			}
			if _, exists := cfg.FieldAt(parsed); !exists {
				return nil, fmt.Errorf("unknown filter field '%s'", name)
			}
			key = parsed
		}
		sel.Select(key, value)
	}
	return sel, nil
}

func decodeProducts(data []byte) ([]catalog.Product, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var products []catalog.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("invalid product list: %w", err)
		}
		return products, nil
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	return []catalog.Product{product}, nil
}
