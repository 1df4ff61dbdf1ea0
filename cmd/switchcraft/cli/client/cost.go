package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/mwantia/switchcraft/pkg/costing"
	"github.com/spf13/cobra"
)

func NewCostCommand() *cobra.Command {
	opts := costing.DefaultOptions()
	var overrides []string

	cmd := &cobra.Command{
		Use:   "cost <product-id>",
		Short: "Estimate the cost and selling price of a product",
		Long: `Estimate the cost and selling price of a product from its bill of
materials. Unit costs come from the component library and can be replaced
with --override "<line label>=<unit cost>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseOverrides(overrides)
			if err != nil {
				return err
			}
			opts.Overrides = parsed

			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				product, err := repo.GetProduct(ctx, args[0])
				if err != nil {
					return err
				}
				library, err := repo.ListComponents(ctx)
				if err != nil {
					return err
				}

				breakdown := costing.Calculate(product, library, opts)
				if handled, err := printValue(cmd, breakdown); handled {
					return err
				}
				return printBreakdown(cmd.OutOrStdout(), product, breakdown)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Quantity, "quantity", opts.Quantity, "number of units")
	cmd.Flags().Float64Var(&opts.WireAndTerminal, "wire", 0, "wire, crimp and ground terminal cost")
	cmd.Flags().Float64Var(&opts.Labor, "labor", 0, "labor cost")
	cmd.Flags().Float64Var(&opts.OverheadPercent, "overhead", opts.OverheadPercent, "overhead percentage")
	cmd.Flags().Float64Var(&opts.MarginPercent, "margin", opts.MarginPercent, "profit margin percentage")
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "unit cost override as <label>=<cost>")
	addFormatFlag(cmd, "text")
	return cmd
}

func parseOverrides(pairs []string) (map[string]float64, error) {
	overrides := map[string]float64{}
	for _, pair := range pairs {
		label, raw, ok := strings.Cut(pair, "=")
		if !ok || label == "" {
			return nil, fmt.Errorf("invalid override '%s', expected <label>=<cost>", pair)
		}
		cost, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || cost < 0 {
			return nil, fmt.Errorf("invalid cost in override '%s'", pair)
		}
		overrides[strings.TrimSpace(label)] = cost
	}
	return overrides, nil
}

func printBreakdown(w io.Writer, product catalog.Product, b costing.Breakdown) error {
	fmt.Fprintf(w, "%s (%s)\n\n", product.Name(), product.ID())

	tw := newTable(w)
	fmt.Fprintln(tw, "ITEM\tVALUE\tQTY\tUNIT\tTOTAL")
	for _, lines := range [][]costing.Line{b.Components, b.Materials} {
		for _, l := range lines {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n", l.Label, l.Value, l.Quantity, l.UnitCost, l.Total)
		}
	}
	fmt.Fprintln(tw, "\t\t\t\t")

	rows := []struct {
		label string
		value float64
	}{
		{"Components", b.ComponentTotal},
		{"Additional materials", b.MaterialTotal},
		{"Wire and terminals", b.WireAndTerminal},
		{"Labor", b.Labor},
		{"Subtotal", b.Subtotal},
		{"Overhead", b.Overhead},
		{"Total cost", b.TotalCost},
		{"Profit margin", b.ProfitMargin},
		{"Price before VAT", b.PriceBeforeVAT},
		{"VAT (13%)", b.VAT},
		{"Selling price", b.SellingPrice},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t\t\t\t%.2f\n", row.label, row.value)
	}
	fmt.Fprintf(tw, "Total for %d unit(s)\t\t\t\t%.2f\n", b.Quantity, b.TotalPrice)
	return tw.Flush()
}
