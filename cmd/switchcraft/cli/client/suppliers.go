package client

import (
	"context"
	"fmt"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewSuppliersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Manage component suppliers",
	}

	cmd.AddCommand(newSuppliersListCommand())
	cmd.AddCommand(newSuppliersSaveCommand())
	cmd.AddCommand(newSuppliersRemoveCommand())

	return cmd
}

func newSuppliersListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				suppliers, err := repo.ListSuppliers(ctx)
				if err != nil {
					return err
				}
				if handled, err := printValue(cmd, suppliers); handled {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tEMAIL\tPHONE")
				for _, s := range suppliers {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.ContactPerson, s.Email, s.Phone)
				}
				return tw.Flush()
			})
		},
	}

	addFormatFlag(cmd, "text")
	return cmd
}

func newSuppliersSaveCommand() *cobra.Command {
	var id string
	var s catalog.Supplier

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create a supplier, or update it when --id is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				supplier := s
				if id != "" {
					existing, err := repo.GetSupplier(ctx, id)
					if err != nil {
						return err
					}
					supplier = mergeSupplier(cmd, existing, s)
				}
				supplier.Name = args[0]

				saved, err := repo.SaveSupplier(ctx, supplier)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved supplier '%s'\n", saved.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the supplier to update")
	cmd.Flags().StringVar(&s.ContactPerson, "contact", "", "contact person")
	cmd.Flags().StringVar(&s.Email, "email", "", "email address")
	cmd.Flags().StringVar(&s.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&s.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&s.Website, "website", "", "website")
	cmd.Flags().StringVar(&s.Notes, "notes", "", "free-form notes")
	return cmd
}

// mergeSupplier applies only the flags that were set on the command line.
func mergeSupplier(cmd *cobra.Command, existing, update catalog.Supplier) catalog.Supplier {
	fields := map[string]*string{
		"contact": &existing.ContactPerson,
		"email":   &existing.Email,
		"phone":   &existing.Phone,
		"address": &existing.Address,
		"website": &existing.Website,
		"notes":   &existing.Notes,
	}
	values := map[string]string{
		"contact": update.ContactPerson,
		"email":   update.Email,
		"phone":   update.Phone,
		"address": update.Address,
		"website": update.Website,
		"notes":   update.Notes,
	}

	for flag, target := range fields {
		if cmd.Flags().Changed(flag) {
			*target = values[flag]
		}
	}
	return existing
}

func newSuppliersRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				return repo.DeleteSupplier(ctx, args[0])
			})
		},
	}

	return cmd
}
