package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/mwantia/switchcraft/pkg/filter"
	"github.com/spf13/cobra"
)

func NewFiltersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Manage the filter schema",
		Long:  "Show and edit the groups, fields and options products are filtered by.",
	}

	cmd.AddCommand(newFiltersShowCommand())
	cmd.AddCommand(newFiltersResetCommand())
	cmd.AddCommand(newFiltersGroupCommand())
	cmd.AddCommand(newFiltersFieldCommand())
	cmd.AddCommand(newFiltersOptionCommand())

	return cmd
}

func newFiltersShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the filter schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				cfg, err := repo.LoadFilterConfig(ctx)
				if err != nil {
					return err
				}
				if handled, err := printValue(cmd, cfg); handled {
					return err
				}
				printSchema(cmd.OutOrStdout(), cfg)
				return nil
			})
		},
	}

	addFormatFlag(cmd, "text")
	return cmd
}

func newFiltersResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the filter schema with the built-in default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSchema(cmd, func(*filter.Config) (*filter.Config, error) {
				return filter.DefaultConfig(), nil
			})
		},
	}

	return cmd
}

func newFiltersGroupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Add, remove or rename groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Append a new group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSchema(cmd, func(cfg *filter.Config) (*filter.Config, error) {
				return cfg.AddGroup(), nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the group at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editSchema(cmd, func(cfg *filter.Config) (*filter.Config, error) {
				if index < filter.CoreGroups {
					return nil, fmt.Errorf("group %d is a core group and cannot be removed", index)
				}
				if index >= len(cfg.Groups) {
					return nil, fmt.Errorf("group %d does not exist", index)
				}
				return cfg.RemoveGroup(index), nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <index> <label>",
		Short: "Set the label of the group at index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editSchema(cmd, func(cfg *filter.Config) (*filter.Config, error) {
				if index >= len(cfg.Groups) {
					return nil, fmt.Errorf("group %d does not exist", index)
				}
				return cfg.RenameGroup(index, args[1]), nil
			})
		},
	})

	return cmd
}

func newFiltersFieldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Add, bind, rename or remove fields",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <group-id>",
		Short: "Append an unbound field to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSchema(cmd, func(cfg *filter.Config) (*filter.Config, error) {
				return cfg.AddField(args[0]), nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <field-id> <label>",
		Short: "Set the label of a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editField(cmd, args[0], func(cfg *filter.Config) *filter.Config {
				return cfg.RenameField(args[0], args[1])
			})
		},
	})

	var subField string
	var isList bool
	bind := &cobra.Command{
		Use:   "bind <field-id> <part-field>",
		Short: "Set which product attribute a field reads",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editField(cmd, args[0], func(cfg *filter.Config) *filter.Config {
				return cfg.BindField(args[0], args[1], subField, isList)
			})
		},
	}
	bind.Flags().StringVar(&subField, "sub", "", "key inside the attribute, for nested values")
	bind.Flags().BoolVar(&isList, "list", false, "the attribute holds a list of values")
	cmd.AddCommand(bind)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <field-id>",
		Short: "Remove a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editField(cmd, args[0], func(cfg *filter.Config) *filter.Config {
				return cfg.RemoveField(args[0])
			})
		},
	})

	return cmd
}

func newFiltersOptionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "option",
		Short: "Add, edit or remove field options",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <field-id>",
		Short: "Append an empty option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editField(cmd, args[0], func(cfg *filter.Config) *filter.Config {
				return cfg.AddOption(args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-value <field-id> <index> <value>",
		Short: "Set the match value of an option",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editOption(cmd, args[0], args[1], func(cfg *filter.Config, index int) *filter.Config {
				return cfg.UpdateOptionValue(args[0], index, args[2])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-label <field-id> <index> <label>",
		Short: "Set the display label of an option",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editOption(cmd, args[0], args[1], func(cfg *filter.Config, index int) *filter.Config {
				return cfg.UpdateOptionLabel(args[0], index, args[2])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <field-id> <index>",
		Short: "Remove an option",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editOption(cmd, args[0], args[1], func(cfg *filter.Config, index int) *filter.Config {
				return cfg.RemoveOption(args[0], index)
			})
		},
	})

	return cmd
}

// editSchema runs one load, mutate and save cycle and prints the result.
func editSchema(cmd *cobra.Command, fn func(*filter.Config) (*filter.Config, error)) error {
	return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
		cfg, err := repo.LoadFilterConfig(ctx)
		if err != nil {
			return err
		}

		next, err := fn(cfg)
		if err != nil {
			return err
		}
		if err := repo.SaveFilterConfig(ctx, next); err != nil {
			return err
		}

		printSchema(cmd.OutOrStdout(), next)
		return nil
	})
}

func editField(cmd *cobra.Command, fieldID string, fn func(*filter.Config) *filter.Config) error {
	return editSchema(cmd, func(cfg *filter.Config) (*filter.Config, error) {
		if _, ok := cfg.Field(fieldID); !ok {
			return nil, fmt.Errorf("field '%s' does not exist", fieldID)
		}
		return fn(cfg), nil
	})
}

func editOption(cmd *cobra.Command, fieldID, rawIndex string, fn func(*filter.Config, int) *filter.Config) error {
	index, err := parseIndex(rawIndex)
	if err != nil {
		return err
	}
	return editSchema(cmd, func(cfg *filter.Config) (*filter.Config, error) {
		field, ok := cfg.Field(fieldID)
		if !ok {
			return nil, fmt.Errorf("field '%s' does not exist", fieldID)
		}
		if index >= len(field.Options) {
			return nil, fmt.Errorf("field '%s' has no option %d", fieldID, index)
		}
		return fn(cfg, index), nil
	})
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index '%s'", s)
	}
	return index, nil
}

func printSchema(w io.Writer, cfg *filter.Config) {
	for gi, g := range cfg.Groups {
		fmt.Fprintf(w, "[%d] %s (%s)\n", gi, g.Label, g.ID)
		for fi, f := range g.Fields {
			key := filter.FieldKey{Group: gi, Field: fi}
			fmt.Fprintf(w, "    %s %s %q -> %s\n", key, f.ID, f.Label, describeBinding(f))

			values := make([]string, len(f.Options))
			for i, o := range f.Options {
				if o.Label != "" && o.Label != o.Value {
					values[i] = fmt.Sprintf("%d:%s (%s)", i, o.Value, o.Label)
				} else {
					values[i] = fmt.Sprintf("%d:%s", i, o.Value)
				}
			}
			if len(values) > 0 {
				fmt.Fprintf(w, "        %s\n", strings.Join(values, ", "))
			}
		}
	}
}

func describeBinding(f filter.Field) string {
	if f.PartField == "" {
		return "unbound"
	}
	binding := f.PartField
	if f.SubField != "" {
		binding += "." + f.SubField
	}
	if f.IsList {
		binding += " [list]"
	}
	return binding
}
