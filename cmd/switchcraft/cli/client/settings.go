package client

import (
	"context"
	"fmt"

	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change storefront settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				settings, err := repo.LoadSettings(ctx)
				if err != nil {
					return err
				}
				_, err = printValue(cmd, settings)
				return err
			})
		},
	}
	addFormatFlag(show, "yaml")
	cmd.AddCommand(show)

	var update catalog.Settings
	set := &cobra.Command{
		Use:   "set",
		Short: "Change individual settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd, func(ctx context.Context, repo *catalog.Repository) error {
				settings, err := repo.LoadSettings(ctx)
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				if flags.Changed("hero-image") {
					settings.HeroImageURL = update.HeroImageURL
				}
				if flags.Changed("hero-title") {
					settings.HeroTitle = update.HeroTitle
				}
				if flags.Changed("hero-subtitle") {
					settings.HeroSubtitle = update.HeroSubtitle
				}
				if flags.Changed("logo") {
					settings.LogoURL = update.LogoURL
				}
				if flags.Changed("company") {
					settings.CompanyName = update.CompanyName
				}

				if err := repo.SaveSettings(ctx, settings); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
				return nil
			})
		},
	}
	set.Flags().StringVar(&update.HeroImageURL, "hero-image", "", "hero image url")
	set.Flags().StringVar(&update.HeroTitle, "hero-title", "", "hero title")
	set.Flags().StringVar(&update.HeroSubtitle, "hero-subtitle", "", "hero subtitle")
	set.Flags().StringVar(&update.LogoURL, "logo", "", "logo url")
	set.Flags().StringVar(&update.CompanyName, "company", "", "company name")
	cmd.AddCommand(set)

	return cmd
}
