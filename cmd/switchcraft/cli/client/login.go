package client

import (
	"fmt"

	"github.com/mwantia/switchcraft/pkg/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check the configured credentials",
		Long:  "Check the credentials given by --user/--password or SWITCHCRAFT_USER/SWITCHCRAFT_PASSWORD and print the resulting role.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := session.Authenticate(viper.GetString("user"), viper.GetString("password"))
			if err != nil {
				return err
			}

			access := "read-only"
			if user.CanEdit() {
				access = "editor"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s, %s)\n", user.Username, user.Role, access)
			return nil
		},
	}

	return cmd
}
