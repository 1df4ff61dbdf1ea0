package main

import (
	"fmt"
	"os"

	"github.com/mwantia/switchcraft/cmd/switchcraft/cli"
	"github.com/mwantia/switchcraft/cmd/switchcraft/cli/client"
	"github.com/mwantia/switchcraft/cmd/switchcraft/cli/server"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(server.NewConfigCommand())
	root.AddCommand(server.NewStatusCommand())
	root.AddCommand(server.NewMigrateCommand())

	root.AddCommand(client.NewLoginCommand())
	root.AddCommand(client.NewFiltersCommand())
	root.AddCommand(client.NewProductsCommand())
	root.AddCommand(client.NewComponentsCommand())
	root.AddCommand(client.NewSuppliersCommand())
	root.AddCommand(client.NewSettingsCommand())
	root.AddCommand(client.NewBackupCommand())
	root.AddCommand(client.NewCostCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
