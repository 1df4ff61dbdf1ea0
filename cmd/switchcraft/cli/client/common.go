package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mwantia/switchcraft/internal/agent"
	config "github.com/mwantia/switchcraft/internal/config/server"
	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/mwantia/switchcraft/pkg/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// withCatalog opens the configured store for the duration of fn.
func withCatalog(cmd *cobra.Command, fn func(ctx context.Context, repo *catalog.Repository) error) error {
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
	return fn(ctx, a.Catalog())
}

// withEditor is withCatalog for commands that change stored data.
func withEditor(cmd *cobra.Command, fn func(ctx context.Context, repo *catalog.Repository) error) error {
	if _, err := currentEditor(); err != nil {
		return err
	}
	return withCatalog(cmd, fn)
}

func currentEditor() (session.User, error) {
	user, err := session.RequireEditor(viper.GetString("user"), viper.GetString("password"))
	if err != nil {
		return session.User{}, fmt.Errorf("'%s' cannot edit the catalog: %w", viper.GetString("user"), err)
	}
	return user, nil
}

func addFormatFlag(cmd *cobra.Command, def string) {
	cmd.Flags().StringP("format", "o", def, "output format (text, json, yaml)")
}

// printValue encodes v as json or yaml. Text output is left to the caller
// and reported through handled=false.
func printValue(cmd *cobra.Command, v any) (handled bool, err error) {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return true, enc.Encode(v)
	case "", "text":
		return false, nil
	}
	return true, fmt.Errorf("unsupported output format '%s'", format)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return data, nil
}
