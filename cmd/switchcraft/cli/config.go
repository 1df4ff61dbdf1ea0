package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	configPaths = []string{".", "./config", "/etc/switchcraft", "$HOME/.switchcraft"}
	envFiles    = []string{".env", ".env.local"}
)

// initConfig loads .env files next to the working directory and every
// config location, then reads config.yaml. Variables already set in the
// environment are never overridden.
func initConfig(path string) error {
	dirs := []string{"."}

	if path != "" {
		viper.SetConfigFile(path)
		dirs = append(dirs, filepath.Dir(path))
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		for _, p := range configPaths {
			viper.AddConfigPath(p)
			dirs = append(dirs, os.ExpandEnv(p))
		}
	}

	for _, dir := range dirs {
		for _, envFile := range envFiles {
			// Missing files are expected
			godotenv.Load(filepath.Join(dir, envFile))
		}
	}

	viper.SetEnvPrefix("SWITCHCRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}
