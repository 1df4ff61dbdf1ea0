package server

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log   LogServerConfig   `mapstructure:"log"   yaml:"log"`
	Store StoreServerConfig `mapstructure:"store" yaml:"store"`
}

func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	switch cfg.Store.Type {
	case "sqlite", "redis", "memory":
	default:
		return nil, fmt.Errorf("unsupported store type '%s'", cfg.Store.Type)
	}

	return cfg, nil
}
