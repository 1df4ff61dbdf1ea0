package server

import "github.com/spf13/viper"

// DefaultQuota mirrors the usual browser storage allowance of 5 MiB
const DefaultQuota = 5 * 1024 * 1024

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Name:       "switchcraft",
			Level:      "WARN",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogServerRotationConfig{
				MaxSize:    64,
				MaxBackups: 3,
				MaxAge:     14,
				Compress:   false,
			},
		},

		Store: StoreServerConfig{
			Type:  "sqlite",
			Quota: DefaultQuota,
			SQLite: StoreSQLiteConfig{
				Path: "switchcraft.db",
			},
			Redis: StoreRedisConfig{
				Address:  "localhost:6379",
				Database: 0,
				Prefix:   "switchcraft:",
			},
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.name", defaults.Log.Name)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("store.type", defaults.Store.Type)
	viper.SetDefault("store.quota", defaults.Store.Quota)
	viper.SetDefault("store.sqlite.path", defaults.Store.SQLite.Path)
	viper.SetDefault("store.redis.address", defaults.Store.Redis.Address)
	viper.SetDefault("store.redis.password", defaults.Store.Redis.Password)
	viper.SetDefault("store.redis.database", defaults.Store.Redis.Database)
	viper.SetDefault("store.redis.prefix", defaults.Store.Redis.Prefix)
}
