package server

// StoreServerConfig selects and configures the key-value backend
type StoreServerConfig struct {
	Type   string            `mapstructure:"type"   yaml:"type"`
	Quota  int64             `mapstructure:"quota"  yaml:"quota"`
	SQLite StoreSQLiteConfig `mapstructure:"sqlite" yaml:"sqlite"`
	Redis  StoreRedisConfig  `mapstructure:"redis"  yaml:"redis"`
}

type StoreSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type StoreRedisConfig struct {
	Address  string `mapstructure:"address"  yaml:"address"`
	Password string `mapstructure:"password" yaml:"password"`
	Database int    `mapstructure:"database" yaml:"database"`
	Prefix   string `mapstructure:"prefix"   yaml:"prefix"`
}
