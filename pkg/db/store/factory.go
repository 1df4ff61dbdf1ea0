package store

import (
	"fmt"

	config "github.com/mwantia/switchcraft/internal/config/server"
)

// NewStore creates the backend selected in cfg, wrapped with its quota.
// The returned store still needs Connect and Migrate.
func NewStore(cfg config.StoreServerConfig) (Store, error) {
	var inner Store

	switch cfg.Type {
	case "sqlite":
		s, err := NewSQLiteStore(SQLiteConfig{
			Path: cfg.SQLite.Path,
		})
		if err != nil {
			return nil, err
		}
		inner = s
	case "redis":
		s, err := NewRedisStore(RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			Database: cfg.Redis.Database,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		inner = s
	case "memory":
		inner = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported store type '%s'", cfg.Type)
	}

	return WithQuota(inner, cfg.Quota), nil
}
