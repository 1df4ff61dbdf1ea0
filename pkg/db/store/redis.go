package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"
)

// RedisStore implements Store on a Redis database, namespacing every key
// with a prefix so several catalogs can share one instance.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string
	Password string
	Database int
	Prefix   string
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	return &RedisStore{
		client: client,
		prefix: cfg.Prefix,
	}, nil
}

func (s *RedisStore) Connect(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Migrate is a no-op; Redis needs no schema.
func (s *RedisStore) Migrate(ctx context.Context) error {
	return nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

// Keys scans the prefix rather than using KEYS to avoid blocking Redis.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		batch, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan error: %w", err)
		}

		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, s.prefix))
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) Usage(ctx context.Context) (int64, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, k := range keys {
		n, err := s.client.StrLen(ctx, s.prefix+k).Result()
		if err != nil {
			return 0, fmt.Errorf("redis strlen error: %w", err)
		}
		total += int64(len(k)) + n
	}
	return total, nil
}
