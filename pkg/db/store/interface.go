package store

import (
	"context"
)

// Store is the key-value substrate every catalog collection is persisted in.
// Values are opaque serialized documents.
type Store interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Get returns ErrNotFound when the key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	// Usage returns the bytes held by all keys and values.
	Usage(ctx context.Context) (int64, error)
}
