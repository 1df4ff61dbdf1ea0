package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwantia/switchcraft/pkg/db/models"
)

type quotaStore struct {
	Store
	limit int64
}

// WithQuota wraps inner so that writes pushing total usage above limit fail
// with a *QuotaExceededError. A limit of zero or less disables the check.
func WithQuota(inner Store, limit int64) Store {
	if limit <= 0 {
		return inner
	}
	return &quotaStore{Store: inner, limit: limit}
}

func (q *quotaStore) Set(ctx context.Context, key string, value []byte) error {
	usage, err := q.Usage(ctx)
	if err != nil {
		return fmt.Errorf("failed to determine storage usage: %w", err)
	}

	size := models.Entry{Key: key, Value: value}.Size()
	projected := usage + size

	old, err := q.Get(ctx, key)
	switch {
	case err == nil:
		projected -= models.Entry{Key: key, Value: old}.Size()
	case !errors.Is(err, ErrNotFound):
		return err
	}

	if projected > q.limit {
		return &QuotaExceededError{
			Key:   key,
			Size:  size,
			Usage: projected,
			Limit: q.limit,
		}
	}

	return q.Store.Set(ctx, key, value)
}

// Unwrap returns the backend behind any quota decorator.
func Unwrap(s Store) Store {
	for {
		q, ok := s.(*quotaStore)
		if !ok {
			return s
		}
		s = q.Store
	}
}
