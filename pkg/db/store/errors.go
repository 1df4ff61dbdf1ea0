package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// QuotaExceededError is returned by Set when the write would grow the store
// beyond its configured capacity.
type QuotaExceededError struct {
	Key   string
	Size  int64
	Usage int64
	Limit int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("storage quota exceeded: writing '%s' (%d bytes) would use %d of %d bytes", e.Key, e.Size, e.Usage, e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
