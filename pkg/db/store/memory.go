package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mwantia/switchcraft/pkg/db/models"
)

// MemoryStore keeps entries in process memory; nothing survives Close.
type MemoryStore struct {
	mutex   sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

func (s *MemoryStore) Connect(ctx context.Context) error { return nil }
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }
func (s *MemoryStore) Health(ctx context.Context) error  { return nil }

func (s *MemoryStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Usage(ctx context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total int64
	for k, v := range s.entries {
		total += models.Entry{Key: k, Value: v}.Size()
	}
	return total, nil
}
