package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

var _ kv.Store = (*Store)(nil)

// Store is an in-memory kv.Store for development and tests.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewStore() *Store {
	return &Store{values: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys lists stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Backend() string { return "memory" }
