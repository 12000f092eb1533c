package repositories

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps collections in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// Load returns a copy of the payload saved under name
func (s *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.items[name]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", name, ErrCollectionNotFound)
	}
	return append([]byte(nil), payload...), nil
}

// Save stores a copy of payload under name
func (s *MemoryStore) Save(_ context.Context, name string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[name] = append([]byte(nil), payload...)
	return nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close drops all collections
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string][]byte)
	return nil
}
