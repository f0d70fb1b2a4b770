// Package memkv implements storage.Backend in process memory.
// Nothing survives the process; it backs --storage memory sessions.
package memkv

import (
	"context"
	"sync"
)

// Store is an in-memory key/value store.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{items: make(map[string]string)}
}

// GetItem implements storage.Backend.
func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem implements storage.Backend.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Close implements storage.Backend.
func (s *Store) Close() error { return nil }
