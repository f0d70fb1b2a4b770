// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded mimics a full storage area.
var ErrQuotaExceeded = errors.New("quota exceeded")

// FakeBackend is an in-memory storage.Backend for testing.
type FakeBackend struct {
	mu     sync.RWMutex
	items  map[string]string
	writes map[string]int
	closed bool

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		items:  make(map[string]string),
		writes: make(map[string]int),
	}
}

// Seed stores a raw value without counting it as a write.
func (f *FakeBackend) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
}

// Value returns the raw stored value for key.
func (f *FakeBackend) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.items[key]
	return v, ok
}

// Writes returns how many successful SetItem calls targeted key.
func (f *FakeBackend) Writes(key string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.writes[key]
}

// Closed reports whether Close was called.
func (f *FakeBackend) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// GetItem implements storage.Backend.
func (f *FakeBackend) GetItem(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.items[key]
	return v, ok, nil
}

// SetItem implements storage.Backend.
func (f *FakeBackend) SetItem(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
	f.writes[key]++
	return nil
}

// Close implements storage.Backend.
func (f *FakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}
