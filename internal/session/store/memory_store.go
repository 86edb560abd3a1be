// Package store provides key-value storage backends for the session: a JSON file that
// persists across runs, an in-memory map, and a sealing decorator that encrypts values at rest.
package store

import (
	"context"
	"sync"

	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// MemoryStore keeps values in process memory. Values vanish when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

// Set replaces the value stored under key.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

var _ sessionDomain.Store = (*MemoryStore)(nil)
