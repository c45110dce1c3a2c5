package storage

import (
	"context"
	"sync"
)

// MemKV is an in-memory KVStore used by tests and ephemeral runs.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemKV creates an empty in-memory key-value store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

// Get returns the value stored under key, or ErrNotFound.
func (m *MemKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Put stores value under key, replacing any previous value.
func (m *MemKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (m *MemKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
