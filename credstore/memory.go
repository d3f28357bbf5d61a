package credstore

import (
	"context"
	"sync"
)

// MemoryStore is a volatile in-process credential store for ephemeral and
// test contexts. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	value   string
	present bool
}

// NewMemoryStore creates an empty in-memory credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the credential in memory
func (m *MemoryStore) Save(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.value = value
	m.present = true
	m.mu.Unlock()
	return nil
}

// Read returns the stored credential, or ErrNotFound if absent
func (m *MemoryStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return "", ErrNotFound
	}
	return m.value, nil
}

// Clear removes the stored credential
func (m *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.value = ""
	m.present = false
	m.mu.Unlock()
	return nil
}

// Has reports whether a credential is currently stored
func (m *MemoryStore) Has(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.present, nil
}
