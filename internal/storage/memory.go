package storage

import (
	"errors"
	"sync"
)

var errQuotaExceeded = errors.New("storage: quota exceeded")

// MemoryStore is an in-memory Store. It backs tests and can stand in when no
// storage path is configured; drafts then live only for the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte

	// FailWrites makes Set return an error, for exercising the draft
	// store's storage-failure path in tests.
	FailWrites bool
	failErr    error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// Get returns the blob stored under key.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

// Set stores the blob under key.
func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return m.writeError()
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	m.items[key] = copied
	return nil
}

// Delete removes the key.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// SetWriteError sets the error returned while FailWrites is on.
func (m *MemoryStore) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *MemoryStore) writeError() error {
	if m.failErr != nil {
		return m.failErr
	}
	return errQuotaExceeded
}
