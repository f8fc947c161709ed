// Package storage provides a small key-value blob store used to persist
// client-side state (draft buckets) across gateway restarts, the way browser
// local storage persists it across page reloads.
package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a key-value blob store.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set stores the blob under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases underlying resources.
	Close() error
}
