// Package store provides durable key-value storage for application
// state snapshots and user preferences, filling the role the browser's
// local storage plays for the dashboard.
package store

import (
	"errors"
	"time"
)

// Store persists named blobs across application restarts.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a value under key, overwriting any existing value.
	Save(key string, data []byte) error

	// Load retrieves the value stored under key.
	// Returns ErrNotFound if the key doesn't exist.
	Load(key string) ([]byte, error)

	// List returns metadata for every stored key, ordered by key.
	// Returns an empty slice (not an error) when the store is empty.
	List() ([]Info, error)

	// Delete removes a key.
	// Returns nil if the key doesn't exist.
	Delete(key string) error

	// Clear removes all keys.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the stored value.
type Info struct {
	Key       string
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a key doesn't exist.
	ErrNotFound = errors.New("store: key not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store: closed")
)
