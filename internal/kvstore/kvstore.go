// Package kvstore defines the key-value persistence boundary used for cart
// snapshots, with in-memory and Redis implementations.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
// Absence is a valid empty state, not a failure.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store is a string-keyed slot store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get retrieves the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
