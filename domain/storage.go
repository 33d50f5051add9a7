package domain

import "context"

// KVStore is a persistent key-value storage for small JSON blobs.
type KVStore interface {
	// Get returns the value stored at key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value stored at key.
	Set(ctx context.Context, key string, value string) error
	// Close releases the underlying resources.
	Close() error
}
