package memoryrepo

import (
	"context"
	"sync"

	"github.com/batchauction/dexclient/domain"
)

type memoryRepo struct {
	values map[string]string
	mu     sync.RWMutex
}

var _ domain.KVStore = &memoryRepo{}

// New creates a new in-memory key-value store. Contents are lost on exit.
func New() *memoryRepo {
	return &memoryRepo{
		values: map[string]string{},
		mu:     sync.RWMutex{},
	}
}

// Get implements domain.KVStore.
func (r *memoryRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	return value, ok, nil
}

// Set implements domain.KVStore.
func (r *memoryRepo) Set(ctx context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}

// Close implements domain.KVStore.
func (r *memoryRepo) Close() error {
	return nil
}
