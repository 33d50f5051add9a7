package mocks

import (
	"context"

	"github.com/batchauction/dexclient/domain"
)

var _ domain.KVStore = &KVStoreMock{}

// KVStoreMock is a mock implementation of the domain.KVStore interface.
type KVStoreMock struct {
	GetFunc   func(ctx context.Context, key string) (string, bool, error)
	SetFunc   func(ctx context.Context, key string, value string) error
	CloseFunc func() error
}

// Get implements domain.KVStore.
func (m *KVStoreMock) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	panic("Get not implemented")
}

// Set implements domain.KVStore.
func (m *KVStoreMock) Set(ctx context.Context, key string, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	panic("Set not implemented")
}

// Close implements domain.KVStore.
func (m *KVStoreMock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
