// Package storagetesting holds the behaviour shared by every domain.KVStore implementation.
package storagetesting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batchauction/dexclient/domain"
)

// RunKVStoreTests exercises store. The store must be empty.
func RunKVStoreTests(t *testing.T, store domain.KVStore) {
	ctx := context.Background()

	serviceKey := domain.TokenListStorageKey(1, domain.ServiceTokenList)
	userKey := domain.TokenListStorageKey(1, domain.UserTokenList)

	t.Run("missing key", func(t *testing.T) {
		value, ok, err := store.Get(ctx, serviceKey)
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, serviceKey, `[{"address":"0xa"}]`))

		value, ok, err := store.Get(ctx, serviceKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `[{"address":"0xa"}]`, value)

		// other keys are independent
		_, ok, err = store.Get(ctx, userKey)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, serviceKey, `[]`))

		value, ok, err := store.Get(ctx, serviceKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `[]`, value)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, userKey, ""))

		value, ok, err := store.Get(ctx, userKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.Empty(t, value)
	})
}
