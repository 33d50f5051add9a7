package memoryrepo_test

import (
	"testing"

	memoryrepo "github.com/batchauction/dexclient/storage/repository/memory"
	"github.com/batchauction/dexclient/storage/repository/storagetesting"
)

func TestMemoryRepository(t *testing.T) {
	store := memoryrepo.New()
	defer store.Close()

	storagetesting.RunKVStoreTests(t, store)
}
