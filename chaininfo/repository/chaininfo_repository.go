package chaininforepo

import (
	"sync"
	"time"

	"github.com/batchauction/dexclient/domain"
)

// ChainInfoRepository represents the contract for a repository handling chain information
type ChainInfoRepository interface {
	// StoreLatestBatchID stores the latest batch id observed on networkID at observedAt.
	// The observation time is only moved forward when the batch id changes.
	StoreLatestBatchID(networkID uint64, batchID domain.BatchID, observedAt time.Time)

	// GetLatestBatchID retrieves the latest batch id of networkID and when it was first observed.
	// Returns false if nothing was stored for the network.
	GetLatestBatchID(networkID uint64) (domain.BatchID, time.Time, bool)
}

var _ ChainInfoRepository = &chainInfoRepo{}

type batchObservation struct {
	batchID    domain.BatchID
	observedAt time.Time
}

type chainInfoRepo struct {
	latestBatchIDs map[uint64]batchObservation
	mu             sync.RWMutex
}

// New creates a new repository for chain information
func New() ChainInfoRepository {
	return &chainInfoRepo{
		latestBatchIDs: map[uint64]batchObservation{},
		mu:             sync.RWMutex{},
	}
}

// StoreLatestBatchID stores the latest batch id into store
func (r *chainInfoRepo) StoreLatestBatchID(networkID uint64, batchID domain.BatchID, observedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.latestBatchIDs[networkID]; ok && previous.batchID == batchID {
		return
	}

	r.latestBatchIDs[networkID] = batchObservation{batchID: batchID, observedAt: observedAt}
}

// GetLatestBatchID retrieves the latest batch id from store.
func (r *chainInfoRepo) GetLatestBatchID(networkID uint64) (domain.BatchID, time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	observation, ok := r.latestBatchIDs[networkID]
	return observation.batchID, observation.observedAt, ok
}
