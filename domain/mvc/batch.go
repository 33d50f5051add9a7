package mvc

import (
	"context"

	"github.com/batchauction/dexclient/domain"
)

// BatchUsecase computes the batch clock of every network.
type BatchUsecase interface {
	// GetBatchTime returns the batch duration of networkID in seconds.
	// The value is read from the chain once per network and cached.
	GetBatchTime(ctx context.Context, networkID uint64) (uint64, error)

	// GetCurrentBatchID returns the id of the batch running now.
	GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error)

	// GetSecondsRemainingInBatch returns the number of seconds left in the current batch.
	GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error)

	// GetBatchState returns a consistent snapshot of the clock, computed from a single time reading.
	GetBatchState(ctx context.Context, networkID uint64) (domain.BatchState, error)
}
