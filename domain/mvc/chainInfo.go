package mvc

import (
	"context"

	"github.com/batchauction/dexclient/domain"
)

type ChainInfoUsecase interface {
	// GetLatestBatchID returns the batch id reported by the contract of networkID.
	// Errors if it drifted from the local batch clock or stopped advancing.
	GetLatestBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error)
}
