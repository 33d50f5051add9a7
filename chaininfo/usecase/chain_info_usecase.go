package usecase

import (
	"context"
	"time"

	chaininforepo "github.com/batchauction/dexclient/chaininfo/repository"
	"github.com/batchauction/dexclient/domain"

	"github.com/batchauction/dexclient/domain/mvc"
)

type chainInfoUseCase struct {
	chainReader         domain.ChainReader
	batchUsecase        mvc.BatchUsecase
	chainInfoRepository chaininforepo.ChainInfoRepository

	now domain.TimeSource
}

const (
	// MaxBatchDrift is the number of batches the contract may disagree with the local clock.
	// A transaction straddling a boundary legitimately observes the previous or next batch.
	MaxBatchDrift = 1

	// MaxStaleBatches is the number of batch durations after which a batch id that
	// did not advance is considered stale.
	MaxStaleBatches = 2
)

var _ mvc.ChainInfoUsecase = &chainInfoUseCase{}

func NewChainInfoUsecase(chainReader domain.ChainReader, batchUsecase mvc.BatchUsecase, chainInfoRepository chaininforepo.ChainInfoRepository, now domain.TimeSource) *chainInfoUseCase {
	if now == nil {
		now = time.Now
	}

	return &chainInfoUseCase{
		chainReader:         chainReader,
		batchUsecase:        batchUsecase,
		chainInfoRepository: chainInfoRepository,
		now:                 now,
	}
}

// GetLatestBatchID implements mvc.ChainInfoUsecase.
func (p *chainInfoUseCase) GetLatestBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	batchState, err := p.batchUsecase.GetBatchState(ctx, networkID)
	if err != nil {
		return 0, err
	}

	chainBatchID, err := p.chainReader.GetCurrentBatchID(ctx, networkID)
	if err != nil {
		return 0, domain.UnavailableBatchParametersError{NetworkID: networkID, Err: err}
	}

	if batchDistance(chainBatchID, batchState.CurrentBatchID) > MaxBatchDrift {
		return 0, domain.BatchClockDriftError{
			NetworkID:     networkID,
			ChainBatchID:  chainBatchID,
			LocalBatchID:  batchState.CurrentBatchID,
			MaxDriftBatch: MaxBatchDrift,
		}
	}

	currentTimeUTC := p.now().UTC()

	storedBatchID, lastSeenUpdatedTime, ok := p.chainInfoRepository.GetLatestBatchID(networkID)
	if ok && storedBatchID == chainBatchID {
		// Time since the batch id was first seen
		timeDeltaSecs := int(currentTimeUTC.Sub(lastSeenUpdatedTime).Seconds())
		maxAllowedTimeDeltaSecs := int(batchState.BatchTime) * MaxStaleBatches

		if timeDeltaSecs > maxAllowedTimeDeltaSecs {
			return 0, domain.StaleBatchIDError{
				NetworkID:               networkID,
				StoredBatchID:           storedBatchID,
				TimeSinceLastUpdate:     timeDeltaSecs,
				MaxAllowedTimeDeltaSecs: maxAllowedTimeDeltaSecs,
			}
		}
	}

	p.chainInfoRepository.StoreLatestBatchID(networkID, chainBatchID, currentTimeUTC)

	return chainBatchID, nil
}

func batchDistance(a, b domain.BatchID) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}
