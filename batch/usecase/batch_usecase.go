package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/batchauction/dexclient/batch/telemetry"
	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/log"
)

type batchUseCase struct {
	chainReader domain.ChainReader
	contracts   *registry.ContractRegistry

	// batch time never changes for the lifetime of a contract.
	batchTimeCache *lru.Cache[uint64, uint64]
	fetchGroup     singleflight.Group

	now    domain.TimeSource
	logger log.Logger
}

var _ mvc.BatchUsecase = &batchUseCase{}

// DefaultBatchTimeCacheSize is used when no positive cache size is configured.
const DefaultBatchTimeCacheSize = 64

// ErrZeroBatchTime is wrapped when the chain reports a zero batch duration.
var ErrZeroBatchTime = errors.New("batch time is zero")

// Option configures the batch usecase.
type Option func(*batchUseCase)

// WithTimeSource overrides the wall clock used to compute batch ids.
func WithTimeSource(now domain.TimeSource) Option {
	return func(b *batchUseCase) {
		b.now = now
	}
}

// NewBatchUsecase creates a new batch clock reading batch durations through chainReader.
func NewBatchUsecase(chainReader domain.ChainReader, contracts *registry.ContractRegistry, cacheSize int, logger log.Logger, opts ...Option) (*batchUseCase, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultBatchTimeCacheSize
	}

	cache, err := lru.New[uint64, uint64](cacheSize)
	if err != nil {
		return nil, err
	}

	b := &batchUseCase{
		chainReader:    chainReader,
		contracts:      contracts,
		batchTimeCache: cache,
		now:            time.Now,
		logger:         logger,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// GetBatchTime implements mvc.BatchUsecase.
func (b *batchUseCase) GetBatchTime(ctx context.Context, networkID uint64) (uint64, error) {
	if _, err := b.contracts.GetContractAddress(networkID); err != nil {
		return 0, err
	}

	if batchTime, ok := b.batchTimeCache.Get(networkID); ok {
		return batchTime, nil
	}

	networkLabel := strconv.FormatUint(networkID, 10)

	// the fetch is shared by every waiting caller and outlives the one that started it
	fetchCtx := context.WithoutCancel(ctx)
	resultChan := b.fetchGroup.DoChan(networkLabel, func() (any, error) {
		telemetry.BatchTimeFetchCounter.WithLabelValues(networkLabel).Inc()

		batchTime, err := b.chainReader.GetBatchTime(fetchCtx, networkID)
		if err != nil {
			return uint64(0), err
		}
		if batchTime == 0 {
			return uint64(0), ErrZeroBatchTime
		}

		b.batchTimeCache.Add(networkID, batchTime)

		return batchTime, nil
	})

	var result singleflight.Result
	select {
	case result = <-resultChan:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	if err := result.Err; err != nil {
		telemetry.BatchTimeFetchErrorCounter.WithLabelValues(networkLabel).Inc()
		b.logger.Error("failed to read batch time", zap.Uint64("network_id", networkID), zap.Error(err))

		var unsupportedNetworkErr domain.UnsupportedNetworkError
		if errors.As(err, &unsupportedNetworkErr) {
			return 0, err
		}
		return 0, domain.UnavailableBatchParametersError{NetworkID: networkID, Err: err}
	}

	return result.Val.(uint64), nil
}

// GetCurrentBatchID implements mvc.BatchUsecase.
func (b *batchUseCase) GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	batchTime, err := b.GetBatchTime(ctx, networkID)
	if err != nil {
		return 0, err
	}

	return domain.BatchIDAt(b.now(), batchTime), nil
}

// GetSecondsRemainingInBatch implements mvc.BatchUsecase.
func (b *batchUseCase) GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error) {
	batchTime, err := b.GetBatchTime(ctx, networkID)
	if err != nil {
		return 0, err
	}

	return domain.SecondsRemainingAt(b.now(), batchTime), nil
}

// GetBatchState implements mvc.BatchUsecase.
func (b *batchUseCase) GetBatchState(ctx context.Context, networkID uint64) (domain.BatchState, error) {
	batchTime, err := b.GetBatchTime(ctx, networkID)
	if err != nil {
		return domain.BatchState{}, err
	}

	now := b.now()

	return domain.BatchState{
		NetworkID:        networkID,
		BatchTime:        batchTime,
		CurrentBatchID:   domain.BatchIDAt(now, batchTime),
		SecondsRemaining: domain.SecondsRemainingAt(now, batchTime),
	}, nil
}
