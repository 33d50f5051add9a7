package mocks

import (
	"context"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
)

var _ mvc.BatchUsecase = &BatchUsecaseMock{}

// BatchUsecaseMock is a mock implementation of the mvc.BatchUsecase interface.
type BatchUsecaseMock struct {
	GetBatchTimeFunc               func(ctx context.Context, networkID uint64) (uint64, error)
	GetCurrentBatchIDFunc          func(ctx context.Context, networkID uint64) (domain.BatchID, error)
	GetSecondsRemainingInBatchFunc func(ctx context.Context, networkID uint64) (uint64, error)
	GetBatchStateFunc              func(ctx context.Context, networkID uint64) (domain.BatchState, error)
}

// WithCurrentBatchID configures the mock to report batchID as the current batch.
func (m *BatchUsecaseMock) WithCurrentBatchID(batchID domain.BatchID) {
	m.GetCurrentBatchIDFunc = func(ctx context.Context, networkID uint64) (domain.BatchID, error) {
		return batchID, nil
	}
}

// GetBatchTime implements mvc.BatchUsecase.
func (m *BatchUsecaseMock) GetBatchTime(ctx context.Context, networkID uint64) (uint64, error) {
	if m.GetBatchTimeFunc != nil {
		return m.GetBatchTimeFunc(ctx, networkID)
	}
	panic("GetBatchTime not implemented")
}

// GetCurrentBatchID implements mvc.BatchUsecase.
func (m *BatchUsecaseMock) GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	if m.GetCurrentBatchIDFunc != nil {
		return m.GetCurrentBatchIDFunc(ctx, networkID)
	}
	panic("GetCurrentBatchID not implemented")
}

// GetSecondsRemainingInBatch implements mvc.BatchUsecase.
func (m *BatchUsecaseMock) GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error) {
	if m.GetSecondsRemainingInBatchFunc != nil {
		return m.GetSecondsRemainingInBatchFunc(ctx, networkID)
	}
	panic("GetSecondsRemainingInBatch not implemented")
}

// GetBatchState implements mvc.BatchUsecase.
func (m *BatchUsecaseMock) GetBatchState(ctx context.Context, networkID uint64) (domain.BatchState, error) {
	if m.GetBatchStateFunc != nil {
		return m.GetBatchStateFunc(ctx, networkID)
	}
	panic("GetBatchState not implemented")
}
