package mocks

import (
	"context"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
)

var _ mvc.ChainInfoUsecase = &ChainInfoUsecaseMock{}

// ChainInfoUsecaseMock is a mock implementation of the ChainInfoUsecase interface
type ChainInfoUsecaseMock struct {
	GetLatestBatchIDFunc func(ctx context.Context, networkID uint64) (domain.BatchID, error)
}

func (m *ChainInfoUsecaseMock) GetLatestBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	if m.GetLatestBatchIDFunc != nil {
		return m.GetLatestBatchIDFunc(ctx, networkID)
	}
	return 0, nil
}
