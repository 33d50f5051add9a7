package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
)

var _ domain.ChainClient = &ChainClientMock{}

// ChainClientMock is a mock implementation of the domain.ChainClient interface.
type ChainClientMock struct {
	GetBatchTimeFunc               func(ctx context.Context, networkID uint64) (uint64, error)
	GetCurrentBatchIDFunc          func(ctx context.Context, networkID uint64) (domain.BatchID, error)
	GetSecondsRemainingInBatchFunc func(ctx context.Context, networkID uint64) (uint64, error)
	GetBalanceFunc                 func(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error)
	GetPendingDepositFunc          func(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error)
	GetPendingWithdrawFunc         func(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error)
	SubmitFunc                     func(ctx context.Context, op domain.Operation) (*domain.PendingTx[struct{}], error)
}

// WithBatchTime configures the mock to return batchTime for every network.
func (m *ChainClientMock) WithBatchTime(batchTime uint64, err error) {
	m.GetBatchTimeFunc = func(ctx context.Context, networkID uint64) (uint64, error) {
		return batchTime, err
	}
}

// GetBatchTime implements domain.ChainClient.
func (m *ChainClientMock) GetBatchTime(ctx context.Context, networkID uint64) (uint64, error) {
	if m.GetBatchTimeFunc != nil {
		return m.GetBatchTimeFunc(ctx, networkID)
	}
	panic("GetBatchTime not implemented")
}

// GetCurrentBatchID implements domain.ChainClient.
func (m *ChainClientMock) GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	if m.GetCurrentBatchIDFunc != nil {
		return m.GetCurrentBatchIDFunc(ctx, networkID)
	}
	panic("GetCurrentBatchID not implemented")
}

// GetSecondsRemainingInBatch implements domain.ChainClient.
func (m *ChainClientMock) GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error) {
	if m.GetSecondsRemainingInBatchFunc != nil {
		return m.GetSecondsRemainingInBatchFunc(ctx, networkID)
	}
	panic("GetSecondsRemainingInBatch not implemented")
}

// GetBalance implements domain.ChainClient.
func (m *ChainClientMock) GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, networkID, owner, token)
	}
	panic("GetBalance not implemented")
}

// GetPendingDeposit implements domain.ChainClient.
func (m *ChainClientMock) GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	if m.GetPendingDepositFunc != nil {
		return m.GetPendingDepositFunc(ctx, networkID, owner, token)
	}
	panic("GetPendingDeposit not implemented")
}

// GetPendingWithdraw implements domain.ChainClient.
func (m *ChainClientMock) GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	if m.GetPendingWithdrawFunc != nil {
		return m.GetPendingWithdrawFunc(ctx, networkID, owner, token)
	}
	panic("GetPendingWithdraw not implemented")
}

// Submit implements domain.ChainClient.
func (m *ChainClientMock) Submit(ctx context.Context, op domain.Operation) (*domain.PendingTx[struct{}], error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, op)
	}
	panic("Submit not implemented")
}
