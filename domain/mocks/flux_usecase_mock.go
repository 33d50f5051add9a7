package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
)

var _ mvc.FluxUsecase = &FluxUsecaseMock{}

// FluxUsecaseMock is a mock implementation of the mvc.FluxUsecase interface.
type FluxUsecaseMock struct {
	GetBalanceFunc         func(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error)
	GetPendingDepositFunc  func(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error)
	GetPendingWithdrawFunc func(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error)
	GetBalanceStateFunc    func(ctx context.Context, networkID uint64, owner, token common.Address) (domain.BalanceState, error)
	DepositFunc            func(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)
	RequestWithdrawFunc    func(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)
	WithdrawFunc           func(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)
}

// GetBalance implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, networkID, owner, token)
	}
	panic("GetBalance not implemented")
}

// GetPendingDeposit implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	if m.GetPendingDepositFunc != nil {
		return m.GetPendingDepositFunc(ctx, networkID, owner, token)
	}
	panic("GetPendingDeposit not implemented")
}

// GetPendingWithdraw implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	if m.GetPendingWithdrawFunc != nil {
		return m.GetPendingWithdrawFunc(ctx, networkID, owner, token)
	}
	panic("GetPendingWithdraw not implemented")
}

// GetBalanceState implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) GetBalanceState(ctx context.Context, networkID uint64, owner, token common.Address) (domain.BalanceState, error) {
	if m.GetBalanceStateFunc != nil {
		return m.GetBalanceStateFunc(ctx, networkID, owner, token)
	}
	panic("GetBalanceState not implemented")
}

// Deposit implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) Deposit(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	if m.DepositFunc != nil {
		return m.DepositFunc(ctx, req, opts)
	}
	panic("Deposit not implemented")
}

// RequestWithdraw implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) RequestWithdraw(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	if m.RequestWithdrawFunc != nil {
		return m.RequestWithdrawFunc(ctx, req, opts)
	}
	panic("RequestWithdraw not implemented")
}

// Withdraw implements mvc.FluxUsecase.
func (m *FluxUsecaseMock) Withdraw(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	if m.WithdrawFunc != nil {
		return m.WithdrawFunc(ctx, req, opts)
	}
	panic("Withdraw not implemented")
}
