package mvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
)

// FluxUsecase tracks settled balances and pending deposits and withdraws.
type FluxUsecase interface {
	// GetBalance returns the settled balance. Zero if owner or token is unset.
	GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error)

	// GetPendingDeposit returns the pending deposit. Zero flux if owner or token is unset.
	GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error)

	// GetPendingWithdraw returns the pending withdraw. Zero flux if owner or token is unset.
	GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error)

	// GetBalanceState overlays pending fluxes on the settled balance at the current batch.
	GetBalanceState(ctx context.Context, networkID uint64, owner, token common.Address) (domain.BalanceState, error)

	// Deposit submits a deposit of req.Amount of req.Token.
	Deposit(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)

	// RequestWithdraw submits a withdraw request. The amount is not checked against the balance.
	RequestWithdraw(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)

	// Withdraw finalizes a previously requested withdraw.
	// Settlement is checked by the contract, not locally.
	Withdraw(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)
}
