package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// PendingFlux is a deposit or withdraw request recorded on chain that has not
// been folded into the settled balance yet.
type PendingFlux struct {
	// Amount is zero when there is no pending operation.
	// @Type string
	Amount  osmomath.Int `json:"amount"`
	BatchID BatchID      `json:"batch_id"`
}

// ZeroFlux returns the flux reported when nothing is pending.
func ZeroFlux() PendingFlux {
	return PendingFlux{Amount: osmomath.ZeroInt(), BatchID: 0}
}

// IsEmpty returns true if there is no pending operation.
func (f PendingFlux) IsEmpty() bool {
	return f.Amount.IsNil() || f.Amount.IsZero()
}

// IsSettled returns true if the flux was submitted in a batch that already closed.
// An empty flux is always settled.
func (f PendingFlux) IsSettled(currentBatchID BatchID) bool {
	return f.IsEmpty() || f.BatchID < currentBatchID
}

// IsPending returns true if the flux is still in flight for currentBatchID.
func (f PendingFlux) IsPending(currentBatchID BatchID) bool {
	return !f.IsSettled(currentBatchID)
}

// EffectiveBalance returns the settled balance plus the deposit while it is still pending.
// Once the deposit batch has elapsed the settled balance alone is returned, as the deposit is
// already reflected in it.
func EffectiveBalance(balance osmomath.Int, deposit PendingFlux, currentBatchID BatchID) osmomath.Int {
	if balance.IsNil() {
		balance = osmomath.ZeroInt()
	}
	if deposit.IsPending(currentBatchID) {
		return balance.Add(deposit.Amount)
	}
	return balance
}

// ClaimableWithdraw returns the withdraw amount that can be finalized at currentBatchID.
func ClaimableWithdraw(withdraw PendingFlux, currentBatchID BatchID) osmomath.Int {
	if withdraw.IsEmpty() || withdraw.IsPending(currentBatchID) {
		return osmomath.ZeroInt()
	}
	return withdraw.Amount
}

// BalanceState aggregates the settled and pending state of a single owner/token pair.
type BalanceState struct {
	Owner          common.Address `json:"owner"`
	Token          common.Address `json:"token"`
	NetworkID      uint64         `json:"network_id"`
	CurrentBatchID BatchID        `json:"current_batch_id"`
	// @Type string
	Balance         osmomath.Int `json:"balance"`
	PendingDeposit  PendingFlux  `json:"pending_deposit"`
	PendingWithdraw PendingFlux  `json:"pending_withdraw"`
	// @Type string
	EffectiveBalance osmomath.Int `json:"effective_balance"`
	// @Type string
	ClaimableWithdraw osmomath.Int `json:"claimable_withdraw"`
}

// FluxRequest identifies a deposit or withdraw request.
type FluxRequest struct {
	NetworkID uint64
	Owner     common.Address
	Token     common.Address
	// Amount is ignored by withdraw.
	// @Type string
	Amount osmomath.Int
}
