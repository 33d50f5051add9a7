package simulated

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
)

// balanceState mirrors the per owner, per token storage of the exchange contract.
type balanceState struct {
	balance         osmomath.Int
	pendingDeposit  domain.PendingFlux
	pendingWithdraw domain.PendingFlux
}

func newBalanceState() *balanceState {
	return &balanceState{
		balance:         osmomath.ZeroInt(),
		pendingDeposit:  domain.ZeroFlux(),
		pendingWithdraw: domain.ZeroFlux(),
	}
}

type ownerToken struct {
	owner common.Address
	token common.Address
}

// exchangeState is the storage of the exchange contract deployed on a network,
// together with the token contracts it pulls deposits from.
type exchangeState struct {
	address common.Address

	balances map[ownerToken]*balanceState

	// erc20 state
	walletBalances map[ownerToken]osmomath.Int
	allowances     map[ownerToken]osmomath.Int
}

func newExchangeState(address common.Address) (*exchangeState, error) {
	return &exchangeState{
		address:        address,
		balances:       map[ownerToken]*balanceState{},
		walletBalances: map[ownerToken]osmomath.Int{},
		allowances:     map[ownerToken]osmomath.Int{},
	}, nil
}

func (s *exchangeState) state(owner, token common.Address) *balanceState {
	key := ownerToken{owner: owner, token: token}
	state, ok := s.balances[key]
	if !ok {
		state = newBalanceState()
		s.balances[key] = state
	}
	return state
}

func (s *exchangeState) walletBalance(owner, token common.Address) osmomath.Int {
	if balance, ok := s.walletBalances[ownerToken{owner: owner, token: token}]; ok {
		return balance
	}
	return osmomath.ZeroInt()
}

func (s *exchangeState) allowance(owner, token common.Address) osmomath.Int {
	if allowance, ok := s.allowances[ownerToken{owner: owner, token: token}]; ok {
		return allowance
	}
	return osmomath.ZeroInt()
}

// balanceAt returns the balance as reported by the contract: the stored balance
// plus the settled deposit minus the settled withdraw request, floored at the available amount.
func (s *exchangeState) balanceAt(owner, token common.Address, currentBatchID domain.BatchID) osmomath.Int {
	state := s.state(owner, token)

	balance := state.balance
	if !state.pendingDeposit.IsEmpty() && state.pendingDeposit.IsSettled(currentBatchID) {
		balance = balance.Add(state.pendingDeposit.Amount)
	}
	if !state.pendingWithdraw.IsEmpty() && state.pendingWithdraw.IsSettled(currentBatchID) {
		balance = balance.Sub(minInt(state.pendingWithdraw.Amount, balance))
	}
	return balance
}

// settleDeposit folds a settled pending deposit into the stored balance.
func (s *exchangeState) settleDeposit(state *balanceState, currentBatchID domain.BatchID) {
	if state.pendingDeposit.IsEmpty() || !state.pendingDeposit.IsSettled(currentBatchID) {
		return
	}
	state.balance = state.balance.Add(state.pendingDeposit.Amount)
	state.pendingDeposit = domain.ZeroFlux()
}

func (s *exchangeState) validateDeposit(owner, token common.Address, amount osmomath.Int) error {
	if s.allowance(owner, token).LT(amount) {
		return domain.TransferRejectedError{Kind: domain.OperationDeposit, Owner: owner, Token: token, Reason: "insufficient allowance"}
	}
	if s.walletBalance(owner, token).LT(amount) {
		return domain.TransferRejectedError{Kind: domain.OperationDeposit, Owner: owner, Token: token, Reason: "insufficient wallet balance"}
	}
	return nil
}

func (s *exchangeState) deposit(owner, token common.Address, amount osmomath.Int, currentBatchID domain.BatchID) error {
	if err := s.validateDeposit(owner, token, amount); err != nil {
		return err
	}

	key := ownerToken{owner: owner, token: token}
	s.allowances[key] = s.allowance(owner, token).Sub(amount)
	s.walletBalances[key] = s.walletBalance(owner, token).Sub(amount)

	state := s.state(owner, token)
	s.settleDeposit(state, currentBatchID)

	state.pendingDeposit = domain.PendingFlux{
		Amount:  state.pendingDeposit.Amount.Add(amount),
		BatchID: currentBatchID,
	}
	return nil
}

func (s *exchangeState) requestWithdraw(owner, token common.Address, amount osmomath.Int, currentBatchID domain.BatchID) {
	state := s.state(owner, token)
	s.settleDeposit(state, currentBatchID)

	state.pendingWithdraw = domain.PendingFlux{Amount: amount, BatchID: currentBatchID}
}

func (s *exchangeState) validateWithdraw(owner, token common.Address, currentBatchID domain.BatchID) error {
	state := s.state(owner, token)
	if state.pendingWithdraw.IsEmpty() {
		return domain.TransferRejectedError{Kind: domain.OperationWithdraw, Owner: owner, Token: token, Reason: "no withdraw request"}
	}
	if !state.pendingWithdraw.IsSettled(currentBatchID) {
		return domain.NotYetSettledError{Owner: owner, Token: token, BatchID: state.pendingWithdraw.BatchID, CurrentBatchID: currentBatchID}
	}
	return nil
}

// withdraw transfers the requested amount, capped at the balance, back to the owner wallet.
func (s *exchangeState) withdraw(owner, token common.Address, currentBatchID domain.BatchID) (osmomath.Int, error) {
	if err := s.validateWithdraw(owner, token, currentBatchID); err != nil {
		return osmomath.Int{}, err
	}

	state := s.state(owner, token)
	s.settleDeposit(state, currentBatchID)

	amount := minInt(state.pendingWithdraw.Amount, state.balance)
	state.balance = state.balance.Sub(amount)
	state.pendingWithdraw = domain.ZeroFlux()

	key := ownerToken{owner: owner, token: token}
	s.walletBalances[key] = s.walletBalance(owner, token).Add(amount)

	return amount, nil
}

func minInt(a, b osmomath.Int) osmomath.Int {
	if a.LT(b) {
		return a
	}
	return b
}
