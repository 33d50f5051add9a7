package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/domain/workerpool"
	"github.com/batchauction/dexclient/flux/telemetry"
	"github.com/batchauction/dexclient/log"
)

// submitterKey identifies a single writer context.
type submitterKey struct {
	networkID uint64
	owner     common.Address
}

type fluxUseCase struct {
	chainClient     domain.ChainClient
	batchUsecase    mvc.BatchUsecase
	contracts       *registry.ContractRegistry
	gasPriceFetcher domain.GasPriceFetcher

	// submissions of the same owner are sent in call order
	submitQueue *workerpool.SerialQueue[submitterKey]

	logger log.Logger
}

var _ mvc.FluxUsecase = &fluxUseCase{}

// NewFluxUsecase creates a new flux tracker.
// gasPriceFetcher may be nil, in which case the node picks the gas price of calls without a hint.
func NewFluxUsecase(chainClient domain.ChainClient, batchUsecase mvc.BatchUsecase, contracts *registry.ContractRegistry, gasPriceFetcher domain.GasPriceFetcher, logger log.Logger) *fluxUseCase {
	return &fluxUseCase{
		chainClient:     chainClient,
		batchUsecase:    batchUsecase,
		contracts:       contracts,
		gasPriceFetcher: gasPriceFetcher,
		submitQueue:     workerpool.NewSerialQueue[submitterKey](),
		logger:          logger,
	}
}

func isUnset(owner, token common.Address) bool {
	return owner == (common.Address{}) || token == (common.Address{})
}

// GetBalance implements mvc.FluxUsecase.
func (f *fluxUseCase) GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error) {
	if isUnset(owner, token) {
		return osmomath.ZeroInt(), nil
	}

	if _, err := f.contracts.GetContractAddress(networkID); err != nil {
		return osmomath.Int{}, err
	}

	balance, err := f.chainClient.GetBalance(ctx, networkID, owner, token)
	if err != nil {
		return osmomath.Int{}, err
	}
	if balance.IsNil() {
		return osmomath.ZeroInt(), nil
	}
	return balance, nil
}

// GetPendingDeposit implements mvc.FluxUsecase.
func (f *fluxUseCase) GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	if isUnset(owner, token) {
		return domain.ZeroFlux(), nil
	}

	if _, err := f.contracts.GetContractAddress(networkID); err != nil {
		return domain.PendingFlux{}, err
	}

	flux, err := f.chainClient.GetPendingDeposit(ctx, networkID, owner, token)
	if err != nil {
		return domain.PendingFlux{}, err
	}
	return normalizeFlux(flux), nil
}

// GetPendingWithdraw implements mvc.FluxUsecase.
func (f *fluxUseCase) GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	if isUnset(owner, token) {
		return domain.ZeroFlux(), nil
	}

	if _, err := f.contracts.GetContractAddress(networkID); err != nil {
		return domain.PendingFlux{}, err
	}

	flux, err := f.chainClient.GetPendingWithdraw(ctx, networkID, owner, token)
	if err != nil {
		return domain.PendingFlux{}, err
	}
	return normalizeFlux(flux), nil
}

func normalizeFlux(flux domain.PendingFlux) domain.PendingFlux {
	if flux.Amount.IsNil() {
		flux.Amount = osmomath.ZeroInt()
	}
	return flux
}

// GetBalanceState implements mvc.FluxUsecase.
func (f *fluxUseCase) GetBalanceState(ctx context.Context, networkID uint64, owner, token common.Address) (domain.BalanceState, error) {
	state := domain.BalanceState{
		Owner:     owner,
		Token:     token,
		NetworkID: networkID,
	}

	currentBatchID, err := f.batchUsecase.GetCurrentBatchID(ctx, networkID)
	if err != nil {
		return domain.BalanceState{}, err
	}
	state.CurrentBatchID = currentBatchID

	if state.Balance, err = f.GetBalance(ctx, networkID, owner, token); err != nil {
		return domain.BalanceState{}, err
	}
	if state.PendingDeposit, err = f.GetPendingDeposit(ctx, networkID, owner, token); err != nil {
		return domain.BalanceState{}, err
	}
	if state.PendingWithdraw, err = f.GetPendingWithdraw(ctx, networkID, owner, token); err != nil {
		return domain.BalanceState{}, err
	}

	state.EffectiveBalance = domain.EffectiveBalance(state.Balance, state.PendingDeposit, currentBatchID)
	state.ClaimableWithdraw = domain.ClaimableWithdraw(state.PendingWithdraw, currentBatchID)

	return state, nil
}

// Deposit implements mvc.FluxUsecase.
func (f *fluxUseCase) Deposit(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	return f.submit(ctx, domain.OperationDeposit, req, opts)
}

// RequestWithdraw implements mvc.FluxUsecase.
func (f *fluxUseCase) RequestWithdraw(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	return f.submit(ctx, domain.OperationRequestWithdraw, req, opts)
}

// Withdraw implements mvc.FluxUsecase.
func (f *fluxUseCase) Withdraw(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	return f.submit(ctx, domain.OperationWithdraw, req, opts)
}

func (f *fluxUseCase) submit(ctx context.Context, kind domain.OperationKind, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	tx, err := f.doSubmit(ctx, kind, req, opts)
	if err != nil {
		telemetry.SubmitErrorCounter.WithLabelValues(string(kind)).Inc()
		f.logger.Debug("flux submission failed", zap.String("kind", string(kind)), zap.Stringer("owner", req.Owner), zap.Stringer("token", req.Token), zap.Error(err))
		return nil, err
	}

	telemetry.SubmitCounter.WithLabelValues(string(kind)).Inc()

	opts.NotifySent(tx.TxHash)

	return tx, nil
}

func (f *fluxUseCase) doSubmit(ctx context.Context, kind domain.OperationKind, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	if req.Owner == (common.Address{}) {
		return nil, domain.InvalidAddressError{Address: req.Owner.Hex()}
	}
	if req.Token == (common.Address{}) {
		return nil, domain.InvalidAddressError{Address: req.Token.Hex()}
	}

	amount := req.Amount
	if kind == domain.OperationWithdraw {
		amount = osmomath.ZeroInt()
	} else if amount.IsNil() || amount.IsNegative() {
		return nil, domain.InvalidAmountError{Amount: amount.String()}
	}

	if _, err := f.contracts.GetContractAddress(req.NetworkID); err != nil {
		return nil, err
	}

	gasPrice, err := f.gasPrice(ctx, req.NetworkID, opts)
	if err != nil {
		return nil, err
	}

	op := domain.Operation{
		Kind:      kind,
		NetworkID: req.NetworkID,
		From:      req.Owner,
		Token:     req.Token,
		Amount:    amount,
		GasPrice:  gasPrice,
	}

	key := submitterKey{networkID: req.NetworkID, owner: req.Owner}

	result := <-workerpool.Enqueue(f.submitQueue, key, workerpool.Job[*domain.PendingTx[struct{}]]{
		Task: func() (*domain.PendingTx[struct{}], error) {
			return f.chainClient.Submit(ctx, op)
		},
	})

	return result.Result, result.Err
}

func (f *fluxUseCase) gasPrice(ctx context.Context, networkID uint64, opts domain.TxOptions) (*big.Int, error) {
	if opts.GasPrice != nil {
		return opts.GasPrice, nil
	}
	if f.gasPriceFetcher == nil {
		return nil, nil
	}

	gasPrice, err := f.gasPriceFetcher(ctx, networkID)
	if err != nil {
		// the node picks a price when no hint is given
		f.logger.Warn("failed to fetch gas price", zap.Error(err))
		return nil, nil
	}
	return gasPrice, nil
}
