// Package simulated provides an in-memory exchange contract implementing
// domain.ChainClient. Deposits, withdraw requests and withdraws follow the
// batch semantics of the on-chain contract.
package simulated

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/log"
)

// simulatedGasUsed is reported in every receipt.
const simulatedGasUsed uint64 = 21_000

type pendingOperation struct {
	op domain.Operation
	tx *domain.PendingTx[struct{}]
}

// Chain is the in-memory exchange. Safe for concurrent use.
type Chain struct {
	contracts *registry.ContractRegistry
	batchTime uint64
	now       domain.TimeSource
	logger    log.Logger

	mu           sync.Mutex
	nonce        uint64
	blockNumber  uint64
	manualMining bool
	mempool      []pendingOperation
}

var _ domain.ChainClient = &Chain{}

// Option configures the simulated chain.
type Option func(*Chain)

// WithTimeSource overrides the wall clock used by the contract.
func WithTimeSource(now domain.TimeSource) Option {
	return func(c *Chain) {
		c.now = now
	}
}

// WithManualMining keeps submitted operations in the mempool until Mine is called.
func WithManualMining() Option {
	return func(c *Chain) {
		c.manualMining = true
	}
}

// New returns a simulated chain with an exchange on every network registered in contracts.
func New(contracts *registry.ContractRegistry, batchTime uint64, logger log.Logger, opts ...Option) *Chain {
	c := &Chain{
		contracts: contracts,
		batchTime: batchTime,
		now:       time.Now,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Chain) exchange(networkID uint64) (*exchangeState, error) {
	return registry.GetContract(c.contracts, networkID, newExchangeState)
}

func (c *Chain) currentBatchID() domain.BatchID {
	return domain.BatchIDAt(c.now(), c.batchTime)
}

// GetBatchTime implements domain.ChainReader.
func (c *Chain) GetBatchTime(ctx context.Context, networkID uint64) (uint64, error) {
	if _, err := c.contracts.GetContractAddress(networkID); err != nil {
		return 0, err
	}
	return c.batchTime, nil
}

// GetCurrentBatchID implements domain.ChainReader.
func (c *Chain) GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	if _, err := c.contracts.GetContractAddress(networkID); err != nil {
		return 0, err
	}
	return c.currentBatchID(), nil
}

// GetSecondsRemainingInBatch implements domain.ChainReader.
func (c *Chain) GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error) {
	if _, err := c.contracts.GetContractAddress(networkID); err != nil {
		return 0, err
	}
	return domain.SecondsRemainingAt(c.now(), c.batchTime), nil
}

// GetBalance implements domain.ChainReader.
func (c *Chain) GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(networkID)
	if err != nil {
		return osmomath.Int{}, err
	}
	return exchange.balanceAt(owner, token, c.currentBatchID()), nil
}

// GetPendingDeposit implements domain.ChainReader.
func (c *Chain) GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(networkID)
	if err != nil {
		return domain.PendingFlux{}, err
	}
	return exchange.state(owner, token).pendingDeposit, nil
}

// GetPendingWithdraw implements domain.ChainReader.
func (c *Chain) GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(networkID)
	if err != nil {
		return domain.PendingFlux{}, err
	}
	return exchange.state(owner, token).pendingWithdraw, nil
}

// Submit implements domain.ChainWriter.
// Operations the contract would revert are rejected before a transaction is created,
// the way a node rejects them during gas estimation.
func (c *Chain) Submit(ctx context.Context, op domain.Operation) (*domain.PendingTx[struct{}], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(op.NetworkID)
	if err != nil {
		return nil, err
	}

	currentBatchID := c.currentBatchID()

	if op.Kind != domain.OperationWithdraw && (op.Amount.IsNil() || op.Amount.IsNegative()) {
		return nil, domain.InvalidAmountError{Amount: op.Amount.String()}
	}

	switch op.Kind {
	case domain.OperationDeposit:
		err = exchange.validateDeposit(op.From, op.Token, op.Amount)
	case domain.OperationRequestWithdraw:
	case domain.OperationWithdraw:
		err = exchange.validateWithdraw(op.From, op.Token, currentBatchID)
	default:
		err = fmt.Errorf("unknown operation kind (%s)", op.Kind)
	}
	if err != nil {
		return nil, err
	}

	c.nonce++
	tx := domain.NewPendingTx[struct{}](c.txHash(op))

	c.mempool = append(c.mempool, pendingOperation{op: op, tx: tx})

	if !c.manualMining {
		go c.Mine()
	}

	return tx, nil
}

func (c *Chain) txHash(op domain.Operation) common.Hash {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, c.nonce)

	networkID := make([]byte, 8)
	binary.BigEndian.PutUint64(networkID, op.NetworkID)

	return crypto.Keccak256Hash(networkID, op.From.Bytes(), op.Token.Bytes(), []byte(op.Kind), nonce)
}

// Mine applies every operation of the mempool in submission order, one block each.
// Returns the number of mined operations.
func (c *Chain) Mine() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	mined := len(c.mempool)
	for _, pending := range c.mempool {
		c.mineLocked(pending)
	}
	c.mempool = nil

	return mined
}

// PendingCount returns the number of operations waiting in the mempool.
func (c *Chain) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.mempool)
}

func (c *Chain) mineLocked(pending pendingOperation) {
	c.blockNumber++

	receipt := domain.Receipt{
		TxHash:      pending.tx.TxHash,
		BlockNumber: c.blockNumber,
		Status:      domain.ReceiptStatusSuccessful,
		GasUsed:     simulatedGasUsed,
	}

	err := c.apply(pending.op)
	if err != nil {
		receipt.Status = 0
		c.logger.Info("simulated transaction reverted", zap.Stringer("tx_hash", pending.tx.TxHash), zap.Error(err))
	}

	pending.tx.Resolve(struct{}{}, receipt, err)
}

func (c *Chain) apply(op domain.Operation) error {
	exchange, err := c.exchange(op.NetworkID)
	if err != nil {
		return err
	}

	currentBatchID := c.currentBatchID()

	switch op.Kind {
	case domain.OperationDeposit:
		return exchange.deposit(op.From, op.Token, op.Amount, currentBatchID)
	case domain.OperationRequestWithdraw:
		exchange.requestWithdraw(op.From, op.Token, op.Amount, currentBatchID)
		return nil
	case domain.OperationWithdraw:
		_, err := exchange.withdraw(op.From, op.Token, currentBatchID)
		return err
	default:
		return fmt.Errorf("unknown operation kind (%s)", op.Kind)
	}
}

// Mint credits amount of token to the wallet of owner.
func (c *Chain) Mint(networkID uint64, token, owner common.Address, amount osmomath.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(networkID)
	if err != nil {
		return err
	}

	key := ownerToken{owner: owner, token: token}
	exchange.walletBalances[key] = exchange.walletBalance(owner, token).Add(amount)
	return nil
}

// Approve sets the allowance of the exchange over the owner's token.
func (c *Chain) Approve(networkID uint64, token, owner common.Address, amount osmomath.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(networkID)
	if err != nil {
		return err
	}

	exchange.allowances[ownerToken{owner: owner, token: token}] = amount
	return nil
}

// WalletBalance returns the token balance held by owner outside of the exchange.
func (c *Chain) WalletBalance(networkID uint64, token, owner common.Address) (osmomath.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange, err := c.exchange(networkID)
	if err != nil {
		return osmomath.Int{}, err
	}
	return exchange.walletBalance(owner, token), nil
}
