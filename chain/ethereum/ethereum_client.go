// Package ethereum implements domain.ChainClient against an EVM node over JSON-RPC.
// Mutating calls are sent with eth_sendTransaction and are signed by the node.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	"github.com/batchauction/dexclient/log"
)

// DefaultReceiptPollInterval is how often receipts are polled when no interval is configured.
const DefaultReceiptPollInterval = 2 * time.Second

// TransactionRevertedError is returned when a mined transaction has a failed status.
type TransactionRevertedError struct {
	TxHash      common.Hash
	BlockNumber uint64
}

func (e TransactionRevertedError) Error() string {
	return fmt.Sprintf("transaction %s reverted in block %d", e.TxHash.Hex(), e.BlockNumber)
}

// UnexpectedResultError is returned when a contract call decodes to unexpected types.
type UnexpectedResultError struct {
	Method string
}

func (e UnexpectedResultError) Error() string {
	return fmt.Sprintf("unexpected result of %s", e.Method)
}

// exchangeContract is the handle of a deployed exchange cached by the contract registry.
type exchangeContract struct {
	address common.Address
}

// Client is a chain client bound to the network of its node.
type Client struct {
	networkID uint64

	// ec wraps c with the typed eth namespace calls.
	ec *ethclient.Client
	// c is used for raw calls.
	c *rpc.Client

	contracts           *registry.ContractRegistry
	receiptPollInterval time.Duration

	logger log.Logger
}

var (
	_ domain.ChainClient          = &Client{}
	_ orderbookdomain.OrderReader = &Client{}
)

// Option configures the client.
type Option func(*Client)

// WithReceiptPollInterval sets how often receipts are polled while waiting for a transaction.
func WithReceiptPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.receiptPollInterval = interval
		}
	}
}

// Dial connects to endpoint and binds the client to the chain id reported by the node.
func Dial(ctx context.Context, endpoint string, contracts *registry.ContractRegistry, logger log.Logger, opts ...Option) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("unable to dial rpc: %w", err)
	}

	chainID, err := ethclient.NewClient(rpcClient).ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("unable to read chain id: %w", err)
	}

	logger.Info("connected to node", zap.String("endpoint", endpoint), zap.Stringer("chain_id", chainID))

	return NewClient(rpcClient, chainID.Uint64(), contracts, logger, opts...), nil
}

// NewClient wraps an established rpc connection to a node of networkID.
func NewClient(rpcClient *rpc.Client, networkID uint64, contracts *registry.ContractRegistry, logger log.Logger, opts ...Option) *Client {
	c := &Client{
		networkID:           networkID,
		ec:                  ethclient.NewClient(rpcClient),
		c:                   rpcClient,
		contracts:           contracts,
		receiptPollInterval: DefaultReceiptPollInterval,
		logger:              logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NetworkID returns the chain id of the node.
func (c *Client) NetworkID() uint64 {
	return c.networkID
}

// Close closes the connection to the node.
func (c *Client) Close() {
	c.ec.Close()
}

// GetBatchTime implements domain.ChainReader.
func (c *Client) GetBatchTime(ctx context.Context, networkID uint64) (uint64, error) {
	out, err := c.call(ctx, networkID, methodBatchTime)
	if err != nil {
		return 0, err
	}

	batchTime, ok := out[0].(uint32)
	if !ok {
		return 0, UnexpectedResultError{Method: methodBatchTime}
	}
	return uint64(batchTime), nil
}

// GetCurrentBatchID implements domain.ChainReader.
func (c *Client) GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	out, err := c.call(ctx, networkID, methodGetCurrentBatchID)
	if err != nil {
		return 0, err
	}

	batchID, ok := out[0].(uint32)
	if !ok {
		return 0, UnexpectedResultError{Method: methodGetCurrentBatchID}
	}
	return domain.BatchID(batchID), nil
}

// GetSecondsRemainingInBatch implements domain.ChainReader.
func (c *Client) GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error) {
	out, err := c.call(ctx, networkID, methodGetSecondsRemainingInBatch)
	if err != nil {
		return 0, err
	}

	seconds, ok := out[0].(*big.Int)
	if !ok || !seconds.IsUint64() {
		return 0, UnexpectedResultError{Method: methodGetSecondsRemainingInBatch}
	}
	return seconds.Uint64(), nil
}

// GetBalance implements domain.ChainReader.
func (c *Client) GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error) {
	out, err := c.call(ctx, networkID, methodGetBalance, owner, token)
	if err != nil {
		return osmomath.Int{}, err
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return osmomath.Int{}, UnexpectedResultError{Method: methodGetBalance}
	}
	return osmomath.NewIntFromBigInt(balance), nil
}

// GetPendingDeposit implements domain.ChainReader.
func (c *Client) GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	return c.getPendingFlux(ctx, networkID, methodGetPendingDeposit, owner, token)
}

// GetPendingWithdraw implements domain.ChainReader.
func (c *Client) GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	return c.getPendingFlux(ctx, networkID, methodGetPendingWithdraw, owner, token)
}

func (c *Client) getPendingFlux(ctx context.Context, networkID uint64, method string, owner, token common.Address) (domain.PendingFlux, error) {
	out, err := c.call(ctx, networkID, method, owner, token)
	if err != nil {
		return domain.PendingFlux{}, err
	}

	return decodePendingFlux(method, out)
}

func decodePendingFlux(method string, out []any) (domain.PendingFlux, error) {
	if len(out) != 2 {
		return domain.PendingFlux{}, UnexpectedResultError{Method: method}
	}

	amount, ok := out[0].(*big.Int)
	if !ok {
		return domain.PendingFlux{}, UnexpectedResultError{Method: method}
	}
	batchID, ok := out[1].(uint32)
	if !ok {
		return domain.PendingFlux{}, UnexpectedResultError{Method: method}
	}

	return domain.PendingFlux{
		Amount:  osmomath.NewIntFromBigInt(amount),
		BatchID: domain.BatchID(batchID),
	}, nil
}

// GetOrders implements orderbookdomain.OrderReader.
func (c *Client) GetOrders(ctx context.Context, networkID uint64, owner common.Address) ([]orderbookdomain.Order, error) {
	out, err := c.call(ctx, networkID, methodGetEncodedUserOrders, owner)
	if err != nil {
		return nil, err
	}

	encoded, ok := out[0].([]byte)
	if !ok {
		return nil, UnexpectedResultError{Method: methodGetEncodedUserOrders}
	}
	return decodeAuctionElements(owner, encoded)
}

// Submit implements domain.ChainWriter.
// The returned handle resolves once the receipt of the transaction is found.
func (c *Client) Submit(ctx context.Context, op domain.Operation) (*domain.PendingTx[struct{}], error) {
	contract, err := c.contract(op.NetworkID)
	if err != nil {
		return nil, err
	}

	data, err := packOperation(op)
	if err != nil {
		return nil, err
	}

	tx := map[string]string{
		"from": op.From.Hex(),
		"to":   contract.address.Hex(),
		"data": hexutil.Encode(data),
	}
	if op.GasPrice != nil {
		tx["gasPrice"] = hexutil.EncodeBig(op.GasPrice)
	}

	var txHash common.Hash
	if err := c.c.CallContext(ctx, &txHash, "eth_sendTransaction", tx); err != nil {
		if isRevert(err) {
			return nil, c.revertError(ctx, op, err.Error())
		}
		return nil, err
	}

	c.logger.Debug("sent transaction", zap.String("kind", string(op.Kind)), zap.Stringer("tx_hash", txHash))

	pendingTx := domain.NewPendingTx[struct{}](txHash)

	waitCtx := context.WithoutCancel(ctx)
	go func() {
		receipt, err := c.WaitReceipt(waitCtx, txHash)
		if errors.As(err, &TransactionRevertedError{}) && op.Kind == domain.OperationWithdraw {
			err = c.revertError(waitCtx, op, err.Error())
		}
		pendingTx.Resolve(struct{}{}, receipt, err)
	}()

	return pendingTx, nil
}

// revertError maps a revert of op to the typed error of its operation.
// The contract only reverts a withdraw whose requested batch has not elapsed yet.
func (c *Client) revertError(ctx context.Context, op domain.Operation, reason string) error {
	if op.Kind != domain.OperationWithdraw {
		return domain.TransferRejectedError{Kind: op.Kind, Owner: op.From, Token: op.Token, Reason: reason}
	}

	notSettled := domain.NotYetSettledError{Owner: op.From, Token: op.Token}

	// best effort, the batches only enrich the message
	if pending, err := c.GetPendingWithdraw(ctx, op.NetworkID, op.From, op.Token); err == nil {
		notSettled.BatchID = pending.BatchID
	}
	if currentBatchID, err := c.GetCurrentBatchID(ctx, op.NetworkID); err == nil {
		notSettled.CurrentBatchID = currentBatchID
	}

	c.logger.Debug("withdraw reverted", zap.Stringer("owner", op.From), zap.Stringer("token", op.Token), zap.String("reason", reason))

	return notSettled
}

// WaitReceipt polls the receipt of txHash until it is mined or ctx is done.
// A reverted transaction yields TransactionRevertedError.
func (c *Client) WaitReceipt(ctx context.Context, txHash common.Hash) (domain.Receipt, error) {
	ticker := time.NewTicker(c.receiptPollInterval)
	defer ticker.Stop()

	for {
		r, err := c.ec.TransactionReceipt(ctx, txHash)
		if err == nil {
			return toReceipt(r)
		}
		if !errors.Is(err, ethereum.NotFound) {
			return domain.Receipt{TxHash: txHash}, err
		}

		select {
		case <-ctx.Done():
			return domain.Receipt{TxHash: txHash}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// SuggestGasPrice returns the gas price suggested by the node.
// It can serve as the domain.GasPriceFetcher of the client.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.ec.SuggestGasPrice(ctx)
}

func (c *Client) contract(networkID uint64) (*exchangeContract, error) {
	if networkID != c.networkID {
		return nil, domain.UnsupportedNetworkError{NetworkID: networkID}
	}

	return registry.GetContract(c.contracts, networkID, func(address common.Address) (*exchangeContract, error) {
		return &exchangeContract{address: address}, nil
	})
}

func (c *Client) call(ctx context.Context, networkID uint64, method string, args ...any) ([]any, error) {
	contract, err := c.contract(networkID)
	if err != nil {
		return nil, err
	}

	data, err := batchExchangeABI.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	result, err := c.ec.CallContract(ctx, ethereum.CallMsg{To: &contract.address, Data: data}, nil)
	if err != nil {
		return nil, err
	}

	out, err := batchExchangeABI.Unpack(method, result)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, UnexpectedResultError{Method: method}
	}
	return out, nil
}

func packOperation(op domain.Operation) ([]byte, error) {
	switch op.Kind {
	case domain.OperationDeposit:
		return batchExchangeABI.Pack(methodDeposit, op.Token, op.Amount.BigInt())
	case domain.OperationRequestWithdraw:
		return batchExchangeABI.Pack(methodRequestWithdraw, op.Token, op.Amount.BigInt())
	case domain.OperationWithdraw:
		return batchExchangeABI.Pack(methodWithdraw, op.From, op.Token)
	default:
		return nil, fmt.Errorf("unsupported operation %q", op.Kind)
	}
}

func toReceipt(r *types.Receipt) (domain.Receipt, error) {
	receipt := domain.Receipt{
		TxHash:  r.TxHash,
		Status:  r.Status,
		GasUsed: r.GasUsed,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}

	if r.Status != types.ReceiptStatusSuccessful {
		return receipt, TransactionRevertedError{TxHash: r.TxHash, BlockNumber: receipt.BlockNumber}
	}
	return receipt, nil
}

func isRevert(err error) bool {
	return strings.Contains(err.Error(), "execution reverted")
}
