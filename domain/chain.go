package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// OperationKind enumerates the mutating calls of the exchange contract used by the client.
type OperationKind string

const (
	OperationDeposit         OperationKind = "deposit"
	OperationRequestWithdraw OperationKind = "requestWithdraw"
	OperationWithdraw        OperationKind = "withdraw"
)

// Operation describes a mutating request submitted to the exchange contract.
type Operation struct {
	Kind      OperationKind
	NetworkID uint64
	From      common.Address
	Token     common.Address
	// Amount is ignored for withdraw.
	Amount osmomath.Int
	// GasPrice is an optional price hint in wei.
	GasPrice *big.Int
}

// ChainReader reads confirmed exchange state.
type ChainReader interface {
	// GetBatchTime returns the batch duration in seconds.
	GetBatchTime(ctx context.Context, networkID uint64) (uint64, error)
	// GetCurrentBatchID returns the batch id as seen by the contract.
	GetCurrentBatchID(ctx context.Context, networkID uint64) (BatchID, error)
	// GetSecondsRemainingInBatch returns seconds left in the current batch as seen by the contract.
	GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error)

	GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error)
	GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (PendingFlux, error)
	GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (PendingFlux, error)
}

// ChainWriter submits mutating operations.
type ChainWriter interface {
	// Submit returns as soon as the operation is acknowledged by the network.
	// The returned handle resolves once the operation is mined.
	Submit(ctx context.Context, op Operation) (*PendingTx[struct{}], error)
}

// ChainClient is the external collaborator giving access to the exchange contract.
type ChainClient interface {
	ChainReader
	ChainWriter
}

// GasPriceFetcher returns a gas price hint in wei for networkID or nil to let the node decide.
type GasPriceFetcher func(ctx context.Context, networkID uint64) (*big.Int, error)
