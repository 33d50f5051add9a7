package domain

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// TxOptions are the optional parameters of a mutating call.
type TxOptions struct {
	// OnSentTransaction is called exactly once, when the transaction is accepted by the network.
	// It signals submission only, never settlement.
	OnSentTransaction func(txHash common.Hash)
	// GasPrice is an optional price hint in wei. When nil the configured gas price fetcher is consulted.
	GasPrice *big.Int
}

// NotifySent invokes OnSentTransaction if set.
func (o TxOptions) NotifySent(txHash common.Hash) {
	if o.OnSentTransaction != nil {
		o.OnSentTransaction(txHash)
	}
}

// Receipt is the outcome of a mined transaction.
type Receipt struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
	Status      uint64      `json:"status"`
	GasUsed     uint64      `json:"gas_used"`
}

// ReceiptStatusSuccessful mirrors the EVM success receipt status.
const ReceiptStatusSuccessful uint64 = 1

// PendingTx is the handle of a submitted mutation.
//
// It separates the two phases of every chain touching operation:
// TxHash is known as soon as the submission is acknowledged,
// while Wait blocks until the mutation is final.
type PendingTx[T any] struct {
	TxHash common.Hash

	once    sync.Once
	done    chan struct{}
	result  T
	receipt Receipt
	err     error
}

// NewPendingTx returns an unresolved handle for txHash.
func NewPendingTx[T any](txHash common.Hash) *PendingTx[T] {
	return &PendingTx[T]{
		TxHash: txHash,
		done:   make(chan struct{}),
	}
}

// Resolve completes the handle. Only the first call has an effect.
func (p *PendingTx[T]) Resolve(result T, receipt Receipt, err error) {
	p.once.Do(func() {
		p.result = result
		p.receipt = receipt
		p.err = err
		close(p.done)
	})
}

// Done is closed once the mutation is final.
func (p *PendingTx[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the mutation is final or ctx is done.
// Returning because of ctx does not cancel the mutation, it may still succeed.
func (p *PendingTx[T]) Wait(ctx context.Context) (T, Receipt, error) {
	select {
	case <-p.done:
		return p.result, p.receipt, p.err
	case <-ctx.Done():
		var zero T
		return zero, Receipt{}, ctx.Err()
	}
}
