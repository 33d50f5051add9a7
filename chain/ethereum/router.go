package ethereum

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

// Router dispatches every call to the client connected to the requested network.
type Router struct {
	clients map[uint64]*Client
}

var (
	_ domain.ChainClient          = &Router{}
	_ orderbookdomain.OrderReader = &Router{}
)

// NewRouter returns a router over clients. A later client of the same network replaces an earlier one.
func NewRouter(clients ...*Client) *Router {
	r := &Router{clients: make(map[uint64]*Client, len(clients))}
	for _, client := range clients {
		r.clients[client.NetworkID()] = client
	}
	return r
}

// Client returns the client connected to networkID.
func (r *Router) Client(networkID uint64) (*Client, error) {
	client, ok := r.clients[networkID]
	if !ok {
		return nil, domain.UnsupportedNetworkError{NetworkID: networkID}
	}
	return client, nil
}

// SuggestGasPrice asks the node of networkID for a gas price.
// It satisfies domain.GasPriceFetcher.
func (r *Router) SuggestGasPrice(ctx context.Context, networkID uint64) (*big.Int, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return nil, err
	}
	return client.SuggestGasPrice(ctx)
}

// Close closes every client.
func (r *Router) Close() {
	for _, client := range r.clients {
		client.Close()
	}
}

// GetBatchTime implements domain.ChainReader.
func (r *Router) GetBatchTime(ctx context.Context, networkID uint64) (uint64, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return 0, err
	}
	return client.GetBatchTime(ctx, networkID)
}

// GetCurrentBatchID implements domain.ChainReader.
func (r *Router) GetCurrentBatchID(ctx context.Context, networkID uint64) (domain.BatchID, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return 0, err
	}
	return client.GetCurrentBatchID(ctx, networkID)
}

// GetSecondsRemainingInBatch implements domain.ChainReader.
func (r *Router) GetSecondsRemainingInBatch(ctx context.Context, networkID uint64) (uint64, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return 0, err
	}
	return client.GetSecondsRemainingInBatch(ctx, networkID)
}

// GetBalance implements domain.ChainReader.
func (r *Router) GetBalance(ctx context.Context, networkID uint64, owner, token common.Address) (osmomath.Int, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return osmomath.Int{}, err
	}
	return client.GetBalance(ctx, networkID, owner, token)
}

// GetPendingDeposit implements domain.ChainReader.
func (r *Router) GetPendingDeposit(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return domain.PendingFlux{}, err
	}
	return client.GetPendingDeposit(ctx, networkID, owner, token)
}

// GetPendingWithdraw implements domain.ChainReader.
func (r *Router) GetPendingWithdraw(ctx context.Context, networkID uint64, owner, token common.Address) (domain.PendingFlux, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return domain.PendingFlux{}, err
	}
	return client.GetPendingWithdraw(ctx, networkID, owner, token)
}

// Submit implements domain.ChainWriter.
func (r *Router) Submit(ctx context.Context, op domain.Operation) (*domain.PendingTx[struct{}], error) {
	client, err := r.Client(op.NetworkID)
	if err != nil {
		return nil, err
	}
	return client.Submit(ctx, op)
}

// GetOrders implements orderbookdomain.OrderReader.
func (r *Router) GetOrders(ctx context.Context, networkID uint64, owner common.Address) ([]orderbookdomain.Order, error) {
	client, err := r.Client(networkID)
	if err != nil {
		return nil, err
	}
	return client.GetOrders(ctx, networkID, owner)
}
