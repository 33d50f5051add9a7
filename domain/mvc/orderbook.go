package mvc

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	"github.com/batchauction/dexclient/orderbook/types"
)

// OrderBookUsecase is the order store of the exchange deployed on a single network.
type OrderBookUsecase interface {
	// NetworkID returns the network of the exchange.
	NetworkID() uint64

	// PlaceOrder appends an order to the owner's list. The result of the returned handle is the order index.
	PlaceOrder(ctx context.Context, params orderbookdomain.PlaceOrderParams, opts domain.TxOptions) (*domain.PendingTx[uint32], error)

	// CancelOrder truncates the validity of the order so that it closes at the next batch.
	// Cancelling an unknown order is a no-op.
	CancelOrder(ctx context.Context, owner common.Address, orderID uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)

	// CancelOrders cancels several orders in a single transaction.
	CancelOrders(ctx context.Context, owner common.Address, orderIDs []uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)

	// AddToken registers address for trading. The result of the returned handle is the token id.
	AddToken(ctx context.Context, address common.Address, opts domain.TxOptions) (*domain.PendingTx[uint16], error)

	// GetOrders returns the confirmed orders of owner.
	GetOrders(owner common.Address) []orderbookdomain.AuctionElement

	// GetPendingOrders returns the orders of owner submitted but not yet applied.
	GetPendingOrders(owner common.Address) []orderbookdomain.PendingOrder

	// GetTrades returns the fills of owner.
	GetTrades(owner common.Address) []orderbookdomain.Trade

	// GetClassifiedOrders buckets the confirmed and pending orders of owner at now.
	GetClassifiedOrders(ctx context.Context, owner common.Address, now time.Time) (types.ClassifiedOrders, error)

	// InvalidateOrders reloads the orders of owner from chain, recording the fills settled since the last reload.
	// It is a no-op when the store has no chain reader.
	InvalidateOrders(ctx context.Context, owner common.Address) error

	// RefreshOrders replaces the cached orders of owner with orders read from chain.
	RefreshOrders(owner common.Address, orders []orderbookdomain.Order)

	// ApplyFill reduces the remaining amount of an order as the result of a settlement.
	ApplyFill(ctx context.Context, owner common.Address, orderID uint32, sellAmount, buyAmount osmomath.Int) (orderbookdomain.Trade, error)

	// GetNumTokens returns the number of registered tokens.
	GetNumTokens() uint16

	// GetTokenAddressByID returns the address registered under id.
	GetTokenAddressByID(id uint16) (common.Address, error)

	// GetTokenIDByAddress returns the id registered for address.
	GetTokenIDByAddress(address common.Address) (uint16, error)

	// GetFeeDenominator returns the fee denominator of the exchange.
	GetFeeDenominator() uint64
}
