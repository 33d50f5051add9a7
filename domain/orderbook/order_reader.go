package orderbookdomain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// OrderReader reads the confirmed orders of an owner from the exchange contract.
type OrderReader interface {
	// GetOrders returns the orders of owner in index order.
	GetOrders(ctx context.Context, networkID uint64, owner common.Address) ([]Order, error)
}
