package orderbookdomain

import "github.com/ethereum/go-ethereum/common"

// OrdersRepository holds the orders of every owner.
// Indices are never reused: orders are only ever appended or updated in place.
type OrdersRepository interface {
	// GetOrders returns a copy of the orders of owner in index order.
	GetOrders(owner common.Address) []Order

	// GetOrder returns the order of owner at id.
	// Returns false if the order is not found.
	GetOrder(owner common.Address, id uint32) (Order, bool)

	// AppendOrder appends order to the list of owner and returns its index.
	AppendOrder(owner common.Address, order Order) uint32

	// UpdateOrder replaces the order of owner at id.
	// Returns false if the order is not found.
	UpdateOrder(owner common.Address, id uint32, order Order) bool

	// StoreOrders replaces the whole list of owner.
	StoreOrders(owner common.Address, orders []Order)

	// AppendTrade records a fill of one of the owner's orders.
	AppendTrade(owner common.Address, trade Trade)

	// GetTrades returns the fills of owner in execution order.
	GetTrades(owner common.Address) []Trade
}
