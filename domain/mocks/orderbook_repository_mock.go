package mocks

import (
	"github.com/ethereum/go-ethereum/common"

	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

var _ orderbookdomain.OrdersRepository = &OrdersRepositoryMock{}

// OrdersRepositoryMock is a mock implementation of the OrdersRepository interface.
type OrdersRepositoryMock struct {
	GetOrdersFunc   func(owner common.Address) []orderbookdomain.Order
	GetOrderFunc    func(owner common.Address, id uint32) (orderbookdomain.Order, bool)
	AppendOrderFunc func(owner common.Address, order orderbookdomain.Order) uint32
	UpdateOrderFunc func(owner common.Address, id uint32, order orderbookdomain.Order) bool
	StoreOrdersFunc func(owner common.Address, orders []orderbookdomain.Order)
	AppendTradeFunc func(owner common.Address, trade orderbookdomain.Trade)
	GetTradesFunc   func(owner common.Address) []orderbookdomain.Trade
}

// WithGetOrdersFunc configures the mock to return orders for every owner.
func (m *OrdersRepositoryMock) WithGetOrdersFunc(orders []orderbookdomain.Order) {
	m.GetOrdersFunc = func(owner common.Address) []orderbookdomain.Order {
		return orders
	}
}

// GetOrders implements OrdersRepository.
func (m *OrdersRepositoryMock) GetOrders(owner common.Address) []orderbookdomain.Order {
	if m.GetOrdersFunc != nil {
		return m.GetOrdersFunc(owner)
	}
	panic("GetOrders not implemented")
}

// GetOrder implements OrdersRepository.
func (m *OrdersRepositoryMock) GetOrder(owner common.Address, id uint32) (orderbookdomain.Order, bool) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(owner, id)
	}
	panic("GetOrder not implemented")
}

// AppendOrder implements OrdersRepository.
func (m *OrdersRepositoryMock) AppendOrder(owner common.Address, order orderbookdomain.Order) uint32 {
	if m.AppendOrderFunc != nil {
		return m.AppendOrderFunc(owner, order)
	}
	panic("AppendOrder not implemented")
}

// UpdateOrder implements OrdersRepository.
func (m *OrdersRepositoryMock) UpdateOrder(owner common.Address, id uint32, order orderbookdomain.Order) bool {
	if m.UpdateOrderFunc != nil {
		return m.UpdateOrderFunc(owner, id, order)
	}
	panic("UpdateOrder not implemented")
}

// StoreOrders implements OrdersRepository.
func (m *OrdersRepositoryMock) StoreOrders(owner common.Address, orders []orderbookdomain.Order) {
	if m.StoreOrdersFunc != nil {
		m.StoreOrdersFunc(owner, orders)
		return
	}
	panic("StoreOrders not implemented")
}

// AppendTrade implements OrdersRepository.
func (m *OrdersRepositoryMock) AppendTrade(owner common.Address, trade orderbookdomain.Trade) {
	if m.AppendTradeFunc != nil {
		m.AppendTradeFunc(owner, trade)
		return
	}
	panic("AppendTrade not implemented")
}

// GetTrades implements OrdersRepository.
func (m *OrdersRepositoryMock) GetTrades(owner common.Address) []orderbookdomain.Trade {
	if m.GetTradesFunc != nil {
		return m.GetTradesFunc(owner)
	}
	panic("GetTrades not implemented")
}
