package orderbookrepository

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

type orderbookRepositoryImpl struct {
	ordersByOwnerLock sync.RWMutex
	ordersByOwner     map[common.Address][]orderbookdomain.Order

	tradesByOwnerLock sync.RWMutex
	tradesByOwner     map[common.Address][]orderbookdomain.Trade
}

var _ orderbookdomain.OrdersRepository = &orderbookRepositoryImpl{}

// New creates an empty orders repository. Entries are never pruned.
func New() *orderbookRepositoryImpl {
	return &orderbookRepositoryImpl{
		ordersByOwner:     map[common.Address][]orderbookdomain.Order{},
		ordersByOwnerLock: sync.RWMutex{},

		tradesByOwner:     map[common.Address][]orderbookdomain.Trade{},
		tradesByOwnerLock: sync.RWMutex{},
	}
}

// GetOrders implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) GetOrders(owner common.Address) []orderbookdomain.Order {
	o.ordersByOwnerLock.RLock()
	defer o.ordersByOwnerLock.RUnlock()

	orders := o.ordersByOwner[owner]
	result := make([]orderbookdomain.Order, len(orders))
	copy(result, orders)
	return result
}

// GetOrder implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) GetOrder(owner common.Address, id uint32) (orderbookdomain.Order, bool) {
	o.ordersByOwnerLock.RLock()
	defer o.ordersByOwnerLock.RUnlock()

	orders := o.ordersByOwner[owner]
	if uint64(id) >= uint64(len(orders)) {
		return orderbookdomain.Order{}, false
	}
	return orders[id], true
}

// AppendOrder implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) AppendOrder(owner common.Address, order orderbookdomain.Order) uint32 {
	o.ordersByOwnerLock.Lock()
	defer o.ordersByOwnerLock.Unlock()

	orders := o.ordersByOwner[owner]
	o.ordersByOwner[owner] = append(orders, order)
	return uint32(len(orders))
}

// UpdateOrder implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) UpdateOrder(owner common.Address, id uint32, order orderbookdomain.Order) bool {
	o.ordersByOwnerLock.Lock()
	defer o.ordersByOwnerLock.Unlock()

	orders := o.ordersByOwner[owner]
	if uint64(id) >= uint64(len(orders)) {
		return false
	}
	orders[id] = order
	return true
}

// StoreOrders implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) StoreOrders(owner common.Address, orders []orderbookdomain.Order) {
	stored := make([]orderbookdomain.Order, len(orders))
	copy(stored, orders)

	o.ordersByOwnerLock.Lock()
	o.ordersByOwner[owner] = stored
	o.ordersByOwnerLock.Unlock()
}

// AppendTrade implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) AppendTrade(owner common.Address, trade orderbookdomain.Trade) {
	o.tradesByOwnerLock.Lock()
	defer o.tradesByOwnerLock.Unlock()

	o.tradesByOwner[owner] = append(o.tradesByOwner[owner], trade)
}

// GetTrades implements orderbookdomain.OrdersRepository.
func (o *orderbookRepositoryImpl) GetTrades(owner common.Address) []orderbookdomain.Trade {
	o.tradesByOwnerLock.RLock()
	defer o.tradesByOwnerLock.RUnlock()

	trades := o.tradesByOwner[owner]
	result := make([]orderbookdomain.Trade, len(trades))
	copy(result, trades)
	return result
}
