package mocks

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	"github.com/batchauction/dexclient/orderbook/types"
)

var _ mvc.OrderBookUsecase = &OrderbookUsecaseMock{}

// OrderbookUsecaseMock is a mock implementation of the OrderBookUsecase interface
type OrderbookUsecaseMock struct {
	NetworkIDFunc           func() uint64
	PlaceOrderFunc          func(ctx context.Context, params orderbookdomain.PlaceOrderParams, opts domain.TxOptions) (*domain.PendingTx[uint32], error)
	CancelOrderFunc         func(ctx context.Context, owner common.Address, orderID uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)
	CancelOrdersFunc        func(ctx context.Context, owner common.Address, orderIDs []uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)
	AddTokenFunc            func(ctx context.Context, address common.Address, opts domain.TxOptions) (*domain.PendingTx[uint16], error)
	GetOrdersFunc           func(owner common.Address) []orderbookdomain.AuctionElement
	GetPendingOrdersFunc    func(owner common.Address) []orderbookdomain.PendingOrder
	GetTradesFunc           func(owner common.Address) []orderbookdomain.Trade
	GetClassifiedOrdersFunc func(ctx context.Context, owner common.Address, now time.Time) (types.ClassifiedOrders, error)
	InvalidateOrdersFunc    func(ctx context.Context, owner common.Address) error
	RefreshOrdersFunc       func(owner common.Address, orders []orderbookdomain.Order)
	ApplyFillFunc           func(ctx context.Context, owner common.Address, orderID uint32, sellAmount, buyAmount osmomath.Int) (orderbookdomain.Trade, error)
	GetNumTokensFunc        func() uint16
	GetTokenAddressByIDFunc func(id uint16) (common.Address, error)
	GetTokenIDByAddressFunc func(address common.Address) (uint16, error)
	GetFeeDenominatorFunc   func() uint64
}

func (m *OrderbookUsecaseMock) NetworkID() uint64 {
	if m.NetworkIDFunc != nil {
		return m.NetworkIDFunc()
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) PlaceOrder(ctx context.Context, params orderbookdomain.PlaceOrderParams, opts domain.TxOptions) (*domain.PendingTx[uint32], error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, params, opts)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) CancelOrder(ctx context.Context, owner common.Address, orderID uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	if m.CancelOrderFunc != nil {
		return m.CancelOrderFunc(ctx, owner, orderID, opts)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) CancelOrders(ctx context.Context, owner common.Address, orderIDs []uint32, opts domain.TxOptions) (*domain.PendingTx[struct{}], error) {
	if m.CancelOrdersFunc != nil {
		return m.CancelOrdersFunc(ctx, owner, orderIDs, opts)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) AddToken(ctx context.Context, address common.Address, opts domain.TxOptions) (*domain.PendingTx[uint16], error) {
	if m.AddTokenFunc != nil {
		return m.AddTokenFunc(ctx, address, opts)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetOrders(owner common.Address) []orderbookdomain.AuctionElement {
	if m.GetOrdersFunc != nil {
		return m.GetOrdersFunc(owner)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetPendingOrders(owner common.Address) []orderbookdomain.PendingOrder {
	if m.GetPendingOrdersFunc != nil {
		return m.GetPendingOrdersFunc(owner)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetTrades(owner common.Address) []orderbookdomain.Trade {
	if m.GetTradesFunc != nil {
		return m.GetTradesFunc(owner)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetClassifiedOrders(ctx context.Context, owner common.Address, now time.Time) (types.ClassifiedOrders, error) {
	if m.GetClassifiedOrdersFunc != nil {
		return m.GetClassifiedOrdersFunc(ctx, owner, now)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) InvalidateOrders(ctx context.Context, owner common.Address) error {
	if m.InvalidateOrdersFunc != nil {
		return m.InvalidateOrdersFunc(ctx, owner)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) RefreshOrders(owner common.Address, orders []orderbookdomain.Order) {
	if m.RefreshOrdersFunc != nil {
		m.RefreshOrdersFunc(owner, orders)
		return
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) ApplyFill(ctx context.Context, owner common.Address, orderID uint32, sellAmount, buyAmount osmomath.Int) (orderbookdomain.Trade, error) {
	if m.ApplyFillFunc != nil {
		return m.ApplyFillFunc(ctx, owner, orderID, sellAmount, buyAmount)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetNumTokens() uint16 {
	if m.GetNumTokensFunc != nil {
		return m.GetNumTokensFunc()
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetTokenAddressByID(id uint16) (common.Address, error) {
	if m.GetTokenAddressByIDFunc != nil {
		return m.GetTokenAddressByIDFunc(id)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetTokenIDByAddress(address common.Address) (uint16, error) {
	if m.GetTokenIDByAddressFunc != nil {
		return m.GetTokenIDByAddressFunc(address)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetFeeDenominator() uint64 {
	if m.GetFeeDenominatorFunc != nil {
		return m.GetFeeDenominatorFunc()
	}
	panic("unimplemented")
}
