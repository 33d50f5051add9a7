package orderbooktesting

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/batchauction/dexclient/chain/registry"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mocks"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

const (
	// DefaultNetworkID is the network the helper deploys the exchange to.
	DefaultNetworkID uint64 = 1
	// UnsupportedNetworkID has no exchange deployed.
	UnsupportedNetworkID uint64 = 42
	// DefaultBatchTime is the batch duration in seconds.
	DefaultBatchTime uint64 = 300
)

var (
	DefaultContractAddress = common.HexToAddress("0x6f400810b62df8e13fded51be75ff5393eaa841f")

	DefaultOwner = common.HexToAddress("0x1111111111111111111111111111111111111111")
	OtherOwner   = common.HexToAddress("0x2222222222222222222222222222222222222222")

	OWL  = common.HexToAddress("0x1A5F9352Af8aF974bFC03399e3767DF6370d82e4")
	WETH = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	USDC = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
)

// defaultOrder is a default order used for testing
var defaultOrder = orderbookdomain.Order{
	BuyTokenID:       0,
	SellTokenID:      1,
	ValidFrom:        5,
	ValidUntil:       15,
	PriceNumerator:   osmomath.NewInt(100),
	PriceDenominator: osmomath.NewInt(50),
	RemainingAmount:  osmomath.NewInt(50),
}

// Order is a wrapper around orderbookdomain.Order
// it wraps additional helper methods for testing
type Order struct {
	orderbookdomain.Order
}

// WithValidUntil sets the last valid batch of the order
func (o Order) WithValidUntil(validUntil domain.BatchID) Order {
	o.ValidUntil = validUntil
	return o
}

// WithRemainingAmount sets the remaining amount of the order
func (o Order) WithRemainingAmount(amount int64) Order {
	o.RemainingAmount = osmomath.NewInt(amount)
	return o
}

// Unlimited sets both price terms to the unlimited sentinel
func (o Order) Unlimited() Order {
	o.PriceNumerator = orderbookdomain.UnlimitedOrderAmount
	o.PriceDenominator = orderbookdomain.UnlimitedOrderAmount
	return o
}

// AuctionElement returns the order with its identity
func (o Order) AuctionElement(owner common.Address, id uint32) orderbookdomain.AuctionElement {
	return orderbookdomain.AuctionElement{Owner: owner, ID: id, Order: o.Order}
}

// Pending returns the order as a pending order expiring at expiresAt
func (o Order) Pending(owner common.Address, expiresAt time.Time) orderbookdomain.PendingOrder {
	return orderbookdomain.PendingOrder{Owner: owner, Order: o.Order, ExpiresAt: expiresAt}
}

// OrderbookTestHelper is a helper struct for the orderbook usecase tests
type OrderbookTestHelper struct {
	suite.Suite

	currentBatchID atomic.Uint32

	Contracts    *registry.ContractRegistry
	BatchUsecase *mocks.BatchUsecaseMock
}

// SetupTest deploys the exchange to DefaultNetworkID and starts the clock at batch 5.
func (s *OrderbookTestHelper) SetupTest() {
	s.Contracts = registry.New(map[uint64]common.Address{
		DefaultNetworkID: DefaultContractAddress,
	})

	s.currentBatchID.Store(5)

	s.BatchUsecase = &mocks.BatchUsecaseMock{
		GetBatchTimeFunc: func(ctx context.Context, networkID uint64) (uint64, error) {
			return DefaultBatchTime, nil
		},
		GetCurrentBatchIDFunc: func(ctx context.Context, networkID uint64) (domain.BatchID, error) {
			return s.CurrentBatchID(), nil
		},
	}
}

// NewOrder creates a new order based on the defaultOrder.
func (s *OrderbookTestHelper) NewOrder() Order {
	return Order{defaultOrder}
}

// SetCurrentBatchID moves the clock of the batch usecase mock.
func (s *OrderbookTestHelper) SetCurrentBatchID(batchID domain.BatchID) {
	s.currentBatchID.Store(uint32(batchID))
}

// CurrentBatchID returns the batch reported by the batch usecase mock.
func (s *OrderbookTestHelper) CurrentBatchID() domain.BatchID {
	return domain.BatchID(s.currentBatchID.Load())
}

// PlaceOrderParams returns placement parameters selling sellAmount of token 1 for buyAmount of token 0.
func (s *OrderbookTestHelper) PlaceOrderParams(owner common.Address, buyAmount, sellAmount int64, validUntil domain.BatchID) orderbookdomain.PlaceOrderParams {
	return orderbookdomain.PlaceOrderParams{
		Owner:       owner,
		BuyTokenID:  0,
		SellTokenID: 1,
		BuyAmount:   osmomath.NewInt(buyAmount),
		SellAmount:  osmomath.NewInt(sellAmount),
		ValidUntil:  validUntil,
	}
}

// Wait waits for tx to be final and requires it succeeded.
func Wait[T any](s *OrderbookTestHelper, tx *domain.PendingTx[T]) T {
	s.T().Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, receipt, err := tx.Wait(ctx)
	s.Require().NoError(err)
	s.Require().Equal(domain.ReceiptStatusSuccessful, receipt.Status)
	s.Require().Equal(tx.TxHash, receipt.TxHash)
	return result
}
