package types_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/batchauction/dexclient/domain"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
	"github.com/batchauction/dexclient/orderbook/types"
)

var owner = common.HexToAddress("0x1111111111111111111111111111111111111111")

func newOrder(validUntil domain.BatchID, remaining int64) orderbookdomain.Order {
	return orderbookdomain.Order{
		BuyTokenID:       0,
		SellTokenID:      1,
		ValidFrom:        1,
		ValidUntil:       validUntil,
		PriceNumerator:   osmomath.NewInt(100),
		PriceDenominator: osmomath.NewInt(50),
		RemainingAmount:  osmomath.NewInt(remaining),
	}
}

func unlimited(order orderbookdomain.Order) orderbookdomain.Order {
	order.PriceNumerator = orderbookdomain.UnlimitedOrderAmount
	order.PriceDenominator = orderbookdomain.UnlimitedOrderAmount
	return order
}

func element(id uint32, order orderbookdomain.Order) orderbookdomain.AuctionElement {
	return orderbookdomain.AuctionElement{Owner: owner, ID: id, Order: order}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		order          orderbookdomain.Order
		currentBatchID domain.BatchID
		expected       orderbookdomain.Bucket
	}{
		{
			name:           "active",
			order:          newOrder(10, 50),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketActive,
		},
		{
			name:           "last valid batch",
			order:          newOrder(5, 50),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketActive,
		},
		{
			name:           "expired",
			order:          newOrder(4, 50),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketClosed,
		},
		{
			name:           "filled",
			order:          newOrder(10, 0),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketClosed,
		},
		{
			name:           "unlimited",
			order:          unlimited(newOrder(domain.MaxBatchID, 1)),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketLiquidity,
		},
		{
			name:           "unlimited but expired",
			order:          unlimited(newOrder(4, 1)),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketClosed,
		},
		{
			name:           "unlimited but filled",
			order:          unlimited(newOrder(domain.MaxBatchID, 0)),
			currentBatchID: 5,
			expected:       orderbookdomain.BucketClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, types.Classify(tt.order, tt.currentBatchID))
		})
	}
}

func TestClassifyPending(t *testing.T) {
	now := time.Unix(3_000, 0)

	pending := orderbookdomain.PendingOrder{
		Owner:     owner,
		Order:     newOrder(10, 50),
		ExpiresAt: now.Add(time.Second),
	}
	require.Equal(t, orderbookdomain.BucketActive, types.ClassifyPending(pending, now))

	// the batch clock is irrelevant, only the wall clock counts
	pending.ValidUntil = 0
	require.Equal(t, orderbookdomain.BucketActive, types.ClassifyPending(pending, now))

	require.Equal(t, orderbookdomain.BucketClosed, types.ClassifyPending(pending, now.Add(time.Second)))

	pending.Order = unlimited(pending.Order)
	require.Equal(t, orderbookdomain.BucketLiquidity, types.ClassifyPending(pending, now))
}

func TestClassifyOrders(t *testing.T) {
	now := time.Unix(3_000, 0)

	orders := []orderbookdomain.AuctionElement{
		element(0, newOrder(12, 50)),
		element(1, newOrder(4, 50)),
		element(2, newOrder(8, 50)),
		element(3, unlimited(newOrder(domain.MaxBatchID, 1))),
		element(4, newOrder(8, 50)),
		element(5, newOrder(20, 0)),
	}

	pendings := []orderbookdomain.PendingOrder{
		{Owner: owner, Order: newOrder(30, 10), ExpiresAt: now.Add(time.Hour)},
		{Owner: owner, Order: newOrder(9, 10), ExpiresAt: now.Add(-time.Hour)},
	}

	trades := []orderbookdomain.Trade{
		{Owner: owner, OrderID: 5, BatchID: 3, SellAmount: osmomath.NewInt(50), BuyAmount: osmomath.NewInt(100)},
		{Owner: owner, OrderID: 1, BatchID: 2, SellAmount: osmomath.NewInt(1), BuyAmount: osmomath.NewInt(2)},
	}

	classified := types.ClassifyOrders(orders, pendings, trades, now, 5)

	require.Equal(t, domain.BatchID(5), classified.CurrentBatchID)

	// every order lands in exactly one bucket
	total := len(classified.Active.Orders) + len(classified.Liquidity.Orders) + len(classified.Closed.Orders)
	require.Equal(t, len(orders), total)
	totalPending := len(classified.Active.PendingOrders) + len(classified.Liquidity.PendingOrders) + len(classified.Closed.PendingOrders)
	require.Equal(t, len(pendings), totalPending)

	// sorted ascending, ties keep input order
	require.Equal(t, []uint32{2, 4, 0}, ids(classified.Active.Orders))
	require.Equal(t, []uint32{3}, ids(classified.Liquidity.Orders))
	require.Equal(t, []uint32{1, 5}, ids(classified.Closed.Orders))

	require.Len(t, classified.Active.PendingOrders, 1)
	require.Equal(t, domain.BatchID(30), classified.Active.PendingOrders[0].ValidUntil)
	require.Len(t, classified.Closed.PendingOrders, 1)
	require.Empty(t, classified.Liquidity.PendingOrders)

	// fills are not filtered by bucket
	require.Equal(t, trades, classified.Fills)
}

func TestClassifyOrders_Empty(t *testing.T) {
	classified := types.ClassifyOrders(nil, nil, nil, time.Unix(0, 0), 0)

	for _, bucket := range []orderbookdomain.Bucket{orderbookdomain.BucketActive, orderbookdomain.BucketLiquidity, orderbookdomain.BucketClosed} {
		orders := classified.Bucket(bucket)
		require.NotNil(t, orders.Orders)
		require.NotNil(t, orders.PendingOrders)
		require.Empty(t, orders.Orders)
	}
	require.NotNil(t, classified.Fills)
}

func TestSortByValidUntil(t *testing.T) {
	orders := []orderbookdomain.AuctionElement{
		element(0, newOrder(7, 1)),
		element(1, newOrder(3, 1)),
		element(2, newOrder(7, 1)),
		element(3, newOrder(9, 1)),
	}

	types.SortByValidUntil(orders, false)
	require.Equal(t, []uint32{3, 0, 2, 1}, ids(orders))

	types.SortByValidUntil(orders, true)
	require.Equal(t, []uint32{1, 0, 2, 3}, ids(orders))
}

func TestSortPendingByValidUntil(t *testing.T) {
	pendings := []orderbookdomain.PendingOrder{
		{TxHash: common.HexToHash("0x01"), Order: newOrder(7, 1)},
		{TxHash: common.HexToHash("0x02"), Order: newOrder(3, 1)},
		{TxHash: common.HexToHash("0x03"), Order: newOrder(7, 1)},
	}

	types.SortPendingByValidUntil(pendings, true)

	require.Equal(t, common.HexToHash("0x02"), pendings[0].TxHash)
	require.Equal(t, common.HexToHash("0x01"), pendings[1].TxHash)
	require.Equal(t, common.HexToHash("0x03"), pendings[2].TxHash)
}

func ids(orders []orderbookdomain.AuctionElement) []uint32 {
	result := make([]uint32, 0, len(orders))
	for _, order := range orders {
		result = append(result, order.ID)
	}
	return result
}
