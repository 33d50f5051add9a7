package types

import (
	"sort"
	"time"

	"github.com/batchauction/dexclient/domain"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

// BucketOrders are the confirmed and pending orders of a single bucket.
type BucketOrders struct {
	Orders        []orderbookdomain.AuctionElement `json:"orders"`
	PendingOrders []orderbookdomain.PendingOrder   `json:"pending_orders"`
}

// ClassifiedOrders are the orders of an owner bucketed by lifecycle.
// Fills is a read-only view over trades, independent of the buckets.
type ClassifiedOrders struct {
	CurrentBatchID domain.BatchID          `json:"current_batch_id"`
	Active         BucketOrders            `json:"active"`
	Liquidity      BucketOrders            `json:"liquidity"`
	Closed         BucketOrders            `json:"closed"`
	Fills          []orderbookdomain.Trade `json:"fills"`
}

// Bucket returns the orders of bucket.
func (c *ClassifiedOrders) Bucket(bucket orderbookdomain.Bucket) *BucketOrders {
	switch bucket {
	case orderbookdomain.BucketActive:
		return &c.Active
	case orderbookdomain.BucketLiquidity:
		return &c.Liquidity
	default:
		return &c.Closed
	}
}

// Classify returns the bucket of a confirmed order at currentBatchID.
func Classify(order orderbookdomain.Order, currentBatchID domain.BatchID) orderbookdomain.Bucket {
	if !order.IsActive(currentBatchID) {
		return orderbookdomain.BucketClosed
	}
	if order.IsUnlimited() {
		return orderbookdomain.BucketLiquidity
	}
	return orderbookdomain.BucketActive
}

// ClassifyPending returns the bucket of an order that is not batched yet.
// Its activity is judged by wall clock.
func ClassifyPending(pending orderbookdomain.PendingOrder, now time.Time) orderbookdomain.Bucket {
	if !pending.IsActive(now) {
		return orderbookdomain.BucketClosed
	}
	if pending.IsUnlimited() {
		return orderbookdomain.BucketLiquidity
	}
	return orderbookdomain.BucketActive
}

// ClassifyOrders buckets orders and pendings. Each bucket is sorted by ValidUntil ascending,
// equal keys keep their input order.
func ClassifyOrders(orders []orderbookdomain.AuctionElement, pendings []orderbookdomain.PendingOrder, trades []orderbookdomain.Trade, now time.Time, currentBatchID domain.BatchID) ClassifiedOrders {
	result := ClassifiedOrders{
		CurrentBatchID: currentBatchID,
		Active:         newBucketOrders(),
		Liquidity:      newBucketOrders(),
		Closed:         newBucketOrders(),
		Fills:          []orderbookdomain.Trade{},
	}

	for _, order := range orders {
		bucket := result.Bucket(Classify(order.Order, currentBatchID))
		bucket.Orders = append(bucket.Orders, order)
	}

	for _, pending := range pendings {
		bucket := result.Bucket(ClassifyPending(pending, now))
		bucket.PendingOrders = append(bucket.PendingOrders, pending)
	}

	for _, bucket := range []*BucketOrders{&result.Active, &result.Liquidity, &result.Closed} {
		SortByValidUntil(bucket.Orders, true)
		SortPendingByValidUntil(bucket.PendingOrders, true)
	}

	result.Fills = append(result.Fills, trades...)

	return result
}

// SortByValidUntil sorts orders in place by ValidUntil. The sort is stable.
func SortByValidUntil(orders []orderbookdomain.AuctionElement, asc bool) {
	sort.SliceStable(orders, func(i, j int) bool {
		return lessValidUntil(orders[i].ValidUntil, orders[j].ValidUntil, asc)
	})
}

// SortPendingByValidUntil sorts pending orders in place by ValidUntil. The sort is stable.
func SortPendingByValidUntil(orders []orderbookdomain.PendingOrder, asc bool) {
	sort.SliceStable(orders, func(i, j int) bool {
		return lessValidUntil(orders[i].ValidUntil, orders[j].ValidUntil, asc)
	})
}

func lessValidUntil(a, b domain.BatchID, asc bool) bool {
	if asc {
		return a < b
	}
	return a > b
}

func newBucketOrders() BucketOrders {
	return BucketOrders{
		Orders:        []orderbookdomain.AuctionElement{},
		PendingOrders: []orderbookdomain.PendingOrder{},
	}
}
