package orderbookdomain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
)

// FeeDenominator is the denominator of the fee charged on every trade (0.1%).
const FeeDenominator uint64 = 1000

// UnlimitedOrderAmount is the sentinel price term (2^128 - 1) marking an order
// as unlimited. Such orders provide standing liquidity.
var UnlimitedOrderAmount = osmomath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// Bucket is the lifecycle bucket an order is displayed in.
type Bucket string

const (
	BucketActive    Bucket = "active"
	BucketLiquidity Bucket = "liquidity"
	BucketClosed    Bucket = "closed"
)

// Order represents an order of the batch exchange contract.
type Order struct {
	BuyTokenID  uint16         `json:"buy_token_id"`
	SellTokenID uint16         `json:"sell_token_id"`
	ValidFrom   domain.BatchID `json:"valid_from"`
	ValidUntil  domain.BatchID `json:"valid_until"`
	// @Type string
	PriceNumerator osmomath.Int `json:"price_numerator"`
	// @Type string
	PriceDenominator osmomath.Int `json:"price_denominator"`
	// @Type string
	RemainingAmount osmomath.Int `json:"remaining_amount"`
}

// IsUnlimited returns true if both price terms carry the unlimited sentinel.
func (o Order) IsUnlimited() bool {
	if o.PriceNumerator.IsNil() || o.PriceDenominator.IsNil() {
		return false
	}
	return o.PriceNumerator.GTE(UnlimitedOrderAmount) && o.PriceDenominator.GTE(UnlimitedOrderAmount)
}

// NeverExpires returns true if the order is valid until the last possible batch.
func (o Order) NeverExpires() bool {
	return o.ValidUntil == domain.MaxBatchID
}

// IsFilled returns true if nothing is left to sell.
func (o Order) IsFilled() bool {
	return o.RemainingAmount.IsNil() || !o.RemainingAmount.IsPositive()
}

// IsActive returns true if the order can still trade at currentBatchID.
// Orders whose validity window elapsed or that have nothing left to sell are closed.
func (o Order) IsActive(currentBatchID domain.BatchID) bool {
	return o.ValidUntil >= currentBatchID && !o.IsFilled()
}

// AuctionElement is an order together with its identity, as read from the contract.
type AuctionElement struct {
	Owner common.Address `json:"owner"`
	// ID is the index of the order in the owner's order list.
	ID uint32 `json:"id"`
	Order
}

// PendingOrder is an order whose placement was submitted but not yet mined.
type PendingOrder struct {
	Owner  common.Address `json:"owner"`
	TxHash common.Hash    `json:"tx_hash"`
	Order
	// ExpiresAt is the wall clock end of the order validity.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsActive returns true if the pending order has not expired at now.
func (p PendingOrder) IsActive(now time.Time) bool {
	return now.Before(p.ExpiresAt) && !p.IsFilled()
}

// Trade is a fill of an order executed by the settlement of a batch.
type Trade struct {
	Owner       common.Address `json:"owner"`
	OrderID     uint32         `json:"order_id"`
	BatchID     domain.BatchID `json:"batch_id"`
	BuyTokenID  uint16         `json:"buy_token_id"`
	SellTokenID uint16         `json:"sell_token_id"`
	// @Type string
	SellAmount osmomath.Int `json:"sell_amount"`
	// @Type string
	BuyAmount osmomath.Int `json:"buy_amount"`
	Timestamp time.Time    `json:"timestamp"`
}

// PlaceOrderParams are the parameters of an order placement.
type PlaceOrderParams struct {
	Owner       common.Address
	BuyTokenID  uint16
	SellTokenID uint16
	// @Type string
	BuyAmount osmomath.Int
	// @Type string
	SellAmount osmomath.Int
	ValidUntil domain.BatchID
}
