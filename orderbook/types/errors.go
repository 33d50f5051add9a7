package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
)

// OrderNotFoundError represents an error when an order is not found for a given owner.
type OrderNotFoundError struct {
	Owner   common.Address
	OrderID uint32
}

// Error implements the error interface.
func (e OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %d of %s not found", e.OrderID, e.Owner.Hex())
}

// InvalidFillError represents an error when a fill does not fit the remaining amount of an order.
type InvalidFillError struct {
	OrderID         uint32
	SellAmount      osmomath.Int
	RemainingAmount osmomath.Int
}

// Error implements the error interface.
func (e InvalidFillError) Error() string {
	return fmt.Sprintf("fill of %s exceeds remaining amount %s of order %d", e.SellAmount, e.RemainingAmount, e.OrderID)
}

// InvalidOrderError represents an error when the parameters of an order placement are invalid.
type InvalidOrderError struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order: %s", e.Reason)
}

func (e InvalidOrderError) Unwrap() error {
	return domain.ErrBadParamInput
}
