package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/json"
	orderbookdomain "github.com/batchauction/dexclient/domain/orderbook"
)

// ErrOwnerRequired is returned when a request does not carry an owner address.
var ErrOwnerRequired = fmt.Errorf("%w: owner is required", domain.ErrBadParamInput)

// GetOrdersRequest represents the request for the orders and trades endpoints of an owner.
type GetOrdersRequest struct {
	NetworkID uint64
	Owner     common.Address
	// Refresh reloads the orders from chain before answering.
	Refresh bool
}

// UnmarshalHTTPRequest unmarshals the HTTP request to GetOrdersRequest.
func (r *GetOrdersRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.NetworkID, err = domain.ParseNetworkIDParam(c); err != nil {
		return err
	}
	if r.Refresh, err = domain.ParseBooleanQueryParam(c, "refresh"); err != nil {
		return fmt.Errorf("%w: refresh: %v", domain.ErrBadParamInput, err)
	}
	r.Owner, err = domain.ParseAddress(c.QueryParam("owner"))
	return err
}

// Validate validates the GetOrdersRequest.
func (r *GetOrdersRequest) Validate() error {
	if r.Owner == (common.Address{}) {
		return ErrOwnerRequired
	}
	return nil
}

// PlaceOrderRequest represents the body of an order placement.
type PlaceOrderRequest struct {
	NetworkID uint64 `json:"-"`

	Owner       string         `json:"owner"`
	BuyTokenID  uint16         `json:"buy_token_id"`
	SellTokenID uint16         `json:"sell_token_id"`
	BuyAmount   string         `json:"buy_amount"`
	SellAmount  string         `json:"sell_amount"`
	ValidUntil  domain.BatchID `json:"valid_until"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to PlaceOrderRequest.
func (r *PlaceOrderRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.NetworkID, err = domain.ParseNetworkIDParam(c); err != nil {
		return err
	}
	if err := json.NewDecoder(c.Request().Body).Decode(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}
	return nil
}

// Validate validates the PlaceOrderRequest.
func (r *PlaceOrderRequest) Validate() error {
	_, err := r.Params()
	return err
}

// Params converts the request to order placement parameters.
func (r *PlaceOrderRequest) Params() (orderbookdomain.PlaceOrderParams, error) {
	owner, err := domain.ParseAddress(r.Owner)
	if err != nil {
		return orderbookdomain.PlaceOrderParams{}, err
	}
	if owner == (common.Address{}) {
		return orderbookdomain.PlaceOrderParams{}, ErrOwnerRequired
	}

	buyAmount, err := domain.ParseAmount(r.BuyAmount)
	if err != nil {
		return orderbookdomain.PlaceOrderParams{}, err
	}

	sellAmount, err := domain.ParseAmount(r.SellAmount)
	if err != nil {
		return orderbookdomain.PlaceOrderParams{}, err
	}

	return orderbookdomain.PlaceOrderParams{
		Owner:       owner,
		BuyTokenID:  r.BuyTokenID,
		SellTokenID: r.SellTokenID,
		BuyAmount:   buyAmount,
		SellAmount:  sellAmount,
		ValidUntil:  r.ValidUntil,
	}, nil
}

// CancelOrdersRequest represents the request cancelling orders of an owner.
type CancelOrdersRequest struct {
	NetworkID uint64
	Owner     common.Address
	OrderIDs  []uint32
}

// UnmarshalHTTPRequest unmarshals the HTTP request to CancelOrdersRequest.
func (r *CancelOrdersRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.NetworkID, err = domain.ParseNetworkIDParam(c); err != nil {
		return err
	}
	if r.Owner, err = domain.ParseAddress(c.QueryParam("owner")); err != nil {
		return err
	}

	ids, err := domain.ParseNumbers(c.QueryParam("ids"))
	if err != nil {
		return fmt.Errorf("%w: ids: %v", domain.ErrBadParamInput, err)
	}

	r.OrderIDs = make([]uint32, 0, len(ids))
	for _, id := range ids {
		if id > uint64(^uint32(0)) {
			return fmt.Errorf("%w: order id (%d) out of range", domain.ErrBadParamInput, id)
		}
		r.OrderIDs = append(r.OrderIDs, uint32(id))
	}
	return nil
}

// Validate validates the CancelOrdersRequest.
func (r *CancelOrdersRequest) Validate() error {
	if r.Owner == (common.Address{}) {
		return ErrOwnerRequired
	}
	if len(r.OrderIDs) == 0 {
		return fmt.Errorf("%w: ids are required", domain.ErrBadParamInput)
	}
	return nil
}

// AddTokenRequest represents the body of a token registration.
type AddTokenRequest struct {
	NetworkID uint64 `json:"-"`

	Address string `json:"address"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to AddTokenRequest.
func (r *AddTokenRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.NetworkID, err = domain.ParseNetworkIDParam(c); err != nil {
		return err
	}
	if err := json.NewDecoder(c.Request().Body).Decode(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}
	return nil
}

// Validate validates the AddTokenRequest.
func (r *AddTokenRequest) Validate() error {
	address, err := domain.ParseAddress(r.Address)
	if err != nil {
		return err
	}
	if address == (common.Address{}) {
		return fmt.Errorf("%w: address is required", domain.ErrBadParamInput)
	}
	return nil
}

// RegisteredToken is a token registered on the exchange.
type RegisteredToken struct {
	ID      uint16 `json:"id"`
	Address string `json:"address"`
}

// GetTradesResponse represents the response of the trades endpoint.
type GetTradesResponse struct {
	Trades []orderbookdomain.Trade `json:"trades"`
}

// NewGetTradesResponse creates a new GetTradesResponse.
func NewGetTradesResponse(trades []orderbookdomain.Trade) *GetTradesResponse {
	// make a trades object in response empty array if there are no trades
	// instead of null
	if len(trades) == 0 {
		trades = []orderbookdomain.Trade{}
	}
	return &GetTradesResponse{Trades: trades}
}

// GetRegisteredTokensResponse represents the response of the registered tokens endpoint.
type GetRegisteredTokensResponse struct {
	Tokens         []RegisteredToken `json:"tokens"`
	FeeDenominator uint64            `json:"fee_denominator"`
}
