package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/json"
)

// GetBalanceStateRequest represents the request of the balances endpoint.
// Unset owner or token yield zero balances, as with every read.
type GetBalanceStateRequest struct {
	NetworkID uint64
	Owner     common.Address
	Token     common.Address
}

// UnmarshalHTTPRequest unmarshals the HTTP request to GetBalanceStateRequest.
func (r *GetBalanceStateRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.NetworkID, err = domain.ParseNetworkIDParam(c); err != nil {
		return err
	}
	if r.Owner, err = domain.ParseAddress(c.QueryParam("owner")); err != nil {
		return err
	}
	r.Token, err = domain.ParseAddress(c.QueryParam("token"))
	return err
}

// FluxRequest represents the body of a deposit or withdraw.
type FluxRequest struct {
	NetworkID uint64 `json:"-"`

	Owner string `json:"owner"`
	Token string `json:"token"`
	// Amount is ignored by withdraw.
	Amount string `json:"amount,omitempty"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to FluxRequest.
func (r *FluxRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	if r.NetworkID, err = domain.ParseNetworkIDParam(c); err != nil {
		return err
	}
	if err := json.NewDecoder(c.Request().Body).Decode(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}
	return nil
}

// Request converts the body to a flux request. The amount is parsed only if withAmount is set.
func (r *FluxRequest) Request(withAmount bool) (domain.FluxRequest, error) {
	owner, err := domain.ParseAddress(r.Owner)
	if err != nil {
		return domain.FluxRequest{}, err
	}

	token, err := domain.ParseAddress(r.Token)
	if err != nil {
		return domain.FluxRequest{}, err
	}

	amount := osmomath.ZeroInt()
	if withAmount {
		if amount, err = domain.ParseAmount(r.Amount); err != nil {
			return domain.FluxRequest{}, err
		}
	}

	return domain.FluxRequest{
		NetworkID: r.NetworkID,
		Owner:     owner,
		Token:     token,
		Amount:    amount,
	}, nil
}
