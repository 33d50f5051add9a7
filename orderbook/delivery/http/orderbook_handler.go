package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/batchauction/dexclient/delivery/http"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/log"
	"github.com/batchauction/dexclient/orderbook/types"
)

// OrderbookHandler  represent the httphandler for the order stores
type OrderbookHandler struct {
	OUsecases map[uint64]mvc.OrderBookUsecase

	now    domain.TimeSource
	logger log.Logger
}

const resourcePrefix = "/orderbook/:" + domain.NetworkIDParam

func formatOrderbookResource(resource string) string {
	return resourcePrefix + resource
}

// NewOrderbookHandler will initialize the /orderbook/:networkId resources endpoint
func NewOrderbookHandler(e *echo.Echo, us []mvc.OrderBookUsecase, logger log.Logger) *OrderbookHandler {
	handler := &OrderbookHandler{
		OUsecases: make(map[uint64]mvc.OrderBookUsecase, len(us)),
		now:       time.Now,
		logger:    logger,
	}
	for _, u := range us {
		handler.OUsecases[u.NetworkID()] = u
	}

	e.GET(formatOrderbookResource("/orders"), handler.GetOrders)
	e.POST(formatOrderbookResource("/orders"), handler.PlaceOrder)
	e.DELETE(formatOrderbookResource("/orders"), handler.CancelOrders)
	e.GET(formatOrderbookResource("/trades"), handler.GetTrades)
	e.GET(formatOrderbookResource("/tokens"), handler.GetTokens)
	e.POST(formatOrderbookResource("/tokens"), handler.AddToken)

	return handler
}

func (a *OrderbookHandler) usecase(networkID uint64) (mvc.OrderBookUsecase, error) {
	u, ok := a.OUsecases[networkID]
	if !ok {
		return nil, domain.UnsupportedNetworkError{NetworkID: networkID}
	}
	return u, nil
}

// GetOrders returns the orders of an owner bucketed into active, liquidity and closed, together with the fills.
// With refresh=true the orders are reloaded from chain first.
func (a *OrderbookHandler) GetOrders(c echo.Context) (err error) {
	defer func() {
		if err != nil {
			deliveryhttp.RespondWithError(c, err)
		}
	}()

	var req types.GetOrdersRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	u, err := a.usecase(req.NetworkID)
	if err != nil {
		return err
	}

	if req.Refresh {
		if err := u.InvalidateOrders(c.Request().Context(), req.Owner); err != nil {
			return err
		}
	}

	classified, err := u.GetClassifiedOrders(c.Request().Context(), req.Owner, a.now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, classified)
}

// GetTrades returns the fills of an owner.
func (a *OrderbookHandler) GetTrades(c echo.Context) (err error) {
	defer func() {
		if err != nil {
			deliveryhttp.RespondWithError(c, err)
		}
	}()

	var req types.GetOrdersRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	u, err := a.usecase(req.NetworkID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewGetTradesResponse(u.GetTrades(req.Owner)))
}

// PlaceOrder submits an order placement. It responds as soon as the transaction is sent.
func (a *OrderbookHandler) PlaceOrder(c echo.Context) (err error) {
	defer func() {
		if err != nil {
			deliveryhttp.RespondWithError(c, err)
		}
	}()

	var req types.PlaceOrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	u, err := a.usecase(req.NetworkID)
	if err != nil {
		return err
	}

	params, err := req.Params()
	if err != nil {
		return err
	}

	tx, err := u.PlaceOrder(c.Request().Context(), params, domain.TxOptions{})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, deliveryhttp.NewTxResponse(tx.TxHash))
}

// CancelOrders submits the cancellation of orders of an owner.
func (a *OrderbookHandler) CancelOrders(c echo.Context) (err error) {
	defer func() {
		if err != nil {
			deliveryhttp.RespondWithError(c, err)
		}
	}()

	var req types.CancelOrdersRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	u, err := a.usecase(req.NetworkID)
	if err != nil {
		return err
	}

	tx, err := u.CancelOrders(c.Request().Context(), req.Owner, req.OrderIDs, domain.TxOptions{})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, deliveryhttp.NewTxResponse(tx.TxHash))
}

// GetTokens returns the tokens registered on the exchange in id order.
func (a *OrderbookHandler) GetTokens(c echo.Context) (err error) {
	defer func() {
		if err != nil {
			deliveryhttp.RespondWithError(c, err)
		}
	}()

	networkID, err := domain.ParseNetworkIDParam(c)
	if err != nil {
		return err
	}

	u, err := a.usecase(networkID)
	if err != nil {
		return err
	}

	numTokens := u.GetNumTokens()
	resp := types.GetRegisteredTokensResponse{
		Tokens:         make([]types.RegisteredToken, 0, numTokens),
		FeeDenominator: u.GetFeeDenominator(),
	}
	for id := uint16(0); id < numTokens; id++ {
		address, err := u.GetTokenAddressByID(id)
		if err != nil {
			return err
		}
		resp.Tokens = append(resp.Tokens, types.RegisteredToken{ID: id, Address: address.Hex()})
	}

	return c.JSON(http.StatusOK, resp)
}

// AddToken submits the registration of a token.
func (a *OrderbookHandler) AddToken(c echo.Context) (err error) {
	defer func() {
		if err != nil {
			deliveryhttp.RespondWithError(c, err)
		}
	}()

	var req types.AddTokenRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	u, err := a.usecase(req.NetworkID)
	if err != nil {
		return err
	}

	address, err := domain.ParseAddress(req.Address)
	if err != nil {
		return err
	}

	tx, err := u.AddToken(c.Request().Context(), address, domain.TxOptions{})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, deliveryhttp.NewTxResponse(tx.TxHash))
}
