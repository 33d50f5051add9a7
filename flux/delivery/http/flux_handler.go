package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	deliveryhttp "github.com/batchauction/dexclient/delivery/http"
	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
	"github.com/batchauction/dexclient/flux/types"
)

// FluxHandler  represent the httphandler for balances, deposits and withdraws
type FluxHandler struct {
	FUsecase mvc.FluxUsecase
}

const resourcePrefix = "/flux/:" + domain.NetworkIDParam

func formatFluxResource(resource string) string {
	return resourcePrefix + resource
}

// NewFluxHandler will initialize the /flux/:networkId resources endpoint
func NewFluxHandler(e *echo.Echo, us mvc.FluxUsecase) *FluxHandler {
	handler := &FluxHandler{
		FUsecase: us,
	}

	e.GET(formatFluxResource("/balances"), handler.GetBalanceState)
	e.POST(formatFluxResource("/deposit"), handler.Deposit)
	e.POST(formatFluxResource("/request-withdraw"), handler.RequestWithdraw)
	e.POST(formatFluxResource("/withdraw"), handler.Withdraw)

	return handler
}

// GetBalanceState returns the settled balance, the pending fluxes and their effect at the current batch.
func (a *FluxHandler) GetBalanceState(c echo.Context) (err error) {
	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	defer func() {
		if err != nil {
			span.RecordError(err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req types.GetBalanceStateRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	state, err := a.FUsecase.GetBalanceState(ctx, req.NetworkID, req.Owner, req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, state)
}

// Deposit submits a deposit.
func (a *FluxHandler) Deposit(c echo.Context) error {
	return a.submit(c, true, a.FUsecase.Deposit)
}

// RequestWithdraw submits a withdraw request.
func (a *FluxHandler) RequestWithdraw(c echo.Context) error {
	return a.submit(c, true, a.FUsecase.RequestWithdraw)
}

// Withdraw submits the finalization of a withdraw. The body amount is ignored.
func (a *FluxHandler) Withdraw(c echo.Context) error {
	return a.submit(c, false, a.FUsecase.Withdraw)
}

type submitFunc func(ctx context.Context, req domain.FluxRequest, opts domain.TxOptions) (*domain.PendingTx[struct{}], error)

func (a *FluxHandler) submit(c echo.Context, withAmount bool, submit submitFunc) (err error) {
	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	defer func() {
		if err != nil {
			span.RecordError(err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var body types.FluxRequest
	if err := deliveryhttp.ParseRequest(c, &body); err != nil {
		return err
	}

	req, err := body.Request(withAmount)
	if err != nil {
		return err
	}

	tx, err := submit(ctx, req, domain.TxOptions{})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, deliveryhttp.NewTxResponse(tx.TxHash))
}
