package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/batchauction/dexclient/domain"
	"github.com/batchauction/dexclient/domain/mvc"
)

// BatchHandler  represent the httphandler for the batch clock
type BatchHandler struct {
	BUsecase mvc.BatchUsecase
}

const resourcePrefix = "/batch"

// NewBatchHandler will initialize the /batch resources endpoint
func NewBatchHandler(e *echo.Echo, us mvc.BatchUsecase) *BatchHandler {
	handler := &BatchHandler{
		BUsecase: us,
	}

	e.GET(resourcePrefix+"/:"+domain.NetworkIDParam, handler.GetBatchState)

	return handler
}

// GetBatchState returns the batch time, the current batch id and the seconds remaining in it.
func (a *BatchHandler) GetBatchState(c echo.Context) (err error) {
	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	defer func() {
		if err != nil {
			span.RecordError(err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	networkID, err := domain.ParseNetworkIDParam(c)
	if err != nil {
		return err
	}

	state, err := a.BUsecase.GetBatchState(ctx, networkID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, state)
}
