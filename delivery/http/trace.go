package http

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/batchauction/dexclient/domain"
)

// RespondWithError records err on the span of the request and writes it
// as a JSON error response with the status code mapped from err.
func RespondWithError(c echo.Context, err error) {
	statusCode := domain.GetStatusCode(err)

	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.String("http.route", domain.GetURLPathFromContext(ctx)),
	)
	if statusCode >= 500 {
		span.SetStatus(codes.Error, err.Error())
	}
	// Note: we do not end the span here as it is ended in the middleware.

	// nolint:errcheck // ignore error
	c.JSON(statusCode, domain.ResponseError{Message: err.Error()})
}
