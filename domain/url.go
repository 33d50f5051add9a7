package domain

import (
	"context"
	"net/url"

	"github.com/labstack/echo/v4"
)

// RequestPathKeyType is a custom type for request path key.
type RequestPathKeyType string

const (
	// RequestPathCtxKey is the key used to store the request path in the request context
	RequestPathCtxKey RequestPathKeyType = "request_path"

	unknownRequestPath = "unknown"
)

// ParseURLPath returns the route template matched by the request, such as /orderbook/:networkId/orders.
// Path parameters carry network ids and owners, so the raw path is only used when no route matched.
func ParseURLPath(c echo.Context) (string, error) {
	if routePath := c.Path(); routePath != "" {
		return routePath, nil
	}

	parsedURL, err := url.Parse(c.Request().RequestURI)
	if err != nil {
		return "", err
	}

	return parsedURL.Path, nil
}

// GetURLPathFromContext returns the request path stored in ctx by the instrumentation middleware.
func GetURLPathFromContext(ctx context.Context) string {
	requestPath, ok := ctx.Value(RequestPathCtxKey).(string)
	if !ok || len(requestPath) == 0 {
		return unknownRequestPath
	}
	return requestPath
}
