package domain

import (
	"context"

	"github.com/labstack/echo/v4"
)

// RequestPathKeyType is a custom type for request path key.
type RequestPathKeyType string

const (
	// RequestPathCtxKey is the key used to store the matched route in the request context
	RequestPathCtxKey RequestPathKeyType = "request_path"

	// UnmatchedRoute labels requests that did not match any registered route.
	UnmatchedRoute = "unmatched"
)

// RouteFromContext returns the registered route template the request matched,
// e.g. /orderbook/tick. Raw URLs are never used so that metric labels stay bounded.
func RouteFromContext(c echo.Context) string {
	route := c.Path()
	if route == "" || route == "/*" {
		return UnmatchedRoute
	}
	return route
}

// GetURLPathFromContext returns the request path from the context
func GetURLPathFromContext(ctx context.Context) (string, error) {
	// Get request path for metrics
	requestPath, ok := ctx.Value(RequestPathCtxKey).(string)
	if !ok || (ok && len(requestPath) == 0) {
		requestPath = "unknown"
	}
	return requestPath, nil
}
