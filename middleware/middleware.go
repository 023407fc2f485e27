package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/osmosis-labs/tickbook/domain"
)

// AccountIDHeader carries the caller account identity supplied by the host.
const AccountIDHeader = "X-Account-Id"

// Query parameters copied onto the request span. Anything else is ignored.
var tracedQueryParams = []string{"side", "tick_id", "from", "ascending"}

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	corsConfig domain.CORSConfig
}

var (
	// tickbook_requests_total
	//
	// counter of handled requests
	//
	// Has the following labels:
	// * method - the HTTP method
	// * route - the matched route template, e.g. /orderbook/limit-order
	// * status - the response status code
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickbook_requests_total",
			Help: "Total number of handled requests by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// tickbook_request_duration_seconds
	//
	// histogram of request latencies per route
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tickbook_request_duration_seconds",
			Help:    "Histogram of request latencies by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestLatency)
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set("Access-Control-Allow-Origin", m.corsConfig.AllowedOrigin)
		header.Set("Access-Control-Allow-Headers", m.corsConfig.AllowedHeaders)
		header.Set("Access-Control-Allow-Methods", m.corsConfig.AllowedMethods)
		return next(c)
	}
}

// InitMiddleware initialize the middleware
func InitMiddleware(corsConfig *domain.CORSConfig) *GoMiddleware {
	return &GoMiddleware{
		corsConfig: *corsConfig,
	}
}

// InstrumentMiddleware counts requests and observes their latency per matched route.
// The route is also stored in the request context for handler logs.
func (m *GoMiddleware) InstrumentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		method := c.Request().Method
		route := domain.RouteFromContext(c)

		ctx := context.WithValue(c.Request().Context(), domain.RequestPathCtxKey, route)
		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)

		requestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).Inc()

		return err
	}
}

// TraceWithParamsMiddleware starts a server span per request, named after the matched route.
// The caller account and the order parameters of the query are recorded as attributes.
func (m *GoMiddleware) TraceWithParamsMiddleware(tracerName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tracer := otel.Tracer(tracerName)

			parentCtx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))

			route := domain.RouteFromContext(c)
			ctx, span := tracer.Start(parentCtx, route, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.route", route),
			)
			if account := c.Request().Header.Get(AccountIDHeader); account != "" {
				span.SetAttributes(attribute.String("account", account))
			}
			for _, key := range tracedQueryParams {
				if value := c.QueryParam(key); value != "" {
					span.SetAttributes(attribute.String(key, value))
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			status := responseStatus(c, err)
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			return err
		}
	}
}

// responseStatus returns the status the request is answered with. A returned error
// is rendered by echo after the middleware chain, so its code is taken from err.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
