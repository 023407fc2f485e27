package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/osmosis-labs/tickbook/domain"
	"github.com/osmosis-labs/tickbook/middleware"
)

func TestMiddleware(t *testing.T) {
	corsConfig := &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Account-Id",
		AllowedMethods: "GET, POST",
		AllowedOrigin:  "*",
	}

	m := middleware.InitMiddleware(corsConfig)

	e := echo.New()
	e.Use(m.CORS)
	e.Use(m.InstrumentMiddleware)
	e.Use(m.TraceWithParamsMiddleware("tickbook-test"))

	var requestPath string
	e.GET("/orderbook/tick", func(c echo.Context) error {
		requestPath, _ = domain.GetURLPathFromContext(c.Request().Context())

		// a span is always started, recording or not
		span := trace.SpanFromContext(c.Request().Context())
		require.NotNil(t, span)

		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/orderbook/tick?side=base&tick_id=3", nil)
	req.Header.Set(middleware.AccountIDHeader, "osmo1alice")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/orderbook/tick", requestPath)
	require.Equal(t, corsConfig.AllowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, corsConfig.AllowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, corsConfig.AllowedHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestTraceWithParamsMiddleware(t *testing.T) {
	tests := map[string]struct {
		target  string
		handler echo.HandlerFunc

		expectedName       string
		expectedStatus     int
		expectedSpanStatus codes.Code
		expectedAttributes map[attribute.Key]string
		absentAttributes   []attribute.Key
	}{
		"order params recorded, others ignored": {
			target: "/orderbook/tick?side=base&tick_id=-4&debug=1",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			expectedName:       "/orderbook/tick",
			expectedStatus:     http.StatusOK,
			expectedSpanStatus: codes.Unset,
			expectedAttributes: map[attribute.Key]string{
				"side":       "base",
				"tick_id":    "-4",
				"account":    "osmo1alice",
				"http.route": "/orderbook/tick",
			},
			absentAttributes: []attribute.Key{"debug"},
		},
		"handler error marks span": {
			target: "/orderbook/tick?side=quote",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "ledger unavailable")
			},
			expectedName:       "/orderbook/tick",
			expectedStatus:     http.StatusServiceUnavailable,
			expectedSpanStatus: codes.Error,
			expectedAttributes: map[attribute.Key]string{
				"side": "quote",
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

			m := middleware.InitMiddleware(&domain.CORSConfig{})

			e := echo.New()
			e.Use(m.InstrumentMiddleware)
			e.Use(m.TraceWithParamsMiddleware("tickbook-test"))
			e.GET("/orderbook/tick", tc.handler)

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.Header.Set(middleware.AccountIDHeader, "osmo1alice")
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code)

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			span := spans[0]
			require.Equal(t, tc.expectedName, span.Name())
			require.Equal(t, tc.expectedSpanStatus, span.Status().Code)

			attributes := map[attribute.Key]attribute.Value{}
			for _, kv := range span.Attributes() {
				attributes[kv.Key] = kv.Value
			}

			for key, expected := range tc.expectedAttributes {
				require.Equal(t, expected, attributes[key].AsString(), key)
			}
			for _, key := range tc.absentAttributes {
				_, ok := attributes[key]
				require.False(t, ok, key)
			}
			require.Equal(t, int64(tc.expectedStatus), attributes["http.status_code"].AsInt64())
		})
	}
}

func TestRouteFromContext_Unmatched(t *testing.T) {
	m := middleware.InitMiddleware(&domain.CORSConfig{})

	e := echo.New()
	e.Use(m.InstrumentMiddleware)

	var requestPath string
	e.RouteNotFound("/*", func(c echo.Context) error {
		requestPath, _ = domain.GetURLPathFromContext(c.Request().Context())
		return c.NoContent(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/orderbook/unknown/12345", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, domain.UnmatchedRoute, requestPath)
}
