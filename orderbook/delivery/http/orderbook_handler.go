package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	deliveryhttp "github.com/osmosis-labs/tickbook/delivery/http"
	"github.com/osmosis-labs/tickbook/domain"
	"github.com/osmosis-labs/tickbook/domain/mvc"
	"github.com/osmosis-labs/tickbook/log"
	"github.com/osmosis-labs/tickbook/orderbook/types"
)

// OrderbookHandler represent the httphandler for the order engine and custody
type OrderbookHandler struct {
	OUsecase mvc.OrderBookUsecase
	logger   log.Logger
}

const (
	orderbookResourcePrefix = "/orderbook"
	custodyResourcePrefix   = "/custody"
)

func formatOrderbookResource(resource string) string {
	return orderbookResourcePrefix + resource
}

func formatCustodyResource(resource string) string {
	return custodyResourcePrefix + resource
}

// NewOrderbookHandler will initialize the /orderbook and /custody resources endpoint
func NewOrderbookHandler(e *echo.Echo, us mvc.OrderBookUsecase, logger log.Logger) {
	handler := &OrderbookHandler{
		OUsecase: us,
		logger:   logger,
	}

	e.POST(formatOrderbookResource("/limit-order"), handler.LimitOrderTrade)
	e.POST(formatOrderbookResource("/spot-order"), handler.SpotOrderTrade)
	e.POST(formatOrderbookResource("/remove-order"), handler.RemoveOrder)
	e.POST(formatOrderbookResource("/claim"), handler.ClaimExecutedOrder)
	e.GET(formatOrderbookResource("/tick"), handler.GetTick)
	e.GET(formatOrderbookResource("/position"), handler.GetPosition)
	e.GET(formatOrderbookResource("/next-tick"), handler.GetNextInitializedTick)
	e.GET(formatOrderbookResource("/price"), handler.GetPrice)

	e.POST(formatCustodyResource("/deposit"), handler.Deposit)
	e.POST(formatCustodyResource("/withdraw"), handler.Withdraw)
	e.GET(formatCustodyResource("/balance"), handler.GetBalance)
}

// @Summary Place a limit order
// @Description Matches amount against the opposite side at tick_id and rests the remainder.
// @Produce  json
// @Param  X-Account-Id  header  string  true  "Caller account"
// @Success 200  {object}  orderbookdomain.TradeReceipt  "Trade receipt"
// @Router /orderbook/limit-order [post]
func (h *OrderbookHandler) LimitOrderTrade(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.OrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	receipt, err := h.OUsecase.LimitOrderTrade(ctx, req.Account, req.Side, req.TickID, req.Amount)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, receipt)
}

// @Summary Place a spot order
// @Description Matches amount against the opposite side at tick_id and refunds the remainder.
// @Produce  json
// @Param  X-Account-Id  header  string  true  "Caller account"
// @Success 200  {object}  orderbookdomain.TradeReceipt  "Trade receipt"
// @Router /orderbook/spot-order [post]
func (h *OrderbookHandler) SpotOrderTrade(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.OrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	receipt, err := h.OUsecase.SpotOrderTrade(ctx, req.Account, req.Side, req.TickID, req.Amount)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, receipt)
}

// RemoveOrder withdraws unexecuted liquidity of the caller.
func (h *OrderbookHandler) RemoveOrder(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.OrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	receipt, err := h.OUsecase.RemoveOrder(ctx, req.Account, req.Side, req.TickID, req.Amount)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, receipt)
}

// ClaimExecutedOrder settles the caller's positions on both sides of a tick.
func (h *OrderbookHandler) ClaimExecutedOrder(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.ClaimRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	receipt, err := h.OUsecase.ClaimExecutedOrder(ctx, req.Account, req.TickID)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, receipt)
}

func (h *OrderbookHandler) GetTick(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.TickRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	tick, err := h.OUsecase.GetTick(ctx, req.Side, req.TickID)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, tick)
}

func (h *OrderbookHandler) GetPosition(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.PositionRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	preview, err := h.OUsecase.GetPosition(ctx, req.Account, req.Side, req.TickID)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, preview)
}

func (h *OrderbookHandler) GetNextInitializedTick(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.NextTickRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	tickID, found, err := h.OUsecase.NextInitializedTick(ctx, req.Side, req.FromTickID, req.Ascending)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, types.NextTickResponse{TickID: tickID, Found: found})
}

func (h *OrderbookHandler) GetPrice(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.PriceRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	price, err := h.OUsecase.GetPrice(ctx, req.TickID)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, types.PriceResponse{TickID: req.TickID, Price: price})
}

func (h *OrderbookHandler) Deposit(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.CustodyRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	balance, err := h.OUsecase.Deposit(ctx, req.Account, req.Side, req.Amount)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, types.BalanceResponse{Account: req.Account, Side: req.Side, Balance: balance})
}

func (h *OrderbookHandler) Withdraw(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.CustodyRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	balance, err := h.OUsecase.Withdraw(ctx, req.Account, req.Side, req.Amount)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, types.BalanceResponse{Account: req.Account, Side: req.Side, Balance: balance})
}

func (h *OrderbookHandler) GetBalance(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.BalanceRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return h.respondError(c, span, http.StatusBadRequest, err)
	}

	balance, err := h.OUsecase.GetBalance(ctx, req.Account, req.Side)
	if err != nil {
		return h.respondError(c, span, domain.GetStatusCode(err), err)
	}

	return c.JSON(http.StatusOK, types.BalanceResponse{Account: req.Account, Side: req.Side, Balance: balance})
}

// respondError records err on the request span and writes it with the given status.
func (h *OrderbookHandler) respondError(c echo.Context, span trace.Span, status int, err error) error {
	deliveryhttp.RecordSpanError(c.Request().Context(), span, err)

	if status == http.StatusInternalServerError {
		requestPath, _ := domain.GetURLPathFromContext(c.Request().Context())
		h.logger.Error("orderbook request failed", zap.String("path", requestPath), zap.Error(err))
	}

	return c.JSON(status, domain.ResponseError{Message: err.Error()})
}
