package types

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
	"github.com/osmosis-labs/tickbook/middleware"
)

// OrderRequest represents the body of the limit order, spot order and remove order endpoints.
type OrderRequest struct {
	Account string
	Side    orderbookdomain.Side
	TickID  int64
	Amount  osmomath.BigDec
}

type orderRequestBody struct {
	Side   string `json:"side"`
	TickID int64  `json:"tick_id"`
	Amount string `json:"amount"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to OrderRequest.
func (r *OrderRequest) UnmarshalHTTPRequest(c echo.Context) error {
	var body orderRequestBody
	if err := c.Bind(&body); err != nil {
		return err
	}

	side, err := orderbookdomain.ParseSide(body.Side)
	if err != nil {
		return err
	}

	amount, err := parseAmount("amount", body.Amount)
	if err != nil {
		return err
	}

	r.Account = c.Request().Header.Get(middleware.AccountIDHeader)
	r.Side = side
	r.TickID = body.TickID
	r.Amount = amount

	return nil
}

// Validate validates the OrderRequest.
func (r *OrderRequest) Validate() error {
	if r.Account == "" {
		return MissingAccountError{Header: middleware.AccountIDHeader}
	}
	if !r.Amount.IsPositive() {
		return orderbookdomain.NonPositiveAmountError{Amount: r.Amount}
	}
	return nil
}

// ClaimRequest represents the body of the claim endpoint.
type ClaimRequest struct {
	Account string
	TickID  int64
}

// UnmarshalHTTPRequest unmarshals the HTTP request to ClaimRequest.
func (r *ClaimRequest) UnmarshalHTTPRequest(c echo.Context) error {
	var body struct {
		TickID int64 `json:"tick_id"`
	}
	if err := c.Bind(&body); err != nil {
		return err
	}

	r.Account = c.Request().Header.Get(middleware.AccountIDHeader)
	r.TickID = body.TickID

	return nil
}

// Validate validates the ClaimRequest.
func (r *ClaimRequest) Validate() error {
	if r.Account == "" {
		return MissingAccountError{Header: middleware.AccountIDHeader}
	}
	return nil
}

// CustodyRequest represents the body of the deposit and withdraw endpoints.
type CustodyRequest struct {
	Account string
	Side    orderbookdomain.Side
	Amount  osmomath.BigDec
}

// UnmarshalHTTPRequest unmarshals the HTTP request to CustodyRequest.
func (r *CustodyRequest) UnmarshalHTTPRequest(c echo.Context) error {
	var body struct {
		Side   string `json:"side"`
		Amount string `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return err
	}

	side, err := orderbookdomain.ParseSide(body.Side)
	if err != nil {
		return err
	}

	amount, err := parseAmount("amount", body.Amount)
	if err != nil {
		return err
	}

	r.Account = c.Request().Header.Get(middleware.AccountIDHeader)
	r.Side = side
	r.Amount = amount

	return nil
}

// Validate validates the CustodyRequest.
func (r *CustodyRequest) Validate() error {
	if r.Account == "" {
		return MissingAccountError{Header: middleware.AccountIDHeader}
	}
	if !r.Amount.IsPositive() {
		return orderbookdomain.NonPositiveAmountError{Amount: r.Amount}
	}
	return nil
}

// TickRequest represents the query of the tick endpoint.
type TickRequest struct {
	Side   orderbookdomain.Side
	TickID int64
}

// UnmarshalHTTPRequest unmarshals the HTTP request to TickRequest.
func (r *TickRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	r.Side, err = orderbookdomain.ParseSide(c.QueryParam("side"))
	if err != nil {
		return err
	}

	r.TickID, err = parseTickID(c.QueryParam("tick_id"))
	return err
}

// PositionRequest represents the query of the position endpoint.
type PositionRequest struct {
	TickRequest
	Account string
}

// UnmarshalHTTPRequest unmarshals the HTTP request to PositionRequest.
func (r *PositionRequest) UnmarshalHTTPRequest(c echo.Context) error {
	if err := r.TickRequest.UnmarshalHTTPRequest(c); err != nil {
		return err
	}

	r.Account = c.Request().Header.Get(middleware.AccountIDHeader)
	return nil
}

// Validate validates the PositionRequest.
func (r *PositionRequest) Validate() error {
	if r.Account == "" {
		return MissingAccountError{Header: middleware.AccountIDHeader}
	}
	return nil
}

// NextTickRequest represents the query of the next-tick endpoint.
// Ascending defaults to true.
type NextTickRequest struct {
	Side       orderbookdomain.Side
	FromTickID int64
	Ascending  bool
}

// UnmarshalHTTPRequest unmarshals the HTTP request to NextTickRequest.
func (r *NextTickRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	r.Side, err = orderbookdomain.ParseSide(c.QueryParam("side"))
	if err != nil {
		return err
	}

	r.FromTickID, err = parseTickID(c.QueryParam("from"))
	if err != nil {
		return err
	}

	r.Ascending = true
	if ascendingStr := c.QueryParam("ascending"); ascendingStr != "" {
		r.Ascending, err = strconv.ParseBool(ascendingStr)
		if err != nil {
			return ParsingBoolError{Field: "ascending", Value: ascendingStr, Err: err}
		}
	}

	return nil
}

// PriceRequest represents the query of the price endpoint.
type PriceRequest struct {
	TickID int64
}

// UnmarshalHTTPRequest unmarshals the HTTP request to PriceRequest.
func (r *PriceRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	r.TickID, err = parseTickID(c.QueryParam("tick_id"))
	return err
}

// BalanceRequest represents the query of the balance endpoint.
type BalanceRequest struct {
	Account string
	Side    orderbookdomain.Side
}

// UnmarshalHTTPRequest unmarshals the HTTP request to BalanceRequest.
func (r *BalanceRequest) UnmarshalHTTPRequest(c echo.Context) (err error) {
	r.Side, err = orderbookdomain.ParseSide(c.QueryParam("side"))
	if err != nil {
		return err
	}

	r.Account = c.Request().Header.Get(middleware.AccountIDHeader)
	return nil
}

// Validate validates the BalanceRequest.
func (r *BalanceRequest) Validate() error {
	if r.Account == "" {
		return MissingAccountError{Header: middleware.AccountIDHeader}
	}
	return nil
}

func parseAmount(field, amountStr string) (osmomath.BigDec, error) {
	amount, err := osmomath.NewBigDecFromStr(amountStr)
	if err != nil {
		return osmomath.BigDec{}, ParsingAmountError{Field: field, Amount: amountStr, Err: err}
	}
	return amount, nil
}

func parseTickID(tickIDStr string) (int64, error) {
	tickID, err := strconv.ParseInt(tickIDStr, 10, 64)
	if err != nil {
		return 0, ParsingTickIDError{TickID: tickIDStr, Err: err}
	}
	return tickID, nil
}
