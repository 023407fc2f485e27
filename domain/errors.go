package domain

import (
	"errors"
	"net/http"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrBadParamInput),
		errors.As(err, &orderbookdomain.InvalidSideError{}),
		errors.As(err, &orderbookdomain.NonPositiveAmountError{}):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound),
		errors.As(err, &orderbookdomain.UninitializedTickError{}):
		return http.StatusNotFound
	case errors.As(err, &orderbookdomain.InsufficientLiquidityError{}),
		errors.As(err, &orderbookdomain.InsufficientBalanceError{}):
		return http.StatusConflict
	case errors.As(err, &orderbookdomain.ArithmeticOverflowError{}):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}
