package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/tickbook/domain"
	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

func TestGetStatusCode(t *testing.T) {
	tests := map[string]struct {
		err            error
		expectedStatus int
	}{
		"nil": {
			expectedStatus: http.StatusOK,
		},
		"bad param": {
			err:            domain.ErrBadParamInput,
			expectedStatus: http.StatusBadRequest,
		},
		"invalid side": {
			err:            orderbookdomain.InvalidSideError{Side: "both"},
			expectedStatus: http.StatusBadRequest,
		},
		"non positive amount": {
			err:            orderbookdomain.NonPositiveAmountError{Amount: osmomath.ZeroBigDec()},
			expectedStatus: http.StatusBadRequest,
		},
		"uninitialized tick": {
			err:            orderbookdomain.UninitializedTickError{Side: orderbookdomain.Base, TickID: 3},
			expectedStatus: http.StatusNotFound,
		},
		"wrapped insufficient liquidity": {
			err:            fmt.Errorf("remove_order: %w", orderbookdomain.InsufficientLiquidityError{Requested: osmomath.OneBigDec(), Available: osmomath.OneBigDec()}),
			expectedStatus: http.StatusConflict,
		},
		"insufficient balance": {
			err:            orderbookdomain.InsufficientBalanceError{Requested: osmomath.OneBigDec(), Available: osmomath.ZeroBigDec()},
			expectedStatus: http.StatusConflict,
		},
		"arithmetic overflow": {
			err:            orderbookdomain.ArithmeticOverflowError{Operation: "tick range", TickID: 40_000},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		"unknown": {
			err:            errors.New("disk full"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expectedStatus, domain.GetStatusCode(tc.err))
		})
	}
}
