package types

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

// NextTickResponse represents the response for the /orderbook/next-tick endpoint.
type NextTickResponse struct {
	TickID int64 `json:"tick_id"`
	Found  bool  `json:"found"`
}

// PriceResponse represents the response for the /orderbook/price endpoint.
type PriceResponse struct {
	TickID int64           `json:"tick_id"`
	Price  osmomath.BigDec `json:"price"`
}

// BalanceResponse represents the response for the /custody endpoints.
type BalanceResponse struct {
	Account string               `json:"account"`
	Side    orderbookdomain.Side `json:"side"`
	Balance osmomath.BigDec      `json:"balance"`
}
