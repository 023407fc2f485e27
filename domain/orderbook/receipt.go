package orderbookdomain

import "github.com/osmosis-labs/osmosis/osmomath"

// TradeReceipt is the outcome of a limit or spot order.
type TradeReceipt struct {
	OperationID string `json:"operation_id"`
	Side        Side   `json:"side"`
	TickID      int64  `json:"tick_id"`

	AmountIn osmomath.BigDec `json:"amount_in"`
	// ExecutedIn is the part of AmountIn matched against the opposite tick.
	ExecutedIn osmomath.BigDec `json:"executed_in"`
	// ReceivedOut is credited to the caller in the opposite asset.
	ReceivedOut osmomath.BigDec `json:"received_out"`
	// Placed is the remainder resting on the caller's side. Always zero for spot orders.
	Placed osmomath.BigDec `json:"placed"`
	// Refunded is the remainder that was never debited. Always zero for limit orders.
	Refunded osmomath.BigDec `json:"refunded"`
	// Claimed are proceeds of earlier executions of the caller's position at the tick,
	// credited in the opposite asset.
	Claimed osmomath.BigDec `json:"claimed"`
}

// RemoveReceipt is the outcome of withdrawing resting liquidity.
type RemoveReceipt struct {
	OperationID string          `json:"operation_id"`
	Side        Side            `json:"side"`
	TickID      int64           `json:"tick_id"`
	Withdrawn   osmomath.BigDec `json:"withdrawn"`
	Claimed     osmomath.BigDec `json:"claimed"`
	Remaining   osmomath.BigDec `json:"remaining"`
}

// ClaimReceipt is the outcome of settling both positions of an account at a tick.
// ClaimedBase and ClaimedQuote are denominated in the asset credited.
type ClaimReceipt struct {
	OperationID  string          `json:"operation_id"`
	TickID       int64           `json:"tick_id"`
	ClaimedBase  osmomath.BigDec `json:"claimed_base"`
	ClaimedQuote osmomath.BigDec `json:"claimed_quote"`
}

// PositionPreview is a read-only reconciliation of a position.
type PositionPreview struct {
	Side     Side     `json:"side"`
	TickID   int64    `json:"tick_id"`
	Position Position `json:"position"`
	// PendingExecuted is the amount executed since the last reconciliation, in the side asset.
	PendingExecuted osmomath.BigDec `json:"pending_executed"`
	// PendingProceeds is PendingExecuted converted to the opposite asset.
	PendingProceeds osmomath.BigDec `json:"pending_proceeds"`
}
