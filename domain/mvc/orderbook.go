package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

// OrderBookUsecase is the order engine. Every mutating operation commits atomically or not at all.
type OrderBookUsecase interface {
	// LimitOrderTrade matches amountIn of the side asset against the opposite tick and rests
	// the unexecuted remainder at tickID.
	LimitOrderTrade(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error)

	// SpotOrderTrade matches like LimitOrderTrade but refunds the unexecuted remainder.
	SpotOrderTrade(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error)

	// RemoveOrder withdraws amountOut of the account's unexecuted liquidity at tickID.
	RemoveOrder(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountOut osmomath.BigDec) (orderbookdomain.RemoveReceipt, error)

	// ClaimExecutedOrder settles the account's positions on both sides of tickID.
	ClaimExecutedOrder(ctx context.Context, account string, tickID int64) (orderbookdomain.ClaimReceipt, error)

	// Deposit credits amount of the side asset to the account. Returns the new balance.
	Deposit(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error)

	// Withdraw debits amount of the side asset from the account. Returns the new balance.
	Withdraw(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error)

	GetBalance(ctx context.Context, account string, side orderbookdomain.Side) (osmomath.BigDec, error)

	// GetTick returns the tick state. Fails with UninitializedTickError if the tick never held liquidity.
	GetTick(ctx context.Context, side orderbookdomain.Side, tickID int64) (orderbookdomain.TickState, error)

	// GetPosition previews the reconciliation of the account's position without committing it.
	GetPosition(ctx context.Context, account string, side orderbookdomain.Side, tickID int64) (orderbookdomain.PositionPreview, error)

	// NextInitializedTick returns the nearest tick holding liquidity on side.
	NextInitializedTick(ctx context.Context, side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error)

	GetPrice(ctx context.Context, tickID int64) (osmomath.BigDec, error)

	// IsHealthy returns an error if the underlying ledger storage cannot be read.
	IsHealthy(ctx context.Context) error
}
