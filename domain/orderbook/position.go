package orderbookdomain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Position is a single account's share of the liquidity at a (side, tick).
// It is reconciled lazily against the TickState whenever it is touched.
type Position struct {
	TotalBalance           osmomath.BigDec `json:"total_balance"`
	ExecutionIndexSnapshot osmomath.BigDec `json:"execution_index_snapshot"`
	EpochSnapshot          uint64          `json:"epoch_snapshot"`
}

// NewPosition returns an empty position.
func NewPosition() Position {
	return Position{
		TotalBalance:           osmomath.ZeroBigDec(),
		ExecutionIndexSnapshot: osmomath.OneBigDec(),
		EpochSnapshot:          0,
	}
}

// Reconcile applies every execution recorded on the tick since the position was last
// synced and returns the amount of the position's liquidity executed in between.
//
// If the tick epoch moved, the tick was fully drained since the last sync and the whole
// balance executed. Otherwise the executed share is
// balance * (snapshot - index) / snapshot, truncated.
func (p *Position) Reconcile(tick TickState) osmomath.BigDec {
	executed := osmomath.ZeroBigDec()

	switch {
	case p.EpochSnapshot != tick.Epoch:
		executed = p.TotalBalance
		p.TotalBalance = osmomath.ZeroBigDec()
	case p.TotalBalance.IsZero() || p.ExecutionIndexSnapshot.IsZero():
		// nothing to settle
	case !tick.ExecutionIndex.Equal(p.ExecutionIndexSnapshot):
		executed = p.TotalBalance.
			MulTruncate(p.ExecutionIndexSnapshot.Sub(tick.ExecutionIndex)).
			QuoTruncate(p.ExecutionIndexSnapshot)
		p.TotalBalance = p.TotalBalance.Sub(executed)
	}

	p.EpochSnapshot = tick.Epoch
	p.ExecutionIndexSnapshot = tick.ExecutionIndex

	return executed
}

// AddLiquidity reconciles the position and adds amount to it.
// tick must already include the deposit.
func (p *Position) AddLiquidity(tick TickState, amount osmomath.BigDec) (osmomath.BigDec, error) {
	if !amount.IsPositive() {
		return osmomath.ZeroBigDec(), NonPositiveAmountError{Amount: amount}
	}

	executed := p.Reconcile(tick)
	p.TotalBalance = p.TotalBalance.Add(amount)

	return executed, nil
}

// RemoveLiquidity reconciles the position and withdraws amount from it.
// The position is left untouched on error.
func (p *Position) RemoveLiquidity(tick TickState, amount osmomath.BigDec) (osmomath.BigDec, error) {
	if !amount.IsPositive() {
		return osmomath.ZeroBigDec(), NonPositiveAmountError{Amount: amount}
	}

	next := *p
	executed := next.Reconcile(tick)

	if amount.GT(next.TotalBalance) {
		return osmomath.ZeroBigDec(), InsufficientBalanceError{Requested: amount, Available: next.TotalBalance}
	}

	next.TotalBalance = next.TotalBalance.Sub(amount)
	*p = next

	return executed, nil
}
