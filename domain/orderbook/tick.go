package orderbookdomain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
)

// MinExecutionIndex is the smallest execution index a partial trade may leave behind.
// Below it the index keeps too few significant digits to split executions pro-rata,
// so a trade that would cross it consumes the whole tick instead.
var MinExecutionIndex = osmomath.NewBigDecWithPrec(1, 18)

// TickState is the aggregate liquidity record for a (side, tick).
//
// The execution index is a multiplier seeded at one when an epoch begins and
// scaled by newBalance/oldBalance on every trade. A position that snapshotted
// the index at s holds balance*current/s of its former unexecuted amount.
type TickState struct {
	// Unexecuted liquidity resting at the tick.
	TotalBalance osmomath.BigDec `json:"total_balance"`
	// Monotonically non-increasing within an epoch.
	ExecutionIndex osmomath.BigDec `json:"execution_index"`
	// Incremented every time liquidity is added to an empty tick.
	Epoch uint64 `json:"epoch"`
}

// NewTickState returns the state of a tick that never held liquidity.
func NewTickState() TickState {
	return TickState{
		TotalBalance:   osmomath.ZeroBigDec(),
		ExecutionIndex: osmomath.OneBigDec(),
		Epoch:          0,
	}
}

// IsInitialized returns true if the tick held liquidity at least once.
func (t TickState) IsInitialized() bool {
	return t.Epoch > 0
}

// IsEmpty returns true if there is no unexecuted liquidity at the tick.
func (t TickState) IsEmpty() bool {
	return t.TotalBalance.IsZero()
}

// AddLiquidity records a deposit. Depositing into an empty tick starts a new epoch
// with the index reset to one. Returns true if a new epoch was started.
func (t *TickState) AddLiquidity(amount osmomath.BigDec) (bool, error) {
	if !amount.IsPositive() {
		return false, NonPositiveAmountError{Amount: amount}
	}

	if t.TotalBalance.IsZero() {
		t.Epoch++
		t.ExecutionIndex = osmomath.OneBigDec()
		t.TotalBalance = amount
		return true, nil
	}

	t.TotalBalance = t.TotalBalance.Add(amount)
	return false, nil
}

// RemoveLiquidity records a withdrawal of unexecuted liquidity.
// A withdrawal may never drain the tick: draining starts a new epoch on the next
// deposit, which every stale position would read as a full execution.
func (t *TickState) RemoveLiquidity(amount osmomath.BigDec) error {
	if !amount.IsPositive() {
		return NonPositiveAmountError{Amount: amount}
	}

	if amount.GTE(t.TotalBalance) {
		return InsufficientLiquidityError{Requested: amount, Available: t.TotalBalance}
	}

	t.TotalBalance = t.TotalBalance.Sub(amount)
	return nil
}

// ExhaustsIndex returns true if trading tradedAmount would leave liquidity at the tick
// with an execution index below MinExecutionIndex.
func (t TickState) ExhaustsIndex(tradedAmount osmomath.BigDec) bool {
	if !tradedAmount.IsPositive() || tradedAmount.GTE(t.TotalBalance) {
		return false
	}

	newBalance := t.TotalBalance.Sub(tradedAmount)
	return t.nextIndex(newBalance).LT(MinExecutionIndex)
}

// ApplyTrade consumes tradedAmount of the tick liquidity and decays the execution index
// by the same proportion. A zero amount is a no-op.
//
// The index is rounded up so that positions never reconcile more executed
// liquidity than exact pro-rata math implies.
func (t *TickState) ApplyTrade(tradedAmount osmomath.BigDec) error {
	if tradedAmount.IsZero() {
		return nil
	}
	if tradedAmount.IsNegative() {
		return NonPositiveAmountError{Amount: tradedAmount}
	}

	if tradedAmount.GT(t.TotalBalance) {
		return InsufficientLiquidityError{Requested: tradedAmount, Available: t.TotalBalance}
	}

	newBalance := t.TotalBalance.Sub(tradedAmount)
	if newBalance.IsZero() {
		t.ExecutionIndex = osmomath.ZeroBigDec()
	} else {
		t.ExecutionIndex = t.nextIndex(newBalance)
	}
	t.TotalBalance = newBalance

	return nil
}

func (t TickState) nextIndex(newBalance osmomath.BigDec) osmomath.BigDec {
	return t.ExecutionIndex.MulRoundUp(newBalance).QuoRoundUp(t.TotalBalance)
}
