package orderbookdomain

import (
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// InsufficientLiquidityError is returned when a trade or withdrawal would exceed
// the balance recorded at a tick.
type InsufficientLiquidityError struct {
	Requested osmomath.BigDec
	Available osmomath.BigDec
}

// Error implements the error interface.
func (e InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("insufficient tick liquidity: requested %s, available %s", e.Requested, e.Available)
}

// InsufficientBalanceError is returned when a withdrawal or debit exceeds
// the balance of a position or an account.
type InsufficientBalanceError struct {
	Requested osmomath.BigDec
	Available osmomath.BigDec
}

// Error implements the error interface.
func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: requested %s, available %s", e.Requested, e.Available)
}

// ArithmeticOverflowError is returned when a tick magnitude or a fixed-point
// operation exceeds the supported range.
type ArithmeticOverflowError struct {
	Operation string
	TickID    int64
}

// Error implements the error interface.
func (e ArithmeticOverflowError) Error() string {
	return fmt.Sprintf("arithmetic overflow during %s at tick %d", e.Operation, e.TickID)
}

// UninitializedTickError is returned when operating on a tick that never held liquidity.
type UninitializedTickError struct {
	Side   Side
	TickID int64
}

// Error implements the error interface.
func (e UninitializedTickError) Error() string {
	return fmt.Sprintf("tick %d on %s side is not initialized", e.TickID, e.Side)
}

// InvalidSideError is returned for an unknown side.
type InvalidSideError struct {
	Side string
}

// Error implements the error interface.
func (e InvalidSideError) Error() string {
	return fmt.Sprintf("invalid side %q, expected base or quote", e.Side)
}

// NonPositiveAmountError is returned when an amount that must be strictly positive is not.
type NonPositiveAmountError struct {
	Amount osmomath.BigDec
}

// Error implements the error interface.
func (e NonPositiveAmountError) Error() string {
	return fmt.Sprintf("amount must be positive, got %s", e.Amount)
}
