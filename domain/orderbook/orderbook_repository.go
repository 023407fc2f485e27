package orderbookdomain

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// LedgerTx stages reads and writes of ticks, positions and custody balances.
// Nothing is visible outside the transaction until Exec succeeds.
type LedgerTx interface {
	// GetTick returns the tick state. A tick that was never written is returned
	// as NewTickState().
	GetTick(side Side, tickID int64) (TickState, error)
	SetTick(side Side, tickID int64, tick TickState) error

	// GetPosition returns the account position at a tick. A position that was
	// never written is returned as NewPosition().
	GetPosition(side Side, account string, tickID int64) (Position, error)
	SetPosition(side Side, account string, tickID int64, position Position) error

	// GetBalance returns the custody balance of account in the side asset.
	GetBalance(side Side, account string) (osmomath.BigDec, error)
	SetBalance(side Side, account string, balance osmomath.BigDec) error

	// Exec atomically commits all staged writes.
	// Returns an error if the transaction is not in progress. Context cancellation is not
	// consulted: once a commit starts it runs to completion.
	Exec(ctx context.Context) error

	// Discard drops all staged writes. Safe to call after Exec.
	Discard()

	// IsActive returns true if the transaction is in progress.
	IsActive() bool
}

// LedgerRepository is the storage behind the tick and position ledgers.
type LedgerRepository interface {
	TickDiscovery

	// StartTx starts a new atomic transaction.
	StartTx() LedgerTx

	// Close releases the underlying storage.
	Close() error
}

// TickDiscovery finds initialized ticks holding liquidity.
type TickDiscovery interface {
	// NextInitializedTick returns the nearest tick on side, starting at fromTickID inclusive
	// and moving up if ascending or down otherwise, whose total balance is non-zero.
	// Returns false if none is found.
	NextInitializedTick(side Side, fromTickID int64, ascending bool) (int64, bool, error)
}

// Custody moves the two pool assets in and out of account balances.
type Custody interface {
	Credit(side Side, amount osmomath.BigDec, account string) error
	// Debit fails with InsufficientBalanceError if amount exceeds the current balance.
	Debit(side Side, amount osmomath.BigDec, account string) error
}

// PriceLadder maps ticks to prices and converts quantities between the two assets.
type PriceLadder interface {
	// ValidateTick fails with ArithmeticOverflowError if tickID is outside the supported range.
	ValidateTick(tickID int64) error
	TickToPrice(tickID int64) (osmomath.BigDec, error)
	// Convert converts quantity of the side asset into the opposite asset at tickID.
	Convert(side Side, tickID int64, quantity osmomath.BigDec) (osmomath.BigDec, error)
}
