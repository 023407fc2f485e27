package orderbookrepository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/btree"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

// ErrTxNotActive is returned when using a transaction after Exec or Discard.
var ErrTxNotActive = errors.New("ledger transaction is not active")

const tickIndexDegree = 32

type tickKey struct {
	side   orderbookdomain.Side
	tickID int64
}

type positionKey struct {
	side    orderbookdomain.Side
	account string
	tickID  int64
}

type balanceKey struct {
	side    orderbookdomain.Side
	account string
}

type memoryRepositoryImpl struct {
	mu sync.RWMutex

	ticks     map[tickKey]orderbookdomain.TickState
	positions map[positionKey]orderbookdomain.Position
	balances  map[balanceKey]osmomath.BigDec

	// initialized tick IDs per side, ordered for discovery
	tickIndex map[orderbookdomain.Side]*btree.BTreeG[int64]
}

var _ orderbookdomain.LedgerRepository = &memoryRepositoryImpl{}

// NewMemoryRepository creates an in-memory ledger repository.
func NewMemoryRepository() *memoryRepositoryImpl {
	return &memoryRepositoryImpl{
		ticks:     map[tickKey]orderbookdomain.TickState{},
		positions: map[positionKey]orderbookdomain.Position{},
		balances:  map[balanceKey]osmomath.BigDec{},
		tickIndex: map[orderbookdomain.Side]*btree.BTreeG[int64]{
			orderbookdomain.Base:  btree.NewOrderedG[int64](tickIndexDegree),
			orderbookdomain.Quote: btree.NewOrderedG[int64](tickIndexDegree),
		},
	}
}

// StartTx implements orderbookdomain.LedgerRepository.
func (r *memoryRepositoryImpl) StartTx() orderbookdomain.LedgerTx {
	return &memoryTx{
		repo:      r,
		ticks:     map[tickKey]orderbookdomain.TickState{},
		positions: map[positionKey]orderbookdomain.Position{},
		balances:  map[balanceKey]osmomath.BigDec{},
		active:    true,
	}
}

// NextInitializedTick implements orderbookdomain.TickDiscovery.
func (r *memoryRepositoryImpl) NextInitializedTick(side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, ok := r.tickIndex[side]
	if !ok {
		return 0, false, orderbookdomain.InvalidSideError{Side: side.String()}
	}

	var (
		found  int64
		exists bool
	)
	visit := func(tickID int64) bool {
		if tick := r.ticks[tickKey{side: side, tickID: tickID}]; !tick.IsEmpty() {
			found, exists = tickID, true
			return false
		}
		return true
	}

	if ascending {
		index.AscendGreaterOrEqual(fromTickID, visit)
	} else {
		index.DescendLessOrEqual(fromTickID, visit)
	}

	return found, exists, nil
}

// Close implements orderbookdomain.LedgerRepository.
func (r *memoryRepositoryImpl) Close() error {
	return nil
}

// memoryTx keeps staged writes in maps shadowing the committed state.
type memoryTx struct {
	repo *memoryRepositoryImpl

	ticks     map[tickKey]orderbookdomain.TickState
	positions map[positionKey]orderbookdomain.Position
	balances  map[balanceKey]osmomath.BigDec

	active bool
}

var _ orderbookdomain.LedgerTx = &memoryTx{}

// GetTick implements orderbookdomain.LedgerTx.
func (tx *memoryTx) GetTick(side orderbookdomain.Side, tickID int64) (orderbookdomain.TickState, error) {
	if !tx.active {
		return orderbookdomain.TickState{}, ErrTxNotActive
	}

	key := tickKey{side: side, tickID: tickID}
	if tick, ok := tx.ticks[key]; ok {
		return tick, nil
	}

	tx.repo.mu.RLock()
	tick, ok := tx.repo.ticks[key]
	tx.repo.mu.RUnlock()

	if !ok {
		return orderbookdomain.NewTickState(), nil
	}
	return tick, nil
}

// SetTick implements orderbookdomain.LedgerTx.
func (tx *memoryTx) SetTick(side orderbookdomain.Side, tickID int64, tick orderbookdomain.TickState) error {
	if !tx.active {
		return ErrTxNotActive
	}
	tx.ticks[tickKey{side: side, tickID: tickID}] = tick
	return nil
}

// GetPosition implements orderbookdomain.LedgerTx.
func (tx *memoryTx) GetPosition(side orderbookdomain.Side, account string, tickID int64) (orderbookdomain.Position, error) {
	if !tx.active {
		return orderbookdomain.Position{}, ErrTxNotActive
	}

	key := positionKey{side: side, account: account, tickID: tickID}
	if position, ok := tx.positions[key]; ok {
		return position, nil
	}

	tx.repo.mu.RLock()
	position, ok := tx.repo.positions[key]
	tx.repo.mu.RUnlock()

	if !ok {
		return orderbookdomain.NewPosition(), nil
	}
	return position, nil
}

// SetPosition implements orderbookdomain.LedgerTx.
func (tx *memoryTx) SetPosition(side orderbookdomain.Side, account string, tickID int64, position orderbookdomain.Position) error {
	if !tx.active {
		return ErrTxNotActive
	}
	tx.positions[positionKey{side: side, account: account, tickID: tickID}] = position
	return nil
}

// GetBalance implements orderbookdomain.LedgerTx.
func (tx *memoryTx) GetBalance(side orderbookdomain.Side, account string) (osmomath.BigDec, error) {
	if !tx.active {
		return osmomath.BigDec{}, ErrTxNotActive
	}

	key := balanceKey{side: side, account: account}
	if balance, ok := tx.balances[key]; ok {
		return balance, nil
	}

	tx.repo.mu.RLock()
	balance, ok := tx.repo.balances[key]
	tx.repo.mu.RUnlock()

	if !ok {
		return osmomath.ZeroBigDec(), nil
	}
	return balance, nil
}

// SetBalance implements orderbookdomain.LedgerTx.
func (tx *memoryTx) SetBalance(side orderbookdomain.Side, account string, balance osmomath.BigDec) error {
	if !tx.active {
		return ErrTxNotActive
	}
	tx.balances[balanceKey{side: side, account: account}] = balance
	return nil
}

// Exec implements orderbookdomain.LedgerTx.
func (tx *memoryTx) Exec(_ context.Context) error {
	if !tx.active {
		return ErrTxNotActive
	}

	repo := tx.repo
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for key, tick := range tx.ticks {
		repo.ticks[key] = tick
		if tick.IsInitialized() {
			repo.tickIndex[key.side].ReplaceOrInsert(key.tickID)
		}
	}
	for key, position := range tx.positions {
		repo.positions[key] = position
	}
	for key, balance := range tx.balances {
		repo.balances[key] = balance
	}

	tx.active = false

	return nil
}

// Discard implements orderbookdomain.LedgerTx.
func (tx *memoryTx) Discard() {
	tx.active = false
	tx.ticks = nil
	tx.positions = nil
	tx.balances = nil
}

// IsActive implements orderbookdomain.LedgerTx.
func (tx *memoryTx) IsActive() bool {
	return tx.active
}
