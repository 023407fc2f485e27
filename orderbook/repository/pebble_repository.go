package orderbookrepository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

// key prefixes
const (
	tickPrefix     byte = 't'
	positionPrefix byte = 'p'
	balancePrefix  byte = 'b'
)

// tick IDs are encoded big-endian with the sign bit flipped so that
// byte order matches numeric order
const tickIDSignFlip = uint64(1) << 63

type pebbleRepositoryImpl struct {
	db *pebble.DB
}

var _ orderbookdomain.LedgerRepository = &pebbleRepositoryImpl{}

// NewPebbleRepository opens (or creates) a pebble store at path.
func NewPebbleRepository(path string) (*pebbleRepositoryImpl, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble ledger at %s: %w", path, err)
	}

	return &pebbleRepositoryImpl{
		db: db,
	}, nil
}

// StartTx implements orderbookdomain.LedgerRepository.
func (r *pebbleRepositoryImpl) StartTx() orderbookdomain.LedgerTx {
	return &pebbleTx{
		batch: r.db.NewIndexedBatch(),
	}
}

// NextInitializedTick implements orderbookdomain.TickDiscovery.
func (r *pebbleRepositoryImpl) NextInitializedTick(side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error) {
	if !side.IsValid() {
		return 0, false, orderbookdomain.InvalidSideError{Side: side.String()}
	}

	prefix := []byte{tickPrefix, byte(side)}
	lower := append(append([]byte{}, prefix...), encodeTickID(fromTickID)...)
	upper := prefixUpperBound(prefix)
	if !ascending {
		lower = prefix
		upper = append(append([]byte{}, prefix...), encodeTickID(fromTickID)...)
		upper = append(upper, 0x00)
	}

	iter, err := r.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return 0, false, err
	}
	defer iter.Close()

	valid := iter.First()
	if !ascending {
		valid = iter.Last()
	}

	for ; valid; valid = advance(iter, ascending) {
		var tick orderbookdomain.TickState
		if err := json.Unmarshal(iter.Value(), &tick); err != nil {
			return 0, false, err
		}

		if !tick.IsEmpty() {
			return decodeTickID(iter.Key()[len(prefix):]), true, nil
		}
	}

	return 0, false, iter.Error()
}

// Close implements orderbookdomain.LedgerRepository.
func (r *pebbleRepositoryImpl) Close() error {
	return r.db.Close()
}

func advance(iter *pebble.Iterator, ascending bool) bool {
	if ascending {
		return iter.Next()
	}
	return iter.Prev()
}

// pebbleTx stages writes in an indexed batch so reads observe them before commit.
type pebbleTx struct {
	batch  *pebble.Batch
	closed bool
}

var _ orderbookdomain.LedgerTx = &pebbleTx{}

// GetTick implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) GetTick(side orderbookdomain.Side, tickID int64) (orderbookdomain.TickState, error) {
	tick := orderbookdomain.NewTickState()
	if _, err := tx.get(tickKeyBytes(side, tickID), &tick); err != nil {
		return orderbookdomain.TickState{}, err
	}
	return tick, nil
}

// SetTick implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) SetTick(side orderbookdomain.Side, tickID int64, tick orderbookdomain.TickState) error {
	return tx.set(tickKeyBytes(side, tickID), tick)
}

// GetPosition implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) GetPosition(side orderbookdomain.Side, account string, tickID int64) (orderbookdomain.Position, error) {
	position := orderbookdomain.NewPosition()
	if _, err := tx.get(positionKeyBytes(side, account, tickID), &position); err != nil {
		return orderbookdomain.Position{}, err
	}
	return position, nil
}

// SetPosition implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) SetPosition(side orderbookdomain.Side, account string, tickID int64, position orderbookdomain.Position) error {
	return tx.set(positionKeyBytes(side, account, tickID), position)
}

// GetBalance implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) GetBalance(side orderbookdomain.Side, account string) (osmomath.BigDec, error) {
	var raw string
	found, err := tx.get(balanceKeyBytes(side, account), &raw)
	if err != nil {
		return osmomath.BigDec{}, err
	}
	if !found {
		return osmomath.ZeroBigDec(), nil
	}
	return osmomath.NewBigDecFromStr(raw)
}

// SetBalance implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) SetBalance(side orderbookdomain.Side, account string, balance osmomath.BigDec) error {
	return tx.set(balanceKeyBytes(side, account), balance.String())
}

// Exec implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) Exec(_ context.Context) error {
	if tx.closed {
		return ErrTxNotActive
	}

	err := tx.batch.Commit(pebble.Sync)
	tx.Discard()
	return err
}

// Discard implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) Discard() {
	if tx.closed {
		return
	}
	tx.closed = true
	_ = tx.batch.Close()
}

// IsActive implements orderbookdomain.LedgerTx.
func (tx *pebbleTx) IsActive() bool {
	return !tx.closed
}

func (tx *pebbleTx) get(key []byte, out any) (bool, error) {
	if tx.closed {
		return false, ErrTxNotActive
	}

	value, closer, err := tx.batch.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer closer.Close()

	if err := json.Unmarshal(value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (tx *pebbleTx) set(key []byte, value any) error {
	if tx.closed {
		return ErrTxNotActive
	}

	bz, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return tx.batch.Set(key, bz, nil)
}

func encodeTickID(tickID int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(tickID)^tickIDSignFlip)
	return bz
}

func decodeTickID(bz []byte) int64 {
	return int64(binary.BigEndian.Uint64(bz[:8]) ^ tickIDSignFlip)
}

func tickKeyBytes(side orderbookdomain.Side, tickID int64) []byte {
	return append([]byte{tickPrefix, byte(side)}, encodeTickID(tickID)...)
}

func positionKeyBytes(side orderbookdomain.Side, account string, tickID int64) []byte {
	key := append([]byte{positionPrefix, byte(side)}, encodeTickID(tickID)...)
	return append(key, account...)
}

func balanceKeyBytes(side orderbookdomain.Side, account string) []byte {
	return append([]byte{balancePrefix, byte(side)}, account...)
}

// prefixUpperBound returns the smallest key greater than every key with prefix.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte{}, prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}
