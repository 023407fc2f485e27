package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

var (
	_ orderbookdomain.LedgerRepository = &LedgerRepositoryMock{}
	_ orderbookdomain.LedgerTx         = &LedgerTxMock{}
)

// LedgerRepositoryMock wraps a real LedgerRepository and lets tests override parts of it.
type LedgerRepositoryMock struct {
	orderbookdomain.LedgerRepository

	StartTxFunc             func() orderbookdomain.LedgerTx
	NextInitializedTickFunc func(side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error)
}

// StartTx implements orderbookdomain.LedgerRepository.
func (m *LedgerRepositoryMock) StartTx() orderbookdomain.LedgerTx {
	if m.StartTxFunc != nil {
		return m.StartTxFunc()
	}
	if m.LedgerRepository != nil {
		return m.LedgerRepository.StartTx()
	}
	panic("StartTx not implemented")
}

// NextInitializedTick implements orderbookdomain.TickDiscovery.
func (m *LedgerRepositoryMock) NextInitializedTick(side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error) {
	if m.NextInitializedTickFunc != nil {
		return m.NextInitializedTickFunc(side, fromTickID, ascending)
	}
	if m.LedgerRepository != nil {
		return m.LedgerRepository.NextInitializedTick(side, fromTickID, ascending)
	}
	panic("NextInitializedTick not implemented")
}

// Close implements orderbookdomain.LedgerRepository.
func (m *LedgerRepositoryMock) Close() error {
	if m.LedgerRepository != nil {
		return m.LedgerRepository.Close()
	}
	return nil
}

// LedgerTxMock wraps a real LedgerTx and lets tests inject failures.
type LedgerTxMock struct {
	orderbookdomain.LedgerTx

	ExecFunc       func(ctx context.Context) error
	SetBalanceErr  error
	SetPositionErr error
}

// WithExecError makes Exec discard the wrapped transaction and return err.
func (m *LedgerTxMock) WithExecError(err error) *LedgerTxMock {
	m.ExecFunc = func(ctx context.Context) error {
		m.LedgerTx.Discard()
		return err
	}
	return m
}

// Exec implements orderbookdomain.LedgerTx.
func (m *LedgerTxMock) Exec(ctx context.Context) error {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx)
	}
	return m.LedgerTx.Exec(ctx)
}

// SetPosition implements orderbookdomain.LedgerTx.
func (m *LedgerTxMock) SetPosition(side orderbookdomain.Side, account string, tickID int64, position orderbookdomain.Position) error {
	if m.SetPositionErr != nil {
		return m.SetPositionErr
	}
	return m.LedgerTx.SetPosition(side, account, tickID, position)
}

// SetBalance implements orderbookdomain.LedgerTx.
func (m *LedgerTxMock) SetBalance(side orderbookdomain.Side, account string, balance osmomath.BigDec) error {
	if m.SetBalanceErr != nil {
		return m.SetBalanceErr
	}
	return m.LedgerTx.SetBalance(side, account, balance)
}
