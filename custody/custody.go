// Package custody holds account balances of the two pool assets.
package custody

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

type custodyImpl struct {
	tx orderbookdomain.LedgerTx
}

var _ orderbookdomain.Custody = &custodyImpl{}

// New returns custody that reads and writes balances through tx.
// Nothing moves until tx is executed.
func New(tx orderbookdomain.LedgerTx) *custodyImpl {
	return &custodyImpl{
		tx: tx,
	}
}

// Credit implements orderbookdomain.Custody.
func (c *custodyImpl) Credit(side orderbookdomain.Side, amount osmomath.BigDec, account string) error {
	if err := validate(side, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	balance, err := c.tx.GetBalance(side, account)
	if err != nil {
		return err
	}

	return c.tx.SetBalance(side, account, balance.Add(amount))
}

// Debit implements orderbookdomain.Custody.
func (c *custodyImpl) Debit(side orderbookdomain.Side, amount osmomath.BigDec, account string) error {
	if err := validate(side, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	balance, err := c.tx.GetBalance(side, account)
	if err != nil {
		return err
	}

	if amount.GT(balance) {
		return orderbookdomain.InsufficientBalanceError{
			Requested: amount,
			Available: balance,
		}
	}

	return c.tx.SetBalance(side, account, balance.Sub(amount))
}

func validate(side orderbookdomain.Side, amount osmomath.BigDec) error {
	if !side.IsValid() {
		return orderbookdomain.InvalidSideError{Side: side.String()}
	}
	if amount.IsNegative() {
		return orderbookdomain.NonPositiveAmountError{Amount: amount}
	}
	return nil
}
