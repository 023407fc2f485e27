package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/osmosis-labs/tickbook/domain/mvc"
	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

var _ mvc.OrderBookUsecase = &OrderbookUsecaseMock{}

// OrderbookUsecaseMock is a mock implementation of the OrderBookUsecase interface
type OrderbookUsecaseMock struct {
	LimitOrderTradeFunc     func(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error)
	SpotOrderTradeFunc      func(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error)
	RemoveOrderFunc         func(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountOut osmomath.BigDec) (orderbookdomain.RemoveReceipt, error)
	ClaimExecutedOrderFunc  func(ctx context.Context, account string, tickID int64) (orderbookdomain.ClaimReceipt, error)
	DepositFunc             func(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error)
	WithdrawFunc            func(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error)
	GetBalanceFunc          func(ctx context.Context, account string, side orderbookdomain.Side) (osmomath.BigDec, error)
	GetTickFunc             func(ctx context.Context, side orderbookdomain.Side, tickID int64) (orderbookdomain.TickState, error)
	GetPositionFunc         func(ctx context.Context, account string, side orderbookdomain.Side, tickID int64) (orderbookdomain.PositionPreview, error)
	NextInitializedTickFunc func(ctx context.Context, side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error)
	GetPriceFunc            func(ctx context.Context, tickID int64) (osmomath.BigDec, error)
	IsHealthyFunc           func(ctx context.Context) error
}

func (m *OrderbookUsecaseMock) LimitOrderTrade(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error) {
	if m.LimitOrderTradeFunc != nil {
		return m.LimitOrderTradeFunc(ctx, account, side, tickID, amountIn)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) SpotOrderTrade(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error) {
	if m.SpotOrderTradeFunc != nil {
		return m.SpotOrderTradeFunc(ctx, account, side, tickID, amountIn)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) RemoveOrder(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountOut osmomath.BigDec) (orderbookdomain.RemoveReceipt, error) {
	if m.RemoveOrderFunc != nil {
		return m.RemoveOrderFunc(ctx, account, side, tickID, amountOut)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) ClaimExecutedOrder(ctx context.Context, account string, tickID int64) (orderbookdomain.ClaimReceipt, error) {
	if m.ClaimExecutedOrderFunc != nil {
		return m.ClaimExecutedOrderFunc(ctx, account, tickID)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) Deposit(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error) {
	if m.DepositFunc != nil {
		return m.DepositFunc(ctx, account, side, amount)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) Withdraw(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error) {
	if m.WithdrawFunc != nil {
		return m.WithdrawFunc(ctx, account, side, amount)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetBalance(ctx context.Context, account string, side orderbookdomain.Side) (osmomath.BigDec, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, account, side)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetTick(ctx context.Context, side orderbookdomain.Side, tickID int64) (orderbookdomain.TickState, error) {
	if m.GetTickFunc != nil {
		return m.GetTickFunc(ctx, side, tickID)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetPosition(ctx context.Context, account string, side orderbookdomain.Side, tickID int64) (orderbookdomain.PositionPreview, error) {
	if m.GetPositionFunc != nil {
		return m.GetPositionFunc(ctx, account, side, tickID)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) NextInitializedTick(ctx context.Context, side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error) {
	if m.NextInitializedTickFunc != nil {
		return m.NextInitializedTickFunc(ctx, side, fromTickID, ascending)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) GetPrice(ctx context.Context, tickID int64) (osmomath.BigDec, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(ctx, tickID)
	}
	panic("unimplemented")
}

func (m *OrderbookUsecaseMock) IsHealthy(ctx context.Context) error {
	if m.IsHealthyFunc != nil {
		return m.IsHealthyFunc(ctx)
	}
	panic("unimplemented")
}
