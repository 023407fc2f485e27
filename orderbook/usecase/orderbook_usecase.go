package orderbookusecase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/osmosis-labs/tickbook/custody"
	"github.com/osmosis-labs/tickbook/domain/mvc"
	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
	"github.com/osmosis-labs/tickbook/log"
	"github.com/osmosis-labs/tickbook/orderbook/telemetry"
	"github.com/osmosis-labs/tickbook/orderbook/types"
)

const (
	operationLimitOrder = "limit_order"
	operationSpotOrder  = "spot_order"
	operationRemove     = "remove_order"
	operationClaim      = "claim"
	operationDeposit    = "deposit"
	operationWithdraw   = "withdraw"
)

type OrderbookUseCaseImpl struct {
	// serializes operations so that only one is in flight at a time
	mu sync.Mutex

	repository orderbookdomain.LedgerRepository
	ladder     orderbookdomain.PriceLadder
	logger     log.Logger
}

var _ mvc.OrderBookUsecase = &OrderbookUseCaseImpl{}

// New creates a new order engine.
func New(
	repository orderbookdomain.LedgerRepository,
	ladder orderbookdomain.PriceLadder,
	logger log.Logger,
) *OrderbookUseCaseImpl {
	return &OrderbookUseCaseImpl{
		repository: repository,
		ladder:     ladder,
		logger:     logger,
	}
}

// LimitOrderTrade implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) LimitOrderTrade(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error) {
	receipt := newTradeReceipt(side, tickID, amountIn)

	operationID, err := o.execute(ctx, operationLimitOrder, func(tx orderbookdomain.LedgerTx) error {
		if err := o.validate(side, tickID, amountIn); err != nil {
			return err
		}

		c := custody.New(tx)

		if err := c.Debit(side, amountIn, account); err != nil {
			return err
		}

		executedIn, receivedOut, err := o.match(tx, side, tickID, amountIn)
		if err != nil {
			return err
		}

		if err := c.Credit(side.Opposite(), receivedOut, account); err != nil {
			return err
		}

		receipt.ExecutedIn = executedIn
		receipt.ReceivedOut = receivedOut

		remainder := amountIn.Sub(executedIn)
		if !remainder.IsPositive() {
			return nil
		}

		claimed, err := o.place(tx, c, account, side, tickID, remainder)
		if err != nil {
			return err
		}

		receipt.Placed = remainder
		receipt.Claimed = claimed

		return nil
	}, zap.String("account", account), zap.Stringer("side", side), zap.Int64("tick_id", tickID), zap.Stringer("amount_in", amountIn))

	if err != nil {
		return orderbookdomain.TradeReceipt{OperationID: operationID}, err
	}

	receipt.OperationID = operationID
	return receipt, nil
}

// SpotOrderTrade implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) SpotOrderTrade(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (orderbookdomain.TradeReceipt, error) {
	receipt := newTradeReceipt(side, tickID, amountIn)

	operationID, err := o.execute(ctx, operationSpotOrder, func(tx orderbookdomain.LedgerTx) error {
		if err := o.validate(side, tickID, amountIn); err != nil {
			return err
		}

		c := custody.New(tx)

		// The full amount must be available even though only the executed part stays debited.
		if err := c.Debit(side, amountIn, account); err != nil {
			return err
		}

		executedIn, receivedOut, err := o.match(tx, side, tickID, amountIn)
		if err != nil {
			return err
		}

		refunded := amountIn.Sub(executedIn)
		if err := c.Credit(side, refunded, account); err != nil {
			return err
		}

		if err := c.Credit(side.Opposite(), receivedOut, account); err != nil {
			return err
		}

		receipt.ExecutedIn = executedIn
		receipt.ReceivedOut = receivedOut
		receipt.Refunded = refunded

		return nil
	}, zap.String("account", account), zap.Stringer("side", side), zap.Int64("tick_id", tickID), zap.Stringer("amount_in", amountIn))

	if err != nil {
		return orderbookdomain.TradeReceipt{OperationID: operationID}, err
	}

	receipt.OperationID = operationID
	return receipt, nil
}

// RemoveOrder implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) RemoveOrder(ctx context.Context, account string, side orderbookdomain.Side, tickID int64, amountOut osmomath.BigDec) (orderbookdomain.RemoveReceipt, error) {
	receipt := orderbookdomain.RemoveReceipt{
		Side:      side,
		TickID:    tickID,
		Withdrawn: osmomath.ZeroBigDec(),
		Claimed:   osmomath.ZeroBigDec(),
		Remaining: osmomath.ZeroBigDec(),
	}

	operationID, err := o.execute(ctx, operationRemove, func(tx orderbookdomain.LedgerTx) error {
		if err := o.validate(side, tickID, amountOut); err != nil {
			return err
		}

		tick, err := tx.GetTick(side, tickID)
		if err != nil {
			return err
		}
		if !tick.IsInitialized() {
			return orderbookdomain.UninitializedTickError{Side: side, TickID: tickID}
		}

		position, err := tx.GetPosition(side, account, tickID)
		if err != nil {
			return err
		}

		// Reconcile before the tick changes. A withdrawal leaves the index and epoch untouched.
		executed, err := position.RemoveLiquidity(tick, amountOut)
		if err != nil {
			return err
		}

		if err := tick.RemoveLiquidity(amountOut); err != nil {
			return err
		}

		if err := tx.SetTick(side, tickID, tick); err != nil {
			return err
		}
		if err := tx.SetPosition(side, account, tickID, position); err != nil {
			return err
		}

		c := custody.New(tx)

		if err := c.Credit(side, amountOut, account); err != nil {
			return err
		}

		claimed, err := o.creditProceeds(c, account, side, tickID, executed)
		if err != nil {
			return err
		}

		receipt.Withdrawn = amountOut
		receipt.Claimed = claimed
		receipt.Remaining = position.TotalBalance

		return nil
	}, zap.String("account", account), zap.Stringer("side", side), zap.Int64("tick_id", tickID), zap.Stringer("amount_out", amountOut))

	if err != nil {
		return orderbookdomain.RemoveReceipt{OperationID: operationID}, err
	}

	receipt.OperationID = operationID
	return receipt, nil
}

// ClaimExecutedOrder implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) ClaimExecutedOrder(ctx context.Context, account string, tickID int64) (orderbookdomain.ClaimReceipt, error) {
	receipt := orderbookdomain.ClaimReceipt{
		TickID:       tickID,
		ClaimedBase:  osmomath.ZeroBigDec(),
		ClaimedQuote: osmomath.ZeroBigDec(),
	}

	operationID, err := o.execute(ctx, operationClaim, func(tx orderbookdomain.LedgerTx) error {
		if err := o.ladder.ValidateTick(tickID); err != nil {
			return err
		}

		c := custody.New(tx)

		initialized := false
		for _, side := range []orderbookdomain.Side{orderbookdomain.Base, orderbookdomain.Quote} {
			tick, err := tx.GetTick(side, tickID)
			if err != nil {
				return err
			}
			if !tick.IsInitialized() {
				continue
			}
			initialized = true

			position, err := tx.GetPosition(side, account, tickID)
			if err != nil {
				return err
			}
			if position.TotalBalance.IsZero() {
				continue
			}

			executed := position.Reconcile(tick)
			if err := tx.SetPosition(side, account, tickID, position); err != nil {
				return err
			}

			claimed, err := o.creditProceeds(c, account, side, tickID, executed)
			if err != nil {
				return err
			}

			// proceeds are paid in the opposite asset
			if side == orderbookdomain.Base {
				receipt.ClaimedQuote = claimed
			} else {
				receipt.ClaimedBase = claimed
			}
		}

		if !initialized {
			return orderbookdomain.UninitializedTickError{Side: orderbookdomain.Base, TickID: tickID}
		}

		return nil
	}, zap.String("account", account), zap.Int64("tick_id", tickID))

	if err != nil {
		return orderbookdomain.ClaimReceipt{OperationID: operationID}, err
	}

	receipt.OperationID = operationID
	return receipt, nil
}

// Deposit implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) Deposit(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error) {
	return o.moveBalance(ctx, operationDeposit, account, side, amount)
}

// Withdraw implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) Withdraw(ctx context.Context, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error) {
	return o.moveBalance(ctx, operationWithdraw, account, side, amount)
}

func (o *OrderbookUseCaseImpl) moveBalance(ctx context.Context, operation string, account string, side orderbookdomain.Side, amount osmomath.BigDec) (osmomath.BigDec, error) {
	balance := osmomath.ZeroBigDec()

	_, err := o.execute(ctx, operation, func(tx orderbookdomain.LedgerTx) (err error) {
		if !side.IsValid() {
			return orderbookdomain.InvalidSideError{Side: side.String()}
		}
		if !amount.IsPositive() {
			return orderbookdomain.NonPositiveAmountError{Amount: amount}
		}

		c := custody.New(tx)
		if operation == operationDeposit {
			err = c.Credit(side, amount, account)
		} else {
			err = c.Debit(side, amount, account)
		}
		if err != nil {
			return err
		}

		balance, err = tx.GetBalance(side, account)
		return err
	}, zap.String("account", account), zap.Stringer("side", side), zap.Stringer("amount", amount))
	if err != nil {
		return osmomath.BigDec{}, err
	}

	return balance, nil
}

// GetBalance implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetBalance(ctx context.Context, account string, side orderbookdomain.Side) (osmomath.BigDec, error) {
	if !side.IsValid() {
		return osmomath.BigDec{}, orderbookdomain.InvalidSideError{Side: side.String()}
	}

	tx := o.startReadTx()
	defer o.endReadTx(tx)

	return tx.GetBalance(side, account)
}

// GetTick implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetTick(ctx context.Context, side orderbookdomain.Side, tickID int64) (orderbookdomain.TickState, error) {
	if !side.IsValid() {
		return orderbookdomain.TickState{}, orderbookdomain.InvalidSideError{Side: side.String()}
	}
	if err := o.ladder.ValidateTick(tickID); err != nil {
		return orderbookdomain.TickState{}, err
	}

	tx := o.startReadTx()
	defer o.endReadTx(tx)

	tick, err := tx.GetTick(side, tickID)
	if err != nil {
		return orderbookdomain.TickState{}, err
	}
	if !tick.IsInitialized() {
		return orderbookdomain.TickState{}, orderbookdomain.UninitializedTickError{Side: side, TickID: tickID}
	}

	return tick, nil
}

// GetPosition implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetPosition(ctx context.Context, account string, side orderbookdomain.Side, tickID int64) (orderbookdomain.PositionPreview, error) {
	if !side.IsValid() {
		return orderbookdomain.PositionPreview{}, orderbookdomain.InvalidSideError{Side: side.String()}
	}
	if err := o.ladder.ValidateTick(tickID); err != nil {
		return orderbookdomain.PositionPreview{}, err
	}

	tx := o.startReadTx()
	defer o.endReadTx(tx)

	tick, err := tx.GetTick(side, tickID)
	if err != nil {
		return orderbookdomain.PositionPreview{}, err
	}

	position, err := tx.GetPosition(side, account, tickID)
	if err != nil {
		return orderbookdomain.PositionPreview{}, err
	}

	preview := orderbookdomain.PositionPreview{
		Side:            side,
		TickID:          tickID,
		Position:        position,
		PendingExecuted: osmomath.ZeroBigDec(),
		PendingProceeds: osmomath.ZeroBigDec(),
	}

	if position.TotalBalance.IsZero() {
		return preview, nil
	}

	preview.PendingExecuted = preview.Position.Reconcile(tick)
	if preview.PendingExecuted.IsZero() {
		return preview, nil
	}

	preview.PendingProceeds, err = o.ladder.Convert(side, tickID, preview.PendingExecuted)
	if err != nil {
		return orderbookdomain.PositionPreview{}, types.ConvertingAmountError{TickID: tickID, Err: err}
	}

	return preview, nil
}

// NextInitializedTick implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) NextInitializedTick(ctx context.Context, side orderbookdomain.Side, fromTickID int64, ascending bool) (int64, bool, error) {
	if !side.IsValid() {
		return 0, false, orderbookdomain.InvalidSideError{Side: side.String()}
	}
	if err := o.ladder.ValidateTick(fromTickID); err != nil {
		return 0, false, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	return o.repository.NextInitializedTick(side, fromTickID, ascending)
}

// GetPrice implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetPrice(ctx context.Context, tickID int64) (osmomath.BigDec, error) {
	return o.ladder.TickToPrice(tickID)
}

// IsHealthy implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) IsHealthy(ctx context.Context) error {
	tx := o.startReadTx()
	defer o.endReadTx(tx)

	_, err := tx.GetTick(orderbookdomain.Base, 0)
	return err
}

// execute runs fn inside a single ledger transaction under the engine lock.
// Any error discards everything fn staged. Returns the operation ID.
func (o *OrderbookUseCaseImpl) execute(ctx context.Context, operation string, fn func(tx orderbookdomain.LedgerTx) error, fields ...zap.Field) (string, error) {
	operationID := newOperationID()
	fields = append(fields, zap.String("operation", operation), zap.String("operation_id", operationID))

	o.mu.Lock()
	defer o.mu.Unlock()

	tx := o.repository.StartTx()
	defer tx.Discard()

	// Cancellation is honored only before the operation starts.
	err := ctx.Err()
	if err == nil {
		err = fn(tx)
	}
	if err == nil {
		if execErr := tx.Exec(ctx); execErr != nil {
			err = types.CommitError{Err: execErr}
		}
	}

	if err != nil {
		telemetry.OperationErrorCounter.WithLabelValues(operation, errorKind(err)).Inc()
		o.logger.Error("order engine operation failed", append(fields, zap.Error(err))...)

		return operationID, types.OperationError{
			Operation:   operation,
			OperationID: operationID,
			Err:         err,
		}
	}

	telemetry.OperationCounter.WithLabelValues(operation).Inc()
	o.logger.Debug("order engine operation committed", fields...)

	return operationID, nil
}

// startReadTx opens a transaction used only for reads. It is never executed.
func (o *OrderbookUseCaseImpl) startReadTx() orderbookdomain.LedgerTx {
	o.mu.Lock()
	return o.repository.StartTx()
}

func (o *OrderbookUseCaseImpl) endReadTx(tx orderbookdomain.LedgerTx) {
	tx.Discard()
	o.mu.Unlock()
}

func (o *OrderbookUseCaseImpl) validate(side orderbookdomain.Side, tickID int64, amount osmomath.BigDec) error {
	if !side.IsValid() {
		return orderbookdomain.InvalidSideError{Side: side.String()}
	}
	if !amount.IsPositive() {
		return orderbookdomain.NonPositiveAmountError{Amount: amount}
	}
	return o.ladder.ValidateTick(tickID)
}

// match executes amountIn of the side asset against the opposite tick liquidity at tickID.
// Returns the executed part of amountIn and the amount of the opposite asset received.
func (o *OrderbookUseCaseImpl) match(tx orderbookdomain.LedgerTx, side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) (osmomath.BigDec, osmomath.BigDec, error) {
	zero := osmomath.ZeroBigDec()
	opposite := side.Opposite()

	oppositeTick, err := tx.GetTick(opposite, tickID)
	if err != nil {
		return zero, zero, err
	}
	if oppositeTick.IsEmpty() {
		return zero, zero, nil
	}

	receivedOut, err := o.ladder.Convert(side, tickID, amountIn)
	if err != nil {
		return zero, zero, types.ConvertingAmountError{TickID: tickID, Err: err}
	}
	executedIn := amountIn

	// Depletion boundary: recompute both legs from the remaining liquidity.
	// A trade leaving a remainder too small for the index to resolve drains the tick too,
	// the taker receiving that residual.
	drained := receivedOut.GTE(oppositeTick.TotalBalance) || oppositeTick.ExhaustsIndex(receivedOut)
	if drained {
		receivedOut = oppositeTick.TotalBalance

		executedIn, err = o.ladder.Convert(opposite, tickID, receivedOut)
		if err != nil {
			return zero, zero, types.ConvertingAmountError{TickID: tickID, Err: err}
		}
		if executedIn.GT(amountIn) {
			executedIn = amountIn
		}
	}

	// Too small to execute at this price.
	if receivedOut.IsZero() || executedIn.IsZero() {
		return zero, zero, nil
	}

	if err := oppositeTick.ApplyTrade(receivedOut); err != nil {
		return zero, zero, err
	}
	if err := tx.SetTick(opposite, tickID, oppositeTick); err != nil {
		return zero, zero, err
	}

	if drained {
		telemetry.TickDrainedCounter.Inc()
	}

	return executedIn, receivedOut, nil
}

// place rests amount as new liquidity of account at (side, tickID).
// Returns the proceeds of earlier executions credited while reconciling the position.
func (o *OrderbookUseCaseImpl) place(tx orderbookdomain.LedgerTx, c orderbookdomain.Custody, account string, side orderbookdomain.Side, tickID int64, amount osmomath.BigDec) (osmomath.BigDec, error) {
	tick, err := tx.GetTick(side, tickID)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	// The tick goes first so that a new epoch is visible to the position reconciliation.
	newEpoch, err := tick.AddLiquidity(amount)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	position, err := tx.GetPosition(side, account, tickID)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	executed, err := position.AddLiquidity(tick, amount)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	if err := tx.SetTick(side, tickID, tick); err != nil {
		return osmomath.BigDec{}, err
	}
	if err := tx.SetPosition(side, account, tickID, position); err != nil {
		return osmomath.BigDec{}, err
	}

	if newEpoch {
		telemetry.EpochStartedCounter.Inc()
	}

	return o.creditProceeds(c, account, side, tickID, executed)
}

// creditProceeds credits the opposite asset for executed liquidity of the side asset.
func (o *OrderbookUseCaseImpl) creditProceeds(c orderbookdomain.Custody, account string, side orderbookdomain.Side, tickID int64, executed osmomath.BigDec) (osmomath.BigDec, error) {
	if executed.IsZero() {
		return osmomath.ZeroBigDec(), nil
	}

	proceeds, err := o.ladder.Convert(side, tickID, executed)
	if err != nil {
		return osmomath.BigDec{}, types.ConvertingAmountError{TickID: tickID, Err: err}
	}

	if err := c.Credit(side.Opposite(), proceeds, account); err != nil {
		return osmomath.BigDec{}, err
	}

	return proceeds, nil
}

func newTradeReceipt(side orderbookdomain.Side, tickID int64, amountIn osmomath.BigDec) orderbookdomain.TradeReceipt {
	return orderbookdomain.TradeReceipt{
		Side:        side,
		TickID:      tickID,
		AmountIn:    amountIn,
		ExecutedIn:  osmomath.ZeroBigDec(),
		ReceivedOut: osmomath.ZeroBigDec(),
		Placed:      osmomath.ZeroBigDec(),
		Refunded:    osmomath.ZeroBigDec(),
		Claimed:     osmomath.ZeroBigDec(),
	}
}

func newOperationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// errorKind returns the telemetry label of err.
func errorKind(err error) string {
	switch {
	case errors.As(err, &orderbookdomain.InsufficientLiquidityError{}):
		return "insufficient_liquidity"
	case errors.As(err, &orderbookdomain.InsufficientBalanceError{}):
		return "insufficient_balance"
	case errors.As(err, &orderbookdomain.ArithmeticOverflowError{}):
		return "arithmetic_overflow"
	case errors.As(err, &orderbookdomain.UninitializedTickError{}):
		return "uninitialized_tick"
	case errors.As(err, &orderbookdomain.InvalidSideError{}), errors.As(err, &orderbookdomain.NonPositiveAmountError{}):
		return "invalid_request"
	case errors.As(err, &types.CommitError{}):
		return "commit"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
