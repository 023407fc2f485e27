package orderbookdomain_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/osmosis/osmomath"
	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

// deposit mirrors the ledger ordering: the tick is mutated first, then the position is synced against it.
func deposit(t *testing.T, tick *orderbookdomain.TickState, position *orderbookdomain.Position, amount osmomath.BigDec) osmomath.BigDec {
	t.Helper()

	_, err := tick.AddLiquidity(amount)
	require.NoError(t, err)

	executed, err := position.AddLiquidity(*tick, amount)
	require.NoError(t, err)

	return executed
}

func TestPositionProRataFairness(t *testing.T) {
	orders := map[string][]string{
		"A reconciles first": {"A", "B"},
		"B reconciles first": {"B", "A"},
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			tick := orderbookdomain.NewTickState()
			positions := map[string]*orderbookdomain.Position{
				"A": ptr(orderbookdomain.NewPosition()),
				"B": ptr(orderbookdomain.NewPosition()),
			}

			deposit(t, &tick, positions["A"], osmomath.NewBigDec(100))
			deposit(t, &tick, positions["B"], osmomath.NewBigDec(50))

			require.NoError(t, tick.ApplyTrade(osmomath.NewBigDec(15)))

			expected := map[string]osmomath.BigDec{
				"A": osmomath.NewBigDec(10),
				"B": osmomath.NewBigDec(5),
			}
			for _, account := range order {
				executed := positions[account].Reconcile(tick)
				assert.Equal(t, expected[account].String(), executed.String(), account)
			}

			// conservation
			sum := positions["A"].TotalBalance.Add(positions["B"].TotalBalance)
			assert.Equal(t, tick.TotalBalance.String(), sum.String())
		})
	}
}

func TestPositionReconcileIsIdempotent(t *testing.T) {
	tick := orderbookdomain.NewTickState()
	position := orderbookdomain.NewPosition()
	deposit(t, &tick, &position, osmomath.NewBigDec(40))

	require.NoError(t, tick.ApplyTrade(osmomath.NewBigDec(10)))

	assert.Equal(t, osmomath.NewBigDec(10).String(), position.Reconcile(tick).String())
	assert.True(t, position.Reconcile(tick).IsZero())
	assert.Equal(t, osmomath.NewBigDec(30).String(), position.TotalBalance.String())
}

func TestPositionEpochRestart(t *testing.T) {
	tick := orderbookdomain.NewTickState()
	seller := orderbookdomain.NewPosition()
	deposit(t, &tick, &seller, osmomath.NewBigDec(10))

	// drained by a trade
	require.NoError(t, tick.ApplyTrade(osmomath.NewBigDec(10)))

	// a new depositor reopens the tick
	newcomer := orderbookdomain.NewPosition()
	executed := deposit(t, &tick, &newcomer, osmomath.NewBigDec(5))
	assert.True(t, executed.IsZero())
	assert.Equal(t, uint64(2), tick.Epoch)

	// the first seller gets exactly what was executed in the old epoch, nothing of the new liquidity
	assert.Equal(t, osmomath.NewBigDec(10).String(), seller.Reconcile(tick).String())
	assert.True(t, seller.TotalBalance.IsZero())
	assert.Equal(t, tick.Epoch, seller.EpochSnapshot)

	assert.True(t, seller.Reconcile(tick).IsZero())
	assert.Equal(t, osmomath.NewBigDec(5).String(), newcomer.TotalBalance.String())
}

func TestPositionLateDepositDoesNotShareEarlierExecutions(t *testing.T) {
	tick := orderbookdomain.NewTickState()
	early := orderbookdomain.NewPosition()
	late := orderbookdomain.NewPosition()

	deposit(t, &tick, &early, osmomath.NewBigDec(100))
	require.NoError(t, tick.ApplyTrade(osmomath.NewBigDec(50)))

	deposit(t, &tick, &late, osmomath.NewBigDec(50))
	require.NoError(t, tick.ApplyTrade(osmomath.NewBigDec(50)))

	assert.Equal(t, osmomath.NewBigDec(75).String(), early.Reconcile(tick).String())
	assert.Equal(t, osmomath.NewBigDec(25).String(), late.Reconcile(tick).String())
	assert.Equal(t, tick.TotalBalance.String(), early.TotalBalance.Add(late.TotalBalance).String())
}

func TestPositionRemoveLiquidity(t *testing.T) {
	tests := map[string]struct {
		amount           osmomath.BigDec
		expectedExecuted osmomath.BigDec
		expectedBalance  osmomath.BigDec
		err              bool
	}{
		"withdraw within reconciled balance": {
			amount:           osmomath.NewBigDec(60),
			expectedExecuted: osmomath.NewBigDec(20),
			expectedBalance:  osmomath.NewBigDec(20),
		},
		"withdraw whole reconciled balance": {
			amount:           osmomath.NewBigDec(80),
			expectedExecuted: osmomath.NewBigDec(20),
			expectedBalance:  osmomath.ZeroBigDec(),
		},
		"withdraw above reconciled balance": {
			amount: osmomath.NewBigDec(81),
			err:    true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tick := orderbookdomain.NewTickState()
			position := orderbookdomain.NewPosition()
			deposit(t, &tick, &position, osmomath.NewBigDec(100))
			require.NoError(t, tick.ApplyTrade(osmomath.NewBigDec(20)))

			before := position

			executed, err := position.RemoveLiquidity(tick, tc.amount)
			if tc.err {
				var balanceErr orderbookdomain.InsufficientBalanceError
				require.ErrorAs(t, err, &balanceErr)
				assert.Equal(t, osmomath.NewBigDec(80).String(), balanceErr.Available.String())
				assert.Equal(t, before, position)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tc.expectedExecuted.String(), executed.String())
			assert.Equal(t, tc.expectedBalance.String(), position.TotalBalance.String())
		})
	}
}

// Random deposits and trades at a single tick, compared against exact rational pro-rata math.
// No position is ever credited more than the exact executed amount and the unexecuted balances
// stay conserved up to rounding dust.
func TestPositionNoOverCredit(t *testing.T) {
	const (
		accounts = 5
		steps    = 400
	)

	rng := rand.New(rand.NewSource(42))
	dust := big.NewRat(1, 1_000_000_000_000) // 1e-12

	tick := orderbookdomain.NewTickState()
	positions := make([]orderbookdomain.Position, accounts)
	for i := range positions {
		positions[i] = orderbookdomain.NewPosition()
	}

	exactRemaining := make([]*big.Rat, accounts)
	exactDeposited := make([]*big.Rat, accounts)
	credited := make([]*big.Rat, accounts)
	for i := 0; i < accounts; i++ {
		exactRemaining[i] = new(big.Rat)
		exactDeposited[i] = new(big.Rat)
		credited[i] = new(big.Rat)
	}

	for step := 0; step < steps; step++ {
		i := rng.Intn(accounts)

		switch {
		case tick.TotalBalance.IsZero() || rng.Intn(3) == 0:
			amount := osmomath.NewBigDec(int64(rng.Intn(1000) + 1))
			executed := deposit(t, &tick, &positions[i], amount)
			credited[i].Add(credited[i], toRat(executed))

			exactRemaining[i].Add(exactRemaining[i], toRat(amount))
			exactDeposited[i].Add(exactDeposited[i], toRat(amount))
		default:
			traded := tick.TotalBalance.MulTruncate(osmomath.NewBigDecWithPrec(int64(rng.Intn(500)+1), 3))
			if rng.Intn(5) == 0 {
				traded = tick.TotalBalance
			}

			exactTotal := toRat(tick.TotalBalance)
			factor := new(big.Rat).Quo(new(big.Rat).Sub(exactTotal, toRat(traded)), exactTotal)
			for j := range exactRemaining {
				exactRemaining[j].Mul(exactRemaining[j], factor)
			}

			require.NoError(t, tick.ApplyTrade(traded))
		}

		if rng.Intn(4) == 0 {
			j := rng.Intn(accounts)
			credited[j].Add(credited[j], toRat(positions[j].Reconcile(tick)))
		}

		for j := 0; j < accounts; j++ {
			exactExecuted := new(big.Rat).Sub(exactDeposited[j], exactRemaining[j])
			require.True(t, credited[j].Cmp(exactExecuted) <= 0, "account %d over-credited at step %d", j, step)
		}
	}

	sum := new(big.Rat)
	for j := range positions {
		credited[j].Add(credited[j], toRat(positions[j].Reconcile(tick)))
		sum.Add(sum, toRat(positions[j].TotalBalance))
	}

	diff := new(big.Rat).Sub(sum, toRat(tick.TotalBalance))
	assert.True(t, diff.Sign() >= 0, "positions hold less than the tick")
	assert.True(t, diff.Cmp(dust) <= 0, "conservation drift %s", diff.FloatString(40))
}

func toRat(d osmomath.BigDec) *big.Rat {
	r, ok := new(big.Rat).SetString(d.String())
	if !ok {
		panic("invalid decimal " + d.String())
	}
	return r
}

func ptr[T any](v T) *T {
	return &v
}
