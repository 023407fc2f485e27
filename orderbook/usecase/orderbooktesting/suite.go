package orderbooktesting

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
	"github.com/osmosis-labs/tickbook/log"
	orderbookrepository "github.com/osmosis-labs/tickbook/orderbook/repository"
	"github.com/osmosis-labs/tickbook/orderbook/tickmath"
	orderbookusecase "github.com/osmosis-labs/tickbook/orderbook/usecase"
)

const (
	// DefaultPriceCacheSize is the price cache size used by test ladders.
	DefaultPriceCacheSize = 128
)

// OrderbookTestHelper is a helper struct for the order engine tests.
// Every test starts from an empty in-memory ledger.
type OrderbookTestHelper struct {
	suite.Suite

	Repository orderbookdomain.LedgerRepository
	Ladder     *tickmath.PriceLadder
	Engine     *orderbookusecase.OrderbookUseCaseImpl
}

// SetupTest creates a fresh engine over an in-memory ledger with the default ladder.
func (s *OrderbookTestHelper) SetupTest() {
	s.SetupEngine(orderbookrepository.NewMemoryRepository())
}

// SetupEngine creates a fresh engine over repository with the default ladder.
func (s *OrderbookTestHelper) SetupEngine(repository orderbookdomain.LedgerRepository) {
	ladder, err := tickmath.NewPriceLadder(tickmath.DefaultTickIncrement, tickmath.DefaultMaxTick, DefaultPriceCacheSize)
	s.Require().NoError(err)

	s.Repository = repository
	s.Ladder = ladder
	s.Engine = orderbookusecase.New(repository, ladder, &log.NoOpLogger{})
}

// Dec parses a decimal string, failing the test on error.
func (s *OrderbookTestHelper) Dec(str string) osmomath.BigDec {
	d, err := osmomath.NewBigDecFromStr(str)
	s.Require().NoError(err)
	return d
}

// Fund deposits amount of the side asset to account.
func (s *OrderbookTestHelper) Fund(account string, side orderbookdomain.Side, amount string) {
	_, err := s.Engine.Deposit(context.Background(), account, side, s.Dec(amount))
	s.Require().NoError(err)
}

// RequireBalance asserts the custody balance of account.
func (s *OrderbookTestHelper) RequireBalance(account string, side orderbookdomain.Side, expected string) {
	balance, err := s.Engine.GetBalance(context.Background(), account, side)
	s.Require().NoError(err)
	s.Require().True(s.Dec(expected).Equal(balance), "%s %s balance: expected %s, got %s", account, side, expected, balance)
}

// RequireTick asserts the total balance and epoch of a tick.
func (s *OrderbookTestHelper) RequireTick(side orderbookdomain.Side, tickID int64, expectedTotal string, expectedEpoch uint64) orderbookdomain.TickState {
	tick, err := s.Engine.GetTick(context.Background(), side, tickID)
	s.Require().NoError(err)
	s.Require().True(s.Dec(expectedTotal).Equal(tick.TotalBalance), "tick (%s, %d) total: expected %s, got %s", side, tickID, expectedTotal, tick.TotalBalance)
	s.Require().Equal(expectedEpoch, tick.Epoch)
	return tick
}

// RequireDecEqual asserts two decimals are equal.
func (s *OrderbookTestHelper) RequireDecEqual(expected string, actual osmomath.BigDec) {
	s.Require().True(s.Dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
