package orderbookrepository_test

import (
	"context"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
	orderbookrepository "github.com/osmosis-labs/tickbook/orderbook/repository"
)

type LedgerRepositoryTestSuite struct {
	suite.Suite

	newRepository func() orderbookdomain.LedgerRepository
	repository    orderbookdomain.LedgerRepository
}

const (
	defaultAccount = "osmo1alice"
	otherAccount   = "osmo1bob"
)

func TestMemoryLedgerRepository(t *testing.T) {
	suite.Run(t, &LedgerRepositoryTestSuite{
		newRepository: func() orderbookdomain.LedgerRepository {
			return orderbookrepository.NewMemoryRepository()
		},
	})
}

func TestPebbleLedgerRepository(t *testing.T) {
	s := &LedgerRepositoryTestSuite{}
	s.newRepository = func() orderbookdomain.LedgerRepository {
		repository, err := orderbookrepository.NewPebbleRepository(s.T().TempDir())
		s.Require().NoError(err)
		return repository
	}
	suite.Run(t, s)
}

func (s *LedgerRepositoryTestSuite) SetupTest() {
	s.repository = s.newRepository()
}

func (s *LedgerRepositoryTestSuite) TearDownTest() {
	s.Require().NoError(s.repository.Close())
}

func (s *LedgerRepositoryTestSuite) initializedTick(amount int64) orderbookdomain.TickState {
	tick := orderbookdomain.NewTickState()
	_, err := tick.AddLiquidity(osmomath.NewBigDec(amount))
	s.Require().NoError(err)
	return tick
}

func (s *LedgerRepositoryTestSuite) commitTicks(side orderbookdomain.Side, ticks map[int64]orderbookdomain.TickState) {
	tx := s.repository.StartTx()
	for tickID, tick := range ticks {
		s.Require().NoError(tx.SetTick(side, tickID, tick))
	}
	s.Require().NoError(tx.Exec(context.Background()))
}

func (s *LedgerRepositoryTestSuite) TestDefaults() {
	tx := s.repository.StartTx()
	defer tx.Discard()

	tick, err := tx.GetTick(orderbookdomain.Base, 7)
	s.Require().NoError(err)
	s.Require().Equal(orderbookdomain.NewTickState(), tick)

	position, err := tx.GetPosition(orderbookdomain.Quote, defaultAccount, -7)
	s.Require().NoError(err)
	s.Require().Equal(orderbookdomain.NewPosition(), position)

	balance, err := tx.GetBalance(orderbookdomain.Base, defaultAccount)
	s.Require().NoError(err)
	s.Require().True(balance.IsZero())
}

func (s *LedgerRepositoryTestSuite) TestReadYourWrites() {
	tx := s.repository.StartTx()
	defer tx.Discard()

	tick := s.initializedTick(100)
	s.Require().NoError(tx.SetTick(orderbookdomain.Base, -12, tick))

	position := orderbookdomain.NewPosition()
	_, err := position.AddLiquidity(tick, osmomath.NewBigDec(100))
	s.Require().NoError(err)
	s.Require().NoError(tx.SetPosition(orderbookdomain.Base, defaultAccount, -12, position))

	s.Require().NoError(tx.SetBalance(orderbookdomain.Quote, defaultAccount, osmomath.MustNewBigDecFromStr("12.5")))

	actualTick, err := tx.GetTick(orderbookdomain.Base, -12)
	s.Require().NoError(err)
	s.Require().True(tick.TotalBalance.Equal(actualTick.TotalBalance))
	s.Require().Equal(tick.Epoch, actualTick.Epoch)

	actualPosition, err := tx.GetPosition(orderbookdomain.Base, defaultAccount, -12)
	s.Require().NoError(err)
	s.Require().True(position.TotalBalance.Equal(actualPosition.TotalBalance))

	// Other accounts and the other side are unaffected.
	otherPosition, err := tx.GetPosition(orderbookdomain.Base, otherAccount, -12)
	s.Require().NoError(err)
	s.Require().True(otherPosition.TotalBalance.IsZero())

	otherTick, err := tx.GetTick(orderbookdomain.Quote, -12)
	s.Require().NoError(err)
	s.Require().False(otherTick.IsInitialized())

	balance, err := tx.GetBalance(orderbookdomain.Quote, defaultAccount)
	s.Require().NoError(err)
	s.Require().True(osmomath.MustNewBigDecFromStr("12.5").Equal(balance))
}

func (s *LedgerRepositoryTestSuite) TestExecCommits() {
	tx := s.repository.StartTx()
	s.Require().NoError(tx.SetBalance(orderbookdomain.Base, defaultAccount, osmomath.NewBigDec(42)))
	s.Require().True(tx.IsActive())
	s.Require().NoError(tx.Exec(context.Background()))
	s.Require().False(tx.IsActive())

	// Using a finished transaction fails.
	s.Require().ErrorIs(tx.Exec(context.Background()), orderbookrepository.ErrTxNotActive)

	readTx := s.repository.StartTx()
	defer readTx.Discard()

	balance, err := readTx.GetBalance(orderbookdomain.Base, defaultAccount)
	s.Require().NoError(err)
	s.Require().True(osmomath.NewBigDec(42).Equal(balance))
}

func (s *LedgerRepositoryTestSuite) TestDiscardDropsWrites() {
	tx := s.repository.StartTx()
	s.Require().NoError(tx.SetBalance(orderbookdomain.Base, defaultAccount, osmomath.NewBigDec(42)))
	s.Require().NoError(tx.SetTick(orderbookdomain.Base, 3, s.initializedTick(10)))
	tx.Discard()
	s.Require().False(tx.IsActive())

	readTx := s.repository.StartTx()
	defer readTx.Discard()

	balance, err := readTx.GetBalance(orderbookdomain.Base, defaultAccount)
	s.Require().NoError(err)
	s.Require().True(balance.IsZero())

	_, found, err := s.repository.NextInitializedTick(orderbookdomain.Base, 0, true)
	s.Require().NoError(err)
	s.Require().False(found)
}

func (s *LedgerRepositoryTestSuite) TestExecIgnoresCancelledContext() {
	tx := s.repository.StartTx()
	defer tx.Discard()
	s.Require().NoError(tx.SetBalance(orderbookdomain.Base, defaultAccount, osmomath.NewBigDec(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Require().NoError(tx.Exec(ctx))

	reader := s.repository.StartTx()
	defer reader.Discard()

	balance, err := reader.GetBalance(orderbookdomain.Base, defaultAccount)
	s.Require().NoError(err)
	s.Require().True(balance.Equal(osmomath.NewBigDec(1)))
}

func (s *LedgerRepositoryTestSuite) TestNextInitializedTick() {
	drained := s.initializedTick(5)
	s.Require().NoError(drained.ApplyTrade(osmomath.NewBigDec(5)))

	s.commitTicks(orderbookdomain.Base, map[int64]orderbookdomain.TickState{
		-300: s.initializedTick(1),
		-2:   s.initializedTick(1),
		0:    drained,
		5:    s.initializedTick(1),
		9000: s.initializedTick(1),
	})
	s.commitTicks(orderbookdomain.Quote, map[int64]orderbookdomain.TickState{
		1: s.initializedTick(1),
	})

	tests := map[string]struct {
		side      orderbookdomain.Side
		from      int64
		ascending bool

		expectedTickID int64
		expectedFound  bool
	}{
		"ascending from inclusive start": {
			side: orderbookdomain.Base, from: -2, ascending: true,
			expectedTickID: -2, expectedFound: true,
		},
		"ascending skips drained tick": {
			side: orderbookdomain.Base, from: -1, ascending: true,
			expectedTickID: 5, expectedFound: true,
		},
		"ascending past last": {
			side: orderbookdomain.Base, from: 9001, ascending: true,
		},
		"descending from inclusive start": {
			side: orderbookdomain.Base, from: 5, ascending: false,
			expectedTickID: 5, expectedFound: true,
		},
		"descending skips drained tick": {
			side: orderbookdomain.Base, from: 4, ascending: false,
			expectedTickID: -2, expectedFound: true,
		},
		"descending across negative ticks": {
			side: orderbookdomain.Base, from: -3, ascending: false,
			expectedTickID: -300, expectedFound: true,
		},
		"descending below first": {
			side: orderbookdomain.Base, from: -301, ascending: false,
		},
		"sides are independent": {
			side: orderbookdomain.Quote, from: -1000, ascending: true,
			expectedTickID: 1, expectedFound: true,
		},
	}

	for name, tc := range tests {
		tc := tc
		s.Run(name, func() {
			tickID, found, err := s.repository.NextInitializedTick(tc.side, tc.from, tc.ascending)
			s.Require().NoError(err)
			s.Require().Equal(tc.expectedFound, found)
			if tc.expectedFound {
				s.Require().Equal(tc.expectedTickID, tickID)
			}
		})
	}
}
