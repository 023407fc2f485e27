package tickmath

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/tickbook/domain/orderbook"
)

const (
	// Bits of the scaled integer taken by the 36 fractional digits of osmomath.BigDec.
	decimalPrecisionBits = 120
	// Upper bound on the bit length of any scaled intermediate value.
	// Well below the osmomath.BigDec overflow limit.
	maxScaledBitLen = 240 + decimalPrecisionBits
)

var (
	// DefaultTickIncrement is the per-tick price step: price(tick) = (1 + increment)^tick.
	DefaultTickIncrement = osmomath.NewBigDecWithPrec(1, 3)
	// DefaultMaxTick bounds |tick|. 1.001^35000 is about 1.5e15 and 1.001^-35000 about 6.6e-16.
	DefaultMaxTick int64 = 35_000

	// minPrice keeps at least 18 significant digits in the smallest price.
	minPrice = osmomath.NewBigDecWithPrec(1, 18)
)

// PriceLadder maps tick indexes to price ratios and converts quantities between the two assets.
// A price is quote per unit of base.
type PriceLadder struct {
	base    osmomath.BigDec
	maxTick int64
	cache   *lru.Cache[int64, osmomath.BigDec]
}

// NewPriceLadder creates a ladder with the given per-tick increment and supported tick range.
// Errors if the extreme ticks do not fit the precision budget.
func NewPriceLadder(tickIncrement osmomath.BigDec, maxTick int64, cacheSize int) (*PriceLadder, error) {
	if !tickIncrement.IsPositive() || tickIncrement.GTE(osmomath.OneBigDec()) {
		return nil, fmt.Errorf("tick increment must be in (0, 1), got %s", tickIncrement)
	}
	if maxTick <= 0 {
		return nil, fmt.Errorf("max tick must be positive, got %d", maxTick)
	}
	if cacheSize <= 0 {
		return nil, fmt.Errorf("price cache size must be positive, got %d", cacheSize)
	}

	cache, err := lru.New[int64, osmomath.BigDec](cacheSize)
	if err != nil {
		return nil, err
	}

	ladder := &PriceLadder{
		base:    osmomath.OneBigDec().Add(tickIncrement),
		maxTick: maxTick,
		cache:   cache,
	}

	if _, err := ladder.TickToPrice(maxTick); err != nil {
		return nil, fmt.Errorf("max tick %d does not fit the fixed-point range: %w", maxTick, err)
	}

	lowest, err := ladder.TickToPrice(-maxTick)
	if err != nil {
		return nil, fmt.Errorf("min tick %d does not fit the fixed-point range: %w", -maxTick, err)
	}
	if lowest.LT(minPrice) {
		return nil, fmt.Errorf("price at tick %d is %s, below the precision budget %s", -maxTick, lowest, minPrice)
	}

	return ladder, nil
}

// MaxTick returns the largest supported tick magnitude.
func (l *PriceLadder) MaxTick() int64 {
	return l.maxTick
}

// ValidateTick errors if the tick is outside of the supported range.
func (l *PriceLadder) ValidateTick(tickID int64) error {
	if tickID > l.maxTick || tickID < -l.maxTick {
		return orderbookdomain.ArithmeticOverflowError{Operation: "tick range", TickID: tickID}
	}
	return nil
}

// TickToPrice returns base^tick for non-negative ticks and 1/base^|tick| otherwise.
func (l *PriceLadder) TickToPrice(tickID int64) (osmomath.BigDec, error) {
	if err := l.ValidateTick(tickID); err != nil {
		return osmomath.BigDec{}, err
	}

	if price, ok := l.cache.Get(tickID); ok {
		return price, nil
	}

	exponent := uint64(tickID)
	if tickID < 0 {
		exponent = uint64(-tickID)
	}

	power, err := powerInteger(l.base, exponent, tickID)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	price := power
	if tickID < 0 {
		price, err = checkedQuo(osmomath.OneBigDec(), power, tickID)
		if err != nil {
			return osmomath.BigDec{}, err
		}
	}

	l.cache.Add(tickID, price)

	return price, nil
}

// Convert converts quantity of the side asset into the opposite asset at the tick price.
// Base converts to quote by multiplying, quote converts to base by dividing. Both truncate.
func (l *PriceLadder) Convert(side orderbookdomain.Side, tickID int64, quantity osmomath.BigDec) (osmomath.BigDec, error) {
	price, err := l.TickToPrice(tickID)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	if side == orderbookdomain.Base {
		return checkedMul(quantity, price, tickID)
	}
	return checkedQuo(quantity, price, tickID)
}

// powerInteger computes base^exponent by repeated squaring, checking every product for overflow.
func powerInteger(base osmomath.BigDec, exponent uint64, tickID int64) (osmomath.BigDec, error) {
	result := osmomath.OneBigDec()
	square := base

	var err error
	for exponent > 0 {
		if exponent&1 == 1 {
			result, err = checkedMul(result, square, tickID)
			if err != nil {
				return osmomath.BigDec{}, err
			}
		}

		exponent >>= 1
		if exponent == 0 {
			break
		}

		square, err = checkedMul(square, square, tickID)
		if err != nil {
			return osmomath.BigDec{}, err
		}
	}

	return result, nil
}

func checkedMul(a, b osmomath.BigDec, tickID int64) (osmomath.BigDec, error) {
	if a.BigInt().BitLen()+b.BigInt().BitLen()-decimalPrecisionBits > maxScaledBitLen {
		return osmomath.BigDec{}, orderbookdomain.ArithmeticOverflowError{Operation: "multiplication", TickID: tickID}
	}
	return a.MulTruncate(b), nil
}

func checkedQuo(a, b osmomath.BigDec, tickID int64) (osmomath.BigDec, error) {
	if b.IsZero() {
		return osmomath.BigDec{}, orderbookdomain.ArithmeticOverflowError{Operation: "division by zero", TickID: tickID}
	}
	if a.BigInt().BitLen()+decimalPrecisionBits-b.BigInt().BitLen()+1 > maxScaledBitLen {
		return osmomath.BigDec{}, orderbookdomain.ArithmeticOverflowError{Operation: "division", TickID: tickID}
	}
	return a.QuoTruncate(b), nil
}
