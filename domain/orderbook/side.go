package orderbookdomain

import "fmt"

// Side identifies which of the two pool assets a balance, tick or position refers to.
// Liquidity on the Base side is denominated in the base asset and is consumed by
// orders paying with the quote asset, and vice versa.
type Side int8

const (
	Base Side = iota
	Quote
)

// Opposite returns the counterpart side.
func (s Side) Opposite() Side {
	if s == Base {
		return Quote
	}
	return Base
}

// IsValid returns true for Base and Quote.
func (s Side) IsValid() bool {
	return s == Base || s == Quote
}

func (s Side) String() string {
	switch s {
	case Base:
		return "base"
	case Quote:
		return "quote"
	default:
		return fmt.Sprintf("side(%d)", int8(s))
	}
}

// ParseSide parses "base" or "quote".
func ParseSide(str string) (Side, error) {
	switch str {
	case "base":
		return Base, nil
	case "quote":
		return Quote, nil
	default:
		return 0, InvalidSideError{Side: str}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, InvalidSideError{Side: s.String()}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
