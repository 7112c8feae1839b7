package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value. It is encoded as a bare JSON number with two
// fractional digits so downstream consumers read it as a number, not a string.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses a decimal literal such as "75250.00".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// MustAmount is NewAmount for package-level fixtures; it panics on bad input.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	a.Decimal = d
	return nil
}
