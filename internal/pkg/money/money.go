package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("invalid money amount")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
)

// Amounts cross the wire as decimal strings in major currency units
// ("19.99") and are stored as int64 minor units (1999).

// ParseCents parses a major-unit decimal string into minor units,
// rounding half away from zero at two decimal places.
func ParseCents(raw string) (int64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrAmountNotPositive
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// CentsString formats minor units as a major-unit decimal string ("1999" -> "19.99").
func CentsString(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
