package invoice

import (
	"invoice-dashboard/internal/pkg/money"
)

// Amount is an invoice total in minor currency units.
// Form input arrives in major units; the conversion happens exactly once, here.
type Amount struct {
	cents int64
}

// NewAmount coerces a major-unit decimal string ("19.99") into an Amount.
// Returns money.ErrInvalidAmount or money.ErrAmountNotPositive on bad input.
func NewAmount(raw string) (Amount, error) {
	cents, err := money.ParseCents(raw)
	if err != nil {
		return Amount{}, err
	}
	return Amount{cents: cents}, nil
}

func NewAmountFromCents(cents int64) Amount {
	return Amount{cents: cents}
}

func (a Amount) Cents() int64 {
	return a.cents
}

func (a Amount) String() string {
	return money.CentsString(a.cents)
}
