package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MinorUnits converts the amount to integer minor currency units
// (e.g. 10.00 USD -> 1000 cents), truncating any sub-cent remainder.
func (m Money) MinorUnits() int64 {
	return m.Amount.Shift(2).IntPart()
}

// MulQuantity returns the line total for the given quantity.
func (m Money) MulQuantity(quantity int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Currency: m.Currency,
	}
}
