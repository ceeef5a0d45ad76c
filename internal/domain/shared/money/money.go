package money

import "github.com/shopspring/decimal"

// Money pairs a decimal amount with the display currency symbol used by the
// data document (e.g. "£"). The symbol is not validated.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// New constructs Money from a decimal amount.
func New(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// FromInt is a shortcut for whole amounts; useful in tests and fixtures.
func FromInt(amount int64, currency string) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: currency}
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(times)), Currency: m.Currency}
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// String renders the symbol followed by the shortest decimal form: "£400", "£85.5".
func (m Money) String() string {
	return m.Currency + m.Amount.String()
}
