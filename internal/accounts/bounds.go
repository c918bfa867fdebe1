package accounts

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bounds for amounts and rates entered by a user or read from config.
// Decimal arithmetic rescales operands to a common exponent, so an
// unbounded exponent such as 1e2000000000 would allocate billions of digits.
const (
	MaxDigits   = 30
	MaxExponent = 18
	MinExponent = -18
)

// CheckAmount rejects values whose precision or magnitude is outside the
// bounds above.
func CheckAmount(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp > MaxExponent || exp < MinExponent || amount.NumDigits() > MaxDigits {
		return fmt.Errorf("amount %s: %w", abbreviate(amount), ErrInvalidAmount)
	}
	return nil
}

// abbreviate renders a decimal without expanding its exponent.
func abbreviate(d decimal.Decimal) string {
	return fmt.Sprintf("%se%d", d.Coefficient().String(), d.Exponent())
}
