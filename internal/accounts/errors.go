package accounts

import "errors"

var (
	// ErrInsufficientFunds rejects a withdrawal larger than the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount rejects non-positive deposits and withdrawals, and
	// negative opening deposits or interest rates, under strict amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAccountNotFound is returned when an account number is not in a Book.
	ErrAccountNotFound = errors.New("account not found")
)
