package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// NewTransactionID returns a fresh random transaction identifier.
func NewTransactionID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// ParseAccountNumber parses an account number typed at the menu.
func ParseAccountNumber(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid account number %q: must be positive", s)
	}
	return n, nil
}

// ShortTransactionID returns the first block of a UUID for compact display.
// "3f0c9a52-..." -> "3f0c9a52"
func ShortTransactionID(txID string) string {
	if i := strings.IndexByte(txID, '-'); i > 0 {
		return txID[:i]
	}
	return txID
}
