package model

import "strings"

// AccountType classifies an account for interest eligibility.
type AccountType string

const (
	AccountTypeSavings  AccountType = "savings"
	AccountTypeChecking AccountType = "checking"
)

// ParseAccountType maps the free-text type typed at the menu onto an
// AccountType. Only "savings" (any case) is interest-bearing; every other
// value is treated as checking.
func ParseAccountType(s string) AccountType {
	if strings.EqualFold(strings.TrimSpace(s), string(AccountTypeSavings)) {
		return AccountTypeSavings
	}
	return AccountTypeChecking
}

// InterestBearing reports whether monthly interest applies to the type.
func (t AccountType) InterestBearing() bool {
	return strings.EqualFold(string(t), string(AccountTypeSavings))
}

// Title returns the display form, e.g. "Savings".
func (t AccountType) Title() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
