package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags the balance-affecting event a Transaction records.
type TransactionKind string

const (
	KindInitialDeposit TransactionKind = "InitialDeposit"
	KindDeposit        TransactionKind = "Deposit"
	KindWithdrawal     TransactionKind = "Withdrawal"
	KindInterest       TransactionKind = "Interest"
)

// Label is the human-readable kind used on printed statements.
func (k TransactionKind) Label() string {
	if k == KindInitialDeposit {
		return "Initial Deposit"
	}
	return string(k)
}

// Sign is -1 for debits and +1 for credits.
func (k TransactionKind) Sign() int64 {
	if k == KindWithdrawal {
		return -1
	}
	return 1
}

// Transaction is one immutable entry in an account's log. Amount is always
// stored as entered; its direction comes from Kind.
type Transaction struct {
	ID        string
	Timestamp time.Time
	Kind      TransactionKind
	Amount    decimal.Decimal
}

// SignedAmount returns Amount with the direction implied by Kind applied.
func (t Transaction) SignedAmount() decimal.Decimal {
	return t.Amount.Mul(decimal.NewFromInt(t.Kind.Sign()))
}
