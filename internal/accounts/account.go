package accounts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerworks/teller/internal/model"
)

// Account is a typed ledger with a balance and an ordered transaction log.
// The log is append-only and the balance always equals the signed sum of
// its entries. Account is not safe for concurrent use.
type Account struct {
	number  int
	holder  string
	typ     model.AccountType
	balance decimal.Decimal
	txns    []model.Transaction
	env     *env
}

// Number returns the account number assigned at opening.
func (a *Account) Number() int { return a.number }

// Holder returns the account holder's display name.
func (a *Account) Holder() string { return a.holder }

// Type returns the account type.
func (a *Account) Type() model.AccountType { return a.typ }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// Len returns the number of logged transactions.
func (a *Account) Len() int { return len(a.txns) }

// Statement returns a copy of the transaction log in chronological order.
func (a *Account) Statement() []model.Transaction {
	out := make([]model.Transaction, len(a.txns))
	copy(out, a.txns)
	return out
}

// Deposit credits amount to the balance and logs a Deposit.
func (a *Account) Deposit(amount decimal.Decimal) (model.Transaction, error) {
	if a.env.strict && !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("deposit %s: %w", amount, ErrInvalidAmount)
	}
	a.balance = a.balance.Add(amount)
	return a.record(model.KindDeposit, amount), nil
}

// Withdraw debits amount from the balance and logs a Withdrawal. A
// withdrawal larger than the balance is rejected and leaves the account
// untouched.
func (a *Account) Withdraw(amount decimal.Decimal) (model.Transaction, error) {
	if a.env.strict && !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("withdraw %s: %w", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(a.balance) {
		return model.Transaction{}, fmt.Errorf("withdraw %s from account %d: %w", amount, a.number, ErrInsufficientFunds)
	}
	a.balance = a.balance.Sub(amount)
	return a.record(model.KindWithdrawal, amount), nil
}

// AddMonthlyInterest credits balance*rate to a savings account and logs a
// single Interest entry. It reports applied=false and changes nothing for
// accounts that are not interest-bearing.
func (a *Account) AddMonthlyInterest(rate decimal.Decimal) (tx model.Transaction, applied bool, err error) {
	if a.env.strict && rate.IsNegative() {
		return model.Transaction{}, false, fmt.Errorf("interest rate %s: %w", rate, ErrInvalidAmount)
	}
	if !a.typ.InterestBearing() {
		return model.Transaction{}, false, nil
	}
	interest := a.balance.Mul(rate)
	a.balance = a.balance.Add(interest)
	return a.record(model.KindInterest, interest), true, nil
}

// record appends a transaction. Timestamps never go backwards even if the
// clock does.
func (a *Account) record(kind model.TransactionKind, amount decimal.Decimal) model.Transaction {
	now := a.env.clock()
	if n := len(a.txns); n > 0 && now.Before(a.txns[n-1].Timestamp) {
		now = a.txns[n-1].Timestamp
	}
	tx := model.Transaction{
		ID:        a.env.newID(),
		Timestamp: now,
		Kind:      kind,
		Amount:    amount,
	}
	a.txns = append(a.txns, tx)
	return tx
}

type env struct {
	clock  func() time.Time
	newID  func() string
	strict bool
}
