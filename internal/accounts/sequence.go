package accounts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tellerworks/teller/internal/id"
	"github.com/tellerworks/teller/internal/model"
)

// DefaultFirstNumber is the first account number a new Sequence hands out.
const DefaultFirstNumber = 1000

// Option configures a Sequence.
type Option func(*env)

// WithClock sets the time source used to stamp transactions.
func WithClock(clock func() time.Time) Option {
	return func(e *env) { e.clock = clock }
}

// WithIDGenerator sets the transaction ID source.
func WithIDGenerator(newID func() string) Option {
	return func(e *env) { e.newID = newID }
}

// WithStrictAmounts rejects non-positive deposits and withdrawals, negative
// opening deposits and negative interest rates.
func WithStrictAmounts(strict bool) Option {
	return func(e *env) { e.strict = strict }
}

// Sequence opens accounts and owns the account-number counter. Numbers are
// strictly increasing and never reused.
type Sequence struct {
	next int
	env  *env
}

// NewSequence creates a Sequence whose first account gets number first.
func NewSequence(first int, opts ...Option) *Sequence {
	e := &env{
		clock:  time.Now,
		newID:  id.NewTransactionID,
		strict: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return &Sequence{next: first, env: e}
}

// Peek returns the number the next opened account will receive.
func (s *Sequence) Peek() int { return s.next }

// Open creates an account with the next number and logs the initial
// deposit as its first transaction. A rejected opening does not consume a
// number.
func (s *Sequence) Open(holder string, typ model.AccountType, initialDeposit decimal.Decimal) (*Account, error) {
	if s.env.strict && initialDeposit.IsNegative() {
		return nil, fmt.Errorf("initial deposit %s: %w", initialDeposit, ErrInvalidAmount)
	}
	a := &Account{
		number:  s.next,
		holder:  holder,
		typ:     typ,
		balance: initialDeposit,
		env:     s.env,
	}
	s.next++
	a.record(model.KindInitialDeposit, initialDeposit)
	return a, nil
}
