package directory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tellerworks/teller/internal/accounts"
	"github.com/tellerworks/teller/internal/model"
	"github.com/tellerworks/teller/internal/users"
)

// Session is the login context of one user. It replaces a process-wide
// "current user" and is passed to whatever drives the bank.
type Session struct {
	dir  *Directory
	user *users.User
}

// InterestResult reports what AddMonthlyInterest did to one account.
type InterestResult struct {
	Account     int
	Applied     bool
	Transaction model.Transaction
}

// CurrentUser returns the logged-in user, or nil after Logout.
func (s *Session) CurrentUser() *users.User {
	if s == nil {
		return nil
	}
	return s.user
}

// LoggedIn reports whether the session still has a user.
func (s *Session) LoggedIn() bool {
	return s.CurrentUser() != nil
}

// Logout clears the session. Further operations fail with ErrNotLoggedIn.
func (s *Session) Logout() {
	if s == nil || s.user == nil {
		return
	}
	s.dir.log.WithField("username", s.user.Username()).Info("Session.Logout.Complete")
	s.user = nil
}

func (s *Session) current() (*users.User, error) {
	u := s.CurrentUser()
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	return u, nil
}

// OpenAccount opens an account from the directory's sequence and attaches
// it to the current user.
func (s *Session) OpenAccount(holder string, typ model.AccountType, initialDeposit decimal.Decimal) (*accounts.Account, error) {
	u, err := s.current()
	if err != nil {
		return nil, err
	}
	a, err := s.dir.seq.Open(holder, typ, initialDeposit)
	if err != nil {
		return nil, fmt.Errorf("opening account: %w", err)
	}
	u.AddAccount(a)
	s.logFor(a).WithField("amount", initialDeposit.String()).Info("Session.OpenAccount.Complete")
	return a, nil
}

// Account finds one of the current user's accounts by number.
func (s *Session) Account(number int) (*accounts.Account, error) {
	u, err := s.current()
	if err != nil {
		return nil, err
	}
	return u.Account(number)
}

// Deposit credits an account of the current user.
func (s *Session) Deposit(number int, amount decimal.Decimal) (model.Transaction, error) {
	a, err := s.Account(number)
	if err != nil {
		return model.Transaction{}, err
	}
	tx, err := a.Deposit(amount)
	if err != nil {
		return model.Transaction{}, err
	}
	s.logTx(a, tx).Info("Session.Deposit.Complete")
	return tx, nil
}

// Withdraw debits an account of the current user.
func (s *Session) Withdraw(number int, amount decimal.Decimal) (model.Transaction, error) {
	a, err := s.Account(number)
	if err != nil {
		return model.Transaction{}, err
	}
	tx, err := a.Withdraw(amount)
	if err != nil {
		s.logFor(a).WithError(err).WithField("amount", amount.String()).Warn("Session.Withdraw.Rejected")
		return model.Transaction{}, err
	}
	s.logTx(a, tx).Info("Session.Withdraw.Complete")
	return tx, nil
}

// Statement returns the transaction log of an account of the current user.
func (s *Session) Statement(number int) ([]model.Transaction, error) {
	a, err := s.Account(number)
	if err != nil {
		return nil, err
	}
	return a.Statement(), nil
}

// Balance returns the balance of an account of the current user.
func (s *Session) Balance(number int) (decimal.Decimal, error) {
	a, err := s.Account(number)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Balance(), nil
}

// AddMonthlyInterest applies rate to every account of the current user.
// Only savings accounts change.
func (s *Session) AddMonthlyInterest(rate decimal.Decimal) ([]InterestResult, error) {
	u, err := s.current()
	if err != nil {
		return nil, err
	}
	accts := u.Accounts()
	results := make([]InterestResult, 0, len(accts))
	for _, a := range accts {
		tx, applied, err := a.AddMonthlyInterest(rate)
		if err != nil {
			return results, fmt.Errorf("account %d: %w", a.Number(), err)
		}
		if applied {
			s.logTx(a, tx).Info("Session.AddMonthlyInterest.Applied")
		}
		results = append(results, InterestResult{Account: a.Number(), Applied: applied, Transaction: tx})
	}
	return results, nil
}

func (s *Session) logFor(a *accounts.Account) logrus.FieldLogger {
	return s.dir.log.WithFields(logrus.Fields{
		"username": s.user.Username(),
		"account":  a.Number(),
	})
}

func (s *Session) logTx(a *accounts.Account, tx model.Transaction) logrus.FieldLogger {
	return s.logFor(a).WithFields(logrus.Fields{
		"kind":    string(tx.Kind),
		"amount":  tx.Amount.String(),
		"balance": a.Balance().String(),
	})
}
