package users

import (
	"github.com/tellerworks/teller/internal/accounts"
	"github.com/tellerworks/teller/internal/model"
)

// User owns a credential pair and the accounts opened under it. Passwords
// are kept and compared verbatim.
type User struct {
	username string
	password string
	book     *accounts.Book
}

// New registers a user with no accounts.
func New(username, password string) *User {
	return &User{
		username: username,
		password: password,
		book:     accounts.NewBook(),
	}
}

// Username returns the name chosen at registration.
func (u *User) Username() string { return u.username }

// Authenticate reports whether password exactly matches the stored one.
func (u *User) Authenticate(password string) bool {
	return u.password == password
}

// AddAccount attaches an account to this user.
func (u *User) AddAccount(a *accounts.Account) {
	u.book.Add(a)
}

// Accounts returns the user's accounts in the order they were opened.
func (u *User) Accounts() []*accounts.Account {
	return u.book.All()
}

// AccountsOfType returns the user's accounts of one type, in opening order.
func (u *User) AccountsOfType(typ model.AccountType) []*accounts.Account {
	return u.book.ByType(typ)
}

// Account looks up one of the user's own accounts by number.
func (u *User) Account(number int) (*accounts.Account, error) {
	return u.book.Get(number)
}
