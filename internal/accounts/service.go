package accounts

import (
	"fmt"

	"github.com/tellerworks/teller/internal/model"
)

// Book is an ordered collection of accounts with lookup by number.
type Book struct {
	accounts []*Account
	byNumber map[int]*Account
}

// NewBook creates a Book holding the given accounts in order.
func NewBook(accts ...*Account) *Book {
	b := &Book{byNumber: make(map[int]*Account, len(accts))}
	for _, a := range accts {
		b.Add(a)
	}
	return b
}

// Add appends an account. There is no upper bound on the count.
func (b *Book) Add(a *Account) {
	b.accounts = append(b.accounts, a)
	b.byNumber[a.Number()] = a
}

// All returns the accounts in the order they were added.
func (b *Book) All() []*Account {
	out := make([]*Account, len(b.accounts))
	copy(out, b.accounts)
	return out
}

// Len returns the number of accounts.
func (b *Book) Len() int { return len(b.accounts) }

// Get returns the account with the given number.
func (b *Book) Get(number int) (*Account, error) {
	a, ok := b.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", number, ErrAccountNotFound)
	}
	return a, nil
}

// ByType returns all accounts of the given type.
func (b *Book) ByType(accountType model.AccountType) []*Account {
	var result []*Account
	for _, a := range b.accounts {
		if a.Type() == accountType {
			result = append(result, a)
		}
	}
	return result
}
