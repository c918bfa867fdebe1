package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerworks/teller/internal/model"
)

func openN(t *testing.T, seq *Sequence, types ...model.AccountType) []*Account {
	t.Helper()
	var out []*Account
	for _, typ := range types {
		a, err := seq.Open("Holder", typ, dec("10"))
		require.NoError(t, err)
		out = append(out, a)
	}
	return out
}

func TestNewBook(t *testing.T) {
	seq := newTestSequence()
	accts := openN(t, seq, model.AccountTypeSavings, model.AccountTypeChecking)
	book := NewBook(accts...)

	assert.Equal(t, 2, book.Len())
	all := book.All()
	require.Len(t, all, 2)
	assert.Equal(t, 1000, all[0].Number())
	assert.Equal(t, 1001, all[1].Number())
}

func TestGet(t *testing.T) {
	seq := newTestSequence()
	book := NewBook(openN(t, seq, model.AccountTypeSavings)...)

	acct, err := book.Get(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, acct.Number())

	_, err = book.Get(9999)
	require.ErrorIs(t, err, ErrAccountNotFound)
	assert.Contains(t, err.Error(), "9999")
}

func TestAdd_Ordered(t *testing.T) {
	seq := newTestSequence()
	book := NewBook()
	for _, a := range openN(t, seq, model.AccountTypeChecking, model.AccountTypeSavings, model.AccountTypeChecking) {
		book.Add(a)
	}

	var numbers []int
	for _, a := range book.All() {
		numbers = append(numbers, a.Number())
	}
	assert.Equal(t, []int{1000, 1001, 1002}, numbers)
}

func TestAll_IsCopy(t *testing.T) {
	seq := newTestSequence()
	book := NewBook(openN(t, seq, model.AccountTypeChecking)...)

	all := book.All()
	all[0] = nil
	require.NotNil(t, book.All()[0])
}

func TestByType(t *testing.T) {
	seq := newTestSequence()
	book := NewBook(openN(t, seq,
		model.AccountTypeSavings,
		model.AccountTypeChecking,
		model.AccountTypeSavings,
	)...)

	savings := book.ByType(model.AccountTypeSavings)
	assert.Len(t, savings, 2)
	for _, a := range savings {
		assert.Equal(t, model.AccountTypeSavings, a.Type())
	}
	assert.Len(t, book.ByType(model.AccountTypeChecking), 1)
}
