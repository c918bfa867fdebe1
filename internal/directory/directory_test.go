package directory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellerworks/teller/internal/accounts"
	"github.com/tellerworks/teller/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRegisterAndLogin(t *testing.T) {
	d := New()
	u, err := d.Register("alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username())

	s, err := d.Login("alice", "pw1")
	require.NoError(t, err)
	assert.True(t, s.LoggedIn())
	assert.Same(t, u, s.CurrentUser())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	d := New()
	_, err := d.Register("alice", "pw1")
	require.NoError(t, err)

	tests := []struct {
		username, password string
	}{
		{"alice", "PW1"},
		{"alice", ""},
		{"Alice", "pw1"},
		{"bob", "pw1"},
	}
	for _, tt := range tests {
		s, err := d.Login(tt.username, tt.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "%s/%s", tt.username, tt.password)
		assert.Nil(t, s)
	}
}

func TestLogin_EmptyDirectory(t *testing.T) {
	_, err := New().Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	d := New()
	_, err := d.Register("alice", "pw1")
	require.NoError(t, err)

	_, err = d.Register("alice", "pw2")
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, d.Users(), 1)
}

func TestRegister_DuplicateAllowed_FirstMatchWins(t *testing.T) {
	d := New(WithPolicy(Policy{AllowDuplicateUsernames: true}))
	first, err := d.Register("alice", "same")
	require.NoError(t, err)
	second, err := d.Register("alice", "same")
	require.NoError(t, err)
	third, err := d.Register("alice", "other")
	require.NoError(t, err)
	require.Len(t, d.Users(), 3)

	s, err := d.Login("alice", "same")
	require.NoError(t, err)
	assert.Same(t, first, s.CurrentUser())
	assert.NotSame(t, second, s.CurrentUser())

	s, err = d.Login("alice", "other")
	require.NoError(t, err)
	assert.Same(t, third, s.CurrentUser())
}

func TestLookup(t *testing.T) {
	d := New()
	_, err := d.Register("alice", "pw")
	require.NoError(t, err)

	u, ok := d.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username())

	_, ok = d.Lookup("nobody")
	assert.False(t, ok)
}

func TestAccountNumbersSharedAcrossUsers(t *testing.T) {
	d := New()
	_, err := d.Register("alice", "a")
	require.NoError(t, err)
	_, err = d.Register("bob", "b")
	require.NoError(t, err)
	assert.Equal(t, 1000, d.NextAccountNumber())

	alice, err := d.Login("alice", "a")
	require.NoError(t, err)
	bob, err := d.Login("bob", "b")
	require.NoError(t, err)

	a1, err := alice.OpenAccount("Alice", model.AccountTypeSavings, dec("10"))
	require.NoError(t, err)
	b1, err := bob.OpenAccount("Bob", model.AccountTypeChecking, dec("10"))
	require.NoError(t, err)
	a2, err := alice.OpenAccount("Alice", model.AccountTypeChecking, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, 1000, a1.Number())
	assert.Equal(t, 1001, b1.Number())
	assert.Equal(t, 1002, a2.Number())
	assert.Equal(t, 1003, d.NextAccountNumber())
}

func TestWithSequence(t *testing.T) {
	d := New(WithSequence(accounts.NewSequence(7000)))
	_, err := d.Register("alice", "a")
	require.NoError(t, err)
	s, err := d.Login("alice", "a")
	require.NoError(t, err)

	a, err := s.OpenAccount("Alice", model.AccountTypeChecking, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, 7000, a.Number())
}

func TestLogging_NoPasswords(t *testing.T) {
	logger, hook := test.NewNullLogger()
	d := New(WithLogger(logger))

	_, err := d.Register("alice", "hunter2")
	require.NoError(t, err)
	_, err = d.Login("alice", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	s, err := d.Login("alice", "hunter2")
	require.NoError(t, err)
	s.Logout()

	entries := hook.AllEntries()
	require.Len(t, entries, 4)
	assert.Equal(t, "Directory.Register.Complete", entries[0].Message)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "Session.Logout.Complete", entries[3].Message)
	for _, e := range entries {
		assert.Equal(t, "alice", e.Data["username"])
		for _, v := range e.Data {
			assert.NotEqual(t, "hunter2", v)
			assert.NotEqual(t, "wrong-pass", v)
		}
	}
}
