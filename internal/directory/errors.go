package directory

import "errors"

var (
	// ErrInvalidCredentials means no registered user matched the
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken rejects a registration when duplicates are disallowed.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrNotLoggedIn is returned by Session operations after Logout.
	ErrNotLoggedIn = errors.New("not logged in")
)
