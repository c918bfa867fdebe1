// Package directory holds the registered users and the login sessions
// handed out to the menu. Nothing here is safe for concurrent use.
package directory

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tellerworks/teller/internal/accounts"
	"github.com/tellerworks/teller/internal/users"
)

// Policy controls registration behaviour.
type Policy struct {
	// AllowDuplicateUsernames lets several users share a name; Login then
	// authenticates against the first one whose password matches.
	AllowDuplicateUsernames bool
}

// Directory is the registry of all users plus the account-number sequence
// shared by every account opened through it.
type Directory struct {
	users  []*users.User
	seq    *accounts.Sequence
	policy Policy
	log    logrus.FieldLogger
}

// Option configures a Directory.
type Option func(*Directory)

// WithSequence sets the sequence used to open accounts.
func WithSequence(seq *accounts.Sequence) Option {
	return func(d *Directory) { d.seq = seq }
}

// WithPolicy sets the registration policy.
func WithPolicy(p Policy) Option {
	return func(d *Directory) { d.policy = p }
}

// WithLogger sets the logger for directory events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Directory) { d.log = log }
}

// New creates an empty Directory.
func New(opts ...Option) *Directory {
	d := &Directory{}
	for _, opt := range opts {
		opt(d)
	}
	if d.seq == nil {
		d.seq = accounts.NewSequence(accounts.DefaultFirstNumber)
	}
	if d.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		d.log = quiet
	}
	return d
}

// Register creates and stores a new user.
func (d *Directory) Register(username, password string) (*users.User, error) {
	log := d.log.WithField("username", username)
	if !d.policy.AllowDuplicateUsernames {
		if _, ok := d.Lookup(username); ok {
			log.Warn("Directory.Register.Duplicate")
			return nil, fmt.Errorf("register %q: %w", username, ErrUsernameTaken)
		}
	}
	u := users.New(username, password)
	d.users = append(d.users, u)
	log.WithField("users", len(d.users)).Info("Directory.Register.Complete")
	return u, nil
}

// Login authenticates by linear search in registration order; the first
// user matching both username and password wins.
func (d *Directory) Login(username, password string) (*Session, error) {
	for _, u := range d.users {
		if u.Username() == username && u.Authenticate(password) {
			d.log.WithField("username", username).Info("Directory.Login.Complete")
			return &Session{dir: d, user: u}, nil
		}
	}
	d.log.WithField("username", username).Warn("Directory.Login.Failed")
	return nil, ErrInvalidCredentials
}

// Lookup returns the first user registered under username.
func (d *Directory) Lookup(username string) (*users.User, bool) {
	for _, u := range d.users {
		if u.Username() == username {
			return u, true
		}
	}
	return nil, false
}

// Users returns all registered users in registration order.
func (d *Directory) Users() []*users.User {
	out := make([]*users.User, len(d.users))
	copy(out, d.users)
	return out
}

// NextAccountNumber returns the number the next opened account will get.
func (d *Directory) NextAccountNumber() int {
	return d.seq.Peek()
}
