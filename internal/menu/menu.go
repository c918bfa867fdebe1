// Package menu drives a Directory from a line-oriented text menu.
package menu

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tellerworks/teller/internal/accounts"
	"github.com/tellerworks/teller/internal/auditlog"
	"github.com/tellerworks/teller/internal/directory"
	"github.com/tellerworks/teller/internal/id"
	"github.com/tellerworks/teller/internal/model"
)

// ErrInvalidMenuChoice is reported for input that names no menu item.
var ErrInvalidMenuChoice = errors.New("invalid menu choice")

// errLineTooLong abandons the current action; the menu is shown again.
var errLineTooLong = errors.New("input line too long")

// maxLineBytes bounds a single line of input.
const maxLineBytes = 64 * 1024

// Options configures a Menu. Zero values fall back to the defaults noted.
type Options struct {
	BankName        string          // "Teller Bank"
	CurrencySymbol  string          // "$"
	InterestRate    decimal.Decimal // applied by "Add Monthly Interest"
	StatementFormat string          // accounts.StatementTable
	Trail           *auditlog.Trail // nil disables the audit trail
	Logger          *logrus.Logger  // ledger checks run only at debug level
}

// Menu reads choices from in and writes prompts and results to out.
// It holds at most one Session at a time.
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	dir     *directory.Directory
	opts    Options
	log     *logrus.Logger
	session *directory.Session
}

// New creates a Menu over dir.
func New(in io.Reader, out io.Writer, dir *directory.Directory, opts Options) *Menu {
	if opts.BankName == "" {
		opts.BankName = "Teller Bank"
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}
	if opts.StatementFormat == "" {
		opts.StatementFormat = accounts.StatementTable
	}
	log := opts.Logger
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	return &Menu{
		in:   bufio.NewReader(in),
		out:  out,
		dir:  dir,
		opts: opts,
		log:  log,
	}
}

// Run loops over the top-level and banking menus until the user exits or
// the input ends. End of input is a clean exit.
func (m *Menu) Run() error {
	for {
		var (
			done bool
			err  error
		)
		if m.session.LoggedIn() {
			err = m.bankingMenu()
		} else {
			done, err = m.topMenu()
		}
		if errors.Is(err, io.EOF) {
			m.println()
			return nil
		}
		if errors.Is(err, errLineTooLong) {
			m.log.WithError(err).Debug("Menu.ReadLine.TooLong")
			m.println("Input line too long, please try again.")
			continue
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (m *Menu) topMenu() (bool, error) {
	m.println("Welcome to " + m.opts.BankName)
	m.println("1. Register")
	m.println("2. Login")
	m.println("3. Exit")

	choice, err := m.choose(3)
	if err != nil {
		return false, err
	}
	switch choice {
	case 0:
		m.println("Invalid option, please try again.")
	case 1:
		return false, m.register()
	case 2:
		return false, m.login()
	case 3:
		m.println("Goodbye!")
		return true, nil
	}
	return false, nil
}

func (m *Menu) bankingMenu() error {
	m.println()
	m.println("Banking Menu")
	m.println("1. Open Account")
	m.println("2. Deposit")
	m.println("3. Withdraw")
	m.println("4. View Statement")
	m.println("5. Check Balance")
	m.println("6. Add Monthly Interest (Savings)")
	m.println("7. List Accounts")
	m.println("8. Logout")

	choice, err := m.choose(8)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return m.openAccount()
	case 2:
		return m.deposit()
	case 3:
		return m.withdraw()
	case 4:
		return m.statement()
	case 5:
		return m.balance()
	case 6:
		return m.addInterest()
	case 7:
		return m.listAccounts()
	case 8:
		m.logout()
	default:
		m.println("Invalid option, please try again.")
	}
	return nil
}

// choose reads a menu choice in [1, last]. An unusable choice yields 0 and
// is logged; only input errors are returned.
func (m *Menu) choose(last int) (int, error) {
	line, err := m.readLine()
	if err != nil {
		return 0, err
	}
	n, err := parseChoice(line, last)
	if err != nil {
		m.log.WithError(err).Debug("Menu.Choose.Invalid")
		return 0, nil
	}
	return n, nil
}

func parseChoice(line string, last int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > last {
		return 0, fmt.Errorf("%q: %w", line, ErrInvalidMenuChoice)
	}
	return n, nil
}

func (m *Menu) register() error {
	username, err := m.prompt("Enter a username:")
	if err != nil {
		return err
	}
	password, err := m.prompt("Enter a password:")
	if err != nil {
		return err
	}
	if _, err := m.dir.Register(username, password); err != nil {
		if errors.Is(err, directory.ErrUsernameTaken) {
			m.println("Username already taken, please choose another.")
			return nil
		}
		return err
	}
	m.audit(auditlog.Entry{Username: username, Action: auditlog.ActionRegister})
	m.println("Registration successful!")
	return nil
}

func (m *Menu) login() error {
	username, err := m.prompt("Enter your username:")
	if err != nil {
		return err
	}
	password, err := m.prompt("Enter your password:")
	if err != nil {
		return err
	}
	session, err := m.dir.Login(username, password)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidCredentials) {
			m.audit(auditlog.Entry{Username: username, Action: auditlog.ActionLoginFailed})
			m.println("Invalid credentials, please try again.")
			return nil
		}
		return err
	}
	m.session = session
	m.audit(auditlog.Entry{Username: username, Action: auditlog.ActionLogin})
	m.println("Login successful!")
	return nil
}

func (m *Menu) logout() {
	username := m.username()
	m.session.Logout()
	m.session = nil
	m.audit(auditlog.Entry{Username: username, Action: auditlog.ActionLogout})
	m.println("Logged out.")
}

func (m *Menu) openAccount() error {
	holder, err := m.prompt("Enter account holder's name:")
	if err != nil {
		return err
	}
	rawType, err := m.prompt("Enter account type (savings/checking):")
	if err != nil {
		return err
	}
	amount, ok, err := m.promptAmount("Enter initial deposit amount:")
	if err != nil || !ok {
		return err
	}

	typ := model.ParseAccountType(rawType)
	a, err := m.session.OpenAccount(holder, typ, amount)
	if err != nil {
		return m.reportAmountErr(err)
	}
	m.audit(auditlog.Entry{
		Username:      m.username(),
		Action:        auditlog.ActionOpenAccount,
		Details:       fmt.Sprintf("%s %s", typ, amount),
		Account:       a.Number(),
		TransactionID: a.Statement()[0].ID,
	})
	m.check(a)
	m.printf("Account created successfully. Account Number: %d\n", a.Number())
	return nil
}

func (m *Menu) deposit() error {
	a, err := m.selectAccount()
	if err != nil || a == nil {
		return err
	}
	amount, ok, err := m.promptAmount("Enter deposit amount:")
	if err != nil || !ok {
		return err
	}
	tx, err := m.session.Deposit(a.Number(), amount)
	if err != nil {
		return m.reportAmountErr(err)
	}
	m.auditTx(a, auditlog.ActionDeposit, tx)
	m.check(a)
	m.println("Deposit successful!")
	return nil
}

func (m *Menu) withdraw() error {
	a, err := m.selectAccount()
	if err != nil || a == nil {
		return err
	}
	amount, ok, err := m.promptAmount("Enter withdrawal amount:")
	if err != nil || !ok {
		return err
	}
	tx, err := m.session.Withdraw(a.Number(), amount)
	if errors.Is(err, accounts.ErrInsufficientFunds) {
		m.audit(auditlog.Entry{
			Username: m.username(),
			Action:   auditlog.ActionRejected,
			Details:  "withdraw " + amount.String() + ": insufficient funds",
			Account:  a.Number(),
		})
		m.println("Insufficient funds.")
		return nil
	}
	if err != nil {
		return m.reportAmountErr(err)
	}
	m.auditTx(a, auditlog.ActionWithdraw, tx)
	m.check(a)
	m.println("Withdrawal successful!")
	return nil
}

func (m *Menu) statement() error {
	a, err := m.selectAccount()
	if err != nil || a == nil {
		return err
	}
	txns, err := m.session.Statement(a.Number())
	if err != nil {
		return err
	}
	if m.opts.StatementFormat == accounts.StatementCSV {
		err = accounts.WriteStatementCSV(m.out, txns)
	} else {
		err = accounts.WriteStatementTable(m.out, a.Number(), txns, m.opts.CurrencySymbol)
	}
	if err != nil {
		return fmt.Errorf("writing statement: %w", err)
	}
	m.audit(auditlog.Entry{Username: m.username(), Action: auditlog.ActionStatement, Account: a.Number()})
	return nil
}

func (m *Menu) balance() error {
	a, err := m.selectAccount()
	if err != nil || a == nil {
		return err
	}
	bal, err := m.session.Balance(a.Number())
	if err != nil {
		return err
	}
	m.audit(auditlog.Entry{Username: m.username(), Action: auditlog.ActionBalance, Account: a.Number()})
	m.printf("Current balance: %s%s\n", m.opts.CurrencySymbol, bal.StringFixed(2))
	return nil
}

func (m *Menu) addInterest() error {
	if len(m.session.CurrentUser().AccountsOfType(model.AccountTypeSavings)) == 0 {
		m.println("No savings accounts.")
		return nil
	}
	results, err := m.session.AddMonthlyInterest(m.opts.InterestRate)
	for _, r := range results {
		if !r.Applied {
			continue
		}
		m.audit(auditlog.Entry{
			Username:      m.username(),
			Action:        auditlog.ActionInterest,
			Details:       r.Transaction.Amount.String(),
			Account:       r.Account,
			TransactionID: r.Transaction.ID,
		})
		if a, lookupErr := m.session.Account(r.Account); lookupErr == nil {
			m.check(a)
		}
	}
	if err != nil {
		return m.reportAmountErr(err)
	}
	m.println("Monthly interest added to savings accounts.")
	return nil
}

func (m *Menu) listAccounts() error {
	accts := m.session.CurrentUser().Accounts()
	if len(accts) == 0 {
		m.println("No accounts.")
		return nil
	}
	tw := tabwriter.NewWriter(m.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Number\tHolder\tType\tBalance")
	for _, a := range accts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s%s\n", a.Number(), a.Holder(), a.Type().Title(), m.opts.CurrencySymbol, a.Balance().StringFixed(2))
	}
	return tw.Flush()
}

// selectAccount prompts for an account number owned by the current user.
// A nil account with a nil error means the user was already told why.
func (m *Menu) selectAccount() (*accounts.Account, error) {
	line, err := m.prompt("Enter account number:")
	if err != nil {
		return nil, err
	}
	number, err := id.ParseAccountNumber(line)
	if err != nil {
		m.println("Account not found.")
		return nil, nil
	}
	a, err := m.session.Account(number)
	if errors.Is(err, accounts.ErrAccountNotFound) {
		m.println("Account not found.")
		return nil, nil
	}
	return a, err
}

// promptAmount reads a decimal amount. ok is false when the input did not
// parse; the user has been told.
func (m *Menu) promptAmount(msg string) (decimal.Decimal, bool, error) {
	line, err := m.prompt(msg)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(line))
	if err == nil {
		err = accounts.CheckAmount(amount)
	}
	if err != nil {
		m.log.WithError(err).Debug("Menu.Amount.Invalid")
		m.println("Invalid amount.")
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

func (m *Menu) reportAmountErr(err error) error {
	if errors.Is(err, accounts.ErrInvalidAmount) {
		m.println("Invalid amount.")
		return nil
	}
	return err
}

// check re-validates the account's ledger when debug logging is on and
// logs every invariant it no longer satisfies.
func (m *Menu) check(a *accounts.Account) {
	if !m.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	problems := accounts.Validate(a)
	for _, verr := range problems {
		m.log.WithFields(logrus.Fields{
			"account":   verr.Account,
			"invariant": verr.Invariant,
		}).Error(verr.Description)
	}
	if len(problems) == 0 {
		m.log.WithField("account", a.Number()).Debug("Menu.Validate.Complete")
	}
}

func (m *Menu) audit(e auditlog.Entry) {
	if m.opts.Trail == nil {
		return
	}
	m.opts.Trail.Record(e)
}

func (m *Menu) auditTx(a *accounts.Account, action string, tx model.Transaction) {
	m.audit(auditlog.Entry{
		Username:      m.username(),
		Action:        action,
		Details:       tx.Amount.String(),
		Account:       a.Number(),
		TransactionID: tx.ID,
	})
}

func (m *Menu) username() string {
	if u := m.session.CurrentUser(); u != nil {
		return u.Username()
	}
	return ""
}

func (m *Menu) prompt(msg string) (string, error) {
	m.println(msg)
	return m.readLine()
}

// readLine returns the next line without its terminator. A line longer
// than maxLineBytes is consumed whole and reported as errLineTooLong.
func (m *Menu) readLine() (string, error) {
	var (
		line    []byte
		read    int
		tooLong bool
	)
	for {
		chunk, err := m.in.ReadSlice('\n')
		read += len(chunk)
		if !tooLong && len(line)+len(chunk) > maxLineBytes {
			tooLong, line = true, nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if read == 0 {
				return "", io.EOF
			}
		case err != nil:
			return "", fmt.Errorf("reading input: %w", err)
		}

		if tooLong {
			return "", errLineTooLong
		}
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		return string(line), nil
	}
}

func (m *Menu) println(a ...any) {
	fmt.Fprintln(m.out, a...)
}

func (m *Menu) printf(format string, a ...any) {
	fmt.Fprintf(m.out, format, a...)
}
