// Package auditlog records the actions taken during a session and can
// append them to a CSV file. It records activity only; bank state is never
// read back from it.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp     time.Time
	Username      string
	Action        string
	Details       string
	Account       int // 0 = no account involved
	TransactionID string
}

// Header is the CSV header for the audit log.
const Header = "timestamp,username,action,details,account,transaction_id"

const (
	numFields  = 6
	colTime    = 0
	colUser    = 1
	colAction  = 2
	colDetails = 3
	colAccount = 4
	colTxID    = 5
)

// Actions recorded by the menu.
const (
	ActionRegister    = "register"
	ActionLogin       = "login"
	ActionLoginFailed = "login_failed"
	ActionLogout      = "logout"
	ActionOpenAccount = "open_account"
	ActionDeposit     = "deposit"
	ActionWithdraw    = "withdraw"
	ActionRejected    = "rejected"
	ActionInterest    = "interest"
	ActionStatement   = "statement"
	ActionBalance     = "balance"
)

// Trail collects entries in memory for the life of the process.
type Trail struct {
	clock   func() time.Time
	entries []Entry
}

// NewTrail creates an empty Trail. A nil clock means time.Now.
func NewTrail(clock func() time.Time) *Trail {
	if clock == nil {
		clock = time.Now
	}
	return &Trail{clock: clock}
}

// Record stamps e with the current time if unset and keeps it.
func (t *Trail) Record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = t.clock()
	}
	t.entries = append(t.entries, e)
}

// Entries returns the recorded entries in order.
func (t *Trail) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colUser] = e.Username
	row[colAction] = e.Action
	row[colDetails] = e.Details
	if e.Account != 0 {
		row[colAccount] = strconv.Itoa(e.Account)
	}
	row[colTxID] = e.TransactionID
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	var account int
	if record[colAccount] != "" {
		account, err = strconv.Atoi(record[colAccount])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing account %q: %w", record[colAccount], err)
		}
	}

	return Entry{
		Timestamp:     ts,
		Username:      record[colUser],
		Action:        record[colAction],
		Details:       record[colDetails],
		Account:       account,
		TransactionID: record[colTxID],
	}, nil
}

// Append writes entries to the CSV file at path, creating the file, its
// directory and the header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating audit log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the CSV file at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
