package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:     testTime,
		Username:      "alice",
		Action:        ActionDeposit,
		Details:       "amount=500.00",
		Account:       1000,
		TransactionID: "3f0c9a52-1b2c-4d5e-8f90-a1b2c3d4e5f6",
	}
}

func TestTrail_Record(t *testing.T) {
	trail := NewTrail(func() time.Time { return testTime })
	trail.Record(Entry{Username: "alice", Action: ActionLogin})

	e := testEntry()
	e.Timestamp = testTime.Add(time.Hour)
	trail.Record(e)

	entries := trail.Entries()
	require.Len(t, entries, 2)
	assert.True(t, testTime.Equal(entries[0].Timestamp), "zero timestamp is stamped from the clock")
	assert.True(t, testTime.Add(time.Hour).Equal(entries[1].Timestamp), "explicit timestamp is kept")
}

func TestTrail_EntriesIsCopy(t *testing.T) {
	trail := NewTrail(nil)
	trail.Record(testEntry())
	got := trail.Entries()
	got[0].Username = "mallory"
	assert.Equal(t, "alice", trail.Entries()[0].Username)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestAppend_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 1000, entries[0].Account)
}

func TestAppend_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Username = "bob"
	e2.Action = ActionLogout
	e2.Account = 0
	e2.TransactionID = ""
	require.NoError(t, Append(path, []Entry{e2}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, 0, entries[1].Account)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o644))

	entries, err := Read(path)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalEntry(t *testing.T) {
	row := MarshalEntry(testEntry())
	assert.Len(t, row, numFields)
	assert.Equal(t, "2025-01-15T10:30:00Z", row[colTime])
	assert.Equal(t, "1000", row[colAccount])

	noAccount := testEntry()
	noAccount.Account = 0
	assert.Equal(t, "", MarshalEntry(noAccount)[colAccount])
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 fields")

	row := MarshalEntry(testEntry())
	row[colAccount] = "abc"
	_, err = UnmarshalEntry(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing account")

	row = MarshalEntry(testEntry())
	row[colTime] = "yesterday"
	_, err = UnmarshalEntry(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing timestamp")
}
