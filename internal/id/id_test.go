package id

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		txID := NewTransactionID()
		parsed, err := uuid.FromString(txID)
		require.NoError(t, err)
		assert.Equal(t, uuid.V4, parsed.Version())
		assert.False(t, seen[txID], "duplicate id %s", txID)
		seen[txID] = true
	}
}

func TestParseAccountNumber(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1000", 1000},
		{" 1001 ", 1001},
		{"1000\n", 1000},
	}
	for _, tt := range tests {
		got, err := ParseAccountNumber(tt.input)
		require.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseAccountNumber_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"abc",
		"10.5",
		"0",
		"-4",
	}
	for _, input := range badInputs {
		_, err := ParseAccountNumber(input)
		assert.Error(t, err, "expected error for input: %q", input)
	}
}

func TestShortTransactionID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3f0c9a52-1b2c-4d5e-8f90-a1b2c3d4e5f6", "3f0c9a52"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortTransactionID(tt.input))
	}
}
