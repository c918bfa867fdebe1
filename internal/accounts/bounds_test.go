package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"0", true},
		{"100", true},
		{"122.40", true},
		{"0.02", true},
		{"-5", true},
		{"123456789012345678901234567890", true},
		{"1234567890123456789012345678901", false},
		{"1e18", true},
		{"1e19", false},
		{"1e2000000000", false},
		{"1e-18", true},
		{"1e-19", false},
		{"1e-2000000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := CheckAmount(dec(tt.input))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.Less(t, len(err.Error()), 100)
			}
		})
	}
}
