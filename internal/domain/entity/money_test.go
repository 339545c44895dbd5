package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
)

func TestValidateAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		for _, in := range []string{"0.01", "1", "50", "50.00", "1234567.89"} {
			t.Run(in, func(t *testing.T) {
				amount, err := decimal.NewFromString(in)
				assert.NoError(t, err)
				assert.NoError(t, ValidateAmount(amount))
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"0", "Zero"},
			{"0.00", "Zero with decimals"},
			{"-1.00", "Negative"},
			{"0.001", "Sub-pesewa precision"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				amount, err := decimal.NewFromString(tc.input)
				assert.NoError(t, err)
				assert.ErrorIs(t, ValidateAmount(amount), errs.ErrInvalidAmount)
			})
		}
	})
}

func TestMinorUnitConversion(t *testing.T) {
	testCases := []struct {
		major string
		minor int64
	}{
		{"50.00", 5000},
		{"0.01", 1},
		{"1", 100},
		{"10.50", 1050},
		{"1234567.89", 123456789},
	}

	for _, tc := range testCases {
		t.Run(tc.major, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.major)
			assert.Equal(t, tc.minor, ToMinorUnits(amount))
		})
	}
}

// A deposit of A cedis settled by the gateway as A*100 pesewas must come back
// as exactly A after reconciliation.
func TestMinorUnitRoundTrip(t *testing.T) {
	for _, in := range []string{"0.01", "1.00", "10.50", "50.00", "9999999.99"} {
		t.Run(in, func(t *testing.T) {
			amount := decimal.RequireFromString(in)
			back := FromMinorUnits(ToMinorUnits(amount))
			assert.True(t, amount.Equal(back), "expected %s, got %s", amount, back)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "50.00", FormatAmount(decimal.RequireFromString("50")))
	assert.Equal(t, "10.50", FormatAmount(decimal.RequireFromString("10.5")))
	assert.Equal(t, "0.01", FormatAmount(decimal.RequireFromString("0.01")))
}
