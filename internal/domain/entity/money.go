package entity

import (
	"github.com/shopspring/decimal"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
)

// Monetary amounts are carried in major units (cedis) as decimals. The gateway
// speaks minor units (pesewas); the conversion factor between the two is 100.

// MinorUnitFactor is the number of pesewas in one cedi
const MinorUnitFactor = 100

var minorFactor = decimal.NewFromInt(MinorUnitFactor)

// ValidateAmount checks that a contribution amount is positive and has at most
// two decimal places (pesewa precision)
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return errs.ErrInvalidAmount
	}
	return nil
}

// ToMinorUnits converts a major-unit amount to pesewas, rounding to the
// nearest whole pesewa
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorFactor).Round(0).IntPart()
}

// FromMinorUnits converts a pesewa amount reported by the gateway back to
// cedis with two decimal places
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorFactor)
}

// FormatAmount renders an amount with exactly two decimal places, the form
// used in notifications and API responses
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
