package ledger

import (
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored for monetary amounts.
const MoneyScale = 2

// RoundMoney rounds half away from zero to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ParseAmount parses a decimal string such as "1250.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, shared.NewValidationError("invalid amount: " + s)
	}
	return d, nil
}

// RequirePositive rejects zero and negative amounts with a validation error
// naming the field.
func RequirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return shared.NewValidationError(field + " must be greater than zero")
	}
	if !d.Equal(RoundMoney(d)) {
		return shared.NewValidationError(field + " must have at most 2 decimal places")
	}
	return nil
}

// Sum adds amounts; an empty list sums to zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
