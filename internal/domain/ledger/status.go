// Package ledger holds the balance arithmetic shared by advances, payables
// and receivables: remaining-amount bookkeeping and status derivation.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a balance.
type Status string

const (
	StatusActive    Status = "ACTIVE"    // nothing settled yet
	StatusPartial   Status = "PARTIAL"   // 0 < remaining < original
	StatusPaid      Status = "PAID"      // remaining == 0
	StatusCancelled Status = "CANCELLED" // withdrawn before any settlement
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPartial, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states that accept no further settlement
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanSettle returns true if deductions or payments can be applied
func (s Status) CanSettle() bool {
	return s == StatusActive || s == StatusPartial
}

// DeriveStatus computes the status implied by original and remaining.
// A balance with nothing owed (original == 0) is PAID.
func DeriveStatus(original, remaining decimal.Decimal) (Status, error) {
	if original.IsNegative() {
		return "", fmt.Errorf("ledger: original amount %s is negative", original.String())
	}
	if remaining.IsNegative() {
		return "", fmt.Errorf("ledger: remaining amount %s is negative", remaining.String())
	}
	if remaining.GreaterThan(original) {
		return "", fmt.Errorf("ledger: remaining amount %s exceeds original amount %s", remaining.String(), original.String())
	}

	switch {
	case remaining.IsZero():
		return StatusPaid, nil
	case remaining.Equal(original):
		return StatusActive, nil
	default:
		return StatusPartial, nil
	}
}
