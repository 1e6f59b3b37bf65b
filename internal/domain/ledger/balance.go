package ledger

import (
	"fmt"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Balance tracks an original amount, what is still owed, and the status
// derived from the two. Balances are values: every operation returns a new
// Balance and leaves the receiver untouched.
type Balance struct {
	Original  decimal.Decimal `json:"originalAmount"`
	Remaining decimal.Decimal `json:"remainingAmount"`
	Status    Status          `json:"status"`
}

// NewBalance opens a balance with nothing settled yet.
func NewBalance(original decimal.Decimal) (Balance, error) {
	status, err := DeriveStatus(original, original)
	if err != nil {
		return Balance{}, shared.NewValidationError(err.Error())
	}
	return Balance{Original: original, Remaining: original, Status: status}, nil
}

// RestoreBalance rebuilds a persisted balance and checks that the stored
// status agrees with the amounts.
func RestoreBalance(original, remaining decimal.Decimal, status Status) (Balance, error) {
	b := Balance{Original: original, Remaining: remaining, Status: status}
	if err := b.Validate(); err != nil {
		return Balance{}, err
	}
	return b, nil
}

// Validate checks the remaining/status invariant.
func (b Balance) Validate() error {
	derived, err := DeriveStatus(b.Original, b.Remaining)
	if err != nil {
		return err
	}
	if b.Status == StatusCancelled {
		if !b.Remaining.Equal(b.Original) {
			return fmt.Errorf("ledger: cancelled balance has settled amount %s", b.Settled().String())
		}
		return nil
	}
	if b.Status != derived {
		return fmt.Errorf("ledger: status %s does not match derived status %s", b.Status, derived)
	}
	return nil
}

// Settled returns how much has been deducted or paid so far.
func (b Balance) Settled() decimal.Decimal {
	return b.Original.Sub(b.Remaining)
}

// IsOpen reports whether the balance still accepts settlement.
func (b Balance) IsOpen() bool {
	return b.Status.CanSettle() && b.Remaining.IsPositive()
}

// ApplyDeduction settles amount against b. The amount must be positive and
// no larger than b.Remaining; it is never clamped.
func ApplyDeduction(b Balance, amount decimal.Decimal) (Balance, error) {
	if !b.Status.CanSettle() {
		return b, shared.NewInvalidStateError(fmt.Sprintf("cannot settle a balance in %s status", b.Status))
	}
	if !amount.IsPositive() {
		return b, shared.NewValidationError("amount must be greater than zero")
	}
	if amount.GreaterThan(b.Remaining) {
		return b, &ExceedsRemainingError{Attempted: amount, Remaining: b.Remaining}
	}

	remaining := b.Remaining.Sub(amount)
	status, err := DeriveStatus(b.Original, remaining)
	if err != nil {
		return b, err
	}
	return Balance{Original: b.Original, Remaining: remaining, Status: status}, nil
}

// Cancel withdraws a balance that has never been settled against.
func (b Balance) Cancel() (Balance, error) {
	if b.Status != StatusActive || !b.Remaining.Equal(b.Original) {
		return b, shared.NewInvalidStateError(fmt.Sprintf("only an untouched ACTIVE balance can be cancelled, status is %s", b.Status))
	}
	return Balance{Original: b.Original, Remaining: b.Remaining, Status: StatusCancelled}, nil
}
