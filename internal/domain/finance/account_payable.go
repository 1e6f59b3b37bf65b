package finance

import (
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountPayable tracks money a branch owes to a vendor contact
type AccountPayable struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	OpenItem
}

// NewAccountPayable creates a new account payable
func NewAccountPayable(
	branchID uuid.UUID,
	contactID uuid.UUID,
	description string,
	amount decimal.Decimal,
	date time.Time,
	dueDate *time.Time,
) (*AccountPayable, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch is required")
	}
	item, err := newOpenItem(contactID, description, amount, date, dueDate)
	if err != nil {
		return nil, err
	}

	ap := &AccountPayable{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		OpenItem:            item,
	}
	ap.AddDomainEvent(NewAccountPayableCreatedEvent(ap))
	return ap, nil
}

// Pay records a payment to the vendor. The payable is unchanged on error.
func (ap *AccountPayable) Pay(in PaymentInput) (*Payment, error) {
	if ap.IsDeleted() {
		return nil, shared.NewNotFoundError("Payable")
	}
	payment, err := ap.settle(ap.ID, in)
	if err != nil {
		return nil, err
	}

	ap.Touch()
	ap.IncrementVersion()
	ap.AddDomainEvent(NewAccountPayablePaidEvent(ap, *payment))
	return payment, nil
}

// Delete soft-deletes the payable. Settlement history blocks deletion.
func (ap *AccountPayable) Delete(at time.Time) error {
	if ap.IsDeleted() {
		return shared.NewNotFoundError("Payable")
	}
	if err := ap.checkDeletable("payable"); err != nil {
		return err
	}
	ap.MarkDeleted(at)
	ap.Touch()
	ap.IncrementVersion()
	ap.AddDomainEvent(NewAccountPayableDeletedEvent(ap))
	return nil
}

// CanDelete returns a ConflictError while the payable has payments
func (ap *AccountPayable) CanDelete() error {
	return ap.checkDeletable("payable")
}
