package finance

import (
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountReceivable tracks money a customer contact owes to a branch
type AccountReceivable struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	OpenItem
}

// NewAccountReceivable creates a new account receivable
func NewAccountReceivable(
	branchID uuid.UUID,
	contactID uuid.UUID,
	description string,
	amount decimal.Decimal,
	date time.Time,
	dueDate *time.Time,
) (*AccountReceivable, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch is required")
	}
	item, err := newOpenItem(contactID, description, amount, date, dueDate)
	if err != nil {
		return nil, err
	}

	ar := &AccountReceivable{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		OpenItem:            item,
	}
	ar.AddDomainEvent(NewAccountReceivableCreatedEvent(ar))
	return ar, nil
}

// Collect records money received from the customer
func (ar *AccountReceivable) Collect(in PaymentInput) (*Payment, error) {
	if ar.IsDeleted() {
		return nil, shared.NewNotFoundError("Receivable")
	}
	payment, err := ar.settle(ar.ID, in)
	if err != nil {
		return nil, err
	}

	ar.Touch()
	ar.IncrementVersion()
	ar.AddDomainEvent(NewAccountReceivableCollectedEvent(ar, *payment))
	return payment, nil
}

// Delete soft-deletes the receivable if nothing has been collected
func (ar *AccountReceivable) Delete(at time.Time) error {
	if ar.IsDeleted() {
		return shared.NewNotFoundError("Receivable")
	}
	if err := ar.checkDeletable("receivable"); err != nil {
		return err
	}
	ar.MarkDeleted(at)
	ar.Touch()
	ar.IncrementVersion()
	ar.AddDomainEvent(NewAccountReceivableDeletedEvent(ar))
	return nil
}

// CanDelete returns a ConflictError while the receivable has payments
func (ar *AccountReceivable) CanDelete() error {
	return ar.checkDeletable("receivable")
}
