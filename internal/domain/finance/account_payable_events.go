package finance

import (
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const aggregateTypePayable = "AccountPayable"

// Event type constants
const (
	EventTypeAccountPayableCreated = "AccountPayableCreated"
	EventTypeAccountPayablePaid    = "AccountPayablePaid"
	EventTypeAccountPayableDeleted = "AccountPayableDeleted"
)

// AccountPayableCreatedEvent is raised when a new account payable is created
type AccountPayableCreatedEvent struct {
	shared.BaseDomainEvent
	PayableID   uuid.UUID       `json:"payable_id"`
	ContactID   uuid.UUID       `json:"contact_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// NewAccountPayableCreatedEvent creates a new AccountPayableCreatedEvent
func NewAccountPayableCreatedEvent(ap *AccountPayable) *AccountPayableCreatedEvent {
	return &AccountPayableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayableCreated, aggregateTypePayable, ap.ID, ap.BranchID),
		PayableID:       ap.ID,
		ContactID:       ap.ContactID,
		Description:     ap.Description,
		Amount:          ap.Balance.Original,
		DueDate:         ap.DueDate,
	}
}

// AccountPayablePaidEvent is raised for every payment made against a payable
type AccountPayablePaidEvent struct {
	shared.BaseDomainEvent
	PayableID     uuid.UUID       `json:"payable_id"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        ledger.Status   `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// NewAccountPayablePaidEvent creates a new AccountPayablePaidEvent
func NewAccountPayablePaidEvent(ap *AccountPayable, p Payment) *AccountPayablePaidEvent {
	return &AccountPayablePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayablePaid, aggregateTypePayable, ap.ID, ap.BranchID),
		PayableID:       ap.ID,
		PaymentID:       p.ID,
		AmountPaid:      p.Amount,
		Remaining:       ap.Balance.Remaining,
		Status:          ap.Balance.Status,
		PaymentMethod:   string(p.PaymentMethod),
		PaymentDate:     p.PaymentDate,
	}
}

// AccountPayableDeletedEvent is raised when a payable without payments is removed
type AccountPayableDeletedEvent struct {
	shared.BaseDomainEvent
	PayableID uuid.UUID       `json:"payable_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewAccountPayableDeletedEvent creates a new AccountPayableDeletedEvent
func NewAccountPayableDeletedEvent(ap *AccountPayable) *AccountPayableDeletedEvent {
	return &AccountPayableDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayableDeleted, aggregateTypePayable, ap.ID, ap.BranchID),
		PayableID:       ap.ID,
		Amount:          ap.Balance.Original,
	}
}
