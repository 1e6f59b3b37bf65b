package finance

import (
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const aggregateTypeReceivable = "AccountReceivable"

// Event type constants
const (
	EventTypeAccountReceivableCreated   = "AccountReceivableCreated"
	EventTypeAccountReceivableCollected = "AccountReceivableCollected"
	EventTypeAccountReceivableDeleted   = "AccountReceivableDeleted"
)

// AccountReceivableCreatedEvent is raised when a new account receivable is created
type AccountReceivableCreatedEvent struct {
	shared.BaseDomainEvent
	ReceivableID uuid.UUID       `json:"receivable_id"`
	ContactID    uuid.UUID       `json:"contact_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

// NewAccountReceivableCreatedEvent creates a new AccountReceivableCreatedEvent
func NewAccountReceivableCreatedEvent(ar *AccountReceivable) *AccountReceivableCreatedEvent {
	return &AccountReceivableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableCreated, aggregateTypeReceivable, ar.ID, ar.BranchID),
		ReceivableID:    ar.ID,
		ContactID:       ar.ContactID,
		Description:     ar.Description,
		Amount:          ar.Balance.Original,
		DueDate:         ar.DueDate,
	}
}

// AccountReceivableCollectedEvent is raised for every collection against a receivable
type AccountReceivableCollectedEvent struct {
	shared.BaseDomainEvent
	ReceivableID  uuid.UUID       `json:"receivable_id"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        ledger.Status   `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// NewAccountReceivableCollectedEvent creates a new AccountReceivableCollectedEvent
func NewAccountReceivableCollectedEvent(ar *AccountReceivable, p Payment) *AccountReceivableCollectedEvent {
	return &AccountReceivableCollectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableCollected, aggregateTypeReceivable, ar.ID, ar.BranchID),
		ReceivableID:    ar.ID,
		PaymentID:       p.ID,
		AmountPaid:      p.Amount,
		Remaining:       ar.Balance.Remaining,
		Status:          ar.Balance.Status,
		PaymentMethod:   string(p.PaymentMethod),
		PaymentDate:     p.PaymentDate,
	}
}

// AccountReceivableDeletedEvent is raised when a receivable without collections is removed
type AccountReceivableDeletedEvent struct {
	shared.BaseDomainEvent
	ReceivableID uuid.UUID       `json:"receivable_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// NewAccountReceivableDeletedEvent creates a new AccountReceivableDeletedEvent
func NewAccountReceivableDeletedEvent(ar *AccountReceivable) *AccountReceivableDeletedEvent {
	return &AccountReceivableDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableDeleted, aggregateTypeReceivable, ar.ID, ar.BranchID),
		ReceivableID:    ar.ID,
		Amount:          ar.Balance.Original,
	}
}
