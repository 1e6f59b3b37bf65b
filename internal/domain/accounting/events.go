package accounting

import (
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const aggregateTypeTransaction = "Transaction"

// TransactionRecordedEvent is raised when a manual transaction is recorded
type TransactionRecordedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewTransactionRecordedEvent creates a new TransactionRecordedEvent
func NewTransactionRecordedEvent(tx *Transaction) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionRecorded", aggregateTypeTransaction, tx.ID, tx.BranchID),
		TransactionID:   tx.ID,
		Type:            tx.Type,
		Category:        tx.Category,
		Amount:          tx.Amount,
	}
}

// TransactionDeletedEvent is raised when a manual transaction is removed
type TransactionDeletedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewTransactionDeletedEvent creates a new TransactionDeletedEvent
func NewTransactionDeletedEvent(tx *Transaction) *TransactionDeletedEvent {
	return &TransactionDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionDeleted", aggregateTypeTransaction, tx.ID, tx.BranchID),
		TransactionID:   tx.ID,
		Amount:          tx.Amount,
	}
}
