package accounting

import (
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents a request to record a manual ledger row
type CreateTransactionRequest struct {
	BranchID      *uuid.UUID      `json:"branchId"`
	Type          string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category      string          `json:"category" binding:"required,max=50"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Date          time.Time       `json:"date" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	Description   string          `json:"description" binding:"max=500"`
}

// TransactionResponse represents a ledger row in API responses
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branchId"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Description   string          `json:"description,omitempty"`
	SourceType    string          `json:"sourceType"`
	SourceID      *uuid.UUID      `json:"sourceId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a transaction to its response
func ToTransactionResponse(tx *accounting.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		BranchID:      tx.BranchID,
		Type:          string(tx.Type),
		Category:      tx.Category,
		Amount:        tx.Amount,
		Date:          tx.Date,
		PaymentMethod: string(tx.PaymentMethod),
		Description:   tx.Description,
		SourceType:    string(tx.SourceType),
		SourceID:      tx.SourceID,
		CreatedAt:     tx.CreatedAt,
	}
}

// TransactionListFilter represents filter options for the ledger
type TransactionListFilter struct {
	BranchID   *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	Type       string     `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category   string     `form:"category"`
	SourceType string     `form:"sourceType"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Search     string     `form:"search"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// SummaryRequest selects the period of a ledger summary
type SummaryRequest struct {
	BranchID *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	From     time.Time  `form:"from" time_format:"2006-01-02" binding:"required"`
	To       time.Time  `form:"to" time_format:"2006-01-02" binding:"required"`
}

// SummaryResponse is the income, expense and net of a period
type SummaryResponse struct {
	BranchID *uuid.UUID      `json:"branchId,omitempty"`
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Net      decimal.Decimal `json:"net"`
	Count    int64           `json:"count"`
}
