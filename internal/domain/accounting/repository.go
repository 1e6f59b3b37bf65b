package accounting

import (
	"context"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	shared.Filter
	BranchID   *uuid.UUID
	Type       TransactionType
	Category   string
	SourceType SourceType
}

// Summary aggregates a branch ledger over a period
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int64           `json:"count"`
}

// TransactionRepository persists ledger rows. Queries taking a
// RequestContext only return rows inside the caller's branch scope.
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, rc shared.RequestContext, filter TransactionFilter) ([]Transaction, int64, error)
	Summarize(ctx context.Context, rc shared.RequestContext, branchID *uuid.UUID, from, to time.Time) (*Summary, error)
	Save(ctx context.Context, tx *Transaction) error
}
