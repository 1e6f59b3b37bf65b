package persistence

import (
	"context"
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a live transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Transaction, error) {
	var model models.TransactionModel
	if err := findOne(notDeleted(r.db.WithContext(ctx)), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the live transactions visible to rc
func (r *GormTransactionRepository) List(ctx context.Context, rc shared.RequestContext, filter accounting.TransactionFilter) ([]accounting.Transaction, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.TransactionModel{}))
	query = scopeColumn(rc, query, "branch_id", filter.BranchID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.SourceType != "" {
		query = query.Where("source_type = ?", filter.SourceType)
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(description) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	query = applyDateRange(query, "date", filter.Filter)

	query, total, err := paginate(query, filter.Filter, TransactionSortFields, "date")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	txs := make([]accounting.Transaction, len(rows))
	for i := range rows {
		txs[i] = *rows[i].ToDomain()
	}
	return txs, total, nil
}

type typeTotal struct {
	Type  accounting.TransactionType
	Total decimal.Decimal
	Count int64
}

// Summarize totals live income and expense dated between from and to
// inclusive, within rc's scope and optionally a single branch
func (r *GormTransactionRepository) Summarize(ctx context.Context, rc shared.RequestContext, branchID *uuid.UUID, from, to time.Time) (*accounting.Summary, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.TransactionModel{}))
	query = scopeColumn(rc, query, "branch_id", branchID)
	query = query.Where("date >= ? AND date <= ?", from, to)

	var totals []typeTotal
	if err := query.
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	sum := &accounting.Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range totals {
		switch t.Type {
		case accounting.TransactionTypeIncome:
			sum.Income = t.Total
		case accounting.TransactionTypeExpense:
			sum.Expense = t.Total
		}
		sum.Count += t.Count
	}
	sum.Net = sum.Income.Sub(sum.Expense)
	return sum, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *accounting.Transaction) error {
	return upsert(r.db.WithContext(ctx), models.TransactionModelFromDomain(tx))
}
