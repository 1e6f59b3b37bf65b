package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountPayableRepository implements AccountPayableRepository using GORM
type GormAccountPayableRepository struct {
	db *gorm.DB
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{db: db}
}

// FindByID finds a live account payable with its payments
func (r *GormAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := findOne(preloadPayments(notDeleted(r.db.WithContext(ctx))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDForUpdate finds a live account payable and locks its row
func (r *GormAccountPayableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := findOne(forUpdate(preloadPayments(notDeleted(r.db.WithContext(ctx)))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// List returns the live payables visible to rc
func (r *GormAccountPayableRepository) List(ctx context.Context, rc shared.RequestContext, filter finance.OpenItemFilter) ([]finance.AccountPayable, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.AccountPayableModel{}))
	query = applyOpenItemFilter(scopeColumn(rc, query, "branch_id", filter.BranchID), filter)

	query, total, err := paginate(query, filter.Filter, OpenItemSortFields, "date")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.AccountPayableModel
	if err := preloadPayments(query).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	payables := make([]finance.AccountPayable, len(rows))
	for i := range rows {
		ap, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		payables[i] = *ap
	}
	return payables, total, nil
}

// Save creates or updates a payable together with its payments
func (r *GormAccountPayableRepository) Save(ctx context.Context, ap *finance.AccountPayable) error {
	model := models.AccountPayableModelFromDomain(ap)
	db := r.db.WithContext(ctx)
	if err := upsert(db, model); err != nil {
		return err
	}
	return savePayments(db, model.Payments)
}

// SaveWithLock saves with optimistic locking
func (r *GormAccountPayableRepository) SaveWithLock(ctx context.Context, ap *finance.AccountPayable) error {
	model := models.AccountPayableModelFromDomain(ap)
	db := r.db.WithContext(ctx)
	if err := updateWithVersion(db, model, ap.ID, ap.Version); err != nil {
		return err
	}
	return savePayments(db, model.Payments)
}

func preloadPayments(db *gorm.DB) *gorm.DB {
	return db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payment_date ASC, created_at ASC")
	})
}

func applyOpenItemFilter(query *gorm.DB, filter finance.OpenItemFilter) *gorm.DB {
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OnlyOpen {
		query = query.Where("remaining_amount > 0")
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(description) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	return applyDateRange(query, "date", filter.Filter)
}

// savePayments inserts new payment rows and updates the mutable columns of
// existing ones
func savePayments[T any](db *gorm.DB, payments []T) error {
	if len(payments) == 0 {
		return nil
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"transaction_id", "deleted_at"}),
	}).Create(&payments).Error
	return TranslateError(err)
}
