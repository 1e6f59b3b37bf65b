package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountReceivableRepository implements AccountReceivableRepository using GORM
type GormAccountReceivableRepository struct {
	db *gorm.DB
}

// NewGormAccountReceivableRepository creates a new GormAccountReceivableRepository
func NewGormAccountReceivableRepository(db *gorm.DB) *GormAccountReceivableRepository {
	return &GormAccountReceivableRepository{db: db}
}

// FindByID finds a live account receivable with its collections
func (r *GormAccountReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	var model models.AccountReceivableModel
	if err := findOne(preloadPayments(notDeleted(r.db.WithContext(ctx))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDForUpdate finds a live account receivable and locks its row
func (r *GormAccountReceivableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	var model models.AccountReceivableModel
	if err := findOne(forUpdate(preloadPayments(notDeleted(r.db.WithContext(ctx)))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// List returns the live receivables visible to rc
func (r *GormAccountReceivableRepository) List(ctx context.Context, rc shared.RequestContext, filter finance.OpenItemFilter) ([]finance.AccountReceivable, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.AccountReceivableModel{}))
	query = applyOpenItemFilter(scopeColumn(rc, query, "branch_id", filter.BranchID), filter)

	query, total, err := paginate(query, filter.Filter, OpenItemSortFields, "date")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.AccountReceivableModel
	if err := preloadPayments(query).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	receivables := make([]finance.AccountReceivable, len(rows))
	for i := range rows {
		ar, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		receivables[i] = *ar
	}
	return receivables, total, nil
}

// Save creates or updates a receivable together with its collections
func (r *GormAccountReceivableRepository) Save(ctx context.Context, ar *finance.AccountReceivable) error {
	model := models.AccountReceivableModelFromDomain(ar)
	db := r.db.WithContext(ctx)
	if err := upsert(db, model); err != nil {
		return err
	}
	return savePayments(db, model.Payments)
}

// SaveWithLock saves with optimistic locking
func (r *GormAccountReceivableRepository) SaveWithLock(ctx context.Context, ar *finance.AccountReceivable) error {
	model := models.AccountReceivableModelFromDomain(ar)
	db := r.db.WithContext(ctx)
	if err := updateWithVersion(db, model, ar.ID, ar.Version); err != nil {
		return err
	}
	return savePayments(db, model.Payments)
}
