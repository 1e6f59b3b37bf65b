package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBonusRepository implements BonusRepository using GORM
type GormBonusRepository struct {
	db *gorm.DB
}

// NewGormBonusRepository creates a new GormBonusRepository
func NewGormBonusRepository(db *gorm.DB) *GormBonusRepository {
	return &GormBonusRepository{db: db}
}

// FindByID finds a live bonus by its ID
func (r *GormBonusRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeeBonus, error) {
	var model models.EmployeeBonusModel
	if err := findOne(notDeleted(r.db.WithContext(ctx)), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the live bonuses visible to rc
func (r *GormBonusRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.BonusFilter) ([]payroll.EmployeeBonus, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.EmployeeBonusModel{}))
	query = scopeColumn(rc, query, "branch_id", filter.BranchID)
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	query = applyDateRange(query, "bonus_date", filter.Filter)

	query, total, err := paginate(query, filter.Filter, BonusSortFields, "bonus_date")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.EmployeeBonusModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	bonuses := make([]payroll.EmployeeBonus, len(rows))
	for i := range rows {
		bonuses[i] = *rows[i].ToDomain()
	}
	return bonuses, total, nil
}

// Save creates or updates a bonus
func (r *GormBonusRepository) Save(ctx context.Context, b *payroll.EmployeeBonus) error {
	return upsert(r.db.WithContext(ctx), models.EmployeeBonusModelFromDomain(b))
}
