package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	var model models.EmployeeModel
	if err := findOne(notDeleted(r.db.WithContext(ctx)), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the employees visible to rc
func (r *GormEmployeeRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.EmployeeFilter) ([]payroll.Employee, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.EmployeeModel{}))
	query = scopeColumn(rc, query, "branch_id", filter.BranchID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(position) LIKE ? ESCAPE '\')`, p, p)
	}

	query, total, err := paginate(query, filter.Filter, EmployeeSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.EmployeeModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	employees := make([]payroll.Employee, len(rows))
	for i := range rows {
		employees[i] = *rows[i].ToDomain()
	}
	return employees, total, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *payroll.Employee) error {
	return upsert(r.db.WithContext(ctx), models.EmployeeModelFromDomain(e))
}
