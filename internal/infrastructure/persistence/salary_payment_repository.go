package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalaryPaymentRepository implements SalaryPaymentRepository using GORM.
// A payment's deductions are written through their advances and read back
// by salary_payment_id.
type GormSalaryPaymentRepository struct {
	db *gorm.DB
}

// NewGormSalaryPaymentRepository creates a new GormSalaryPaymentRepository
func NewGormSalaryPaymentRepository(db *gorm.DB) *GormSalaryPaymentRepository {
	return &GormSalaryPaymentRepository{db: db}
}

// FindByID finds a live salary payment with its deductions
func (r *GormSalaryPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.SalaryPayment, error) {
	var model models.SalaryPaymentModel
	if err := findOne(preloadDeductions(notDeleted(r.db.WithContext(ctx))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the live salary payments visible to rc
func (r *GormSalaryPaymentRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.SalaryPaymentFilter) ([]payroll.SalaryPayment, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.SalaryPaymentModel{}))
	query = scopeColumn(rc, query, "branch_id", filter.BranchID)
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	query = applyDateRange(query, "payment_date", filter.Filter)

	query, total, err := paginate(query, filter.Filter, SalaryPaymentSortFields, "payment_date")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.SalaryPaymentModel
	if err := preloadDeductions(query).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	payments := make([]payroll.SalaryPayment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, total, nil
}

// Save creates or updates the salary payment row
func (r *GormSalaryPaymentRepository) Save(ctx context.Context, s *payroll.SalaryPayment) error {
	return upsert(r.db.WithContext(ctx), models.SalaryPaymentModelFromDomain(s))
}
