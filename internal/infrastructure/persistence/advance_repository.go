package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAdvanceRepository implements AdvanceRepository using GORM.
// Deductions are loaded with their advance and appended on save.
type GormAdvanceRepository struct {
	db *gorm.DB
}

// NewGormAdvanceRepository creates a new GormAdvanceRepository
func NewGormAdvanceRepository(db *gorm.DB) *GormAdvanceRepository {
	return &GormAdvanceRepository{db: db}
}

func preloadDeductions(db *gorm.DB) *gorm.DB {
	return db.Preload("Deductions", func(db *gorm.DB) *gorm.DB {
		return db.Order("deduction_date ASC, created_at ASC")
	})
}

// FindByID finds an advance by its ID
func (r *GormAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeeAdvance, error) {
	var model models.EmployeeAdvanceModel
	if err := findOne(preloadDeductions(r.db.WithContext(ctx)), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDForUpdate finds an advance and locks its row
func (r *GormAdvanceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*payroll.EmployeeAdvance, error) {
	var model models.EmployeeAdvanceModel
	if err := findOne(forUpdate(preloadDeductions(r.db.WithContext(ctx))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain()
}

// FindActiveByEmployeeForUpdate locks and returns the employee's advances
// that still have a balance, oldest first
func (r *GormAdvanceRepository) FindActiveByEmployeeForUpdate(ctx context.Context, employeeID uuid.UUID) ([]*payroll.EmployeeAdvance, error) {
	return r.findActive(forUpdate(r.db.WithContext(ctx)), employeeID)
}

// FindActiveByEmployee returns the employee's advances that still have a
// balance, oldest first, without locking them
func (r *GormAdvanceRepository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*payroll.EmployeeAdvance, error) {
	return r.findActive(r.db.WithContext(ctx), employeeID)
}

func (r *GormAdvanceRepository) findActive(db *gorm.DB, employeeID uuid.UUID) ([]*payroll.EmployeeAdvance, error) {
	var rows []models.EmployeeAdvanceModel
	if err := preloadDeductions(db).
		Where("employee_id = ? AND status = ? AND remaining_amount > 0", employeeID, ledger.StatusActive).
		Order("advance_date ASC, created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, TranslateError(err)
	}
	advances := make([]*payroll.EmployeeAdvance, 0, len(rows))
	for i := range rows {
		a, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, nil
}

// List returns the advances visible to rc
func (r *GormAdvanceRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.AdvanceFilter) ([]payroll.EmployeeAdvance, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EmployeeAdvanceModel{})
	query = scopeColumn(rc, query, "branch_id", filter.BranchID)
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", payroll.AdvanceStatus(ledger.Balance{Status: filter.Status}))
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(reason) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	query = applyDateRange(query, "advance_date", filter.Filter)

	query, total, err := paginate(query, filter.Filter, AdvanceSortFields, "advance_date")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.EmployeeAdvanceModel
	if err := preloadDeductions(query).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	advances := make([]payroll.EmployeeAdvance, len(rows))
	for i := range rows {
		a, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		advances[i] = *a
	}
	return advances, total, nil
}

// Save creates or updates an advance together with its deductions
func (r *GormAdvanceRepository) Save(ctx context.Context, a *payroll.EmployeeAdvance) error {
	model := models.EmployeeAdvanceModelFromDomain(a)
	db := r.db.WithContext(ctx)
	if err := upsert(db, model); err != nil {
		return err
	}
	return saveDeductions(db, model.Deductions)
}

// SaveWithLock saves with optimistic locking and appends new deductions
func (r *GormAdvanceRepository) SaveWithLock(ctx context.Context, a *payroll.EmployeeAdvance) error {
	model := models.EmployeeAdvanceModelFromDomain(a)
	db := r.db.WithContext(ctx)
	if err := updateWithVersion(db, model, a.ID, a.Version); err != nil {
		return err
	}
	return saveDeductions(db, model.Deductions)
}

// saveDeductions inserts new deduction rows. Deductions are immutable apart
// from the repayment transaction linked after they were created.
func saveDeductions(db *gorm.DB, deductions []models.AdvanceDeductionModel) error {
	if len(deductions) == 0 {
		return nil
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"transaction_id"}),
	}).Create(&deductions).Error
	return TranslateError(err)
}
