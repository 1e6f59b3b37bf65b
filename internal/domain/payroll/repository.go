package payroll

import (
	"context"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	Status   EmployeeStatus
}

// AdvanceFilter narrows advance listings
type AdvanceFilter struct {
	shared.Filter
	BranchID   *uuid.UUID
	EmployeeID *uuid.UUID
	Status     ledger.Status
}

// SalaryPaymentFilter narrows salary payment listings
type SalaryPaymentFilter struct {
	shared.Filter
	BranchID   *uuid.UUID
	EmployeeID *uuid.UUID
}

// BonusFilter narrows bonus listings
type BonusFilter struct {
	shared.Filter
	BranchID   *uuid.UUID
	EmployeeID *uuid.UUID
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context, rc shared.RequestContext, filter EmployeeFilter) ([]Employee, int64, error)
	Save(ctx context.Context, e *Employee) error
}

// AdvanceRepository persists advances together with their deductions
type AdvanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeAdvance, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*EmployeeAdvance, error)
	// FindActiveByEmployeeForUpdate locks every ACTIVE advance of the
	// employee and returns them oldest first.
	FindActiveByEmployeeForUpdate(ctx context.Context, employeeID uuid.UUID) ([]*EmployeeAdvance, error)
	FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*EmployeeAdvance, error)
	List(ctx context.Context, rc shared.RequestContext, filter AdvanceFilter) ([]EmployeeAdvance, int64, error)
	Save(ctx context.Context, a *EmployeeAdvance) error
	// SaveWithLock updates the advance only if its version is unchanged and
	// inserts deductions that are not stored yet.
	SaveWithLock(ctx context.Context, a *EmployeeAdvance) error
}

// SalaryPaymentRepository persists salary payments
type SalaryPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalaryPayment, error)
	List(ctx context.Context, rc shared.RequestContext, filter SalaryPaymentFilter) ([]SalaryPayment, int64, error)
	Save(ctx context.Context, s *SalaryPayment) error
}

// BonusRepository persists bonuses
type BonusRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeBonus, error)
	List(ctx context.Context, rc shared.RequestContext, filter BonusFilter) ([]EmployeeBonus, int64, error)
	Save(ctx context.Context, b *EmployeeBonus) error
}
