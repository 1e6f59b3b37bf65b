package payroll

import (
	"context"
	"sync"
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType())
	}
	return out
}

// MockBranchRepository is a mock implementation of branch.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *MockBranchRepository) List(ctx context.Context, rc shared.RequestContext, filter shared.Filter) ([]branch.Branch, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]branch.Branch), args.Get(1).(int64), args.Error(2)
}

func (m *MockBranchRepository) Save(ctx context.Context, b *branch.Branch) error {
	return m.Called(ctx, b).Error(0)
}

// MockTransactionRepository is a mock implementation of accounting.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, rc shared.RequestContext, filter accounting.TransactionFilter) ([]accounting.Transaction, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]accounting.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) Summarize(ctx context.Context, rc shared.RequestContext, branchID *uuid.UUID, from, to time.Time) (*accounting.Summary, error) {
	args := m.Called(ctx, rc, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Summary), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *accounting.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

// MockEmployeeRepository is a mock implementation of payroll.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.EmployeeFilter) ([]payroll.Employee, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]payroll.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, e *payroll.Employee) error {
	return m.Called(ctx, e).Error(0)
}

// MockAdvanceRepository is a mock implementation of payroll.AdvanceRepository
type MockAdvanceRepository struct {
	mock.Mock
}

func (m *MockAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeeAdvance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.EmployeeAdvance), args.Error(1)
}

func (m *MockAdvanceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*payroll.EmployeeAdvance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.EmployeeAdvance), args.Error(1)
}

func (m *MockAdvanceRepository) FindActiveByEmployeeForUpdate(ctx context.Context, employeeID uuid.UUID) ([]*payroll.EmployeeAdvance, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]*payroll.EmployeeAdvance), args.Error(1)
}

func (m *MockAdvanceRepository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*payroll.EmployeeAdvance, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]*payroll.EmployeeAdvance), args.Error(1)
}

func (m *MockAdvanceRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.AdvanceFilter) ([]payroll.EmployeeAdvance, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]payroll.EmployeeAdvance), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdvanceRepository) Save(ctx context.Context, a *payroll.EmployeeAdvance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAdvanceRepository) SaveWithLock(ctx context.Context, a *payroll.EmployeeAdvance) error {
	return m.Called(ctx, a).Error(0)
}

// MockSalaryPaymentRepository is a mock implementation of payroll.SalaryPaymentRepository
type MockSalaryPaymentRepository struct {
	mock.Mock
}

func (m *MockSalaryPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.SalaryPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.SalaryPayment), args.Error(1)
}

func (m *MockSalaryPaymentRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.SalaryPaymentFilter) ([]payroll.SalaryPayment, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]payroll.SalaryPayment), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalaryPaymentRepository) Save(ctx context.Context, s *payroll.SalaryPayment) error {
	return m.Called(ctx, s).Error(0)
}

// MockBonusRepository is a mock implementation of payroll.BonusRepository
type MockBonusRepository struct {
	mock.Mock
}

func (m *MockBonusRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeeBonus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.EmployeeBonus), args.Error(1)
}

func (m *MockBonusRepository) List(ctx context.Context, rc shared.RequestContext, filter payroll.BonusFilter) ([]payroll.EmployeeBonus, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]payroll.EmployeeBonus), args.Get(1).(int64), args.Error(2)
}

func (m *MockBonusRepository) Save(ctx context.Context, b *payroll.EmployeeBonus) error {
	return m.Called(ctx, b).Error(0)
}
