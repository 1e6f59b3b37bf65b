package finance

import (
	"context"
	"sync"
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) List(ctx context.Context, rc shared.RequestContext, filter finance.OpenItemFilter) ([]finance.AccountPayable, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]finance.AccountPayable), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayableRepository) Save(ctx context.Context, ap *finance.AccountPayable) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *MockPayableRepository) SaveWithLock(ctx context.Context, ap *finance.AccountPayable) error {
	return m.Called(ctx, ap).Error(0)
}

type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) List(ctx context.Context, rc shared.RequestContext, filter finance.OpenItemFilter) ([]finance.AccountReceivable, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]finance.AccountReceivable), args.Get(1).(int64), args.Error(2)
}

func (m *MockReceivableRepository) Save(ctx context.Context, ar *finance.AccountReceivable) error {
	return m.Called(ctx, ar).Error(0)
}

func (m *MockReceivableRepository) SaveWithLock(ctx context.Context, ar *finance.AccountReceivable) error {
	return m.Called(ctx, ar).Error(0)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, rc shared.RequestContext, filter finance.ContactFilter) ([]finance.Contact, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]finance.Contact), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) Save(ctx context.Context, c *finance.Contact) error {
	return m.Called(ctx, c).Error(0)
}
