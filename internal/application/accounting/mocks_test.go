package accounting

import (
	"context"
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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
