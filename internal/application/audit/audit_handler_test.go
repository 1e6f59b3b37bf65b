package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *audit.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, rc shared.RequestContext, filter audit.Filter) ([]audit.AuditLog, int64, error) {
	args := m.Called(ctx, rc, filter)
	return args.Get(0).([]audit.AuditLog), args.Get(1).(int64), args.Error(2)
}

func TestAuditHandler_Handle(t *testing.T) {
	b, err := branch.NewBranch("Downtown", "")
	require.NoError(t, err)
	ev := b.GetDomainEvents()[0]
	actor := uuid.New()
	ev.(shared.ActorAware).SetActor(actor)

	repo := new(MockAuditLogRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *audit.AuditLog) bool {
		return l.Action == branch.EventTypeBranchCreated &&
			l.EntityID == b.ID &&
			l.ActorID != nil && *l.ActorID == actor &&
			len(l.Payload) > 0
	})).Return(nil)

	h := NewAuditHandler(repo, nil)
	assert.Empty(t, h.EventTypes())
	require.NoError(t, h.Handle(context.Background(), ev))
	repo.AssertExpectations(t)
}

func TestAuditHandler_HandleStoreFailure(t *testing.T) {
	b, err := branch.NewBranch("Downtown", "")
	require.NoError(t, err)
	repo := new(MockAuditLogRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err = NewAuditHandler(repo, nil).Handle(context.Background(), b.GetDomainEvents()[0])

	assert.ErrorContains(t, err, "db down")
}

func TestAuditLogService_List(t *testing.T) {
	branchID := uuid.New()
	repo := new(MockAuditLogRepository)
	manager := shared.NewRequestContext(uuid.New(), shared.RoleManager, &branchID)
	repo.On("List", mock.Anything, manager, mock.MatchedBy(func(f audit.Filter) bool {
		return f.OrderBy == "occurred_at" && f.Action == "SalaryPaid"
	})).Return([]audit.AuditLog{{ID: uuid.New(), BranchID: branchID, Action: "SalaryPaid"}}, int64(1), nil)

	svc := NewAuditLogService(repo)
	out, total, err := svc.List(context.Background(), manager, AuditLogListFilter{Action: "SalaryPaid"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, out, 1)

	cashier := shared.NewRequestContext(uuid.New(), shared.RoleCashier, &branchID)
	_, _, err = svc.List(context.Background(), cashier, AuditLogListFilter{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
