package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAuditLogRepository_CreateAndList(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAuditLogRepository(db)
	ctx := context.Background()
	branchID := uuid.New()
	actor := uuid.New()
	entityID := uuid.New()

	entries := []*audit.AuditLog{
		{ID: uuid.New(), ActorID: &actor, BranchID: branchID, Action: "SalaryPaid", EntityType: "SalaryPayment", EntityID: entityID,
			Payload: json.RawMessage(`{"net":"900"}`), OccurredAt: time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC)},
		{ID: uuid.New(), BranchID: branchID, Action: "AdvanceCreated", EntityType: "EmployeeAdvance", EntityID: uuid.New(),
			OccurredAt: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), BranchID: uuid.New(), Action: "SalaryPaid", EntityType: "SalaryPayment", EntityID: uuid.New(),
			OccurredAt: time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	logs, total, err := repo.List(ctx, branchContext(branchID), audit.Filter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)

	to := day(2024, 3, 31)
	from := day(2024, 3, 31)
	logs, total, err = repo.List(ctx, adminContext(), audit.Filter{Filter: shared.Filter{From: &from, To: &to}, Action: "SalaryPaid"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	logs, _, err = repo.List(ctx, adminContext(), audit.Filter{EntityType: "SalaryPayment", EntityID: &entityID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, actor, *logs[0].ActorID)
	assert.JSONEq(t, `{"net":"900"}`, string(logs[0].Payload))

	logs, _, err = repo.List(ctx, branchContext(branchID), audit.Filter{EntityType: "EmployeeAdvance"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.JSONEq(t, `{}`, string(logs[0].Payload))
}
