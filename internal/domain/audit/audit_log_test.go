package audit

import (
	"encoding/json"
	"testing"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	shared.BaseDomainEvent
	Amount string `json:"amount"`
}

func TestFromEvent(t *testing.T) {
	branchID := uuid.New()
	aggID := uuid.New()
	actor := uuid.New()
	ev := &sampleEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalaryPaid", "SalaryPayment", aggID, branchID),
		Amount:          "870.00",
	}
	ev.SetActor(actor)

	log, err := FromEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, "SalaryPaid", log.Action)
	assert.Equal(t, "SalaryPayment", log.EntityType)
	assert.Equal(t, aggID, log.EntityID)
	assert.Equal(t, branchID, log.BranchID)
	require.NotNil(t, log.ActorID)
	assert.Equal(t, actor, *log.ActorID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(log.Payload, &payload))
	assert.Equal(t, "870.00", payload["amount"])
}

func TestFromEvent_WithoutActor(t *testing.T) {
	ev := &sampleEvent{BaseDomainEvent: shared.NewBaseDomainEvent("X", "Y", uuid.New(), uuid.New())}
	log, err := FromEvent(ev)
	require.NoError(t, err)
	assert.Nil(t, log.ActorID)

	_, err = FromEvent(nil)
	assert.Error(t, err)
}
