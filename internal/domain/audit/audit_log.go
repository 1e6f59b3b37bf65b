// Package audit records who changed what in a branch ledger.
package audit

import (
	"encoding/json"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// AuditLog is an append-only record of one domain event
type AuditLog struct {
	ID         uuid.UUID
	ActorID    *uuid.UUID
	BranchID   uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Payload    json.RawMessage
	OccurredAt time.Time
}

// FromEvent builds an audit entry from a published domain event
func FromEvent(event shared.DomainEvent) (*AuditLog, error) {
	if event == nil {
		return nil, shared.NewValidationError("event is required")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	log := &AuditLog{
		ID:         uuid.New(),
		BranchID:   event.BranchID(),
		Action:     event.EventType(),
		EntityType: event.AggregateType(),
		EntityID:   event.AggregateID(),
		Payload:    payload,
		OccurredAt: event.OccurredAt(),
	}
	if aware, ok := event.(shared.ActorAware); ok && aware.ActorID() != uuid.Nil {
		actor := aware.ActorID()
		log.ActorID = &actor
	}
	return log, nil
}
