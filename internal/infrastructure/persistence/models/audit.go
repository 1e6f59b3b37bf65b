package models

import (
	"encoding/json"
	"time"

	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditLogModel is an append-only audit row. Payload holds the event JSON.
type AuditLogModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index"`
	BranchID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action     string     `gorm:"type:varchar(100);not null;index"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_audit_entity,priority:1"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2"`
	Payload    string     `gorm:"type:jsonb;not null"`
	OccurredAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	return &audit.AuditLog{
		ID:         m.ID,
		ActorID:    m.ActorID,
		BranchID:   m.BranchID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Payload:    json.RawMessage(m.Payload),
		OccurredAt: m.OccurredAt,
	}
}

// AuditLogModelFromDomain creates a persistence model from a domain AuditLog
func AuditLogModelFromDomain(l *audit.AuditLog) *AuditLogModel {
	payload := string(l.Payload)
	if payload == "" {
		payload = "{}"
	}
	return &AuditLogModel{
		ID:         l.ID,
		ActorID:    l.ActorID,
		BranchID:   l.BranchID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Payload:    payload,
		OccurredAt: l.OccurredAt,
	}
}
