package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// AuditLogResponse represents an audit entry in API responses
type AuditLogResponse struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    *uuid.UUID      `json:"actorId,omitempty"`
	BranchID   uuid.UUID       `json:"branchId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   uuid.UUID       `json:"entityId"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// AuditLogListFilter represents filter options for audit listings
type AuditLogListFilter struct {
	BranchID   *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	EntityType string     `form:"entityType"`
	EntityID   *uuid.UUID `form:"entityId,parser=encoding.TextUnmarshaler"`
	Action     string     `form:"action"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// AuditLogService lists audit entries
type AuditLogService struct {
	repo audit.AuditLogRepository
}

// NewAuditLogService creates a new AuditLogService
func NewAuditLogService(repo audit.AuditLogRepository) *AuditLogService {
	return &AuditLogService{repo: repo}
}

// List returns entries of the caller's scope, newest first
func (s *AuditLogService) List(ctx context.Context, rc shared.RequestContext, f AuditLogListFilter) ([]AuditLogResponse, int64, error) {
	if rc.Role == shared.RoleCashier {
		return nil, 0, shared.ErrForbidden
	}
	base := shared.DefaultFilter()
	base.Page = f.Page
	base.PageSize = f.PageSize
	base.OrderBy = "occurred_at"
	base.From = f.From
	base.To = f.To

	logs, total, err := s.repo.List(ctx, rc, audit.Filter{
		Filter:     base.Normalize(),
		BranchID:   f.BranchID,
		EntityType: strings.TrimSpace(f.EntityType),
		EntityID:   f.EntityID,
		Action:     strings.TrimSpace(f.Action),
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogResponse{
			ID:         l.ID,
			ActorID:    l.ActorID,
			BranchID:   l.BranchID,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Payload:    l.Payload,
			OccurredAt: l.OccurredAt,
		})
	}
	return out, total, nil
}
