// Package audit persists an audit trail of every domain event and serves it
// back to branch managers.
package audit

import (
	"context"
	"fmt"

	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/erp/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditHandler writes one audit entry per published domain event
type AuditHandler struct {
	repo   audit.AuditLogRepository
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(repo audit.AuditLogRepository, logger *zap.Logger) *AuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditHandler{repo: repo, logger: logger}
}

// EventTypes returns nil: the handler receives every event
func (h *AuditHandler) EventTypes() []string {
	return nil
}

// Handle converts the event into an audit entry and stores it
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := audit.FromEvent(event)
	if err != nil {
		return fmt.Errorf("build audit entry: %w", err)
	}
	if err := h.repo.Create(ctx, entry); err != nil {
		h.logger.Error("failed to write audit entry",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

var _ shared.EventHandler = (*AuditHandler)(nil)
