package audit

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter narrows audit listings
type Filter struct {
	shared.Filter
	BranchID   *uuid.UUID
	EntityType string
	EntityID   *uuid.UUID
	Action     string
}

// AuditLogRepository stores audit entries. Entries are never updated.
type AuditLogRepository interface {
	Create(ctx context.Context, log *AuditLog) error
	List(ctx context.Context, rc shared.RequestContext, filter Filter) ([]AuditLog, int64, error)
}
