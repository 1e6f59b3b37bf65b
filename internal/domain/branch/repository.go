package branch

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	// List returns every branch for admins and only the caller's own
	// branch for everyone else.
	List(ctx context.Context, rc shared.RequestContext, filter shared.Filter) ([]Branch, int64, error)
	Save(ctx context.Context, b *Branch) error
}

// RequireActive loads branch id and fails unless it can take new records
func RequireActive(ctx context.Context, repo BranchRepository, id uuid.UUID) error {
	b, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return b.EnsureActive()
}
