// Package branch manages the outlets of the business.
package branch

import (
	"context"
	"time"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateBranchRequest represents a request to open a branch
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=300"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToBranchResponse converts a branch to its response
func ToBranchResponse(b *branch.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}

// BranchService handles branch administration
type BranchService struct {
	rt uow.Runtime
}

// NewBranchService creates a new BranchService
func NewBranchService(rt uow.Runtime) *BranchService {
	return &BranchService{rt: rt}
}

// Create opens a new branch. Admin only.
func (s *BranchService) Create(ctx context.Context, rc shared.RequestContext, req CreateBranchRequest) (*BranchResponse, error) {
	if !rc.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	b, err := branch.NewBranch(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.rt.Repos.Branches().Save(ctx, b); err != nil {
		return nil, err
	}
	events := &uow.EventCollector{}
	events.Collect(b)
	s.rt.Publish(ctx, rc, events)

	resp := ToBranchResponse(b)
	return &resp, nil
}

// List returns the branches visible to the caller
func (s *BranchService) List(ctx context.Context, rc shared.RequestContext, page, pageSize int) ([]BranchResponse, int64, error) {
	f := shared.DefaultFilter()
	f.Page = page
	f.PageSize = pageSize
	f.OrderBy = "name"
	f.OrderDir = "asc"

	items, total, err := s.rt.Repos.Branches().List(ctx, rc, f.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]BranchResponse, 0, len(items))
	for i := range items {
		out = append(out, ToBranchResponse(&items[i]))
	}
	return out, total, nil
}

// Disable stops new postings against a branch. Admin only.
func (s *BranchService) Disable(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*BranchResponse, error) {
	if !rc.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	b, err := s.rt.Repos.Branches().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Disable(); err != nil {
		return nil, err
	}
	if err := s.rt.Repos.Branches().Save(ctx, b); err != nil {
		return nil, err
	}
	events := &uow.EventCollector{}
	events.Collect(b)
	s.rt.Publish(ctx, rc, events)

	resp := ToBranchResponse(b)
	return &resp, nil
}
