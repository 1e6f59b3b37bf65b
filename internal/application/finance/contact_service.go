package finance

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService manages vendors and customers
type ContactService struct {
	rt uow.Runtime
}

// NewContactService creates a new ContactService
func NewContactService(rt uow.Runtime) *ContactService {
	return &ContactService{rt: rt}
}

// Create registers a contact in the caller's branch
func (s *ContactService) Create(ctx context.Context, rc shared.RequestContext, req CreateContactRequest) (*ContactResponse, error) {
	branchID, err := rc.ResolveBranch(req.BranchID)
	if err != nil {
		return nil, err
	}

	var created *finance.Contact
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		if err := branch.RequireActive(ctx, repos.Branches(), branchID); err != nil {
			return err
		}
		c, err := finance.NewContact(branchID, req.Name, finance.ContactKind(strings.ToUpper(req.Kind)), req.Phone, req.Notes)
		if err != nil {
			return err
		}
		c.SetCreatedBy(rc.UserID)
		if err := repos.Contacts().Save(ctx, c); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToContactResponse(created)
	return &resp, nil
}

// Get returns one contact
func (s *ContactService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*ContactResponse, error) {
	c, err := s.rt.Repos.Contacts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(c.BranchID); err != nil {
		return nil, err
	}
	resp := ToContactResponse(c)
	return &resp, nil
}

// List returns contacts of the caller's scope
func (s *ContactService) List(ctx context.Context, rc shared.RequestContext, f ContactListFilter) ([]ContactResponse, int64, error) {
	base := shared.DefaultFilter()
	base.Page = f.Page
	base.PageSize = f.PageSize
	base.OrderBy = "name"
	base.OrderDir = "asc"
	base.Search = strings.TrimSpace(f.Search)

	items, total, err := s.rt.Repos.Contacts().List(ctx, rc, finance.ContactFilter{
		Filter:   base.Normalize(),
		BranchID: f.BranchID,
		Kind:     finance.ContactKind(strings.ToUpper(f.Kind)),
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]ContactResponse, 0, len(items))
	for i := range items {
		out = append(out, ToContactResponse(&items[i]))
	}
	return out, total, nil
}
