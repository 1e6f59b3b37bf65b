package finance

import (
	"context"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// OpenItemFilter narrows payable and receivable listings
type OpenItemFilter struct {
	shared.Filter
	BranchID  *uuid.UUID
	ContactID *uuid.UUID
	Status    ledger.Status
	OnlyOpen  bool
}

// ContactFilter narrows contact listings
type ContactFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	Kind     ContactKind
}

// AccountPayableRepository persists payables together with their payments.
// Soft-deleted rows are never returned.
type AccountPayableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountPayable, error)
	// FindByIDForUpdate locks the payable row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*AccountPayable, error)
	List(ctx context.Context, rc shared.RequestContext, filter OpenItemFilter) ([]AccountPayable, int64, error)
	Save(ctx context.Context, ap *AccountPayable) error
	// SaveWithLock updates the payable only if nobody else changed it since
	// it was read, inserting any new payments.
	SaveWithLock(ctx context.Context, ap *AccountPayable) error
}

// AccountReceivableRepository persists receivables together with their payments
type AccountReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountReceivable, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*AccountReceivable, error)
	List(ctx context.Context, rc shared.RequestContext, filter OpenItemFilter) ([]AccountReceivable, int64, error)
	Save(ctx context.Context, ar *AccountReceivable) error
	SaveWithLock(ctx context.Context, ar *AccountReceivable) error
}

// ContactRepository persists contacts
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	List(ctx context.Context, rc shared.RequestContext, filter ContactFilter) ([]Contact, int64, error)
	Save(ctx context.Context, c *Contact) error
}
