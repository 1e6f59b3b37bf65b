package finance

import (
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactKind says which side of the ledger a contact usually sits on
type ContactKind string

const (
	ContactKindVendor   ContactKind = "VENDOR"
	ContactKindCustomer ContactKind = "CUSTOMER"
	ContactKindBoth     ContactKind = "BOTH"
)

// IsValid checks if the kind is valid
func (k ContactKind) IsValid() bool {
	return k == ContactKindVendor || k == ContactKindCustomer || k == ContactKindBoth
}

// CanOwePayable reports whether the branch can owe this contact money
func (k ContactKind) CanOwePayable() bool {
	return k == ContactKindVendor || k == ContactKindBoth
}

// CanOweReceivable reports whether this contact can owe the branch money
func (k ContactKind) CanOweReceivable() bool {
	return k == ContactKindCustomer || k == ContactKindBoth
}

// Contact is a vendor or customer of a branch
type Contact struct {
	shared.BranchAggregateRoot
	Name  string
	Kind  ContactKind
	Phone string
	Notes string
}

// NewContact creates a new contact
func NewContact(branchID uuid.UUID, name string, kind ContactKind, phone, notes string) (*Contact, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("contact name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("contact name cannot exceed 200 characters")
	}
	if kind == "" {
		kind = ContactKindBoth
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("contact kind must be VENDOR, CUSTOMER or BOTH")
	}
	return &Contact{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Name:                name,
		Kind:                kind,
		Phone:               strings.TrimSpace(phone),
		Notes:               notes,
	}, nil
}
