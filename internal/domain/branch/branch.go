// Package branch models the outlets whose ledgers the back office keeps.
package branch

import (
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
)

const (
	aggregateTypeBranch     = "Branch"
	EventTypeBranchCreated  = "BranchCreated"
	EventTypeBranchDisabled = "BranchDisabled"
)

// Branch is a restaurant or shop with its own ledger
type Branch struct {
	shared.BaseAggregateRoot
	Name     string
	Address  string
	IsActive bool
}

// NewBranch creates an active branch
func NewBranch(name, address string) (*Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("branch name is required")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("branch name cannot exceed 100 characters")
	}

	b := &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           strings.TrimSpace(address),
		IsActive:          true,
	}
	b.AddDomainEvent(NewBranchEvent(EventTypeBranchCreated, b))
	return b, nil
}

// Disable stops new postings against the branch
func (b *Branch) Disable() error {
	if !b.IsActive {
		return shared.NewInvalidStateError("branch is already disabled")
	}
	b.IsActive = false
	b.Touch()
	b.IncrementVersion()
	b.AddDomainEvent(NewBranchEvent(EventTypeBranchDisabled, b))
	return nil
}

// EnsureActive returns an INVALID_STATE error for a disabled branch
func (b *Branch) EnsureActive() error {
	if !b.IsActive {
		return shared.NewInvalidStateError("branch " + b.Name + " is disabled")
	}
	return nil
}

// BranchEvent is raised on branch lifecycle changes
type BranchEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewBranchEvent creates a BranchEvent of the given type. The branch is its
// own ledger scope.
func NewBranchEvent(eventType string, b *Branch) *BranchEvent {
	return &BranchEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateTypeBranch, b.ID, b.ID),
		Name:            b.Name,
	}
}
