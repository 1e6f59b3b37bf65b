package shared

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the caller's role as carried in the access token.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleAccountant Role = "ACCOUNTANT"
	RoleCashier    Role = "CASHIER"
)

// ParseRole normalizes a role claim. Unknown roles are kept so that they are
// treated as the least privileged branch-bound caller.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// RequestContext is the capability every branch-scoped operation receives
// explicitly. Admins see every branch; everyone else only their own.
type RequestContext struct {
	UserID   uuid.UUID
	Role     Role
	BranchID *uuid.UUID
}

// NewRequestContext builds a RequestContext. A nil branch on a non-admin
// caller yields a context that can access nothing.
func NewRequestContext(userID uuid.UUID, role Role, branchID *uuid.UUID) RequestContext {
	return RequestContext{UserID: userID, Role: role, BranchID: branchID}
}

// IsAdmin reports whether the caller spans all branches.
func (rc RequestContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}

// CanAccessBranch reports whether branchID is inside the caller's scope.
func (rc RequestContext) CanAccessBranch(branchID uuid.UUID) bool {
	if rc.IsAdmin() {
		return true
	}
	return rc.BranchID != nil && *rc.BranchID == branchID
}

// Authorize returns ErrForbidden when branchID is outside the caller's scope.
func (rc RequestContext) Authorize(branchID uuid.UUID) error {
	if !rc.CanAccessBranch(branchID) {
		return ErrForbidden
	}
	return nil
}

// ResolveBranch picks the branch a new record is written to. Non-admins
// always write to their own branch and may not name another one; admins
// must name one unless they are themselves bound to a branch.
func (rc RequestContext) ResolveBranch(requested *uuid.UUID) (uuid.UUID, error) {
	if requested != nil && *requested != uuid.Nil {
		if err := rc.Authorize(*requested); err != nil {
			return uuid.Nil, err
		}
		return *requested, nil
	}
	if rc.BranchID != nil {
		return *rc.BranchID, nil
	}
	if rc.IsAdmin() {
		return uuid.Nil, NewValidationError("branchId is required")
	}
	return uuid.Nil, ErrForbidden
}

// ScopeBranches returns the branch restriction for list queries: nil for
// unrestricted callers, otherwise the single allowed branch. The second
// result is false when the caller can see nothing at all.
func (rc RequestContext) ScopeBranches() (*uuid.UUID, bool) {
	if rc.IsAdmin() {
		return nil, true
	}
	if rc.BranchID == nil {
		return nil, false
	}
	id := *rc.BranchID
	return &id, true
}
