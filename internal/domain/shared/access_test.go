package shared

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_CanAccessBranch(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		rc       RequestContext
		branch   uuid.UUID
		expected bool
	}{
		{"admin sees any branch", NewRequestContext(uuid.New(), RoleAdmin, nil), other, true},
		{"manager sees own branch", NewRequestContext(uuid.New(), RoleManager, &own), own, true},
		{"manager does not see other branch", NewRequestContext(uuid.New(), RoleManager, &own), other, false},
		{"unbound accountant sees nothing", NewRequestContext(uuid.New(), RoleAccountant, nil), own, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rc.CanAccessBranch(tc.branch))
		})
	}
}

func TestRequestContext_Authorize(t *testing.T) {
	own := uuid.New()
	rc := NewRequestContext(uuid.New(), RoleCashier, &own)

	assert.NoError(t, rc.Authorize(own))
	err := rc.Authorize(uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, CodeForbidden, CodeOf(err))
}

func TestRequestContext_ResolveBranch(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	t.Run("non-admin defaults to own branch", func(t *testing.T) {
		rc := NewRequestContext(uuid.New(), RoleManager, &own)
		got, err := rc.ResolveBranch(nil)
		require.NoError(t, err)
		assert.Equal(t, own, got)
	})

	t.Run("non-admin cannot write to another branch", func(t *testing.T) {
		rc := NewRequestContext(uuid.New(), RoleManager, &own)
		_, err := rc.ResolveBranch(&other)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin must name a branch", func(t *testing.T) {
		rc := NewRequestContext(uuid.New(), RoleAdmin, nil)
		_, err := rc.ResolveBranch(nil)
		assert.Equal(t, CodeValidationFailed, CodeOf(err))

		got, err := rc.ResolveBranch(&other)
		require.NoError(t, err)
		assert.Equal(t, other, got)
	})
}

func TestRequestContext_ScopeBranches(t *testing.T) {
	own := uuid.New()

	branch, ok := NewRequestContext(uuid.New(), RoleAdmin, nil).ScopeBranches()
	assert.True(t, ok)
	assert.Nil(t, branch)

	branch, ok = NewRequestContext(uuid.New(), RoleCashier, &own).ScopeBranches()
	assert.True(t, ok)
	require.NotNil(t, branch)
	assert.Equal(t, own, *branch)

	_, ok = NewRequestContext(uuid.New(), RoleCashier, nil).ScopeBranches()
	assert.False(t, ok)
}

func TestDomainError_Is(t *testing.T) {
	err := NewNotFoundError("Payable")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "Payable not found", err.Error())
	assert.False(t, IsRetryable(err))
	assert.True(t, IsRetryable(ErrConcurrencyConflict))
}
