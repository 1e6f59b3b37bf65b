package branch

import (
	"strings"
	"testing"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	t.Run("creates active branch", func(t *testing.T) {
		b, err := NewBranch(" Downtown ", "Main St 1")
		require.NoError(t, err)
		assert.Equal(t, "Downtown", b.Name)
		assert.True(t, b.IsActive)
		require.Len(t, b.GetDomainEvents(), 1)
		assert.Equal(t, b.ID, b.GetDomainEvents()[0].BranchID())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBranch("  ", "")
		assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
	})

	t.Run("rejects long name", func(t *testing.T) {
		_, err := NewBranch(strings.Repeat("x", 101), "")
		assert.Error(t, err)
	})
}

func TestBranch_Disable(t *testing.T) {
	b, err := NewBranch("Airport", "")
	require.NoError(t, err)
	require.NoError(t, b.EnsureActive())

	require.NoError(t, b.Disable())
	assert.False(t, b.IsActive)
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(b.EnsureActive()))
	assert.Error(t, b.Disable())
}
