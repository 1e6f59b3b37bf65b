package persistence

import (
	"context"
	"testing"

	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInventoryItemRepository_SubUnitsReplaced(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInventoryItemRepository(db)
	ctx := context.Background()
	branchID := uuid.New()

	item, err := inventory.NewInventoryItem(branchID, "Sparkling water", "bottle", decimal.NewFromInt(48))
	require.NoError(t, err)
	_, err = item.AddSubUnit("crate", decimal.NewFromInt(24))
	require.NoError(t, err)
	_, err = item.AddSubUnit("pack", decimal.NewFromInt(6))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	locked, err := repo.FindByIDForUpdate(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, locked.SubUnits, 2)
	assert.Equal(t, "crate", locked.SubUnits[0].Name)
	assert.Equal(t, "pack", locked.SubUnits[1].Name)

	require.NoError(t, locked.RemoveSubUnit("CRATE"))
	require.NoError(t, repo.SaveWithLock(ctx, locked))

	// Each change is saved on its own, like one request per unit of work.
	locked, err = repo.FindByIDForUpdate(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, locked.SubUnits, 1)
	_, err = locked.AddSubUnit("pallet", decimal.NewFromInt(960))
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, locked))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, found.SubUnits, 2)
	assert.Equal(t, "pack", found.SubUnits[0].Name)
	assert.Equal(t, "pallet", found.SubUnits[1].Name)
	assert.True(t, found.SubUnits[1].Factor.Equal(decimal.NewFromInt(960)))
	assert.True(t, found.Quantity.Equal(decimal.NewFromInt(48)))
}

func TestGormInventoryItemRepository_List(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormInventoryItemRepository(db)
	ctx := context.Background()
	branchID := uuid.New()

	for _, name := range []string{"Rice", "Olive oil", "Flour"} {
		item, err := inventory.NewInventoryItem(branchID, name, "kg", decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, item))
	}
	other, err := inventory.NewInventoryItem(uuid.New(), "Rice", "kg", decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	items, total, err := repo.List(ctx, branchContext(branchID), inventory.ItemFilter{Filter: shared.Filter{OrderBy: "name", OrderDir: "asc"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "Flour", items[0].Name)

	items, _, err = repo.List(ctx, adminContext(), inventory.ItemFilter{Filter: shared.Filter{Search: "rice"}})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
