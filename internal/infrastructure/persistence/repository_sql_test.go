package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByIDForUpdate_LocksRow(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "employee_advances" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormAdvanceRepository(gormDB).FindByIDForUpdate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWithLock_StaleVersion(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	item, err := inventory.NewInventoryItem(uuid.New(), "Coffee beans", "kg", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, item.Adjust(decimal.NewFromInt(-1), item.CreatedAt))

	mock.ExpectExec(`UPDATE "inventory_items" SET .* WHERE \(id = \$\d+ AND version = \$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewGormInventoryItemRepository(gormDB).SaveWithLock(context.Background(), item)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NoBranchSeesNothing(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE 1 = 0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE 1 = 0 ORDER BY name ASC,id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rc := shared.NewRequestContext(uuid.New(), shared.RoleCashier, nil)
	filter := shared.Filter{OrderBy: "name", OrderDir: "asc"}
	_, total, err := NewGormContactRepository(gormDB).List(context.Background(), rc, finance.ContactFilter{Filter: filter})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
