package persistence

import (
	"context"
	"testing"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB, branchID uuid.UUID) *payroll.Employee {
	t.Helper()
	e, err := payroll.NewEmployee(branchID, "Ana", "Cook", "555-0100", decimal.NewFromInt(2000), day(2024, 1, 1))
	require.NoError(t, err)
	require.NoError(t, NewGormEmployeeRepository(db).Save(context.Background(), e))
	return e
}

func seedAdvance(t *testing.T, db *gorm.DB, e *payroll.Employee, amount, monthly int64, on int) *payroll.EmployeeAdvance {
	t.Helper()
	a, err := payroll.NewEmployeeAdvance(e, decimal.NewFromInt(amount), decimal.NewFromInt(monthly), day(2024, 2, on), "advance")
	require.NoError(t, err)
	require.NoError(t, NewGormAdvanceRepository(db).Save(context.Background(), a))
	return a
}

func TestGormEmployeeRepository_SaveAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()
	branchID := uuid.New()
	e := seedEmployee(t, db, branchID)

	found, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)
	assert.True(t, found.MonthlySalary.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, payroll.EmployeeStatusActive, found.Status)

	require.NoError(t, found.Resign(day(2024, 6, 30)))
	require.NoError(t, repo.Save(ctx, found))

	resigned, _, err := repo.List(ctx, adminContext(), payroll.EmployeeFilter{Filter: shared.DefaultFilter(), Status: payroll.EmployeeStatusResigned})
	require.NoError(t, err)
	require.Len(t, resigned, 1)
	assert.NotNil(t, resigned[0].ResignedAt)
}

func TestGormEmployeeRepository_ListIsScoped(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()
	own, other := uuid.New(), uuid.New()
	seedEmployee(t, db, own)
	seedEmployee(t, db, other)

	items, total, err := repo.List(ctx, branchContext(own), payroll.EmployeeFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, own, items[0].BranchID)

	_, total, err = repo.List(ctx, adminContext(), payroll.EmployeeFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(ctx, branchContext(own), payroll.EmployeeFilter{Filter: shared.DefaultFilter(), BranchID: &other})
	require.NoError(t, err)
	assert.Zero(t, total)

	noBranch := shared.NewRequestContext(uuid.New(), shared.RoleCashier, nil)
	_, total, err = repo.List(ctx, noBranch, payroll.EmployeeFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGormAdvanceRepository_SaveWithLock(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAdvanceRepository(db)
	ctx := context.Background()
	e := seedEmployee(t, db, uuid.New())
	a := seedAdvance(t, db, e, 300, 100, 1)

	loaded, err := repo.FindByIDForUpdate(ctx, a.ID)
	require.NoError(t, err)
	_, err = loaded.Deduct(decimal.NewFromInt(100), day(2024, 3, 1), nil, "manual", uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Remaining().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, ledger.StatusActive, reloaded.Status())
	assert.Equal(t, ledger.StatusPartial, reloaded.Balance.Status)
	require.Len(t, reloaded.Deductions, 1)
	assert.Equal(t, "manual", reloaded.Deductions[0].Notes)
	assert.Equal(t, 2, reloaded.Version)

	t.Run("stale version is a concurrency conflict", func(t *testing.T) {
		_, err := a.Deduct(decimal.NewFromInt(50), day(2024, 3, 2), nil, "", uuid.New())
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, a)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		current, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, current.Remaining().Equal(decimal.NewFromInt(200)))
		assert.Len(t, current.Deductions, 1)
	})
}

func TestGormAdvanceRepository_FindActiveByEmployee(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAdvanceRepository(db)
	ctx := context.Background()
	e := seedEmployee(t, db, uuid.New())

	newer := seedAdvance(t, db, e, 200, 80, 20)
	older := seedAdvance(t, db, e, 100, 50, 5)
	paid := seedAdvance(t, db, e, 40, 40, 1)
	_, err := paid.Deduct(decimal.NewFromInt(40), day(2024, 3, 1), nil, "", uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, paid))

	other := seedEmployee(t, db, e.BranchID)
	seedAdvance(t, db, other, 100, 10, 1)

	active, err := repo.FindActiveByEmployeeForUpdate(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, older.ID, active[0].ID)
	assert.Equal(t, newer.ID, active[1].ID)

	list, total, err := repo.List(ctx, adminContext(), payroll.AdvanceFilter{
		Filter:     shared.DefaultFilter(),
		EmployeeID: &e.ID,
		Status:     ledger.StatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, paid.ID, list[0].ID)
}

func TestGormSalaryPaymentRepository_LoadsDeductions(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	e := seedEmployee(t, db, uuid.New())
	a := seedAdvance(t, db, e, 300, 100, 1)

	advances := []*payroll.EmployeeAdvance{a}
	plan, err := payroll.FixedMonthlyPolicy{}.Plan(payroll.PlanInput{
		Amount:        decimal.NewFromInt(1000),
		MonthlySalary: e.MonthlySalary,
		Advances:      advances,
	})
	require.NoError(t, err)
	sp, err := payroll.NewSalaryPayment(e, plan, day(2024, 3, 31), "March")
	require.NoError(t, err)
	for _, line := range plan.Lines {
		d, err := a.Deduct(line.Amount, sp.PaymentDate, &sp.ID, "", uuid.Nil)
		require.NoError(t, err)
		sp.AttachDeduction(*d)
	}

	require.NoError(t, NewGormSalaryPaymentRepository(db).Save(ctx, sp))
	require.NoError(t, NewGormAdvanceRepository(db).SaveWithLock(ctx, a))

	found, err := NewGormSalaryPaymentRepository(db).FindByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.True(t, found.NetAmount.Equal(decimal.NewFromInt(900)))
	require.Len(t, found.Deductions, 1)
	assert.Equal(t, a.ID, found.Deductions[0].AdvanceID)

	require.NoError(t, found.Delete(day(2024, 4, 1)))
	require.NoError(t, NewGormSalaryPaymentRepository(db).Save(ctx, found))
	_, err = NewGormSalaryPaymentRepository(db).FindByID(ctx, sp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormBonusRepository_SoftDelete(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormBonusRepository(db)
	ctx := context.Background()
	e := seedEmployee(t, db, uuid.New())

	b, err := payroll.NewEmployeeBonus(e, decimal.NewFromInt(150), day(2024, 12, 20), "holiday")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, b))

	_, total, err := repo.List(ctx, branchContext(e.BranchID), payroll.BonusFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, b.Delete(day(2024, 12, 21)))
	require.NoError(t, repo.Save(ctx, b))

	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, total, err = repo.List(ctx, branchContext(e.BranchID), payroll.BonusFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Zero(t, total)
}
