package payroll

import (
	"context"
	"testing"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBonusService_GrantAndDelete(t *testing.T) {
	f := newPayrollFixture(t)
	var booked *accounting.Transaction
	f.txs.On("Save", mock.Anything, mock.MatchedBy(func(tx *accounting.Transaction) bool {
		return tx.Category == accounting.CategoryBonuses && tx.SourceType == accounting.SourceBonus
	})).Run(func(args mock.Arguments) {
		booked = args.Get(1).(*accounting.Transaction)
	}).Return(nil)

	var saved *payroll.EmployeeBonus
	f.bonuses.On("Save", mock.Anything, mock.AnythingOfType("*payroll.EmployeeBonus")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*payroll.EmployeeBonus)
	}).Return(nil)

	svc := NewBonusService(f.rt)
	resp, err := svc.Grant(context.Background(), f.rc, GrantBonusRequest{
		EmployeeID: f.employee.ID, Amount: dec("250"), BonusDate: payDate, Reason: "Eid",
	})
	require.NoError(t, err)
	require.NotNil(t, booked)
	assert.Equal(t, &booked.ID, resp.TransactionID)
	assert.True(t, booked.Amount.Equal(dec("250")))

	f.bonuses.On("FindByID", mock.Anything, saved.ID).Return(saved, nil)
	f.txs.On("FindByID", mock.Anything, booked.ID).Return(booked, nil)
	f.txs.On("Save", mock.Anything, booked).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), f.rc, saved.ID))
	assert.True(t, saved.IsDeleted())
	assert.True(t, booked.IsDeleted())
	assert.Equal(t, []string{payroll.EventTypeBonusGranted, payroll.EventTypeBonusDeleted}, f.publisher.EventTypes())
}

func TestEmployeeService_Create(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.On("Save", mock.Anything, mock.AnythingOfType("*payroll.Employee")).Return(nil).Once()

	svc := NewEmployeeService(f.rt)
	resp, err := svc.Create(context.Background(), f.rc, CreateEmployeeRequest{
		Name: "Omar", Position: "Waiter", MonthlySalary: dec("800"),
	})

	require.NoError(t, err)
	assert.Equal(t, f.branch.ID, resp.BranchID)
	assert.Equal(t, payDate, resp.HireDate)
	assert.Equal(t, string(payroll.EmployeeStatusActive), resp.Status)
	assert.Equal(t, []string{payroll.EventTypeEmployeeCreated}, f.publisher.EventTypes())

	t.Run("invalid salary", func(t *testing.T) {
		_, err := svc.Create(context.Background(), f.rc, CreateEmployeeRequest{Name: "Omar", MonthlySalary: dec("0")})
		assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
	})

	t.Run("admin must name a branch", func(t *testing.T) {
		admin := shared.NewRequestContext(f.rc.UserID, shared.RoleAdmin, nil)
		_, err := svc.Create(context.Background(), admin, CreateEmployeeRequest{Name: "Omar", MonthlySalary: dec("800")})
		assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
	})
}

func TestEmployeeService_Resign(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.On("Save", mock.Anything, f.employee).Return(nil)

	svc := NewEmployeeService(f.rt)
	resp, err := svc.Resign(context.Background(), f.rc, f.employee.ID)

	require.NoError(t, err)
	assert.Equal(t, string(payroll.EmployeeStatusResigned), resp.Status)
	require.NotNil(t, resp.ResignedAt)
}
