package payroll

import (
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalaryPayment(t *testing.T) {
	e := newTestEmployee(t, "1000")
	a := newTestAdvance(t, e, "100", "100", "50", 1)
	plan, err := FixedMonthlyPolicy{}.Plan(PlanInput{Amount: dec("1000"), Advances: []*EmployeeAdvance{a}})
	require.NoError(t, err)

	date := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	sp, err := NewSalaryPayment(e, plan, date, "April")
	require.NoError(t, err)
	assert.Equal(t, e.ID, sp.EmployeeID)
	assert.Equal(t, e.BranchID, sp.BranchID)
	assert.True(t, sp.GrossAmount.Equal(dec("1000")))
	assert.True(t, sp.DeductedAmount.Equal(dec("50")))
	assert.True(t, sp.NetAmount.Equal(dec("950")))
	assert.Equal(t, PolicyFixedMonthly, sp.Policy)
	assert.True(t, sp.HasCashMovement())
	assert.Empty(t, sp.GetDomainEvents())

	d, err := a.Deduct(plan.Lines[0].Amount, date, &sp.ID, "", uuid.Nil)
	require.NoError(t, err)
	sp.AttachDeduction(*d)
	tx := uuid.New()
	sp.LinkTransaction(tx)
	sp.RecordPaid()

	require.Len(t, sp.GetDomainEvents(), 1)
	ev, ok := sp.GetDomainEvents()[0].(*SalaryPaidEvent)
	require.True(t, ok)
	assert.Len(t, ev.Deductions, 1)
	assert.Equal(t, &tx, ev.TransactionID)
}

func TestNewSalaryPayment_Invalid(t *testing.T) {
	e := newTestEmployee(t, "1000")
	good := &DeductionPlan{GrossAmount: dec("100"), Budget: dec("10"), NetAmount: dec("90")}

	_, err := NewSalaryPayment(nil, good, time.Now(), "")
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	_, err = NewSalaryPayment(e, nil, time.Now(), "")
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	_, err = NewSalaryPayment(e, good, time.Time{}, "")
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	broken := &DeductionPlan{GrossAmount: dec("100"), Budget: dec("10"), NetAmount: dec("80")}
	_, err = NewSalaryPayment(e, broken, time.Now(), "")
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
}

func TestSalaryPayment_ZeroNet(t *testing.T) {
	e := newTestEmployee(t, "1000")
	a := newTestAdvance(t, e, "500", "500", "200", 1)
	plan, err := FixedMonthlyPolicy{}.Plan(PlanInput{Amount: dec("200"), Advances: []*EmployeeAdvance{a}})
	require.NoError(t, err)

	sp, err := NewSalaryPayment(e, plan, time.Now(), "")
	require.NoError(t, err)
	assert.True(t, sp.NetAmount.IsZero())
	assert.False(t, sp.HasCashMovement())
}

func TestSalaryPayment_Delete(t *testing.T) {
	e := newTestEmployee(t, "1000")
	sp, err := NewSalaryPayment(e, &DeductionPlan{GrossAmount: dec("100"), Budget: dec("0"), NetAmount: dec("100")}, time.Now(), "")
	require.NoError(t, err)

	require.NoError(t, sp.Delete(time.Now()))
	assert.True(t, sp.IsDeleted())
	require.Len(t, sp.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeSalaryPaymentDeleted, sp.GetDomainEvents()[0].EventType())

	err = sp.Delete(time.Now())
	assert.Equal(t, shared.CodeNotFound, shared.CodeOf(err))
}

func TestEmployee(t *testing.T) {
	_, err := NewEmployee(uuid.Nil, "Ana", "", "", dec("100"), time.Time{})
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
	_, err = NewEmployee(uuid.New(), " ", "", "", dec("100"), time.Time{})
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
	_, err = NewEmployee(uuid.New(), "Ana", "", "", dec("0"), time.Time{})
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	e := newTestEmployee(t, "1000")
	require.NoError(t, e.UpdateSalary(dec("1200")))
	assert.True(t, e.MonthlySalary.Equal(dec("1200")))
	assert.Error(t, e.UpdateSalary(dec("-1")))

	require.NoError(t, e.Resign(time.Now()))
	assert.False(t, e.IsActive())
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(e.Resign(time.Now())))
}

func TestEmployeeBonus(t *testing.T) {
	e := newTestEmployee(t, "1000")
	b, err := NewEmployeeBonus(e, dec("250"), time.Now(), "Eid")
	require.NoError(t, err)
	assert.Equal(t, e.BranchID, b.BranchID)
	require.Len(t, b.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeBonusGranted, b.GetDomainEvents()[0].EventType())

	_, err = NewEmployeeBonus(e, dec("0"), time.Now(), "Eid")
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
	_, err = NewEmployeeBonus(e, dec("10"), time.Now(), "")
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	require.NoError(t, b.Delete(time.Now()))
	assert.True(t, b.IsDeleted())
}
