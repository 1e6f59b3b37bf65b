package models

import (
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeAdvanceModel_StoresCollapsedStatus(t *testing.T) {
	employee, err := payroll.NewEmployee(uuid.New(), "Ana", "Cook", "", decimal.NewFromInt(2000), time.Now())
	require.NoError(t, err)
	advance, err := payroll.NewEmployeeAdvance(employee, decimal.NewFromInt(300), decimal.NewFromInt(100), time.Now(), "rent")
	require.NoError(t, err)
	_, err = advance.Deduct(decimal.NewFromInt(100), time.Now(), nil, "", uuid.New())
	require.NoError(t, err)
	require.Equal(t, ledger.StatusPartial, advance.Balance.Status)

	m := EmployeeAdvanceModelFromDomain(advance)
	assert.Equal(t, ledger.StatusActive, m.Status)
	require.Len(t, m.Deductions, 1)

	back, err := m.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusPartial, back.Balance.Status)
	assert.True(t, back.Balance.Remaining.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, advance.Version, back.Version)
}

func TestEmployeeAdvanceModel_RejectsInconsistentRow(t *testing.T) {
	m := &EmployeeAdvanceModel{
		Amount:          decimal.NewFromInt(100),
		RemainingAmount: decimal.Zero,
		Status:          ledger.StatusActive,
	}
	_, err := m.ToDomain()
	assert.Error(t, err)
}

func TestAccountPayableModel_PaymentsSurvive(t *testing.T) {
	ap, err := finance.NewAccountPayable(uuid.New(), uuid.New(), "flour", decimal.NewFromInt(500), time.Now(), nil)
	require.NoError(t, err)
	_, err = ap.Pay(finance.PaymentInput{
		Amount:        decimal.NewFromInt(200),
		PaymentDate:   time.Now(),
		PaymentMethod: accounting.PaymentMethodCash,
		ActorID:       uuid.New(),
	})
	require.NoError(t, err)

	m := AccountPayableModelFromDomain(ap)
	require.Len(t, m.Payments, 1)
	assert.Equal(t, ap.ID, m.Payments[0].BalanceID)
	assert.Equal(t, ledger.StatusPartial, m.Status)

	back, err := m.ToDomain()
	require.NoError(t, err)
	assert.True(t, back.Balance.Remaining.Equal(decimal.NewFromInt(300)))
	require.Len(t, back.Payments, 1)
	assert.True(t, back.Payments[0].Amount.Equal(decimal.NewFromInt(200)))
}

func TestInventoryItemModel_SubUnitOrder(t *testing.T) {
	item, err := inventory.NewInventoryItem(uuid.New(), "Cola", "bottle", decimal.NewFromInt(24))
	require.NoError(t, err)
	_, err = item.AddSubUnit("crate", decimal.NewFromInt(24))
	require.NoError(t, err)
	_, err = item.AddSubUnit("pack", decimal.NewFromInt(6))
	require.NoError(t, err)

	m := InventoryItemModelFromDomain(item)
	require.Len(t, m.SubUnits, 2)
	assert.Equal(t, 1, m.SubUnits[1].Position)
	assert.Equal(t, item.ID, m.SubUnits[0].ItemID)

	back := m.ToDomain()
	assert.Equal(t, "crate", back.SubUnits[0].Name)
	assert.Equal(t, "pack", back.SubUnits[1].Name)
}
