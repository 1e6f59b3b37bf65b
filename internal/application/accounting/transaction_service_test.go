package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ledgerDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*TransactionService, *MockTransactionRepository, *branch.Branch, shared.RequestContext) {
	t.Helper()
	b, err := branch.NewBranch("Harbour", "")
	require.NoError(t, err)
	branches := new(MockBranchRepository)
	branches.On("FindByID", mock.Anything, b.ID).Return(b, nil).Maybe()
	txs := new(MockTransactionRepository)
	repos := &uow.StaticRepositories{BranchRepo: branches, TransactionRepo: txs}
	rt := uow.Runtime{UoW: uow.NewNoOpUnitOfWork(repos), Repos: repos, Clock: func() time.Time { return ledgerDate }}
	return NewTransactionService(rt), txs, b, shared.NewRequestContext(uuid.New(), shared.RoleManager, &b.ID)
}

func TestTransactionService_Create(t *testing.T) {
	svc, txs, b, rc := newTestService(t)
	txs.On("Save", mock.Anything, mock.MatchedBy(func(tx *accounting.Transaction) bool {
		return tx.SourceType == accounting.SourceManual && tx.Category == "utilities" && tx.BranchID == b.ID
	})).Return(nil)

	resp, err := svc.Create(context.Background(), rc, CreateTransactionRequest{
		Type:     "expense",
		Category: "Utilities",
		Amount:   decimal.NewFromInt(75),
		Date:     ledgerDate,
	})

	require.NoError(t, err)
	assert.Equal(t, "EXPENSE", resp.Type)
	assert.Equal(t, "CASH", resp.PaymentMethod)
}

func TestTransactionService_Create_Invalid(t *testing.T) {
	svc, _, _, rc := newTestService(t)

	_, err := svc.Create(context.Background(), rc, CreateTransactionRequest{
		Type: "INCOME", Category: "sales", Amount: decimal.NewFromInt(-1), Date: ledgerDate,
	})

	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))
}

func TestTransactionService_Delete(t *testing.T) {
	t.Run("manual row is deleted", func(t *testing.T) {
		svc, txs, b, rc := newTestService(t)
		tx, err := accounting.NewTransaction(b.ID, accounting.TransactionTypeIncome, "sales", decimal.NewFromInt(10), ledgerDate, "", "")
		require.NoError(t, err)
		txs.On("FindByID", mock.Anything, tx.ID).Return(tx, nil)
		txs.On("Save", mock.Anything, tx).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), rc, tx.ID))
		assert.True(t, tx.IsDeleted())
	})

	t.Run("paired row is a conflict", func(t *testing.T) {
		svc, txs, b, rc := newTestService(t)
		tx, err := accounting.NewPairedTransaction(b.ID, accounting.TransactionTypeExpense, accounting.CategorySalaries,
			decimal.NewFromInt(870), ledgerDate, accounting.PaymentMethodCash, "salary", accounting.SourceSalaryPayment, uuid.New())
		require.NoError(t, err)
		txs.On("FindByID", mock.Anything, tx.ID).Return(tx, nil)

		err = svc.Delete(context.Background(), rc, tx.ID)

		assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))
		assert.False(t, tx.IsDeleted())
		txs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_Summary(t *testing.T) {
	svc, txs, b, rc := newTestService(t)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	txs.On("Summarize", mock.Anything, rc, &b.ID, from, to).Return(&accounting.Summary{
		Income:  decimal.NewFromInt(1000),
		Expense: decimal.NewFromInt(870),
		Net:     decimal.NewFromInt(130),
		Count:   3,
	}, nil)

	resp, err := svc.Summary(context.Background(), rc, SummaryRequest{BranchID: &b.ID, From: from, To: to})

	require.NoError(t, err)
	assert.True(t, resp.Net.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, int64(3), resp.Count)

	_, err = svc.Summary(context.Background(), rc, SummaryRequest{From: to, To: from})
	assert.Equal(t, shared.CodeValidationFailed, shared.CodeOf(err))

	other := uuid.New()
	_, err = svc.Summary(context.Background(), rc, SummaryRequest{BranchID: &other, From: from, To: to})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
