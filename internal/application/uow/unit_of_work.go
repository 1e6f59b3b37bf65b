// Package uow defines the transactional boundary shared by the application
// services: every multi-row mutation runs inside one UnitOfWork.
package uow

import (
	"context"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/payroll"
)

// UnitOfWork runs fn inside a single database transaction.
// If fn returns an error, the transaction is rolled back.
// If fn succeeds, the transaction is committed.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every repository bound to the current
// transaction. All repositories returned share the same transaction.
type Repositories interface {
	Branches() branch.BranchRepository
	Transactions() accounting.TransactionRepository
	Employees() payroll.EmployeeRepository
	Advances() payroll.AdvanceRepository
	SalaryPayments() payroll.SalaryPaymentRepository
	Bonuses() payroll.BonusRepository
	Payables() finance.AccountPayableRepository
	Receivables() finance.AccountReceivableRepository
	Contacts() finance.ContactRepository
	InventoryItems() inventory.InventoryItemRepository
}

// StaticRepositories is a fixed set of repositories, handy for tests and
// for NoOpUnitOfWork.
type StaticRepositories struct {
	BranchRepo        branch.BranchRepository
	TransactionRepo   accounting.TransactionRepository
	EmployeeRepo      payroll.EmployeeRepository
	AdvanceRepo       payroll.AdvanceRepository
	SalaryPaymentRepo payroll.SalaryPaymentRepository
	BonusRepo         payroll.BonusRepository
	PayableRepo       finance.AccountPayableRepository
	ReceivableRepo    finance.AccountReceivableRepository
	ContactRepo       finance.ContactRepository
	InventoryRepo     inventory.InventoryItemRepository
}

func (r *StaticRepositories) Branches() branch.BranchRepository { return r.BranchRepo }
func (r *StaticRepositories) Transactions() accounting.TransactionRepository {
	return r.TransactionRepo
}
func (r *StaticRepositories) Employees() payroll.EmployeeRepository { return r.EmployeeRepo }
func (r *StaticRepositories) Advances() payroll.AdvanceRepository   { return r.AdvanceRepo }
func (r *StaticRepositories) SalaryPayments() payroll.SalaryPaymentRepository {
	return r.SalaryPaymentRepo
}
func (r *StaticRepositories) Bonuses() payroll.BonusRepository           { return r.BonusRepo }
func (r *StaticRepositories) Payables() finance.AccountPayableRepository { return r.PayableRepo }
func (r *StaticRepositories) Receivables() finance.AccountReceivableRepository {
	return r.ReceivableRepo
}
func (r *StaticRepositories) Contacts() finance.ContactRepository { return r.ContactRepo }
func (r *StaticRepositories) InventoryItems() inventory.InventoryItemRepository {
	return r.InventoryRepo
}

// NoOpUnitOfWork runs fn against fixed repositories without a transaction.
// Rolling back is the caller's problem, so it only suits tests.
type NoOpUnitOfWork struct {
	Repos *StaticRepositories
	// Calls counts Execute invocations.
	Calls int
}

// NewNoOpUnitOfWork creates a NoOpUnitOfWork over repos
func NewNoOpUnitOfWork(repos *StaticRepositories) *NoOpUnitOfWork {
	return &NoOpUnitOfWork{Repos: repos}
}

// Execute runs fn directly
func (u *NoOpUnitOfWork) Execute(_ context.Context, fn func(repos Repositories) error) error {
	u.Calls++
	return fn(u.Repos)
}

var (
	_ UnitOfWork   = (*NoOpUnitOfWork)(nil)
	_ Repositories = (*StaticRepositories)(nil)
)
