package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/payroll"
	"gorm.io/gorm"
)

// GormRepositories binds every repository to one *gorm.DB, which is either
// the connection pool or an open transaction.
type GormRepositories struct {
	db *gorm.DB
}

// NewRepositories creates repositories over db
func NewRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{db: db}
}

func (r *GormRepositories) Branches() branch.BranchRepository {
	return NewGormBranchRepository(r.db)
}

func (r *GormRepositories) Transactions() accounting.TransactionRepository {
	return NewGormTransactionRepository(r.db)
}

func (r *GormRepositories) Employees() payroll.EmployeeRepository {
	return NewGormEmployeeRepository(r.db)
}

func (r *GormRepositories) Advances() payroll.AdvanceRepository {
	return NewGormAdvanceRepository(r.db)
}

func (r *GormRepositories) SalaryPayments() payroll.SalaryPaymentRepository {
	return NewGormSalaryPaymentRepository(r.db)
}

func (r *GormRepositories) Bonuses() payroll.BonusRepository {
	return NewGormBonusRepository(r.db)
}

func (r *GormRepositories) Payables() finance.AccountPayableRepository {
	return NewGormAccountPayableRepository(r.db)
}

func (r *GormRepositories) Receivables() finance.AccountReceivableRepository {
	return NewGormAccountReceivableRepository(r.db)
}

func (r *GormRepositories) Contacts() finance.ContactRepository {
	return NewGormContactRepository(r.db)
}

func (r *GormRepositories) InventoryItems() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.db)
}

// AuditLogs is outside uow.Repositories: audit rows are written after commit.
func (r *GormRepositories) AuditLogs() audit.AuditLogRepository {
	return NewGormAuditLogRepository(r.db)
}

// GormUnitOfWork runs each Execute in one database transaction
type GormUnitOfWork struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWork creates a unit of work. A positive lockTimeout bounds
// how long a transaction waits for row locks on Postgres.
func NewGormUnitOfWork(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWork {
	return &GormUnitOfWork{db: db, lockTimeout: lockTimeout}
}

// Execute runs fn inside a transaction, rolling back when fn fails.
// Driver errors are translated to domain errors.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u.lockTimeout > 0 && tx.Dialector.Name() == "postgres" {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", u.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(NewRepositories(tx))
	})
	return TranslateError(err)
}

var (
	_ uow.UnitOfWork   = (*GormUnitOfWork)(nil)
	_ uow.Repositories = (*GormRepositories)(nil)
)
