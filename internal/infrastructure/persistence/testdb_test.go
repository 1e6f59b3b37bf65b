package persistence

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// allModels lists every table the repositories use
var allModels = []any{
	&models.BranchModel{},
	&models.TransactionModel{},
	&models.EmployeeModel{},
	&models.EmployeeAdvanceModel{},
	&models.AdvanceDeductionModel{},
	&models.SalaryPaymentModel{},
	&models.EmployeeBonusModel{},
	&models.ContactModel{},
	&models.AccountPayableModel{},
	&models.PayablePaymentModel{},
	&models.AccountReceivableModel{},
	&models.ReceivablePaymentModel{},
	&models.InventoryItemModel{},
	&models.SubUnitModel{},
	&models.AuditLogModel{},
}

// newSQLiteDB opens a private in-memory database with every table migrated
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(allModels...))
	return db
}

// newMockGormDB returns a postgres-dialect GORM handle over sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func adminContext() shared.RequestContext {
	return shared.NewRequestContext(uuid.New(), shared.RoleAdmin, nil)
}

func branchContext(branchID uuid.UUID) shared.RequestContext {
	return shared.NewRequestContext(uuid.New(), shared.RoleManager, &branchID)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
