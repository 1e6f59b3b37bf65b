package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUnitOfWork_CommitAndRollback(t *testing.T) {
	db := newSQLiteDB(t)
	u := NewGormUnitOfWork(db, time.Second)
	ctx := context.Background()

	kept, err := branch.NewBranch("Harbour", "")
	require.NoError(t, err)
	err = u.Execute(ctx, func(repos uow.Repositories) error {
		return repos.Branches().Save(ctx, kept)
	})
	require.NoError(t, err)

	dropped, err := branch.NewBranch("Airport", "")
	require.NoError(t, err)
	boom := errors.New("boom")
	err = u.Execute(ctx, func(repos uow.Repositories) error {
		if err := repos.Branches().Save(ctx, dropped); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	repo := NewGormBranchRepository(db)
	_, err = repo.FindByID(ctx, kept.ID)
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, dropped.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUnitOfWork_SetsLockTimeoutOnPostgres(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL lock_timeout = '2500ms'")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	u := NewGormUnitOfWork(gormDB, 2500*time.Millisecond)
	err := u.Execute(context.Background(), func(uow.Repositories) error { return nil })
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUnitOfWork_TranslatesLockErrors(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	u := NewGormUnitOfWork(gormDB, 0)
	err := u.Execute(context.Background(), func(uow.Repositories) error {
		return &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"}
	})
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.True(t, shared.IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
