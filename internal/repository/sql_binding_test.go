package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/office-roster-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestEmployeeRepository_CountByOfficeID_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees" WHERE office_id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByOfficeID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	emp := &domain.Employee{
		ID:        99,
		FirstName: "John",
		LastName:  "Doe",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		OfficeID:  1,
	}
	require.NoError(t, repo.Create(context.Background(), emp))
	assert.Equal(t, int64(42), emp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create_ForeignKeyViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_offices_employees"})

	err := repo.Create(context.Background(), &domain.Employee{FirstName: "John", OfficeID: 999})
	assert.ErrorIs(t, err, domain.ErrOfficeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Update_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employees`)).
		WithArgs("Jane", "Doe", sqlmock.AnyArg(), int64(2), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 5, domain.EmployeeFields{
		FirstName: "Jane",
		LastName:  "Doe",
		BirthDate: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		OfficeID:  2,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Update_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employees`)).
		WillReturnError(errors.New("connection refused"))

	err := repo.Update(context.Background(), 5, domain.EmployeeFields{OfficeID: 2})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOfficeNotFound)
	assert.Contains(t, err.Error(), "update employee")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEmployeeRepository_Delete_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE "employees"."id" = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE "employees"."id" = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), domain.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfficeRepository_GetByIDForUpdate_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "offices" WHERE "offices"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "max_occupancy"}).
			AddRow(1, "Headquarters", "1 Main Street", 50))
	mock.ExpectQuery(`SELECT \* FROM "offices" WHERE "offices"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	office, err := repo.GetByIDForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), office.MaxOccupancy)

	_, err = repo.GetByIDForUpdate(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrOfficeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByIDForUpdate_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "office_id"}).
			AddRow(5, "John", "Doe", 3))
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	emp, err := repo.GetByIDForUpdate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), emp.OfficeID)

	_, err = repo.GetByIDForUpdate(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_SQL(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTxManager(db)
		repo := NewEmployeeRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			_, err := repo.CountByOfficeID(ctx, 1)
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTxManager(db)
		errBoom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call reuses transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return tx.WithinTransaction(ctx, func(ctx context.Context) error { return nil })
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError("op", nil, nil))
	assert.ErrorIs(t, translateError("op", gorm.ErrRecordNotFound, domain.ErrEmployeeNotFound), domain.ErrEmployeeNotFound)

	err := translateError("op", &pgconn.PgError{Code: "23503", ConstraintName: "fk_other"}, nil)
	assert.NotErrorIs(t, err, domain.ErrOfficeNotFound)

	err = translateError("op", &pgconn.PgError{Code: "23503"}, nil)
	assert.ErrorIs(t, err, domain.ErrOfficeNotFound)

	err = translateError("op", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, nil)
	assert.ErrorIs(t, err, domain.ErrOfficeNotFound)

	err = translateError("op", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, nil)
	assert.NotErrorIs(t, err, domain.ErrOfficeNotFound)

	err = translateError("list employees", gorm.ErrRecordNotFound, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Contains(t, err.Error(), "repository: list employees")
}
