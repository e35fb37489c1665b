package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/office-roster-api/internal/domain"
	"github.com/office-roster-api/internal/repository"
	"github.com/office-roster-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	lockEmployeeSQL = `SELECT \* FROM "employees" WHERE "employees"."id" = \$1 .*FOR UPDATE`
	lockOfficeSQL   = `SELECT \* FROM "offices" WHERE "offices"."id" = \$1 .*FOR UPDATE`
)

func setupSQLService(t *testing.T) (service.EmployeeService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	svc := service.NewEmployeeService(
		repository.NewEmployeeRepository(db),
		repository.NewOfficeRepository(db),
		repository.NewTxManager(db),
		service.WithClock(func() time.Time { return fixedNow }),
	)
	return svc, mock
}

func employeeRow(id, officeID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "first_name", "last_name", "birth_date", "office_id"}).
		AddRow(id, "Ada", "Lovelace", time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC), officeID)
}

func officeRow(id, maxOccupancy int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "address", "max_occupancy"}).
		AddRow(id, "Office", "Street", maxOccupancy)
}

func TestEmployeeService_Update_LocksEmployeeThenOffice(t *testing.T) {
	svc, mock := setupSQLService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeSQL).WillReturnRows(employeeRow(5, 2))
	mock.ExpectQuery(lockOfficeSQL).WillReturnRows(officeRow(2, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees" WHERE office_id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employees`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// офис заполнен, но сотрудник уже числится в нём
	err := svc.Update(context.Background(), 5, validRequest(2))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_Update_LockedRowDecidesCapacityExemption(t *testing.T) {
	svc, mock := setupSQLService(t)

	// к моменту блокировки сотрудник уже переведён в офис 3,
	// поэтому возврат в заполненный офис 2 должен проверяться
	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeSQL).WillReturnRows(employeeRow(5, 3))
	mock.ExpectQuery(lockOfficeSQL).WillReturnRows(officeRow(2, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees" WHERE office_id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := svc.Update(context.Background(), 5, validRequest(2))

	var capErr *domain.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, int64(2), capErr.Current)
	assert.Equal(t, int64(2), capErr.Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_Update_EmployeeNotFound_SQL(t *testing.T) {
	svc, mock := setupSQLService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.Update(context.Background(), 99, validRequest(2))
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_Create_LocksOffice_SQL(t *testing.T) {
	svc, mock := setupSQLService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockOfficeSQL).WillReturnRows(officeRow(1, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees" WHERE office_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	emp, err := svc.Create(context.Background(), validRequest(1))
	require.NoError(t, err)
	assert.Equal(t, int64(11), emp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
