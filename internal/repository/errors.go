package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/office-roster-api/internal/domain"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"

	employeesOfficeFK = "fk_offices_employees"
)

// translateError переводит ошибки драйверов PostgreSQL и SQLite в доменные.
// notFound подставляется вместо gorm.ErrRecordNotFound.
func translateError(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		if pgErr.ConstraintName == "" || pgErr.ConstraintName == employeesOfficeFK {
			return domain.ErrOfficeNotFound
		}
	}

	// SQLite не сообщает имя ограничения; у employees единственный внешний ключ
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return domain.ErrOfficeNotFound
	}

	return fmt.Errorf("repository: %s: %w", op, err)
}
