package repository

import (
	"context"
	"database/sql"

	"github.com/office-roster-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error)
	CountByOfficeID(ctx context.Context, officeID int64) (int64, error)
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, id int64, fields domain.EmployeeFields) error
	Delete(ctx context.Context, id int64) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	employees := make([]domain.Employee, 0)
	if err := conn(ctx, r.db).Order("id ASC").Find(&employees).Error; err != nil {
		return nil, translateError("list employees", err, nil)
	}
	return employees, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	if err := conn(ctx, r.db).First(&emp, id).Error; err != nil {
		return nil, translateError("get employee", err, domain.ErrEmployeeNotFound)
	}
	return &emp, nil
}

// GetByIDForUpdate блокирует строку сотрудника до конца транзакции
func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&emp, id).Error
	if err != nil {
		return nil, translateError("lock employee", err, domain.ErrEmployeeNotFound)
	}
	return &emp, nil
}

func (r *employeeRepository) CountByOfficeID(ctx context.Context, officeID int64) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&domain.Employee{}).
		Where("office_id = ?", officeID).
		Count(&count).Error
	if err != nil {
		return 0, translateError("count employees", err, nil)
	}
	return count, nil
}

// Create вставляет сотрудника; ID выдаёт хранилище и GORM записывает его в emp
func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	emp.ID = 0
	if err := conn(ctx, r.db).Omit("Office").Create(emp).Error; err != nil {
		return translateError("create employee", err, nil)
	}
	return nil
}

// Update полностью заменяет изменяемые поля. Существование строки проверяет вызывающий.
func (r *employeeRepository) Update(ctx context.Context, id int64, fields domain.EmployeeFields) error {
	err := conn(ctx, r.db).Exec(
		`UPDATE employees
		    SET first_name = @first_name,
		        last_name = @last_name,
		        birth_date = @birth_date,
		        office_id = @office_id
		  WHERE id = @id`,
		sql.Named("first_name", fields.FirstName),
		sql.Named("last_name", fields.LastName),
		sql.Named("birth_date", fields.BirthDate),
		sql.Named("office_id", fields.OfficeID),
		sql.Named("id", id),
	).Error
	if err != nil {
		return translateError("update employee", err, nil)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return translateError("delete employee", result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
