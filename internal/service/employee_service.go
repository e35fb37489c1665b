package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/office-roster-api/internal/domain"
	"github.com/office-roster-api/internal/dto"
	"github.com/office-roster-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.EmployeeRequest) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeServiceOption настраивает сервис сотрудников
type EmployeeServiceOption func(*employeeService)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) EmployeeServiceOption {
	return func(s *employeeService) {
		if now != nil {
			s.now = now
		}
	}
}

type employeeService struct {
	empRepo    repository.EmployeeRepository
	officeRepo repository.OfficeRepository
	txManager  repository.TxManager
	now        func() time.Time
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	officeRepo repository.OfficeRepository,
	txManager repository.TxManager,
	opts ...EmployeeServiceOption,
) EmployeeService {
	s := &employeeService{
		empRepo:    empRepo,
		officeRepo: officeRepo,
		txManager:  txManager,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.empRepo.List(ctx)
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error) {
	fields, err := s.validateFields(req)
	if err != nil {
		return nil, err
	}

	emp := &domain.Employee{}
	fields.Apply(emp)

	// Проверка вместимости и вставка выполняются под блокировкой строки офиса
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureCapacity(ctx, fields.OfficeID, false); err != nil {
			return err
		}
		return s.empRepo.Create(ctx, emp)
	})
	if err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.EmployeeRequest) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		// Сотрудник блокируется первым: его текущий офис решает, нужна ли проверка вместимости
		current, err := s.empRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		fields, err := s.validateFields(req)
		if err != nil {
			return err
		}

		if err := s.ensureCapacity(ctx, fields.OfficeID, current.OfficeID == fields.OfficeID); err != nil {
			return err
		}

		return s.empRepo.Update(ctx, id, fields)
	})
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.empRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.empRepo.Delete(ctx, id)
}

// validateFields применяет правила формата и возраста
func (s *employeeService) validateFields(req *dto.EmployeeRequest) (domain.EmployeeFields, error) {
	if err := checkLastName(req.LastName); err != nil {
		return domain.EmployeeFields{}, err
	}

	birthDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.BirthDate))
	if err != nil {
		return domain.EmployeeFields{}, fmt.Errorf("%w: 'birth_date' must be formatted as %s", domain.ErrValidation, domain.DateLayout)
	}

	if err := checkBirthDate(birthDate, s.now().UTC()); err != nil {
		return domain.EmployeeFields{}, err
	}

	return domain.EmployeeFields{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  req.LastName,
		BirthDate: birthDate,
		OfficeID:  req.OfficeID,
	}, nil
}

// ensureCapacity проверяет существование офиса и его заполненность.
// Должна вызываться внутри транзакции: офис блокируется до записи.
func (s *employeeService) ensureCapacity(ctx context.Context, officeID int64, alreadyAssigned bool) error {
	office, err := s.officeRepo.GetByIDForUpdate(ctx, officeID)
	if err != nil {
		return err
	}

	count, err := s.empRepo.CountByOfficeID(ctx, officeID)
	if err != nil {
		return err
	}

	return checkCapacity(count, office, alreadyAssigned)
}
