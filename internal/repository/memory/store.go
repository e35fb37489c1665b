// Package memory - реализация репозиториев в памяти для тестов и локального запуска
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/office-roster-api/internal/domain"
	"github.com/office-roster-api/internal/repository"
)

var (
	_ repository.TxManager          = (*Store)(nil)
	_ repository.EmployeeRepository = (*employeeRepo)(nil)
	_ repository.OfficeRepository   = (*officeRepo)(nil)
)

type txMarker struct{}

// Store хранит офисы и сотрудников в map. Транзакции выполняются строго по одной
// и при ошибке откатываются к снимку.
type Store struct {
	txMu sync.Mutex

	mu             sync.RWMutex
	offices        map[int64]domain.Office
	employees      map[int64]domain.Employee
	nextOfficeID   int64
	nextEmployeeID int64
	failure        error
}

// New создаёт пустое хранилище
func New() *Store {
	return &Store{
		offices:        make(map[int64]domain.Office),
		employees:      make(map[int64]domain.Employee),
		nextOfficeID:   1,
		nextEmployeeID: 1,
	}
}

// AddOffice добавляет офис; нулевой ID берётся из последовательности хранилища
func (s *Store) AddOffice(office domain.Office) domain.Office {
	s.mu.Lock()
	defer s.mu.Unlock()

	if office.ID == 0 {
		office.ID = s.nextOfficeID
	}
	if office.ID >= s.nextOfficeID {
		s.nextOfficeID = office.ID + 1
	}
	s.offices[office.ID] = office
	return office
}

// SetFailure заставляет все последующие вызовы возвращать err; nil сбрасывает
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// Employees возвращает репозиторий сотрудников
func (s *Store) Employees() repository.EmployeeRepository {
	return &employeeRepo{s: s}
}

// Offices возвращает репозиторий офисов
func (s *Store) Offices() repository.OfficeRepository {
	return &officeRepo{s: s}
}

// WithinTransaction выполняет fn под общей блокировкой транзакций
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return errors.New("memory: transaction function is required")
	}
	if _, ok := ctx.Value(txMarker{}).(bool); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	employees := maps.Clone(s.employees)
	nextEmployeeID := s.nextEmployeeID
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		s.mu.Lock()
		s.employees = employees
		s.nextEmployeeID = nextEmployeeID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.failure
}

type employeeRepo struct {
	s *Store
}

func (r *employeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}

	ids := slices.Sorted(maps.Keys(r.s.employees))
	result := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.s.employees[id])
	}
	return result, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}

	emp, ok := r.s.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &emp, nil
}

// GetByIDForUpdate полагается на блокировку, взятую в WithinTransaction
func (r *employeeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *employeeRepo) CountByOfficeID(ctx context.Context, officeID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(ctx); err != nil {
		return 0, err
	}

	var count int64
	for _, emp := range r.s.employees {
		if emp.OfficeID == officeID {
			count++
		}
	}
	return count, nil
}

func (r *employeeRepo) Create(ctx context.Context, emp *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(ctx); err != nil {
		return err
	}
	if _, ok := r.s.offices[emp.OfficeID]; !ok {
		return domain.ErrOfficeNotFound
	}

	emp.ID = r.s.nextEmployeeID
	r.s.nextEmployeeID++
	stored := *emp
	stored.Office = nil
	r.s.employees[emp.ID] = stored
	return nil
}

func (r *employeeRepo) Update(ctx context.Context, id int64, fields domain.EmployeeFields) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(ctx); err != nil {
		return err
	}
	if _, ok := r.s.offices[fields.OfficeID]; !ok {
		return domain.ErrOfficeNotFound
	}

	emp, ok := r.s.employees[id]
	if !ok {
		// как и UPDATE без совпадений в SQL: ничего не меняем
		return nil
	}
	fields.Apply(&emp)
	r.s.employees[id] = emp
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(ctx); err != nil {
		return err
	}

	if _, ok := r.s.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.s.employees, id)
	return nil
}

type officeRepo struct {
	s *Store
}

func (r *officeRepo) List(ctx context.Context) ([]domain.Office, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}

	ids := slices.Sorted(maps.Keys(r.s.offices))
	result := make([]domain.Office, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.s.offices[id])
	}
	return result, nil
}

func (r *officeRepo) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(ctx); err != nil {
		return nil, err
	}

	office, ok := r.s.offices[id]
	if !ok {
		return nil, domain.ErrOfficeNotFound
	}
	return &office, nil
}

// GetByIDForUpdate полагается на блокировку, взятую в WithinTransaction
func (r *officeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Office, error) {
	return r.GetByID(ctx, id)
}
