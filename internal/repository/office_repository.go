package repository

import (
	"context"

	"github.com/office-roster-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OfficeRepository определяет интерфейс для работы с офисами (только чтение)
type OfficeRepository interface {
	List(ctx context.Context) ([]domain.Office, error)
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Office, error)
}

type officeRepository struct {
	db *gorm.DB
}

// NewOfficeRepository создаёт новый экземпляр репозитория
func NewOfficeRepository(db *gorm.DB) OfficeRepository {
	return &officeRepository{db: db}
}

func (r *officeRepository) List(ctx context.Context) ([]domain.Office, error) {
	offices := make([]domain.Office, 0)
	if err := conn(ctx, r.db).Order("id ASC").Find(&offices).Error; err != nil {
		return nil, translateError("list offices", err, nil)
	}
	return offices, nil
}

func (r *officeRepository) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	var office domain.Office
	if err := conn(ctx, r.db).First(&office, id).Error; err != nil {
		return nil, translateError("get office", err, domain.ErrOfficeNotFound)
	}
	return &office, nil
}

// GetByIDForUpdate блокирует строку офиса до конца транзакции.
// SQLite не поддерживает FOR UPDATE, его драйвер опускает этот clause.
func (r *officeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Office, error) {
	var office domain.Office
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&office, id).Error
	if err != nil {
		return nil, translateError("lock office", err, domain.ErrOfficeNotFound)
	}
	return &office, nil
}
