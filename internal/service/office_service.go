package service

import (
	"context"

	"github.com/office-roster-api/internal/domain"
	"github.com/office-roster-api/internal/repository"
)

// OfficeService определяет интерфейс бизнес-логики для офисов
type OfficeService interface {
	List(ctx context.Context) ([]domain.Office, error)
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
}

type officeService struct {
	officeRepo repository.OfficeRepository
}

// NewOfficeService создаёт новый экземпляр сервиса
func NewOfficeService(officeRepo repository.OfficeRepository) OfficeService {
	return &officeService{officeRepo: officeRepo}
}

func (s *officeService) List(ctx context.Context) ([]domain.Office, error) {
	return s.officeRepo.List(ctx)
}

func (s *officeService) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	return s.officeRepo.GetByID(ctx, id)
}
