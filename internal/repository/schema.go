package repository

import (
	"context"
	"fmt"

	"github.com/office-roster-api/internal/domain"
	"gorm.io/gorm"
)

// DefaultOffices - начальный набор офисов для пустой базы
var DefaultOffices = []domain.Office{
	{Name: "Headquarters", Address: "1 Main Street", MaxOccupancy: 50},
	{Name: "North Branch", Address: "12 North Avenue", MaxOccupancy: 10},
	{Name: "Satellite", Address: "3 Harbour Road", MaxOccupancy: 2},
}

// AutoMigrate создаёт схему средствами GORM. Используется для SQLite;
// для PostgreSQL схема ведётся миграциями goose.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&domain.Office{}, &domain.Employee{}); err != nil {
		return fmt.Errorf("repository: auto migrate: %w", err)
	}
	return nil
}

// SeedOffices добавляет офисы, если таблица пуста
func SeedOffices(ctx context.Context, db *gorm.DB, offices []domain.Office) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Office{}).Count(&count).Error; err != nil {
		return fmt.Errorf("repository: count offices: %w", err)
	}
	if count > 0 || len(offices) == 0 {
		return nil
	}

	seed := make([]domain.Office, len(offices))
	copy(seed, offices)
	if err := db.WithContext(ctx).Create(&seed).Error; err != nil {
		return fmt.Errorf("repository: seed offices: %w", err)
	}
	return nil
}
