package domain

import (
	"time"
)

// DateLayout - формат дат в API и в хранилище
const DateLayout = "2006-01-02"

// Office представляет офис с ограничением вместимости
type Office struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"type:varchar(200);not null;default:''"`
	Address      string `json:"address" gorm:"type:varchar(300);not null;default:''"`
	MaxOccupancy int64  `json:"max_occupancy" gorm:"not null;check:max_occupancy > 0"`

	Employees []Employee `json:"-" gorm:"foreignKey:OfficeID;constraint:OnDelete:RESTRICT"`
}

// TableName задаёт имя таблицы для GORM
func (Office) TableName() string {
	return "offices"
}

// Employee представляет сотрудника, закреплённого за офисом
type Employee struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100);not null"`
	BirthDate time.Time `json:"birth_date" gorm:"type:date;not null"`
	OfficeID  int64     `json:"office_id" gorm:"not null;index"`

	Office *Office `json:"-" gorm:"foreignKey:OfficeID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// EmployeeFields - изменяемые поля сотрудника, общие для создания и полной замены
type EmployeeFields struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	OfficeID  int64
}

// Apply переносит поля в сотрудника, не трогая ID
func (f EmployeeFields) Apply(emp *Employee) {
	emp.FirstName = f.FirstName
	emp.LastName = f.LastName
	emp.BirthDate = f.BirthDate
	emp.OfficeID = f.OfficeID
}
