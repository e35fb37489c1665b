package dto

import (
	"github.com/office-roster-api/internal/domain"
)

// EmployeeRequest - тело запроса на создание и полную замену сотрудника
type EmployeeRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	OfficeID  int64  `json:"office_id"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	OfficeID  int64  `json:"office_id"`
}

// OfficeResponse - ответ с данными офиса
type OfficeResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	MaxOccupancy int64  `json:"max_occupancy"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ToEmployeeResponse переводит доменную модель в ответ API
func ToEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		BirthDate: emp.BirthDate.Format(domain.DateLayout),
		OfficeID:  emp.OfficeID,
	}
}

// ToOfficeResponse переводит доменную модель в ответ API
func ToOfficeResponse(office *domain.Office) OfficeResponse {
	return OfficeResponse{
		ID:           office.ID,
		Name:         office.Name,
		Address:      office.Address,
		MaxOccupancy: office.MaxOccupancy,
	}
}
