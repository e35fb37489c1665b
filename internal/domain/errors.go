package domain

import (
	"errors"
	"fmt"
	"time"
)

// Определение бизнес-ошибок
var (
	ErrValidation             = errors.New("validation error")
	ErrInvalidFormat          = errors.New("invalid format")
	ErrBirthDateOutOfRange    = errors.New("birth date out of range")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrOfficeNotFound         = errors.New("office not found")
	ErrOfficeCapacityExceeded = errors.New("office capacity exceeded")
)

// FormatError описывает нарушение формата конкретного поля
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("'%s' %s", e.Field, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// BirthDateRangeError содержит вычисленные границы окна допустимых дат рождения
type BirthDateRangeError struct {
	Min time.Time
	Max time.Time
}

func (e *BirthDateRangeError) Error() string {
	return fmt.Sprintf("'birth_date' has to be between %s and %s",
		e.Min.Format(DateLayout), e.Max.Format(DateLayout))
}

func (e *BirthDateRangeError) Unwrap() error {
	return ErrBirthDateOutOfRange
}

// CapacityError содержит текущую заполненность офиса на момент отказа
type CapacityError struct {
	OfficeID int64
	Current  int64
	Max      int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("max number of employees at this office (%d/%d)", e.Current, e.Max)
}

func (e *CapacityError) Unwrap() error {
	return ErrOfficeCapacityExceeded
}
