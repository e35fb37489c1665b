package service

import (
	"strings"
	"time"
	"unicode"

	"github.com/office-roster-api/internal/domain"
)

const (
	minEmployeeAge = 18
	maxEmployeeAge = 75
)

// EligibilityWindow возвращает допустимый диапазон дат рождения (включительно)
// для сотрудников от 18 до 75 лет на календарную дату today по UTC
func EligibilityWindow(today time.Time) (minDate, maxDate time.Time) {
	day := truncateToDate(today.UTC())
	return yearsBefore(day, maxEmployeeAge), yearsBefore(day, minEmployeeAge)
}

func checkLastName(lastName string) error {
	if strings.ContainsFunc(lastName, unicode.IsSpace) {
		return &domain.FormatError{Field: "last_name", Reason: "cannot contain white space"}
	}
	return nil
}

func checkBirthDate(birthDate, today time.Time) error {
	minDate, maxDate := EligibilityWindow(today)
	birth := truncateToDate(birthDate)
	if birth.Before(minDate) || birth.After(maxDate) {
		return &domain.BirthDateRangeError{Min: minDate, Max: maxDate}
	}
	return nil
}

// checkCapacity проверяет заполненность офиса. alreadyAssigned - сотрудник уже
// числится в этом офисе, и запись не увеличит занятость.
func checkCapacity(current int64, office *domain.Office, alreadyAssigned bool) error {
	if alreadyAssigned || current < office.MaxOccupancy {
		return nil
	}
	return &domain.CapacityError{OfficeID: office.ID, Current: current, Max: office.MaxOccupancy}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// yearsBefore вычитает годы из даты; 29 февраля в невисокосном году становится 28-м
func yearsBefore(day time.Time, years int) time.Time {
	y, m, d := day.Date()
	y -= years
	if m == time.February && d == 29 && !isLeap(y) {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
