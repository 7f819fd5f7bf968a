package timesheet

import (
	"errors"
	"time"
)

var (
	ErrInvalidHours = errors.New("hours worked must be greater than 0 and at most 24")
	ErrTaskMismatch = errors.New("task does not belong to the given project")
	ErrDuplicate    = errors.New("an entry for this task and date already exists")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNotFound     = errors.New("timesheet entry not found")
)

func ValidateHours(hours float64) error {
	if hours <= 0 || hours > 24 {
		return ErrInvalidHours
	}
	return nil
}

func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
