package project

import (
	"errors"
	"time"
)

var ErrInvalidDateRange = errors.New("project start date must not be after end date")

var validStatuses = map[string]bool{
	StatusPlanning:  true,
	StatusActive:    true,
	StatusOnHold:    true,
	StatusCompleted: true,
	StatusCancelled: true,
}

func ValidStatus(status string) bool {
	return validStatuses[status]
}

// ValidateDates checks the optional start/end pair. Either side may be empty;
// when both are set, start must not come after end.
func ValidateDates(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return nil
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return errors.New("invalid start date, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return errors.New("invalid end date, expected YYYY-MM-DD")
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}
