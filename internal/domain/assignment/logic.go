package assignment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidAllocation = errors.New("allocation percentage must be greater than 0 and at most 100")
	ErrInvalidDateRange  = errors.New("assignment start date must not be after end date")
)

func ValidateAllocation(pct float64) error {
	if pct <= 0 || pct > 100 {
		return ErrInvalidAllocation
	}
	return nil
}

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

// ComposeReason builds the request reason recorded on the date request that
// a new assignment opens for approval.
func ComposeReason(role string, allocation float64) string {
	if role == "" {
		role = "Team Member"
	}
	return fmt.Sprintf("Project assignment as %s at %.0f%% allocation", role, allocation)
}
