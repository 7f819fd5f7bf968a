package timesheet

import (
	"errors"
	"testing"
)

func TestValidateHours(t *testing.T) {
	for _, hours := range []float64{0.25, 1, 7.5, 24} {
		if err := ValidateHours(hours); err != nil {
			t.Errorf("ValidateHours(%v) = %v, want nil", hours, err)
		}
	}
	for _, hours := range []float64{0, -1, 24.5, 100} {
		if err := ValidateHours(hours); !errors.Is(err, ErrInvalidHours) {
			t.Errorf("ValidateHours(%v) = %v, want ErrInvalidHours", hours, err)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2026-02-28"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, date := range []string{"", "28-02-2026", "2026-13-01", "yesterday"} {
		if err := ValidateDate(date); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ValidateDate(%q) = %v, want ErrInvalidDate", date, err)
		}
	}
}
