package project

import (
	"errors"
	"testing"
)

func TestValidateDates(t *testing.T) {
	if err := ValidateDates("2026-01-15", "2026-06-30"); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateDates("", ""); err != nil {
		t.Fatalf("empty range rejected: %v", err)
	}
	if err := ValidateDates("2026-06-30", ""); err != nil {
		t.Fatalf("open end rejected: %v", err)
	}
	if err := ValidateDates("2026-07-01", "2026-06-30"); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("inverted range: got %v, want ErrInvalidDateRange", err)
	}
	if err := ValidateDates("July 1", "2026-06-30"); err == nil {
		t.Fatal("malformed start date accepted")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("Archived") {
		t.Error("unknown status accepted")
	}
}
