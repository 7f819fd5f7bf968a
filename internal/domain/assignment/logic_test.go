package assignment

import (
	"errors"
	"testing"
)

func TestValidateAllocation(t *testing.T) {
	for _, pct := range []float64{0.5, 1, 50, 100} {
		if err := ValidateAllocation(pct); err != nil {
			t.Errorf("ValidateAllocation(%v) = %v, want nil", pct, err)
		}
	}
	for _, pct := range []float64{0, -10, 100.5, 150} {
		if err := ValidateAllocation(pct); !errors.Is(err, ErrInvalidAllocation) {
			t.Errorf("ValidateAllocation(%v) = %v, want ErrInvalidAllocation", pct, err)
		}
	}
}

func TestValidateDates(t *testing.T) {
	if err := ValidateDates("2026-01-01", "2026-03-31"); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateDates("", "2026-03-31"); err != nil {
		t.Fatalf("open start rejected: %v", err)
	}
	if err := ValidateDates("2026-04-01", "2026-03-31"); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("inverted range accepted: %v", err)
	}
	if err := ValidateDates("01/01/2026", "2026-03-31"); err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestComposeReason(t *testing.T) {
	got := ComposeReason("Backend Developer", 75)
	want := "Project assignment as Backend Developer at 75% allocation"
	if got != want {
		t.Fatalf("ComposeReason = %q, want %q", got, want)
	}

	got = ComposeReason("", 100)
	want = "Project assignment as Team Member at 100% allocation"
	if got != want {
		t.Fatalf("ComposeReason with empty role = %q, want %q", got, want)
	}
}
