package task

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		progress int
		status   string
		want     string
	}{
		{"full progress completes", 100, StatusWorking, StatusCompleted},
		{"full progress completes from open", 100, StatusOpen, StatusCompleted},
		{"partial progress starts open task", 30, StatusOpen, StatusWorking},
		{"partial progress keeps working task", 60, StatusWorking, StatusWorking},
		{"partial progress keeps pending review", 80, StatusPendingReview, StatusPendingReview},
		{"zero progress keeps open", 0, StatusOpen, StatusOpen},
		{"zero progress keeps cancelled", 0, StatusCancelled, StatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeriveStatus(tc.progress, tc.status)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("DeriveStatus(%d, %q) = %q, want %q", tc.progress, tc.status, got, tc.want)
			}
		})
	}
}

func TestDeriveStatusRejectsOutOfRange(t *testing.T) {
	for _, progress := range []int{-1, 101, 200} {
		if _, err := DeriveStatus(progress, StatusOpen); err == nil {
			t.Errorf("DeriveStatus(%d) accepted out-of-range progress", progress)
		}
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	if !ValidStatus(StatusOpen) || ValidStatus("Done") {
		t.Error("status validation mismatch")
	}
	if !ValidPriority(PriorityCritical) || ValidPriority("Urgent") {
		t.Error("priority validation mismatch")
	}
}
