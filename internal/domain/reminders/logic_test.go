package reminders

import (
	"testing"
	"time"
)

func TestClassifyUrgency(t *testing.T) {
	cases := map[int]string{
		-5: UrgencyOverdue,
		-1: UrgencyOverdue,
		0:  UrgencyDueToday,
		1:  UrgencyReminder,
		3:  UrgencyReminder,
	}
	for days, want := range cases {
		if got := ClassifyUrgency(days); got != want {
			t.Errorf("ClassifyUrgency(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		due  string
		want int
	}{
		{"2026-03-10", 0},
		{"2026-03-12", 2},
		{"2026-03-08", -2},
		{"2026-04-10", 31},
	}
	for _, tc := range cases {
		got, err := DaysUntil(today, tc.due)
		if err != nil {
			t.Fatalf("DaysUntil(%s): %v", tc.due, err)
		}
		if got != tc.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tc.due, got, tc.want)
		}
	}

	if _, err := DaysUntil(today, "soon"); err == nil {
		t.Error("malformed date accepted")
	}
}

func TestSubject(t *testing.T) {
	got := Subject(UrgencyDueToday, "Task due", "Prepare launch checklist")
	if got != "[DUE TODAY] Task due: Prepare launch checklist" {
		t.Fatalf("Subject = %q", got)
	}
}
