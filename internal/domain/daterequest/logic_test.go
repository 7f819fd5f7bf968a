package daterequest

import (
	"errors"
	"testing"
)

func TestCalculateTotalDays(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"single day", "2026-03-10", "2026-03-10", 1},
		{"one week", "2026-03-02", "2026-03-08", 7},
		{"month boundary", "2026-01-30", "2026-02-02", 4},
		{"leap day", "2028-02-28", "2028-03-01", 3},
		{"full year", "2026-01-01", "2026-12-31", 365},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateTotalDays(tc.from, tc.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("CalculateTotalDays(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestCalculateTotalDaysRejectsInvalid(t *testing.T) {
	if _, err := CalculateTotalDays("2026-03-10", "2026-03-09"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("inverted range: got %v, want ErrInvalidDateRange", err)
	}
	if _, err := CalculateTotalDays("10-03-2026", "2026-03-12"); err == nil {
		t.Error("malformed from date accepted")
	}
	if _, err := CalculateTotalDays("2026-03-10", ""); err == nil {
		t.Error("empty to date accepted")
	}
}

func TestResolveApprover(t *testing.T) {
	const (
		employee = "user-employee"
		approver = "user-approver"
		manager  = "user-manager"
	)

	cases := []struct {
		name               string
		assignmentApprover string
		projectManager     string
		want               string
	}{
		{"assignment approver wins", approver, manager, approver},
		{"manager when no assignment approver", "", manager, manager},
		{"manager when approver is the employee", employee, manager, manager},
		{"unset when manager is the employee too", employee, employee, ""},
		{"unset when nobody is available", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveApprover(employee, tc.assignmentApprover, tc.projectManager)
			if got != tc.want {
				t.Fatalf("ResolveApprover = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTaskTitle(t *testing.T) {
	got := TaskTitle("Website Relaunch", "req-42")
	if got != "Website Relaunch - req-42" {
		t.Fatalf("TaskTitle = %q", got)
	}
}

func TestTerminal(t *testing.T) {
	for status, want := range map[string]bool{
		StatusDraft:           false,
		StatusPendingApproval: false,
		StatusApproved:        true,
		StatusRejected:        true,
	} {
		if Terminal(status) != want {
			t.Errorf("Terminal(%q) = %v, want %v", status, !want, want)
		}
	}
}
