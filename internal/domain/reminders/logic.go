package reminders

import (
	"fmt"
	"time"
)

const (
	UrgencyReminder = "REMINDER"
	UrgencyDueToday = "DUE TODAY"
	UrgencyOverdue  = "OVERDUE"
)

// DaysUntil counts whole calendar days from today to the due date. Negative
// means the date has passed.
func DaysUntil(today time.Time, dueDate string) (int, error) {
	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return 0, fmt.Errorf("invalid due date %q", dueDate)
	}
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(t).Hours() / 24), nil
}

// ClassifyUrgency maps days remaining to an urgency label.
func ClassifyUrgency(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return UrgencyOverdue
	case daysLeft == 0:
		return UrgencyDueToday
	default:
		return UrgencyReminder
	}
}

// Subject formats a reminder subject line, e.g.
// "[DUE TODAY] Project ends: Website Relaunch".
func Subject(urgency, what, title string) string {
	return fmt.Sprintf("[%s] %s: %s", urgency, what, title)
}
