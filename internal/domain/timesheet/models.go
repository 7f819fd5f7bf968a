package timesheet

import "time"

const (
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
)

type Entry struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	Date         string    `json:"date"`
	ProjectID    string    `json:"projectId"`
	TaskID       string    `json:"taskId"`
	ActivityType string    `json:"activityType,omitempty"`
	HoursWorked  float64   `json:"hoursWorked"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateInput struct {
	EmployeeID   string  `json:"employeeId"`
	Date         string  `json:"date"`
	ProjectID    string  `json:"projectId"`
	TaskID       string  `json:"taskId"`
	ActivityType string  `json:"activityType"`
	HoursWorked  float64 `json:"hoursWorked"`
	Description  string  `json:"description"`
}

// DaySummary aggregates one employee's hours for a date.
type DaySummary struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"totalHours"`
	Entries    []Entry `json:"entries"`
}
