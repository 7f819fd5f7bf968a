package task

import "time"

const (
	StatusOpen          = "Open"
	StatusWorking       = "Working"
	StatusPendingReview = "Pending Review"
	StatusCompleted     = "Completed"
	StatusCancelled     = "Cancelled"
)

const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ProjectID    string    `json:"projectId"`
	AssignedTo   string    `json:"assignedTo,omitempty"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	StartDate    string    `json:"startDate,omitempty"`
	DueDate      string    `json:"dueDate,omitempty"`
	Progress     int       `json:"progress"`
	ProjectScope string    `json:"projectScope,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ProjectID    string `json:"projectId"`
	AssignedTo   string `json:"assignedTo"`
	Priority     string `json:"priority"`
	StartDate    string `json:"startDate"`
	DueDate      string `json:"dueDate"`
	ProjectScope string `json:"projectScope"`
}

type UpdateInput struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	AssignedTo   *string `json:"assignedTo"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	StartDate    *string `json:"startDate"`
	DueDate      *string `json:"dueDate"`
	Progress     *int    `json:"progress"`
	ProjectScope *string `json:"projectScope"`
}
