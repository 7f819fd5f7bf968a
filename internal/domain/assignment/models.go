package assignment

import "time"

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Assignment struct {
	ID                   string    `json:"id"`
	EmployeeID           string    `json:"employeeId"`
	ProjectID            string    `json:"projectId"`
	Role                 string    `json:"role,omitempty"`
	AllocationPercentage float64   `json:"allocationPercentage"`
	StartDate            string    `json:"startDate,omitempty"`
	EndDate              string    `json:"endDate,omitempty"`
	Status               string    `json:"status"`
	ApproverID           string    `json:"approverId,omitempty"`
	ProjectScope         string    `json:"projectScope,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

type CreateInput struct {
	EmployeeID           string  `json:"employeeId"`
	ProjectID            string  `json:"projectId"`
	Role                 string  `json:"role"`
	AllocationPercentage float64 `json:"allocationPercentage"`
	StartDate            string  `json:"startDate"`
	EndDate              string  `json:"endDate"`
	ApproverID           string  `json:"approverId"`
	ProjectScope         string  `json:"projectScope"`
}
