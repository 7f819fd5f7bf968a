package project

import "time"

const (
	StatusPlanning  = "Planning"
	StatusActive    = "Active"
	StatusOnHold    = "On Hold"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Project struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Status           string    `json:"status"`
	ProjectManagerID string    `json:"projectManagerId,omitempty"`
	Department       string    `json:"department,omitempty"`
	StartDate        string    `json:"startDate,omitempty"`
	EndDate          string    `json:"endDate,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ProjectManagerID string `json:"projectManagerId"`
	Department       string `json:"department"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
}

type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}
