package core

import "time"

type Employee struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	EmployeeName string    `json:"employeeName"`
	Email        string    `json:"email"`
	Department   string    `json:"department,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
