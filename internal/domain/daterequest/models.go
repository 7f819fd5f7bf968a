package daterequest

import "time"

const (
	StatusDraft           = "Draft"
	StatusPendingApproval = "Pending Approval"
	StatusApproved        = "Approved"
	StatusRejected        = "Rejected"
)

const (
	TypeProjectDateUpdate = "Project Date Update"
	TypeLeave             = "Leave"
	TypeWorkFromHome      = "Work From Home"
	TypeTraining          = "Training"
	TypeTimeOff           = "Time Off"
	TypeOvertime          = "Overtime"
)

type DateRequest struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	EmployeeName    string    `json:"employeeName"`
	RequestType     string    `json:"requestType"`
	ProjectID       string    `json:"projectId,omitempty"`
	AssignmentID    string    `json:"assignmentId,omitempty"`
	FromDate        string    `json:"fromDate"`
	ToDate          string    `json:"toDate"`
	TotalDays       int       `json:"totalDays"`
	Reason          string    `json:"reason,omitempty"`
	AutoCreateTasks bool      `json:"autoCreateTasks"`
	ProjectScope    string    `json:"projectScope,omitempty"`
	ApproverID      string    `json:"approverId,omitempty"`
	Status          string    `json:"status"`
	Comments        string    `json:"comments,omitempty"`
	DecidedBy       string    `json:"decidedBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateInput struct {
	EmployeeID      string `json:"employeeId"`
	RequestType     string `json:"requestType"`
	ProjectID       string `json:"projectId"`
	FromDate        string `json:"fromDate"`
	ToDate          string `json:"toDate"`
	Reason          string `json:"reason"`
	AutoCreateTasks bool   `json:"autoCreateTasks"`
	ProjectScope    string `json:"projectScope"`
}

type UpdateInput struct {
	RequestType *string `json:"requestType"`
	FromDate    *string `json:"fromDate"`
	ToDate      *string `json:"toDate"`
	Reason      *string `json:"reason"`
	ProjectID   *string `json:"projectId"`

	// Set by the service when relinking the active assignment, never by
	// clients.
	assignmentID *string
	projectScope *string
}

// ProjectRef is the slice of a project the approval pipeline needs.
type ProjectRef struct {
	ID            string
	Title         string
	Status        string
	ManagerUserID string
}

// AssignmentRef is the slice of an assignment used for linking, approver
// resolution and date propagation.
type AssignmentRef struct {
	ID           string
	ApproverID   string
	ProjectScope string
}

// TaskSeed describes the task synthesized for an approved request. The store
// fills in the defaults (Open status, Medium priority, zero progress).
type TaskSeed struct {
	ProjectID    string
	Title        string
	Description  string
	AssignedTo   string
	StartDate    string
	DueDate      string
	ProjectScope string
}
