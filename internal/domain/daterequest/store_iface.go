package daterequest

import "context"

// StoreAPI is the persistence surface the request engine runs against.
// The production implementation is Store; tests swap in a fake.
type StoreAPI interface {
	Insert(ctx context.Context, r DateRequest) (DateRequest, error)
	Get(ctx context.Context, id string) (DateRequest, error)
	Update(ctx context.Context, id string, in UpdateInput, totalDays int) (DateRequest, error)

	// MarkSubmitted moves a Draft request to Pending Approval. It reports
	// false when the request was not in Draft.
	MarkSubmitted(ctx context.Context, id, approverID string) (bool, error)

	// MarkDecided moves a Pending Approval request to a terminal status.
	// The guard is the status predicate in the update itself, so of two
	// concurrent deciders exactly one sees true.
	MarkDecided(ctx context.Context, id, status, comments, decidedBy string) (bool, error)

	ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]DateRequest, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]DateRequest, error)
	PendingForApprover(ctx context.Context, approverUserID string, limit, offset int) ([]DateRequest, error)

	EmployeeUserID(ctx context.Context, employeeID string) (string, error)
	EmployeeName(ctx context.Context, employeeID string) (string, error)
	Project(ctx context.Context, projectID string) (ProjectRef, error)
	ActiveAssignment(ctx context.Context, employeeID, projectID string) (AssignmentRef, bool, error)

	// UpdateProjectSchedule overwrites the project period and forces the
	// project Active.
	UpdateProjectSchedule(ctx context.Context, projectID, fromDate, toDate string) error
	UpdateAssignmentDates(ctx context.Context, assignmentID, fromDate, toDate string) error
	TaskExists(ctx context.Context, projectID, title string) (bool, error)
	CreateTask(ctx context.Context, seed TaskSeed) (string, error)
}
