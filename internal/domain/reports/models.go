package reports

// Dashboard is the per-user landing summary.
type Dashboard struct {
	ActiveProjects  int     `json:"activeProjects"`
	OpenTasks       int     `json:"openTasks"`
	PendingRequests int     `json:"pendingRequests"`
	HoursThisWeek   float64 `json:"hoursThisWeek"`
}

// ProjectStatus is one project line in the weekly manager report.
type ProjectStatus struct {
	ProjectID       string
	Title           string
	Status          string
	EndDate         string
	OpenTasks       int
	PendingRequests int
}

// ManagerDigest groups a manager's projects for the weekly report.
type ManagerDigest struct {
	ManagerUserID string
	ManagerEmail  string
	Projects      []ProjectStatus
}
