package auth

const (
	RoleEmployee       = "employee"
	RoleProjectManager = "project_manager"
	RoleHR             = "hr"
	RoleAdmin          = "admin"
)

const (
	PermProjectsRead      = "projects.read"
	PermProjectsWrite     = "projects.write"
	PermTasksRead         = "tasks.read"
	PermTasksWrite        = "tasks.write"
	PermAssignmentsRead   = "assignments.read"
	PermAssignmentsWrite  = "assignments.write"
	PermRequestsRead      = "requests.read"
	PermRequestsWrite     = "requests.write"
	PermRequestsApprove   = "requests.approve"
	PermTimesheetsRead    = "timesheets.read"
	PermTimesheetsWrite   = "timesheets.write"
	PermTimesheetsApprove = "timesheets.approve"
	PermNotificationsRead = "notifications.read"
	PermReportsRead       = "reports.read"
	PermSettingsRead      = "settings.read"
	PermSettingsWrite     = "settings.write"
	PermAuditRead         = "audit.read"
	PermSystemAdmin       = "admin.system"
)

var DefaultPermissions = []string{
	PermProjectsRead,
	PermProjectsWrite,
	PermTasksRead,
	PermTasksWrite,
	PermAssignmentsRead,
	PermAssignmentsWrite,
	PermRequestsRead,
	PermRequestsWrite,
	PermRequestsApprove,
	PermTimesheetsRead,
	PermTimesheetsWrite,
	PermTimesheetsApprove,
	PermNotificationsRead,
	PermReportsRead,
	PermSettingsRead,
	PermSettingsWrite,
	PermAuditRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermProjectsRead,
		PermTasksRead,
		PermTasksWrite,
		PermAssignmentsRead,
		PermRequestsRead,
		PermRequestsWrite,
		PermTimesheetsRead,
		PermTimesheetsWrite,
		PermNotificationsRead,
		PermReportsRead,
	},
	RoleProjectManager: {
		PermProjectsRead,
		PermProjectsWrite,
		PermTasksRead,
		PermTasksWrite,
		PermAssignmentsRead,
		PermRequestsRead,
		PermRequestsWrite,
		PermRequestsApprove,
		PermTimesheetsRead,
		PermTimesheetsApprove,
		PermNotificationsRead,
		PermReportsRead,
	},
	RoleHR: {
		PermProjectsRead,
		PermProjectsWrite,
		PermTasksRead,
		PermAssignmentsRead,
		PermAssignmentsWrite,
		PermRequestsRead,
		PermRequestsWrite,
		PermRequestsApprove,
		PermTimesheetsRead,
		PermTimesheetsApprove,
		PermNotificationsRead,
		PermReportsRead,
		PermSettingsRead,
		PermAuditRead,
	},
	RoleAdmin: {
		PermProjectsRead,
		PermProjectsWrite,
		PermTasksRead,
		PermTasksWrite,
		PermAssignmentsRead,
		PermAssignmentsWrite,
		PermRequestsRead,
		PermRequestsWrite,
		PermRequestsApprove,
		PermTimesheetsRead,
		PermTimesheetsWrite,
		PermTimesheetsApprove,
		PermNotificationsRead,
		PermReportsRead,
		PermSettingsRead,
		PermSettingsWrite,
		PermAuditRead,
		PermSystemAdmin,
	},
}
