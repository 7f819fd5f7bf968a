package notifications

import "time"

const (
	KindRequestPending  = "request_pending"
	KindRequestDecided  = "request_decided"
	KindTaskAssigned    = "task_assigned"
	KindProjectReminder = "project_reminder"
	KindTaskReminder    = "task_reminder"
	KindWeeklyReport    = "weekly_report"
)

type Notification struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Kind       string     `json:"kind"`
	Title      string     `json:"title"`
	Body       string     `json:"body,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	EntityID   string     `json:"entityId,omitempty"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
