package task

import "errors"

var (
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

var validStatuses = map[string]bool{
	StatusOpen:          true,
	StatusWorking:       true,
	StatusPendingReview: true,
	StatusCompleted:     true,
	StatusCancelled:     true,
}

var validPriorities = map[string]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

func ValidStatus(status string) bool     { return validStatuses[status] }
func ValidPriority(priority string) bool { return validPriorities[priority] }

// DeriveStatus reconciles a task's status with its reported progress.
// Full progress completes the task; any progress on an Open task moves it to
// Working. Other statuses are left as the user set them.
func DeriveStatus(progress int, status string) (string, error) {
	if progress < 0 || progress > 100 {
		return "", ErrInvalidProgress
	}
	if progress == 100 {
		return StatusCompleted, nil
	}
	if progress > 0 && status == StatusOpen {
		return StatusWorking, nil
	}
	return status, nil
}
