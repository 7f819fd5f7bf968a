package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"smartpro/internal/domain/notifications"
	"smartpro/internal/domain/settings"
)

type Service struct {
	store    *Store
	notifier *notifications.Service
	settings *settings.Store
}

func NewService(db *pgxpool.Pool, notifier *notifications.Service, settingsStore *settings.Store) *Service {
	return &Service{
		store:    NewStore(db),
		notifier: notifier,
		settings: settingsStore,
	}
}

// Sweep runs the daily scan: planning projects whose start date has arrived
// are activated, then projects and tasks near their deadlines produce
// reminders. A notification failure for one row is logged and does not stop
// the sweep.
func (s *Service) Sweep(ctx context.Context) (string, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()

	activated, err := s.store.ActivateDueProjects(ctx)
	if err != nil {
		return "", err
	}

	projectsSent, err := s.sweepProjects(ctx, now, cfg.ProjectReminderDays)
	if err != nil {
		return "", err
	}
	tasksSent, err := s.sweepTasks(ctx, now, cfg.TaskReminderDays)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("projects activated: %d, project reminders: %d, task reminders: %d",
		activated, projectsSent, tasksSent), nil
}

func (s *Service) sweepProjects(ctx context.Context, now time.Time, lookaheadDays int) (int, error) {
	deadlines, err := s.store.ProjectsEndingWithin(ctx, lookaheadDays)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, d := range deadlines {
		daysLeft, err := DaysUntil(now, d.EndDate)
		if err != nil {
			slog.Warn("skipping project with bad end date", "projectId", d.ProjectID, "error", err)
			continue
		}
		urgency := ClassifyUrgency(daysLeft)
		title := Subject(urgency, "Project ends", d.Title)
		body := fmt.Sprintf("Project %q ends on %s.", d.Title, d.EndDate)

		ok, err := s.notifier.NotifyDeduped(ctx, d.ManagerUserID,
			notifications.KindProjectReminder, title, body, "project", d.ProjectID)
		if err != nil {
			slog.Warn("failed to send project reminder", "projectId", d.ProjectID, "error", err)
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

func (s *Service) sweepTasks(ctx context.Context, now time.Time, lookaheadDays int) (int, error) {
	deadlines, err := s.store.TasksDueWithin(ctx, lookaheadDays)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, d := range deadlines {
		daysLeft, err := DaysUntil(now, d.DueDate)
		if err != nil {
			slog.Warn("skipping task with bad due date", "taskId", d.TaskID, "error", err)
			continue
		}
		urgency := ClassifyUrgency(daysLeft)
		title := Subject(urgency, "Task due", d.Title)
		body := fmt.Sprintf("Task %q is due on %s.", d.Title, d.DueDate)

		ok, err := s.notifier.NotifyDeduped(ctx, d.AssignedTo,
			notifications.KindTaskReminder, title, body, "task", d.TaskID)
		if err != nil {
			slog.Warn("failed to send task reminder", "taskId", d.TaskID, "error", err)
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}
