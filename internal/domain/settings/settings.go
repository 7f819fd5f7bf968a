package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settings is the application-wide configuration row. It is loaded as a value
// at the start of an operation so behavior stays consistent even if an admin
// saves new settings mid-request.
type Settings struct {
	EmailNotificationsEnabled bool   `json:"emailNotificationsEnabled"`
	EmailFrom                 string `json:"emailFrom"`
	ProjectReminderDays       int    `json:"projectReminderDays"`
	TaskReminderDays          int    `json:"taskReminderDays"`
}

type Access struct {
	CanViewAllProjects bool `json:"canViewAllProjects"`
	CanViewAllTasks    bool `json:"canViewAllTasks"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Load(ctx context.Context) (Settings, error) {
	var out Settings
	err := s.DB.QueryRow(ctx, `
    SELECT email_notifications_enabled, COALESCE(email_from, ''), project_reminder_days, task_reminder_days
    FROM app_settings
    WHERE id = 1
  `).Scan(&out.EmailNotificationsEnabled, &out.EmailFrom, &out.ProjectReminderDays, &out.TaskReminderDays)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{ProjectReminderDays: 3, TaskReminderDays: 2}, nil
	}
	return out, err
}

func (s *Store) Save(ctx context.Context, in Settings) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO app_settings (id, email_notifications_enabled, email_from, project_reminder_days, task_reminder_days, updated_at)
    VALUES (1, $1, $2, $3, $4, now())
    ON CONFLICT (id) DO UPDATE SET
      email_notifications_enabled = EXCLUDED.email_notifications_enabled,
      email_from = EXCLUDED.email_from,
      project_reminder_days = EXCLUDED.project_reminder_days,
      task_reminder_days = EXCLUDED.task_reminder_days,
      updated_at = now()
  `, in.EmailNotificationsEnabled, in.EmailFrom, in.ProjectReminderDays, in.TaskReminderDays)
	return err
}

// UserAccess returns the per-user visibility grants. The two flags are
// independent: full project visibility does not imply full task visibility.
func (s *Store) UserAccess(ctx context.Context, userID string) (Access, error) {
	var out Access
	err := s.DB.QueryRow(ctx, `
    SELECT can_view_all_projects, can_view_all_tasks
    FROM full_access_users
    WHERE user_id = $1
  `, userID).Scan(&out.CanViewAllProjects, &out.CanViewAllTasks)
	if errors.Is(err, pgx.ErrNoRows) {
		return Access{}, nil
	}
	return out, err
}

func (s *Store) SetUserAccess(ctx context.Context, userID string, access Access) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO full_access_users (user_id, can_view_all_projects, can_view_all_tasks)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id) DO UPDATE SET
      can_view_all_projects = EXCLUDED.can_view_all_projects,
      can_view_all_tasks = EXCLUDED.can_view_all_tasks
  `, userID, access.CanViewAllProjects, access.CanViewAllTasks)
	return err
}
