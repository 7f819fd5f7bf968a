package reminders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ProjectDeadline is a project nearing or past its end date, with the
// manager to notify.
type ProjectDeadline struct {
	ProjectID     string
	Title         string
	EndDate       string
	ManagerUserID string
}

// TaskDeadline is a task nearing or past its due date, with the assignee to
// notify.
type TaskDeadline struct {
	TaskID     string
	Title      string
	DueDate    string
	AssignedTo string
}

// ActivateDueProjects promotes planning projects whose start date has been
// reached.
func (s *Store) ActivateDueProjects(ctx context.Context) (int, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE projects
    SET status = 'Active', updated_at = now()
    WHERE status = 'Planning'
      AND start_date IS NOT NULL
      AND start_date <= CURRENT_DATE
  `)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ProjectsEndingWithin returns active projects whose end date falls within
// the lookahead window or has already passed.
func (s *Store) ProjectsEndingWithin(ctx context.Context, days int) ([]ProjectDeadline, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, end_date::text, project_manager_id::text
    FROM projects
    WHERE status IN ('Planning', 'Active')
      AND end_date IS NOT NULL
      AND project_manager_id IS NOT NULL
      AND end_date <= CURRENT_DATE + $1::int
    ORDER BY end_date
  `, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectDeadline
	for rows.Next() {
		var p ProjectDeadline
		if err := rows.Scan(&p.ProjectID, &p.Title, &p.EndDate, &p.ManagerUserID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// TasksDueWithin returns open tasks whose due date falls within the
// lookahead window or has already passed.
func (s *Store) TasksDueWithin(ctx context.Context, days int) ([]TaskDeadline, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, due_date::text, assigned_to::text
    FROM tasks
    WHERE status NOT IN ('Completed', 'Cancelled')
      AND due_date IS NOT NULL
      AND assigned_to IS NOT NULL
      AND due_date <= CURRENT_DATE + $1::int
    ORDER BY due_date
  `, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TaskDeadline
	for rows.Next() {
		var t TaskDeadline
		if err := rows.Scan(&t.TaskID, &t.Title, &t.DueDate, &t.AssignedTo); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
