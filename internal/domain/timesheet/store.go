package timesheet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const entryColumns = `
  id, employee_id, date::text, project_id, task_id, COALESCE(activity_type, ''),
  hours_worked, COALESCE(description, ''), status, created_at
`

func (s *Store) Create(ctx context.Context, in CreateInput) (Entry, error) {
	var e Entry
	err := s.DB.QueryRow(ctx, `
    INSERT INTO timesheets (employee_id, date, project_id, task_id, activity_type, hours_worked, description, status)
    VALUES ($1, $2::date, $3, $4, NULLIF($5,''), $6, NULLIF($7,''), $8)
    RETURNING `+entryColumns,
		in.EmployeeID, in.Date, in.ProjectID, in.TaskID, in.ActivityType, in.HoursWorked, in.Description, StatusDraft).
		Scan(&e.ID, &e.EmployeeID, &e.Date, &e.ProjectID, &e.TaskID, &e.ActivityType,
			&e.HoursWorked, &e.Description, &e.Status, &e.CreatedAt)
	return e, err
}

func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	err := s.DB.QueryRow(ctx, "SELECT "+entryColumns+" FROM timesheets WHERE id = $1", id).
		Scan(&e.ID, &e.EmployeeID, &e.Date, &e.ProjectID, &e.TaskID, &e.ActivityType,
			&e.HoursWorked, &e.Description, &e.Status, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Exists reports whether the employee already logged this task on this date.
func (s *Store) Exists(ctx context.Context, employeeID, taskID, date string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM timesheets
    WHERE employee_id = $1 AND task_id = $2 AND date = $3::date
  `, employeeID, taskID, date).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) TaskBelongsToProject(ctx context.Context, taskID, projectID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM tasks WHERE id = $1 AND project_id = $2", taskID, projectID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID, fromDate, toDate string, limit, offset int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+entryColumns+`
    FROM timesheets
    WHERE employee_id = $1
      AND ($2 = '' OR date >= $2::date)
      AND ($3 = '' OR date <= $3::date)
    ORDER BY date DESC, created_at DESC
    LIMIT $4 OFFSET $5
  `, employeeID, fromDate, toDate, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.ProjectID, &e.TaskID, &e.ActivityType,
			&e.HoursWorked, &e.Description, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Submit moves a draft entry to Submitted. Returns false when the entry is
// missing, belongs to someone else, or is no longer a draft.
func (s *Store) Submit(ctx context.Context, id, employeeID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE timesheets SET status = 'Submitted'
    WHERE id = $1 AND employee_id = $2 AND status = 'Draft'
  `, id, employeeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Decide resolves a submitted entry. Returns false when the entry is missing
// or not awaiting review.
func (s *Store) Decide(ctx context.Context, id, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE timesheets SET status = $2
    WHERE id = $1 AND status = 'Submitted'
  `, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) Delete(ctx context.Context, id, employeeID string) (bool, error) {
	tag, err := s.DB.Exec(ctx,
		"DELETE FROM timesheets WHERE id = $1 AND employee_id = $2 AND status = $3", id, employeeID, StatusDraft)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
