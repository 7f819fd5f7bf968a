package assignment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("assignment not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const assignmentColumns = `
  id, employee_id, project_id, COALESCE(role, ''), allocation_percentage,
  COALESCE(start_date::text, ''), COALESCE(end_date::text, ''), status,
  COALESCE(approver_id::text, ''), COALESCE(project_scope, ''), created_at
`

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.EmployeeID, &a.ProjectID, &a.Role, &a.AllocationPercentage,
		&a.StartDate, &a.EndDate, &a.Status, &a.ApproverID, &a.ProjectScope, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, ErrNotFound
	}
	return a, err
}

func (s *Store) Create(ctx context.Context, in CreateInput) (Assignment, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO assignments
      (employee_id, project_id, role, allocation_percentage, start_date, end_date, status, approver_id, project_scope)
    VALUES ($1, $2, NULLIF($3,''), $4, NULLIF($5,'')::date, NULLIF($6,'')::date, $7, NULLIF($8,'')::uuid, NULLIF($9,''))
    RETURNING `+assignmentColumns,
		in.EmployeeID, in.ProjectID, in.Role, in.AllocationPercentage, in.StartDate, in.EndDate,
		StatusActive, in.ApproverID, in.ProjectScope)
	return scanAssignment(row)
}

func (s *Store) Get(ctx context.Context, id string) (Assignment, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+assignmentColumns+" FROM assignments WHERE id = $1", id)
	return scanAssignment(row)
}

func (s *Store) ListByProject(ctx context.Context, projectID string) ([]Assignment, error) {
	return s.list(ctx, "project_id = $1", projectID)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Assignment, error) {
	return s.list(ctx, "employee_id = $1", employeeID)
}

func (s *Store) list(ctx context.Context, where string, arg any) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE "+where+" ORDER BY created_at DESC", arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.ProjectID, &a.Role, &a.AllocationPercentage,
			&a.StartDate, &a.EndDate, &a.Status, &a.ApproverID, &a.ProjectScope, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ActiveForEmployeeProject finds the employee's active assignment on a
// project, used to resolve approvers for date requests.
func (s *Store) ActiveForEmployeeProject(ctx context.Context, employeeID, projectID string) (Assignment, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+assignmentColumns+`
    FROM assignments
    WHERE employee_id = $1 AND project_id = $2 AND status = $3
    ORDER BY created_at DESC
    LIMIT 1
  `, employeeID, projectID, StatusActive)
	return scanAssignment(row)
}

func (s *Store) UpdateDates(ctx context.Context, id, startDate, endDate string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE assignments SET start_date = NULLIF($2,'')::date, end_date = NULLIF($3,'')::date
    WHERE id = $1
  `, id, startDate, endDate)
	return err
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE assignments SET status = $2 WHERE id = $1", id, status)
	return err
}
