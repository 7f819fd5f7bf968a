package daterequest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

var _ StoreAPI = (*Store)(nil)

const requestColumns = `
  id, employee_id, COALESCE(employee_name, ''), request_type,
  COALESCE(project_id::text, ''), COALESCE(assignment_id::text, ''),
  from_date::text, to_date::text, total_days, COALESCE(reason, ''),
  auto_create_tasks, COALESCE(project_scope, ''),
  COALESCE(approver_id::text, ''), status, COALESCE(comments, ''),
  COALESCE(decided_by::text, ''), created_at, updated_at
`

func scanRequest(row pgx.Row) (DateRequest, error) {
	var r DateRequest
	err := row.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.RequestType,
		&r.ProjectID, &r.AssignmentID, &r.FromDate, &r.ToDate, &r.TotalDays, &r.Reason,
		&r.AutoCreateTasks, &r.ProjectScope,
		&r.ApproverID, &r.Status, &r.Comments, &r.DecidedBy, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return DateRequest{}, ErrNotFound
	}
	return r, err
}

func (s *Store) Insert(ctx context.Context, r DateRequest) (DateRequest, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO date_requests
      (employee_id, employee_name, request_type, project_id, assignment_id,
       from_date, to_date, total_days, reason, auto_create_tasks, project_scope,
       approver_id, status)
    VALUES ($1, $2, $3, NULLIF($4,'')::uuid, NULLIF($5,'')::uuid,
            $6::date, $7::date, $8, NULLIF($9,''), $10, NULLIF($11,''),
            NULLIF($12,'')::uuid, $13)
    RETURNING `+requestColumns,
		r.EmployeeID, r.EmployeeName, r.RequestType, r.ProjectID, r.AssignmentID,
		r.FromDate, r.ToDate, r.TotalDays, r.Reason, r.AutoCreateTasks, r.ProjectScope,
		r.ApproverID, r.Status)
	return scanRequest(row)
}

func (s *Store) Get(ctx context.Context, id string) (DateRequest, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM date_requests WHERE id = $1", id)
	return scanRequest(row)
}

func (s *Store) Update(ctx context.Context, id string, in UpdateInput, totalDays int) (DateRequest, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(expr string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if in.RequestType != nil {
		add("request_type = $%d", *in.RequestType)
	}
	if in.FromDate != nil {
		add("from_date = $%d::date", *in.FromDate)
	}
	if in.ToDate != nil {
		add("to_date = $%d::date", *in.ToDate)
	}
	if in.Reason != nil {
		add("reason = NULLIF($%d,'')", *in.Reason)
	}
	if in.ProjectID != nil {
		add("project_id = NULLIF($%d,'')::uuid", *in.ProjectID)
	}
	if in.assignmentID != nil {
		add("assignment_id = NULLIF($%d,'')::uuid", *in.assignmentID)
	}
	if in.projectScope != nil {
		add("project_scope = NULLIF($%d,'')", *in.projectScope)
	}
	if totalDays > 0 {
		add("total_days = $%d", totalDays)
	}

	row := s.DB.QueryRow(ctx,
		"UPDATE date_requests SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+requestColumns, args...)
	return scanRequest(row)
}

func (s *Store) MarkSubmitted(ctx context.Context, id, approverID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE date_requests
    SET status = $2, approver_id = NULLIF($3,'')::uuid, updated_at = now()
    WHERE id = $1 AND status = $4
  `, id, StatusPendingApproval, approverID, StatusDraft)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkDecided(ctx context.Context, id, status, comments, decidedBy string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE date_requests
    SET status = $2, comments = NULLIF($3,''), decided_by = NULLIF($4,'')::uuid, updated_at = now()
    WHERE id = $1 AND status = $5
  `, id, status, comments, decidedBy, StatusPendingApproval)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]DateRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM date_requests
    WHERE employee_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	return collect(rows, err)
}

func (s *Store) ListAll(ctx context.Context, status string, limit, offset int) ([]DateRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM date_requests
    WHERE ($1 = '' OR status = $1)
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, status, limit, offset)
	return collect(rows, err)
}

func (s *Store) PendingForApprover(ctx context.Context, approverUserID string, limit, offset int) ([]DateRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM date_requests
    WHERE approver_id = $1 AND status = $2
    ORDER BY created_at ASC
    LIMIT $3 OFFSET $4
  `, approverUserID, StatusPendingApproval, limit, offset)
	return collect(rows, err)
}

func collect(rows pgx.Rows, err error) ([]DateRequest, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DateRequest
	for rows.Next() {
		var r DateRequest
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.RequestType,
			&r.ProjectID, &r.AssignmentID, &r.FromDate, &r.ToDate, &r.TotalDays, &r.Reason,
			&r.AutoCreateTasks, &r.ProjectScope,
			&r.ApproverID, &r.Status, &r.Comments, &r.DecidedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) EmployeeUserID(ctx context.Context, employeeID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx,
		"SELECT COALESCE(user_id::text, '') FROM employees WHERE id = $1", employeeID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return userID, err
}

func (s *Store) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx,
		"SELECT employee_name FROM employees WHERE id = $1", employeeID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return name, err
}

func (s *Store) Project(ctx context.Context, projectID string) (ProjectRef, error) {
	var p ProjectRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, status, COALESCE(project_manager_id::text, '')
    FROM projects
    WHERE id = $1
  `, projectID).Scan(&p.ID, &p.Title, &p.Status, &p.ManagerUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProjectRef{}, errors.New("project not found")
	}
	return p, err
}

func (s *Store) ActiveAssignment(ctx context.Context, employeeID, projectID string) (AssignmentRef, bool, error) {
	var a AssignmentRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(approver_id::text, ''), COALESCE(project_scope, '')
    FROM assignments
    WHERE employee_id = $1 AND project_id = $2 AND status = 'Active'
    ORDER BY created_at DESC
    LIMIT 1
  `, employeeID, projectID).Scan(&a.ID, &a.ApproverID, &a.ProjectScope)
	if errors.Is(err, pgx.ErrNoRows) {
		return AssignmentRef{}, false, nil
	}
	if err != nil {
		return AssignmentRef{}, false, err
	}
	return a, true, nil
}

func (s *Store) UpdateProjectSchedule(ctx context.Context, projectID, fromDate, toDate string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE projects
    SET start_date = $2::date, end_date = $3::date, status = 'Active', updated_at = now()
    WHERE id = $1
  `, projectID, fromDate, toDate)
	return err
}

func (s *Store) UpdateAssignmentDates(ctx context.Context, assignmentID, fromDate, toDate string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE assignments SET start_date = $2::date, end_date = $3::date
    WHERE id = $1
  `, assignmentID, fromDate, toDate)
	return err
}

func (s *Store) TaskExists(ctx context.Context, projectID, title string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM tasks WHERE project_id = $1 AND title = $2", projectID, title).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateTask(ctx context.Context, seed TaskSeed) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO tasks
      (title, description, project_id, assigned_to, status, priority, start_date, due_date, progress, project_scope)
    VALUES ($1, NULLIF($2,''), $3, NULLIF($4,'')::uuid, 'Open', 'Medium',
            NULLIF($5,'')::date, NULLIF($6,'')::date, 0, NULLIF($7,''))
    RETURNING id
  `, seed.Title, seed.Description, seed.ProjectID, seed.AssignedTo, seed.StartDate, seed.DueDate, seed.ProjectScope).Scan(&id)
	return id, err
}
