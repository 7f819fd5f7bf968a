package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("project not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const projectColumns = `
  id, title, COALESCE(description, ''), status, COALESCE(project_manager_id::text, ''),
  COALESCE(department, ''), COALESCE(start_date::text, ''), COALESCE(end_date::text, ''),
  created_at, updated_at
`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.ProjectManagerID,
		&p.Department, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

func (s *Store) Create(ctx context.Context, in CreateInput) (Project, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO projects (title, description, status, project_manager_id, department, start_date, end_date)
    VALUES ($1, NULLIF($2,''), $3, NULLIF($4,'')::uuid, NULLIF($5,''), NULLIF($6,'')::date, NULLIF($7,'')::date)
    RETURNING `+projectColumns,
		in.Title, in.Description, StatusPlanning, in.ProjectManagerID, in.Department, in.StartDate, in.EndDate)
	return scanProject(row)
}

func (s *Store) Get(ctx context.Context, id string) (Project, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id)
	return scanProject(row)
}

func (s *Store) Update(ctx context.Context, id string, in UpdateInput) (Project, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.StartDate != nil {
		add("start_date", nullableDate(*in.StartDate))
	}
	if in.EndDate != nil {
		add("end_date", nullableDate(*in.EndDate))
	}

	row := s.DB.QueryRow(ctx,
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+projectColumns, args...)
	return scanProject(row)
}

func nullableDate(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// ListVisible returns projects the user may see. Managers see their own
// projects, assigned employees see theirs, and users with the full-access
// grant see everything.
func (s *Store) ListVisible(ctx context.Context, userID, employeeID string, viewAll bool, limit, offset int) ([]Project, error) {
	var rows pgx.Rows
	var err error
	if viewAll {
		rows, err = s.DB.Query(ctx,
			"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC LIMIT $1 OFFSET $2",
			limit, offset)
	} else {
		rows, err = s.DB.Query(ctx, `
      SELECT `+projectColumns+`
      FROM projects p
      WHERE p.project_manager_id = $1
         OR EXISTS (
           SELECT 1 FROM assignments a
           WHERE a.project_id = p.id AND a.employee_id = NULLIF($2,'')::uuid AND a.status = 'Active'
         )
      ORDER BY p.created_at DESC
      LIMIT $3 OFFSET $4
    `, userID, employeeID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.ProjectManagerID,
			&p.Department, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) ManagedBy(ctx context.Context, managerUserID string) ([]Project, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE project_manager_id = $1 ORDER BY title", managerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.ProjectManagerID,
			&p.Department, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
