package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("task not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const taskColumns = `
  id, title, COALESCE(description, ''), project_id, COALESCE(assigned_to::text, ''),
  status, priority, COALESCE(start_date::text, ''), COALESCE(due_date::text, ''),
  progress, COALESCE(project_scope, ''), created_at, updated_at
`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.ProjectID, &t.AssignedTo,
		&t.Status, &t.Priority, &t.StartDate, &t.DueDate, &t.Progress, &t.ProjectScope,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	return t, err
}

func (s *Store) Create(ctx context.Context, in CreateInput) (Task, error) {
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO tasks
      (title, description, project_id, assigned_to, status, priority, start_date, due_date, progress, project_scope)
    VALUES ($1, NULLIF($2,''), $3, NULLIF($4,'')::uuid, $5, $6, NULLIF($7,'')::date, NULLIF($8,'')::date, 0, NULLIF($9,''))
    RETURNING `+taskColumns,
		in.Title, in.Description, in.ProjectID, in.AssignedTo, StatusOpen, priority, in.StartDate, in.DueDate, in.ProjectScope)
	return scanTask(row)
}

func (s *Store) Get(ctx context.Context, id string) (Task, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	return scanTask(row)
}

func (s *Store) Update(ctx context.Context, id string, in UpdateInput, derivedStatus string) (Task, error) {
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
	if in.AssignedTo != nil {
		if *in.AssignedTo == "" {
			sets = append(sets, "assigned_to = NULL")
		} else {
			add("assigned_to", *in.AssignedTo)
		}
	}
	if in.Priority != nil {
		add("priority", *in.Priority)
	}
	if in.StartDate != nil {
		add("start_date", nullableDate(*in.StartDate))
	}
	if in.DueDate != nil {
		add("due_date", nullableDate(*in.DueDate))
	}
	if in.Progress != nil {
		add("progress", *in.Progress)
	}
	if in.ProjectScope != nil {
		add("project_scope", *in.ProjectScope)
	}
	if derivedStatus != "" {
		add("status", derivedStatus)
	}

	row := s.DB.QueryRow(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+taskColumns, args...)
	return scanTask(row)
}

func nullableDate(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// ListVisible returns tasks the user may see: their own assignments, tasks on
// projects they manage, or everything with the full-access grant.
func (s *Store) ListVisible(ctx context.Context, userID string, viewAll bool, projectID string, limit, offset int) ([]Task, error) {
	var rows pgx.Rows
	var err error
	if viewAll {
		rows, err = s.DB.Query(ctx, `
      SELECT `+taskColumns+`
      FROM tasks
      WHERE ($1 = '' OR project_id = NULLIF($1,'')::uuid)
      ORDER BY created_at DESC
      LIMIT $2 OFFSET $3
    `, projectID, limit, offset)
	} else {
		rows, err = s.DB.Query(ctx, `
      SELECT `+taskColumns+`
      FROM tasks t
      WHERE ($2 = '' OR t.project_id = NULLIF($2,'')::uuid)
        AND (t.assigned_to = $1
          OR EXISTS (SELECT 1 FROM projects p WHERE p.id = t.project_id AND p.project_manager_id = $1))
      ORDER BY t.created_at DESC
      LIMIT $3 OFFSET $4
    `, userID, projectID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ProjectID, &t.AssignedTo,
			&t.Status, &t.Priority, &t.StartDate, &t.DueDate, &t.Progress, &t.ProjectScope,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ExistsByTitle reports whether the project already has a task with the exact
// title. Used to keep generated tasks idempotent.
func (s *Store) ExistsByTitle(ctx context.Context, projectID, title string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM tasks WHERE project_id = $1 AND title = $2", projectID, title).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) BelongsToProject(ctx context.Context, taskID, projectID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM tasks WHERE id = $1 AND project_id = $2", taskID, projectID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
