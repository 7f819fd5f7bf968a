package reports

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

func (s *Store) Dashboard(ctx context.Context, userID, employeeID string) (Dashboard, error) {
	var d Dashboard

	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM projects p
    WHERE p.status IN ('Planning', 'Active')
      AND (p.project_manager_id = $1
        OR EXISTS (SELECT 1 FROM assignments a
                   WHERE a.project_id = p.id AND a.employee_id = NULLIF($2,'')::uuid AND a.status = 'Active'))
  `, userID, employeeID).Scan(&d.ActiveProjects)
	if err != nil {
		return Dashboard{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM tasks
    WHERE assigned_to = $1 AND status NOT IN ('Completed', 'Cancelled')
  `, userID).Scan(&d.OpenTasks)
	if err != nil {
		return Dashboard{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM date_requests
    WHERE status = 'Pending Approval' AND (approver_id = $1 OR employee_id = NULLIF($2,'')::uuid)
  `, userID, employeeID).Scan(&d.PendingRequests)
	if err != nil {
		return Dashboard{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(hours_worked), 0) FROM timesheets
    WHERE employee_id = NULLIF($1,'')::uuid
      AND date >= date_trunc('week', CURRENT_DATE)::date
  `, employeeID).Scan(&d.HoursThisWeek)
	if err != nil {
		return Dashboard{}, err
	}

	return d, nil
}

// ManagerDigests collects every manager's open projects with their open task
// and pending request counts.
func (s *Store) ManagerDigests(ctx context.Context) ([]ManagerDigest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.project_manager_id::text, u.email,
           p.id, p.title, p.status, COALESCE(p.end_date::text, ''),
           (SELECT COUNT(1) FROM tasks t WHERE t.project_id = p.id AND t.status NOT IN ('Completed', 'Cancelled')),
           (SELECT COUNT(1) FROM date_requests r WHERE r.project_id = p.id AND r.status = 'Pending Approval')
    FROM projects p
    JOIN users u ON u.id = p.project_manager_id
    WHERE p.status IN ('Planning', 'Active', 'On Hold')
    ORDER BY p.project_manager_id, p.title
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ManagerDigest
	for rows.Next() {
		var managerID, email string
		var ps ProjectStatus
		if err := rows.Scan(&managerID, &email, &ps.ProjectID, &ps.Title, &ps.Status, &ps.EndDate,
			&ps.OpenTasks, &ps.PendingRequests); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ManagerUserID != managerID {
			out = append(out, ManagerDigest{ManagerUserID: managerID, ManagerEmail: email})
		}
		last := &out[len(out)-1]
		last.Projects = append(last.Projects, ps)
	}
	return out, nil
}
