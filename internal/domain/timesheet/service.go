package timesheet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	store *Store
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{store: NewStore(db)}
}

// Log records a timesheet entry. One entry per employee, task and date; the
// task must belong to the named project.
func (s *Service) Log(ctx context.Context, in CreateInput) (Entry, error) {
	if in.EmployeeID == "" || in.ProjectID == "" || in.TaskID == "" {
		return Entry{}, errors.New("employeeId, projectId and taskId are required")
	}
	if err := ValidateDate(in.Date); err != nil {
		return Entry{}, err
	}
	if err := ValidateHours(in.HoursWorked); err != nil {
		return Entry{}, err
	}

	ok, err := s.store.TaskBelongsToProject(ctx, in.TaskID, in.ProjectID)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, ErrTaskMismatch
	}

	exists, err := s.store.Exists(ctx, in.EmployeeID, in.TaskID, in.Date)
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, ErrDuplicate
	}

	return s.store.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, employeeID, fromDate, toDate string, limit, offset int) ([]Entry, error) {
	return s.store.ListForEmployee(ctx, employeeID, fromDate, toDate, limit, offset)
}

// DayTotal sums one day's entries for an employee.
func (s *Service) DayTotal(ctx context.Context, employeeID, date string) (DaySummary, error) {
	if err := ValidateDate(date); err != nil {
		return DaySummary{}, err
	}
	entries, err := s.store.ListForEmployee(ctx, employeeID, date, date, 200, 0)
	if err != nil {
		return DaySummary{}, err
	}
	summary := DaySummary{Date: date, Entries: entries}
	for _, e := range entries {
		summary.TotalHours += e.HoursWorked
	}
	return summary, nil
}

// Submit locks a draft entry. Submitted entries can no longer be edited or
// deleted by the employee.
func (s *Service) Submit(ctx context.Context, id, employeeID string) error {
	ok, err := s.store.Submit(ctx, id, employeeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Decide approves or rejects a submitted entry.
func (s *Service) Decide(ctx context.Context, id string, approve bool) error {
	status := StatusRejected
	if approve {
		status = StatusApproved
	}
	ok, err := s.store.Decide(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id, employeeID string) error {
	ok, err := s.store.Delete(ctx, id, employeeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
