package assignment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestOpener opens a pending date request covering a new assignment's
// period. Implemented by the date request service.
type RequestOpener interface {
	OpenForAssignment(ctx context.Context, employeeID, projectID, assignmentID, startDate, endDate, approverID, projectScope, reason string) (string, error)
}

type Service struct {
	store    *Store
	requests RequestOpener
}

func NewService(db *pgxpool.Pool, requests RequestOpener) *Service {
	return &Service{
		store:    NewStore(db),
		requests: requests,
	}
}

// Create records the assignment and opens a date request for the assignment
// period. The request is a side channel: if opening it fails the assignment
// still stands and the failure is logged.
func (s *Service) Create(ctx context.Context, in CreateInput) (Assignment, error) {
	if in.EmployeeID == "" || in.ProjectID == "" {
		return Assignment{}, errors.New("employeeId and projectId are required")
	}
	if err := ValidateAllocation(in.AllocationPercentage); err != nil {
		return Assignment{}, err
	}
	if err := ValidateDates(in.StartDate, in.EndDate); err != nil {
		return Assignment{}, err
	}

	a, err := s.store.Create(ctx, in)
	if err != nil {
		return Assignment{}, err
	}

	if s.requests != nil && a.StartDate != "" && a.EndDate != "" {
		reason := ComposeReason(a.Role, a.AllocationPercentage)
		if _, err := s.requests.OpenForAssignment(ctx, a.EmployeeID, a.ProjectID, a.ID, a.StartDate, a.EndDate, a.ApproverID, a.ProjectScope, reason); err != nil {
			slog.Warn("failed to open date request for assignment",
				"assignmentId", a.ID, "error", err)
		}
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Assignment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Assignment, error) {
	return s.store.ListByProject(ctx, projectID)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Assignment, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case StatusActive, StatusCompleted, StatusCancelled:
	default:
		return errors.New("invalid assignment status")
	}
	return s.store.UpdateStatus(ctx, id, status)
}
