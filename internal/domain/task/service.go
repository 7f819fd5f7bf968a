package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"smartpro/internal/domain/notifications"
	"smartpro/internal/domain/settings"
)

// Notifier delivers task assignment notifications.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, body, entityType, entityID string) error
}

type Service struct {
	store    *Store
	settings *settings.Store
	notifier Notifier
}

func NewService(db *pgxpool.Pool, notifier Notifier) *Service {
	return &Service{
		store:    NewStore(db),
		settings: settings.NewStore(db),
		notifier: notifier,
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Task, error) {
	if in.Title == "" {
		return Task{}, errors.New("title is required")
	}
	if in.ProjectID == "" {
		return Task{}, errors.New("projectId is required")
	}
	if in.Priority != "" && !ValidPriority(in.Priority) {
		return Task{}, ErrInvalidPriority
	}

	created, err := s.store.Create(ctx, in)
	if err != nil {
		return Task{}, err
	}
	if created.AssignedTo != "" {
		s.notifyAssignee(ctx, created)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (Task, error) {
	return s.store.Get(ctx, id)
}

// Update applies field changes and reconciles status with progress. A status
// supplied alongside progress loses to the derived status when they conflict.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Task, error) {
	if in.Status != nil && !ValidStatus(*in.Status) {
		return Task{}, ErrInvalidStatus
	}
	if in.Priority != nil && !ValidPriority(*in.Priority) {
		return Task{}, ErrInvalidPriority
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}

	status := current.Status
	if in.Status != nil {
		status = *in.Status
	}

	derived := ""
	if in.Progress != nil {
		derived, err = DeriveStatus(*in.Progress, status)
		if err != nil {
			return Task{}, err
		}
	} else if in.Status != nil {
		derived = status
	}

	updated, err := s.store.Update(ctx, id, in, derived)
	if err != nil {
		return Task{}, err
	}
	if in.AssignedTo != nil && *in.AssignedTo != "" && *in.AssignedTo != current.AssignedTo {
		s.notifyAssignee(ctx, updated)
	}
	return updated, nil
}

func (s *Service) notifyAssignee(ctx context.Context, t Task) {
	if s.notifier == nil {
		return
	}
	body := fmt.Sprintf("You have been assigned the task %q.", t.Title)
	if t.DueDate != "" {
		body = fmt.Sprintf("You have been assigned the task %q, due %s.", t.Title, t.DueDate)
	}
	err := s.notifier.Notify(ctx, t.AssignedTo, notifications.KindTaskAssigned,
		"Task assigned: "+t.Title, body, "task", t.ID)
	if err != nil {
		slog.Warn("failed to notify task assignee", "taskId", t.ID, "error", err)
	}
}

func (s *Service) List(ctx context.Context, userID, projectID string, limit, offset int) ([]Task, error) {
	access, err := s.settings.UserAccess(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListVisible(ctx, userID, access.CanViewAllTasks, projectID, limit, offset)
}
