package project

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"smartpro/internal/domain/settings"
)

var ErrInvalidStatus = errors.New("invalid project status")

type Service struct {
	store    *Store
	settings *settings.Store
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{
		store:    NewStore(db),
		settings: settings.NewStore(db),
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Project, error) {
	if in.Title == "" {
		return Project{}, errors.New("title is required")
	}
	if err := ValidateDates(in.StartDate, in.EndDate); err != nil {
		return Project{}, err
	}
	return s.store.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Project, error) {
	if in.Status != nil && !ValidStatus(*in.Status) {
		return Project{}, ErrInvalidStatus
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}

	start := current.StartDate
	end := current.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if err := ValidateDates(start, end); err != nil {
		return Project{}, err
	}

	return s.store.Update(ctx, id, in)
}

func (s *Service) List(ctx context.Context, userID, employeeID string, limit, offset int) ([]Project, error) {
	access, err := s.settings.UserAccess(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListVisible(ctx, userID, employeeID, access.CanViewAllProjects, limit, offset)
}
