package notifications

import (
	"context"
	"log/slog"

	"smartpro/internal/domain/settings"
	"smartpro/internal/platform/email"
)

type Service struct {
	store    StoreAPI
	mailer   email.Mailer
	settings *settings.Store
}

func NewService(store StoreAPI, mailer email.Mailer, settingsStore *settings.Store) *Service {
	return &Service{store: store, mailer: mailer, settings: settingsStore}
}

// Notify records an in-app notification and fans out to email when email
// notifications are enabled. Email failures are logged, never returned.
func (s *Service) Notify(ctx context.Context, userID, kind, title, body, entityType, entityID string) error {
	_, err := s.store.Insert(ctx, Notification{
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Body:       body,
		EntityType: entityType,
		EntityID:   entityID,
	})
	if err != nil {
		return err
	}

	s.sendEmail(ctx, userID, title, body)
	return nil
}

// NotifyDeduped is Notify with a same-day guard per user, kind and entity.
// The reminder sweeps use it so a request sitting pending for a week does
// not produce seven identical notifications a day.
func (s *Service) NotifyDeduped(ctx context.Context, userID, kind, title, body, entityType, entityID string) (bool, error) {
	sent, err := s.store.SentToday(ctx, userID, kind, entityID)
	if err != nil {
		return false, err
	}
	if sent {
		return false, nil
	}
	if err := s.Notify(ctx, userID, kind, title, body, entityType, entityID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) sendEmail(ctx context.Context, userID, subject, body string) {
	if s.mailer == nil || s.settings == nil {
		return
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		slog.Warn("failed to load settings for email notification", "error", err)
		return
	}
	if !cfg.EmailNotificationsEnabled {
		return
	}

	addr, err := s.store.UserEmail(ctx, userID)
	if err != nil || addr == "" {
		if err != nil {
			slog.Warn("failed to resolve notification recipient", "userId", userID, "error", err)
		}
		return
	}
	if err := s.mailer.Send(ctx, addr, subject, body); err != nil {
		slog.Warn("failed to send notification email", "to", addr, "error", err)
	}
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	return s.store.ListForUser(ctx, userID, unreadOnly, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	return s.store.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.store.MarkAllRead(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.UnreadCount(ctx, userID)
}
