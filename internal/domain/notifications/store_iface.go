package notifications

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, n Notification) (string, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int, error)

	// SentToday reports whether the user already got a notification of this
	// kind about this entity today. Keeps the reminder sweeps from piling up.
	SentToday(ctx context.Context, userID, kind, entityID string) (bool, error)

	UserEmail(ctx context.Context, userID string) (string, error)
}
