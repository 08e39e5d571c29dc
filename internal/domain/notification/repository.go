package notification

import "context"

// NotificationRepository defines data access methods for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	GetByRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int, error)
}
