package notification

import "context"

// Service queues notifications for background delivery and serves the
// read-side API. Queueing never blocks callers on storage.
type Service interface {
	Queue(ctx context.Context, req CreateNotificationRequest) error
	QueueBulk(ctx context.Context, reqs []CreateNotificationRequest) error
	List(ctx context.Context, recipientID string, limit int) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	// Subscribe attaches a live event stream for the recipient. The returned
	// cleanup must be called when the stream closes.
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())
	Stop()
}
