package postgresql

import (
	"context"
	"fmt"

	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (recipient_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recipient_id, type, title, message, data, is_read, created_at
	`

	var created notification.Notification
	err := q.QueryRow(ctx, query, n.RecipientID, n.Type, n.Title, n.Message, n.Data).Scan(
		&created.ID, &created.RecipientID, &created.Type, &created.Title,
		&created.Message, &created.Data, &created.IsRead, &created.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return created, nil
}

func (r *notificationRepository) GetByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 50
	}

	rows, err := q.Query(ctx, `
		SELECT id, recipient_id, type, title, message, data, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Type, &n.Title,
			&n.Message, &n.Data, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Idempotent, unknown ids are ignored
	if _, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID,
	); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
