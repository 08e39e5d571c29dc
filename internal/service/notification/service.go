package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	repo notification.NotificationRepository
	hub  *sse.Hub

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts the background delivery workers and returns
// the service.
func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			// Drain what is already queued before exiting
			for {
				select {
				case req := <-s.queue:
					s.deliver(id, req)
				default:
					return
				}
			}
		case req := <-s.queue:
			s.deliver(id, req)
		}
	}
}

func (s *service) deliver(workerID int, req notification.CreateNotificationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := s.repo.Create(ctx, notification.Notification{
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
	})
	if err != nil {
		slog.Error("Failed to store notification", "worker", workerID, "recipient_id", req.RecipientID, "error", err)
		return
	}

	s.hub.Publish(created.RecipientID, sse.Event{
		UserID: created.RecipientID,
		Event:  "notification",
		Data:   toResponse(created),
	})
}

// Queue enqueues a notification for background delivery. When the queue is
// full the notification is stored synchronously instead of being dropped.
func (s *service) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	select {
	case s.queue <- req:
		return nil
	default:
	}

	slog.Warn("Notification queue full, inserting directly", "recipient_id", req.RecipientID)
	created, err := s.repo.Create(ctx, notification.Notification{
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	s.hub.Publish(created.RecipientID, sse.Event{
		UserID: created.RecipientID,
		Event:  "notification",
		Data:   toResponse(created),
	})
	return nil
}

func (s *service) QueueBulk(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.Queue(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func toResponse(n notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (s *service) List(ctx context.Context, recipientID string, limit int) ([]notification.NotificationResponse, error) {
	notifications, err := s.repo.GetByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toResponse(n))
	}
	return responses, nil
}

func (s *service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	events, cleanup := s.hub.Subscribe(recipientID)

	out := make(chan notification.SSEEvent, 10)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case out <- notification.SSEEvent{Event: ev.Event, Data: ev.Data}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cleanup
}

// Stop drains the queue and shuts the workers down.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("Notification service stopped")
}
