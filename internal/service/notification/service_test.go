package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/pkg/sse"
)

// fakeNotificationRepo must be safe for concurrent use; delivery workers call
// it from their own goroutines.
type fakeNotificationRepo struct {
	mu     sync.Mutex
	stored []notification.Notification
	nextID int
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	n.ID = fmt.Sprintf("notif-%d", r.nextID)
	n.CreatedAt = time.Now().UTC()
	r.stored = append(r.stored, n)
	return n, nil
}

func (r *fakeNotificationRepo) GetByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []notification.Notification
	for _, n := range r.stored {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.stored {
		if r.stored[i].ID == id {
			r.stored[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.stored {
		if r.stored[i].RecipientID == recipientID {
			r.stored[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.stored {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stored)
}

func TestQueueDeliversToSubscriber(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "emp-1")
	defer cleanup()

	err := svc.Queue(ctx, notification.CreateNotificationRequest{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave request approved",
		Message:     "Your Casual Leave request is now Approved",
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		resp, ok := ev.Data.(notification.NotificationResponse)
		require.True(t, ok, "unexpected event payload %T", ev.Data)
		assert.Equal(t, notification.TypeLeaveApproved, resp.Type)
		assert.NotEmpty(t, resp.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}

	assert.Equal(t, 1, repo.count())
}

func TestStopDrainsQueue(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{WorkerCount: 2})

	for i := 0; i < 25; i++ {
		err := svc.Queue(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "emp-1",
			Type:        notification.TypeLeaveApplied,
			Title:       "New leave request",
			Message:     fmt.Sprintf("request %d", i),
		})
		require.NoError(t, err)
	}

	svc.Stop()
	assert.Equal(t, 25, repo.count())
}

func TestReadTracking(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{})
	defer svc.Stop()

	ctx := context.Background()

	err := svc.QueueBulk(ctx, []notification.CreateNotificationRequest{
		{RecipientID: "emp-1", Type: notification.TypePayrollReady, Title: "Salary approved", Message: "June"},
		{RecipientID: "emp-1", Type: notification.TypePayrollReady, Title: "Salary approved", Message: "July"},
		{RecipientID: "emp-2", Type: notification.TypePayrollReady, Title: "Salary approved", Message: "June"},
	})
	require.NoError(t, err)

	// Wait for the workers to finish storing.
	require.Eventually(t, func() bool { return repo.count() == 3 }, 2*time.Second, 10*time.Millisecond)

	count, err := svc.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	listed, err := svc.List(ctx, "emp-1", 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	require.NoError(t, svc.MarkRead(ctx, listed[0].ID))
	count, err = svc.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllRead(ctx, "emp-1"))
	count, err = svc.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
