package notification

import "time"

type CreateNotificationRequest struct {
	RecipientID string `json:"recipient_id"`
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Data        Data   `json:"data,omitempty"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Data      Data      `json:"data,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// SSEEvent is one event delivered to a live subscriber.
type SSEEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
