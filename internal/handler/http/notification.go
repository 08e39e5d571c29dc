package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffly/hr-backend-go/internal/domain/notification"
	"github.com/staffly/hr-backend-go/internal/handler/http/middleware"
	"github.com/staffly/hr-backend-go/internal/handler/http/response"
	"github.com/staffly/hr-backend-go/internal/pkg/jwt"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
	jwtService   jwt.Service
}

func NewNotificationHandler(notifService notification.Service, jwtService jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{notifService: notifService, jwtService: jwtService}
}

func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	result, err := h.notifService.List(r.Context(), identity.EmployeeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	count, err := h.notifService.UnreadCount(r.Context(), identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread": count})
}

func (h *notificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked read", nil)
}

func (h *notificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	if err := h.notifService.MarkAllRead(r.Context(), identity.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked read", nil)
}

// StreamToken mints the short-lived token the browser passes as a query
// parameter when opening the SSE stream, since EventSource cannot set
// headers.
func (h *notificationHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.CallerIdentity(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.ValidateSSEToken(r.URL.Query().Get("token"))
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifService.Subscribe(r.Context(), employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
