package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

const (
	EventConnected = "connected"
	EventChange    = "change"
	EventSignedOut = "signed_out"
	EventPing      = "ping"
)

// ChangeNotifier forwards every store mutation to every open stream.
func ChangeNotifier(hub *sse.Hub) store.Notifier {
	return store.NotifierFunc(func(e store.Event) {
		hub.Broadcast(sse.Event{Event: EventChange, Data: e})
	})
}

// IdentityListener reacts to sign-outs: the user's store is dropped and their
// open streams are told and closed.
func IdentityListener(registry *store.Registry, hub *sse.Hub) func(auth.IdentityChange) {
	return func(change auth.IdentityChange) {
		if change.Identity != nil {
			return
		}
		if change.Email != "" {
			registry.Drop(change.Email)
		}
		hub.Publish(change.UserID, sse.Event{Event: EventSignedOut, Data: map[string]string{"user_id": change.UserID}})
	}
}

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
	keepalive  time.Duration
}

func NewEventHandler(hub *sse.Hub, jwtService jwt.Service) EventHandler {
	return &eventHandlerImpl{hub: hub, jwtService: jwtService, keepalive: 30 * time.Second}
}

// Stream pushes store change notifications to the caller. The stream ends
// when the client goes away or the user signs out.
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
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

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	write := func(e sse.Event) bool {
		if _, err := e.WriteTo(w); err != nil {
			slog.Debug("SSE write failed", "user_id", userID, "error", err)
			return false
		}
		flusher.Flush()
		return true
	}

	if !write(sse.Event{Event: EventConnected, Data: map[string]string{"status": "connected", "user_id": userID}}) {
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if !write(event) || event.Event == EventSignedOut {
				return
			}

		case <-keepalive.C:
			if !write(sse.Event{Event: EventPing, Data: map[string]int64{"timestamp": time.Now().Unix()}}) {
				return
			}

		case <-r.Context().Done():
			return
		}
	}
}
