package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lingomap/pkg/playback"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is one message on the events feed.
type Event struct {
	Type   string           `json:"type"` // "snapshot" or "state"
	State  *playback.State  `json:"state,omitempty"`
	States []playback.State `json:"states,omitempty"`
}

// EventsHandler streams playback state changes over a websocket.
type EventsHandler struct {
	mgr      *playback.Manager
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler. The UI is served locally,
// so any origin is accepted.
func NewEventsHandler(mgr *playback.Manager) *EventsHandler {
	return &EventsHandler{
		mgr: mgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /api/events. The client first receives a snapshot
// of every known identity, then one message per change.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("Events: Upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	states, unsubscribe := h.mgr.Subscribe(32)
	defer unsubscribe()

	// the feed is one-way; reading only serves close and pong frames
	closed := make(chan struct{})
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeEvent(conn, Event{Type: "snapshot", States: h.mgr.Snapshot()}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case st, ok := <-states:
			if !ok {
				return
			}
			if err := writeEvent(conn, Event{Type: "state", State: &st}); err != nil {
				slog.Debug("Events: Write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, ev Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(ev)
}
