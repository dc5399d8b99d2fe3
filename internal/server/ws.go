package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/irpoint/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// TrackingHandler broadcasts per-cycle tracking telemetry (raw and
// filtered positions, emitted delta) via WebSocket. The settings page
// uses it to show what the thresholds are picking up.
type TrackingHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewTrackingHandler creates a TrackingHandler with no clients.
func NewTrackingHandler() *TrackingHandler {
	return &TrackingHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *TrackingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep the connection open; clients only listen. Read until the
	// peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish sends one cycle's telemetry to every connected client. It is
// called from the pipeline goroutine; failed clients are dropped.
func (h *TrackingHandler) Publish(c app.Cycle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(c); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
