package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SnapshotHandler broadcasts session snapshots to WebSocket clients so
// external renderers can follow the game in real time.
type SnapshotHandler struct {
	session Snapshotter
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewSnapshotHandler creates a SnapshotHandler over the given session.
func NewSnapshotHandler(session Snapshotter) *SnapshotHandler {
	h := &SnapshotHandler{
		session: session,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the latest snapshot to all connected clients. Stale
// repeats are suppressed by the snapshot timestamp.
func (h *SnapshotHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	var lastSent time.Time
	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		snap := h.session.Snapshot()
		if !snap.Timestamp.After(lastSent) {
			continue
		}
		lastSent = snap.Timestamp

		for _, conn := range h.clientList() {
			if err := conn.WriteJSON(snap); err != nil {
				conn.Close()
			}
		}
	}
}

// clientList copies the client set so writes happen outside the lock.
func (h *SnapshotHandler) clientList() []*websocket.Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	return conns
}
