// Package web streams grid frames to browser clients over websockets.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/torus/game"
)

// Env describes the world to a client before the first frame arrives.
type Env struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Hub fans out encoded frames to every connected websocket client.
// Each client has a one-frame buffer; a client that falls behind misses
// frames rather than stalling the broadcaster.
type Hub struct {
	env      Env
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[int]chan []byte
	nextID  int
	latest  []byte
	closed  bool
}

// NewHub creates a hub for a width x height world.
func NewHub(width, height int) *Hub {
	return &Hub{
		env:     Env{Width: width, Height: height},
		clients: make(map[int]chan []byte),
	}
}

// Handler returns a mux serving /ws and /env.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.WebsocketHandler)
	mux.HandleFunc("/env", h.EnvHandler)
	return mux
}

// Broadcast encodes f and queues it for every client.
func (h *Hub) Broadcast(f game.Frame) error {
	js, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", f.Tick, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = js
	for id, ch := range h.clients {
		select {
		case ch <- js:
		default:
			slog.Debug("dropped frame", "client", id, "tick", f.Tick)
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.clients {
		close(ch)
		delete(h.clients, id)
	}
	h.closed = true
}

// addClient registers a client channel primed with the latest frame.
func (h *Hub) addClient() (int, chan []byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, nil, false
	}
	ch := make(chan []byte, 1)
	if h.latest != nil {
		ch <- h.latest
	}
	id := h.nextID
	h.nextID++
	h.clients[id] = ch
	return id, ch, true
}

func (h *Hub) removeClient(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
	}
}

// WebsocketHandler upgrades the request and streams frames until the
// client disconnects or the hub closes.
func (h *Hub) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id, ch, ok := h.addClient()
	if !ok {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		return
	}
	slog.Info("client connected", "client", id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for js := range ch {
			if err := conn.WriteMessage(websocket.TextMessage, js); err != nil {
				slog.Debug("write failed", "client", id, "error", err)
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
	}()

	// Clients send nothing; a read error means they went away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.removeClient(id)
	<-done
	slog.Info("client disconnected", "client", id)
}

// EnvHandler writes the world dimensions as JSON.
func (h *Hub) EnvHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.env); err != nil {
		slog.Warn("writing env", "error", err)
	}
}
