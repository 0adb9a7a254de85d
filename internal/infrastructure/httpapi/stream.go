package httpapi

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/felixgeelhaar/storylint/pkg/application"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans completed analysis results out to connected WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan *application.AnalysisResult]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[chan *application.AnalysisResult]struct{}),
	}
}

// Broadcast queues a result for every connected client. Slow clients are
// skipped rather than blocking the sender.
func (h *Hub) Broadcast(result *application.AnalysisResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- result:
		default:
			// Drop if client is slow
		}
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan *application.AnalysisResult, 64)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		close(ch)
	}()

	// Reader goroutine: we never expect client messages, but reading
	// surfaces close frames so the connection can be torn down.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case result := <-ch:
			if err := conn.WriteJSON(result); err != nil {
				return
			}
		}
	}
}
