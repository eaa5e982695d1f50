// Package notify broadcasts service events to live WebSocket clients.
// Delivery is best-effort and at-most-once; nothing is persisted or retried.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub tracks connected clients and fans events out to all of them. The hub
// does not target individual users; a disconnected client simply misses the
// event.
type Hub struct {
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// frame is the JSON envelope written to clients.
type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// HandleWS upgrades the request and registers the connection until it closes.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	h.log.Debug().Int("connections", n).Msg("client connected")

	// Drain the read side so close frames are processed; clients never send
	// meaningful payloads.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast writes the event to every connection. Failed writers are dropped.
// The hub mutex is held across the writes: gorilla/websocket allows at most
// one concurrent writer per connection, so concurrent broadcasts must be
// serialized.
func (h *Hub) Broadcast(event string, payload interface{}) {
	data, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal broadcast payload")
		return
	}

	var failed []*websocket.Conn
	h.mu.Lock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, c)
		}
	}
	h.mu.Unlock()

	for _, c := range failed {
		h.drop(c)
	}
}

// Close shuts every connection down.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
	}
	h.mu.Unlock()
	_ = conn.Close()
}
