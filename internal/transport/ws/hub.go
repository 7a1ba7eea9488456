package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is broadcast to every connected viewer after a content mutation, so
// open tabs can re-fetch the changed category.
type Event struct {
	Event    string `json:"event"`
	Category string `json:"category"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans content-update events out to connected viewers. A viewer that
// cannot keep up is dropped rather than allowed to block the rest.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The portfolio is served publicly; viewers connect from anywhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the peer
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, constants.WebSocketConfig.SendBufferSize),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("Viewer connected", zap.Int("viewers", total))

	go h.writeLoop(c)
	h.readLoop(c)
}

// ContentUpdated broadcasts a content-change event for the given category.
func (h *Hub) ContentUpdated(category string) {
	payload, err := json.Marshal(Event{
		Event:    "content-updated",
		Category: category,
	})
	if err != nil {
		h.logger.Error("Failed to encode update event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop it.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Close disconnects every viewer. Used during shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteDeadline))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("Viewer write failed", zap.Error(err))
			h.remove(c)
			return
		}
	}

	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(constants.WebSocketConfig.WriteDeadline))
}

// readLoop drains incoming frames; viewers never send anything meaningful,
// reading just detects the close.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
