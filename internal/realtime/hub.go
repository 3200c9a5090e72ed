package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSEvent is the envelope pushed to connected clients.
type WSEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// connection represents a single WebSocket client.
type connection struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub manages all active WebSocket connections, one set per user. A user may
// have several tabs open; each gets its own connection.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]bool
}

func NewHub() *Hub {
	return &Hub{connections: make(map[string]map[*connection]bool)}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c.userID] == nil {
		h.connections[c.userID] = make(map[*connection]bool)
	}
	h.connections[c.userID][c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.connections[c.userID]; ok && conns[c] {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.connections, c.userID)
		}
		close(c.send)
	}
}

// SendToUser pushes an event to every open connection of a user. Returns
// false when the user has no live connection.
func (h *Hub) SendToUser(userID string, payload any) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := h.connections[userID]
	if len(conns) == 0 {
		return false
	}
	for c := range conns {
		select {
		case c.send <- data:
		default:
			// Client too slow, skip
		}
	}
	return true
}

// ServeWS registers a new connection and blocks until it disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID string) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
		// Inbound frames are ignored: the feed is push-only. Sends go over
		// the HTTP API, which keeps one code path for persistence.
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
