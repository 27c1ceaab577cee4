package notifier

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"guestcal/pkg/kafka"
	"guestcal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1024
)

// connection is one subscribed calendar client.
type connection struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans the change signal out to every connected websocket client.
// Clients receive the generic event and re-fetch whatever they display;
// there is no per-client subscription state.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	log         *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

// Broadcast pushes the event to every connected client. Slow clients
// are skipped rather than blocking the rest.
func (h *Hub) Broadcast(event kafka.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// ServeWS registers the connection and pumps it until disconnect.
func (h *Hub) ServeWS(conn *websocket.Conn) {
	c := &connection{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 16),
	}

	h.register(c)
	h.log.Debug("Calendar client connected", "connection_id", c.id)

	go h.writePump(c)
	h.readPump(c)
}

// Shutdown closes every client connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.connections {
		c.conn.Close()
		delete(h.connections, id)
		close(c.send)
	}
}

// readPump drains the connection. Clients never send meaningful data;
// reading is only needed to process control frames and notice closes.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.log.Debug("Calendar client disconnected", "connection_id", c.id)
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
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
