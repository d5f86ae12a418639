package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// ClientMessage is sent by subscribers to narrow or widen the event types they receive
type ClientMessage struct {
	Type      string `json:"type"` // subscribe, unsubscribe or ping
	EventType string `json:"event_type,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	filter map[string]struct{} // empty means every event type
}

func (c *client) wants(eventType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.filter) == 0 {
		return true
	}
	_, ok := c.filter[eventType]
	return ok
}

// Hub tracks websocket subscribers and fans events out to them.
// A subscriber that falls behind is disconnected rather than blocking Publish.
type Hub struct {
	upgrader websocket.Upgrader
	log      *logrus.Entry

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub. allowOrigin may be nil to accept same-origin requests only.
func NewHub(allowOrigin func(r *http.Request) bool, log *logrus.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log.WithField("component", "events"),
		clients:  make(map[*client]struct{}),
	}
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and serves the subscriber until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("Websocket upgrade failed")
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		filter: make(map[string]struct{}),
	}
	if !h.add(c) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.UpdateEventSubscribers(float64(count))
	h.log.WithField("subscribers", count).Debug("Subscriber connected")
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	count := len(h.clients)
	h.mu.Unlock()

	metrics.UpdateEventSubscribers(float64(count))
	h.log.WithField("subscribers", count).Debug("Subscriber disconnected")
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "subscribe":
			c.mu.Lock()
			c.filter[msg.EventType] = struct{}{}
			c.mu.Unlock()
		case "unsubscribe":
			c.mu.Lock()
			delete(c.filter, msg.EventType)
			c.mu.Unlock()
		case "ping":
			h.enqueue(c, []byte(`{"type":"pong"}`))
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue hands msg to the client's writer, dropping the client when its buffer is full
func (h *Hub) enqueue(c *client, msg []byte) {
	h.mu.RLock()
	_, live := h.clients[c]
	if live {
		select {
		case c.send <- msg:
			h.mu.RUnlock()
			return
		default:
		}
	}
	h.mu.RUnlock()

	if live {
		h.log.Warn("Subscriber too slow, disconnecting")
		h.remove(c)
	}
}

// Publish implements Publisher
func (h *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).WithField("event", event.Type).Error("Failed to encode event")
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if c.wants(event.Type) {
			h.enqueue(c, payload)
		}
	}
	metrics.RecordEventPublished(event.Type)
}

// Close disconnects every subscriber and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}
