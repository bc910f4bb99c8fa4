package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the JSON payload pushed to /stream subscribers and served
// by /verdict.
type Message struct {
	MonitorID string `json:"monitor_id"`
	Verdict   string `json:"verdict"`
	Failed    bool   `json:"failed"`
}

// Hub fans out verdict messages to every connected /stream client.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    Message
	hasLast bool
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// NewHub returns an empty Hub ready to accept clients and Publish calls.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Publish fans a verdict message out to every connected client and
// remembers it as the value /verdict returns. Slow clients have the
// update dropped rather than blocking Publish.
func (h *Hub) Publish(msg Message) {
	h.mu.Lock()
	h.last = msg
	h.hasLast = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) lastMessage() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}
