package live

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tauzero/tbamon/telemetry"
)

// Server routes a Hub's verdict traffic: /metrics (delegating to a
// telemetry.Recorder), /verdict (the last published Message as JSON),
// and /stream (a websocket upgrade pushing every subsequent Message).
type Server struct {
	hub *Hub
	rec *telemetry.Recorder
}

// NewServer builds a Server over hub. rec may be nil, in which case
// /metrics is not registered.
func NewServer(hub *Hub, rec *telemetry.Recorder) *Server {
	return &Server{hub: hub, rec: rec}
}

// Handler returns the http.Handler for this server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.rec != nil {
		if h := s.rec.Handler(); h != nil {
			mux.Handle("/metrics", h)
		}
	}
	mux.HandleFunc("/verdict", s.serveVerdict)
	mux.HandleFunc("/stream", s.serveStream)
	return mux
}

func (s *Server) serveVerdict(w http.ResponseWriter, r *http.Request) {
	msg, ok := s.hub.lastMessage()
	if !ok {
		http.Error(w, "no verdict published yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(msg)
}

func (s *Server) serveStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	c := &client{conn: conn, send: make(chan Message, 8)}
	s.hub.register(c)

	if msg, ok := s.hub.lastMessage(); ok {
		c.send <- msg
	}

	go c.readPump()
	c.writePump(s.hub)
}

// readPump drains control frames (pong replies) from the client. Per
// gorilla/websocket's documented contract, something must keep reading
// for SetPongHandler callbacks to fire; any read error ends the
// connection.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pushes published messages and periodic pings to the client,
// matching niceyeti-tabular's publishEleUpdates write-deadline and
// ping-period structure.
func (c *client) writePump(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(c)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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
