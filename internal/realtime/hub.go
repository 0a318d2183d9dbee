// Package realtime pushes notification events to connected websocket
// clients.
package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/erazemk/reviewit/internal/metrics"
	"github.com/erazemk/reviewit/internal/model"
)

// MessageTypeNotification is the envelope type of a pushed notification.
const MessageTypeNotification = "notification"

// Message is the envelope written to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type delivery struct {
	userID  int64
	payload []byte
}

// Hub tracks open connections per user and fans messages out to them.
type Hub struct {
	mu       sync.RWMutex
	clients  map[int64]map[*Client]struct{}
	register chan *Client
	leave    chan *Client
	outbox   chan delivery
	done     chan struct{}
	upgrader websocket.Upgrader
}

// NewHub creates a hub. checkOrigin decides which browser origins may open a
// connection; nil accepts same-origin requests only.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		clients:  make(map[int64]map[*Client]struct{}),
		register: make(chan *Client),
		leave:    make(chan *Client),
		outbox:   make(chan delivery, 256),
		done:     make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Run processes registrations and deliveries until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			slog.Info("realtime hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.mu.Unlock()
			metrics.WSConnections.Inc()
			slog.Debug("websocket client connected", "user_id", c.userID)

		case c := <-h.leave:
			h.remove(c)

		case d := <-h.outbox:
			h.deliver(d)
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	metrics.WSConnections.Dec()
	slog.Debug("websocket client disconnected", "user_id", c.userID)
}

func (h *Hub) deliver(d delivery) {
	h.mu.RLock()
	var slow []*Client
	for c := range h.clients[d.userID] {
		select {
		case c.send <- d.payload:
			metrics.WSMessagesSent.Inc()
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		slog.Warn("dropping slow websocket client", "user_id", c.userID)
		h.remove(c)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
			metrics.WSConnections.Dec()
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.leave <- c:
	case <-h.done:
	}
}

// Connected returns the number of open connections for a user.
func (h *Hub) Connected(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// PublishNotification queues a notification for the recipient's connections.
// It never blocks; when the queue is full the event is dropped.
func (h *Hub) PublishNotification(recipientID int64, n model.NotificationView) {
	payload, err := json.Marshal(Message{Type: MessageTypeNotification, Data: n})
	if err != nil {
		slog.Error("encoding notification message", "error", err)
		return
	}

	select {
	case h.outbox <- delivery{userID: recipientID, payload: payload}:
	default:
		slog.Warn("realtime outbox full, dropping notification", "user_id", recipientID, "id", n.ID)
	}
}

// ServeWS upgrades the request and attaches the connection to userID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := newClient(h, conn, userID)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	case <-r.Context().Done():
		_ = conn.Close()
		return
	}
	c.start()
}
