package websocket

import (
	"context"
	"encoding/json"
	"time"

	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// How often the leaderboard version is polled. Clients refetch the
	// leaderboard only when the version changes.
	defaultPollInterval = 2 * time.Second

	// MessageTypeVersion tags version notifications
	MessageTypeVersion = "LEADERBOARD_VERSION"
)

// VersionSource reports the current leaderboard snapshot version
type VersionSource interface {
	Version(ctx context.Context) (int64, error)
}

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts version changes to them.
// The clients map is owned by the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}

	source       VersionSource
	pollInterval time.Duration
	lastVersion  int64
	log          *logger.Logger
}

// VersionUpdate is the message pushed to clients
type VersionUpdate struct {
	Type    string `json:"type"`
	Version int64  `json:"version"`
}

// NewHub creates a new WebSocket hub
func NewHub(source VersionSource) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		count:        make(chan chan int),
		done:         make(chan struct{}),
		source:       source,
		pollInterval: defaultPollInterval,
		log:          logger.Component("websocket"),
	}
}

// Run serves registrations and polls for version changes until ctx is done
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	if v, err := h.source.Version(ctx); err == nil {
		h.lastVersion = v
	}

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			observability.SetWebsocketClients(len(h.clients))
			h.log.WithField("clients", len(h.clients)).Debug("Client connected")
			h.sendTo(client, h.lastVersion)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			observability.SetWebsocketClients(len(h.clients))
			h.log.WithField("clients", len(h.clients)).Debug("Client disconnected")

		case reply := <-h.count:
			reply <- len(h.clients)

		case <-ticker.C:
			h.checkAndBroadcast(ctx)

		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			observability.SetWebsocketClients(0)
			return
		}
	}
}

func (h *Hub) checkAndBroadcast(ctx context.Context) {
	version, err := h.source.Version(ctx)
	if err != nil {
		h.log.WithError(err).Warn("Failed to read leaderboard version")
		return
	}
	if version == h.lastVersion {
		return
	}
	h.lastVersion = version

	for client := range h.clients {
		h.sendTo(client, version)
	}
}

// sendTo never blocks; a client with a full buffer misses this update and
// catches up on the next one
func (h *Hub) sendTo(client *Client, version int64) {
	message, err := json.Marshal(VersionUpdate{Type: MessageTypeVersion, Version: version})
	if err != nil {
		h.log.WithError(err).Error("Failed to encode version update")
		return
	}
	select {
	case client.send <- message:
	default:
		h.log.Warn("Client send buffer full, skipping update")
	}
}

// ClientCount returns the current number of connected clients. It must not
// be called after Run has returned.
func (h *Hub) ClientCount() int {
	reply := make(chan int)
	h.count <- reply
	return <-reply
}

// readPump drains the connection until the peer goes away; client messages are ignored
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("WebSocket unexpected close")
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ServeWS registers a connection with the hub and blocks until it closes
func ServeWS(hub *Hub, conn *websocket.Conn) {
	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 16),
	}

	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
