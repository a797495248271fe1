package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/gridpilot/bessim/internal/eventbus"
)

// Client represents one connected websocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send <-chan []byte
}

// Hub fans broadcast messages out to every connected client. Each client
// reads from its own subscription channel; a client that cannot keep up
// drops messages instead of stalling the run.
type Hub struct {
	bus *eventbus.TypedBus[[]byte]

	mu    sync.Mutex
	count int
}

func NewHub() *Hub {
	return &Hub{bus: eventbus.NewTyped[[]byte]()}
}

func (h *Hub) Register(c *Client) {
	c.send = h.bus.Subscribe()
	h.mu.Lock()
	h.count++
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.bus.Unsubscribe(c.send)
	h.mu.Lock()
	if h.count > 0 {
		h.count--
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg []byte) {
	h.bus.Publish(msg)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Close disconnects every client by closing their send channels.
func (h *Hub) Close() {
	h.bus.Close()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
