package websocket

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tenacity/erp/internal/app/models"
)

// Hub tracks the open chat sessions so they can be counted and closed on shutdown.
// Sessions never see each other's messages.
type Hub struct {
	// Registered clients organized by role
	clients map[models.Role]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Closed when Run returns
	done chan struct{}

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[models.Role]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles client registrations until ctx is cancelled, then closes every session
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Register adds client; it returns false once the hub has stopped
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client; it is a no-op once the hub has stopped
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.role]; !ok {
		h.clients[client.role] = make(map[*Client]bool)
	}
	h.clients[client.role][client] = true

	h.logger.Info().
		Str("role", string(client.role)).
		Str("addr", client.remoteAddr()).
		Msg("Chat session opened")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.role][client]; !ok {
		return
	}
	delete(h.clients[client.role], client)
	client.closeSend()
	if len(h.clients[client.role]) == 0 {
		delete(h.clients, client.role)
	}

	h.logger.Info().
		Str("role", string(client.role)).
		Int("messages", len(client.conversation.Transcript())).
		Msg("Chat session closed")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for role, clients := range h.clients {
		for client := range clients {
			client.closeSend()
		}
		delete(h.clients, role)
	}
	h.logger.Info().Msg("All chat sessions closed")
}

// Count returns the number of open sessions, optionally for one role only
func (h *Hub) Count(roles ...models.Role) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(roles) == 0 {
		n := 0
		for _, clients := range h.clients {
			n += len(clients)
		}
		return n
	}
	n := 0
	for _, r := range roles {
		n += len(h.clients[r])
	}
	return n
}
