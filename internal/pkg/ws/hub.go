package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients, keyed by user ID, and pushes
// server-side events to them. A user may hold several connections (phone and
// browser at once); an event addressed to a user reaches all of them.
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is a server push sent over the socket.
type Event struct {
	// Type of event: "message", "notification"
	Type string `json:"type"`

	// Payload carries the same DTO the REST endpoint would return
	Payload interface{} `json:"payload"`

	// Timestamp when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With().Str("component", "ws").Logger(),
	}
}

// Run handles client registrations until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Str("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID).
		Msg("Client unregistered")
}

// SendToUser pushes an event to every open connection of one user. Users
// without a connection are silently skipped; the data is already persisted
// and will be fetched over REST.
func (h *Hub) SendToUser(userID string, event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", userID).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			// Send buffer full; the client is slow or gone. Drop the
			// event, the write pump will tear the connection down.
			h.logger.Warn().Str("userID", userID).Msg("Dropped event for slow client")
		}
	}
}

// SendToUsers pushes the same event to several users.
func (h *Hub) SendToUsers(userIDs []string, event *Event) {
	for _, id := range userIDs {
		h.SendToUser(id, event)
	}
}

// ConnectionCount returns how many connections one user currently holds.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
