package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type EventType string

const (
	TypePing    EventType = "ping"
	TypePong    EventType = "pong"
	TypeMessage EventType = "message"
	TypeMatch   EventType = "match"
	TypeError   EventType = "error"
)

type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub tracks live connections keyed by user so chat messages and new matches
// can be pushed to whichever devices a participant has open. Chat in
// ProjectHunt is pairwise, so there is no room bookkeeping: delivery is always
// addressed to a user id.
type Hub struct {
	clients     map[uuid.UUID]*Client
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	log zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	h.log.Debug().Str("client", client.ID.String()).Str("user", client.UserID.String()).Msg("ws client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		h.log.Debug().Str("client", client.ID.String()).Str("user", client.UserID.String()).Msg("ws client unregistered")
	}
}

// SendToUser delivers an encoded event to every open connection of a user.
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				h.log.Warn().Str("client", client.ID.String()).Msg("ws send channel full")
			}
		}
	}
}

// NotifyUser marshals data into an event and pushes it to the user. Offline
// users are simply skipped; the store is authoritative and they will see the
// rows on their next fetch.
func (h *Hub) NotifyUser(userID uuid.UUID, eventType EventType, data interface{}) {
	event := Event{Type: eventType, Timestamp: time.Now()}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			h.log.Error().Err(err).Msg("ws event marshal failed")
			return
		}
		event.Data = raw
	}

	encoded, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("ws event marshal failed")
		return
	}

	h.SendToUser(userID, encoded)
}

func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.userClients[userID]
	return ok
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event := Event{Type: TypePing, Timestamp: time.Now()}
	if data, err := json.Marshal(event); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
