package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoomsChannel carries room broadcasts between instances.
const RoomsChannel = "socket_rooms"

type Hub struct {
	// id tells this instance's redis publications apart from the others.
	id string

	clients map[*Client]bool

	// rooms maps a conversation id to the clients that joined it.
	rooms map[string]map[*Client]bool

	mu sync.RWMutex

	// Redis connection for cross-instance communication, nil when running alone.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:      uuid.NewString(),
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
		rdb:     rdb,
		logger:  log,
	}
}

// Run relays room broadcasts from other instances until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		<-ctx.Done()
		return
	}
	h.subscribeToRedis(ctx)
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	metrics.SocketConnections.Inc()
	h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ID})
}

// Unregister removes the client from every room and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for room, members := range h.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(client.Send)
	h.mu.Unlock()

	metrics.SocketConnections.Dec()
	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID})
}

// Join adds the client to a room. Joining twice is harmless.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[client] {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[client] = true
}

// RoomSize returns the number of local clients in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom sends a frame to every local member of the room and to the other instances.
func (h *Hub) BroadcastToRoom(room string, frame []byte) {
	h.sendToRoom(room, frame)

	if h.rdb != nil {
		payload, err := json.Marshal(roomMessage{Origin: h.id, Room: room, Message: frame})
		if err != nil {
			h.logger.Warn("Hub", "Failed to encode room broadcast", map[string]interface{}{"room": room, "error": err.Error()})
			return
		}
		if err := h.rdb.Publish(context.Background(), RoomsChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish room broadcast", map[string]interface{}{"room": room, "error": err.Error()})
		}
	}
}

func (h *Hub) sendToRoom(room string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		h.deliverLocked(client, frame)
	}
}

func (h *Hub) deliver(client *Client, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.deliverLocked(client, frame)
}

// deliverLocked must be called with mu held. A client whose buffer is full loses the frame.
func (h *Hub) deliverLocked(client *Client, frame []byte) {
	if !h.clients[client] {
		return
	}
	select {
	case client.Send <- frame:
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping frame", map[string]interface{}{"client_id": client.ID})
	}
}

type roomMessage struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Message json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RoomsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload roomMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.id {
				continue
			}
			h.sendToRoom(payload.Room, payload.Message)
		}
	}
}
