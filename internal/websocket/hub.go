package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries feed messages between instances.
const ClusterChannel = "civic_bridge_activity"

const messageTypeActivity = "activity"

type Hub struct {
	// Registered clients: UserID -> connections (multi-device)
	clients map[uuid.UUID][]*subscriber

	register   chan *subscriber
	unregister chan *subscriber

	mu sync.RWMutex

	// Redis fans messages out to every instance. Without it delivery is local.
	rdb *redis.Client

	logger logger.ILogger
}

type clusterMessage struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *subscriber),
		unregister: make(chan *subscriber),
		clients:    make(map[uuid.UUID][]*subscriber),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns registration until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = append(h.clients[client.userID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Feed attached", map[string]interface{}{"user_id": client.userID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// remove closes client.send exactly once: only the call that finds the
// client in the map closes it.
func (h *Hub) remove(client *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.userID]
	for i, c := range clients {
		if c != client {
			continue
		}
		h.clients[client.userID] = append(clients[:i], clients[i+1:]...)
		close(client.send)
		if len(h.clients[client.userID]) == 0 {
			delete(h.clients, client.userID)
			h.logger.Info("Hub", "Last feed detached", map[string]interface{}{"user_id": client.userID})
		}
		return
	}
}

// SendActivity delivers a new activity entry to every feed of userID.
func (h *Hub) SendActivity(userID uuid.UUID, activity dto.ActivityLogResponse) {
	data, err := json.Marshal(map[string]interface{}{
		"type": messageTypeActivity,
		"data": activity,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode activity", map[string]interface{}{"error": err.Error()})
		return
	}

	if h.rdb == nil {
		h.deliver(userID, data)
		return
	}

	// With Redis, local clients receive the message through the subscription
	// like everyone else so it is delivered once.
	payload, _ := json.Marshal(clusterMessage{TargetUserID: userID.String(), Message: data})
	if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed, delivering locally", map[string]interface{}{"error": err.Error()})
		h.deliver(userID, data)
	}
}

// Connected reports how many feeds userID has open on this instance.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	// Sends never block, and holding the read lock keeps remove from closing
	// a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("Hub", "Feed buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			go func(s *subscriber) { h.unregister <- s }(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
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
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			uid, err := uuid.Parse(payload.TargetUserID)
			if err != nil {
				continue
			}
			h.deliver(uid, payload.Message)
		}
	}
}
