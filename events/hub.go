package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Topics carried by the hub. Each topic mirrors one table of the backing
// store; subscribers re-fetch on receipt rather than trusting the payload
// as the sole source of truth.
const (
	TopicOrders = "orders"
	TopicChat   = "chat"
)

// Event types published on order and chat mutations.
const (
	TypeOrderCreated = "order.created"
	TypeOrderUpdated = "order.updated"
	TypeChatMessage  = "chat.message"
)

// Event is one change notification.
type Event struct {
	Topic     string      `json:"topic"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}

// Client is one subscriber. Send is buffered; a client that cannot keep up
// loses events rather than blocking the publisher.
type Client struct {
	ID    string
	Topic string
	Send  chan Event
}

// Hub fans change events out to current subscribers. Delivery is
// best-effort and at-least-once from the consumer's point of view.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Subscribe registers a new subscriber for a topic and returns its client.
func (h *Hub) Subscribe(topic string) *Client {
	client := &Client{
		ID:    uuid.NewString(),
		Topic: topic,
		Send:  make(chan Event, 16),
	}
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	return client
}

// Unsubscribe tears down a subscription. It has no side effects on the
// entities whose changes were being streamed.
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

// Publish delivers an event to every subscriber of its topic. Slow
// subscribers are skipped.
func (h *Hub) Publish(event Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.Topic != event.Topic {
			continue
		}
		select {
		case client.Send <- event:
		default:
			log.WithFields(log.Fields{"client": client.ID, "topic": event.Topic}).
				Warn("dropping event for slow subscriber")
		}
	}
}

// SubscriberCount returns the number of current subscribers for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, client := range h.clients {
		if client.Topic == topic {
			n++
		}
	}
	return n
}
