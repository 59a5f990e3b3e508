package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Feed topics a client may subscribe to. Each maps to one live-updating
// collection; every write to the collection pushes a fresh full snapshot.
const (
	TopicChatMessages = "chatMessages"
	TopicEventNotices = "eventNotices"
	TopicComplaints   = "complaints"
	TopicProperties   = "properties"
)

// ValidTopic reports whether the topic names a known feed
func ValidTopic(topic string) bool {
	switch topic {
	case TopicChatMessages, TopicEventNotices, TopicComplaints, TopicProperties:
		return true
	default:
		return false
	}
}

// Message is the wire format for feed traffic in both directions
type Message struct {
	Type      string      `json:"type"`
	Topic     string      `json:"topic,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub manages all WebSocket connections and their topic subscriptions
type Hub struct {
	// Registered clients
	Clients map[*Client]bool

	// Topic membership
	Topics map[string]map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Topics:     make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				// Release every topic subscription held by this client
				for topic := range h.Topics {
					delete(h.Topics[topic], client)
				}
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%d", client.UserID)
		}
	}
}

// Subscribe adds a client to a topic
func (h *Hub) Subscribe(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Topics[topic] == nil {
		h.Topics[topic] = make(map[*Client]bool)
	}
	h.Topics[topic][client] = true
}

// Unsubscribe removes a client from a topic
func (h *Hub) Unsubscribe(client *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.Topics[topic], client)
}

// BroadcastSnapshot pushes a full collection snapshot to every subscriber of
// a topic. Updates are whole-list replaces, never partial diffs.
func (h *Hub) BroadcastSnapshot(topic string, data interface{}) {
	message := &Message{
		Type:      "snapshot",
		Topic:     topic,
		Data:      data,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling snapshot for %s: %v", topic, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.Topics[topic] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; the unregister path cleans it up
			log.Printf("⚠️ Dropping snapshot for user %d: send buffer full", client.UserID)
		}
	}
}

// SubscriberCount returns the number of clients on a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Topics[topic])
}
