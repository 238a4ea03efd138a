// Package websocket provides a best-effort event stream for dashboard
// clients: waitlist signups and forwarded emails are broadcast to
// subscribers as they happen. Delivery is never guaranteed and never
// blocks request handling.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSubscribe      MessageType = "subscribe"
	MessageTypeUnsubscribe    MessageType = "unsubscribe"
	MessageTypeEvent          MessageType = "event"
	MessageTypeError          MessageType = "error"
)

// Event topics clients can subscribe to
const (
	TopicWaitlistJoined = "waitlist.joined"
	TopicEmailForwarded = "email.forwarded"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    MessageType `json:"type"`
	Topic   string      `json:"topic,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WaitlistJoinedPayload is broadcast on each new signup. The email is
// masked before it reaches the hub.
type WaitlistJoinedPayload struct {
	Email    string `json:"email"`
	Position int    `json:"position"`
	JoinedAt string `json:"joined_at"`
}

// EmailForwardedPayload is broadcast after each successful forward.
type EmailForwardedPayload struct {
	EmailID     string `json:"email_id"`
	ForwardedTo string `json:"forwarded_to"`
	Subject     string `json:"subject,omitempty"`
	ForwardedAt string `json:"forwarded_at"`
}

// Hub maintains the set of active clients and broadcasts events
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Topic subscriptions: topic -> set of clients
	subscriptions map[string]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Subscribe to a topic
	subscribe chan *subscriptionRequest

	// Unsubscribe from a topic
	unsubscribeTopic chan *subscriptionRequest

	// Broadcast to topic subscribers
	broadcast chan *broadcastMessage

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Logger
	logger *slog.Logger
}

type subscriptionRequest struct {
	client *Client
	topic  string
}

type broadcastMessage struct {
	topic   string
	message []byte
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:          make(map[*Client]bool),
		subscriptions:    make(map[string]map[*Client]bool),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		subscribe:        make(chan *subscriptionRequest),
		unsubscribeTopic: make(chan *subscriptionRequest),
		broadcast:        make(chan *broadcastMessage, 256),
		logger:           logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client registered")
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				for topic, subscribers := range h.subscriptions {
					delete(subscribers, client)
					if len(subscribers) == 0 {
						delete(h.subscriptions, topic)
					}
				}
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client unregistered")
			}

		case req := <-h.subscribe:
			h.mu.Lock()
			if h.subscriptions[req.topic] == nil {
				h.subscriptions[req.topic] = make(map[*Client]bool)
			}
			h.subscriptions[req.topic][req.client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client subscribed", slog.String("topic", req.topic))
			}

		case req := <-h.unsubscribeTopic:
			h.mu.Lock()
			if subscribers, ok := h.subscriptions[req.topic]; ok {
				delete(subscribers, req.client)
				if len(subscribers) == 0 {
					delete(h.subscriptions, req.topic)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			subscribers := h.subscriptions[msg.topic]
			for client := range subscribers {
				select {
				case client.send <- msg.message:
				default:
					// Slow client, drop the event
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe subscribes a client to a topic
func (h *Hub) Subscribe(client *Client, topic string) {
	h.subscribe <- &subscriptionRequest{client: client, topic: topic}
}

// UnsubscribeTopic removes a client's topic subscription
func (h *Hub) UnsubscribeTopic(client *Client, topic string) {
	h.unsubscribeTopic <- &subscriptionRequest{client: client, topic: topic}
}

// BroadcastEvent sends an event payload to all subscribers of a topic.
// Marshal errors are logged and dropped; callers never see them.
func (h *Hub) BroadcastEvent(topic string, payload interface{}) {
	msg := WSMessage{
		Type:    MessageTypeEvent,
		Topic:   topic,
		Payload: payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to marshal broadcast event", slog.Any("error", err))
		}
		return
	}

	select {
	case h.broadcast <- &broadcastMessage{topic: topic, message: data}:
	default:
		if h.logger != nil {
			h.logger.Warn("broadcast channel full, dropping event", slog.String("topic", topic))
		}
	}
}

// SubscriberCount returns the number of clients subscribed to a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[topic])
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
