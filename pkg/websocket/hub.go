package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gopet/pkg/logger"
)

const (
	// AdminRoom receives every ride and driver update.
	AdminRoom = "admin"

	MessageTypeWelcome       = "welcome"
	MessageTypeRideUpdated   = "ride_updated"
	MessageTypeChatMessage   = "chat_message"
	MessageTypeDriverUpdated = "driver_updated"
)

// RideRoom names the room that follows a single ride.
func RideRoom(rideID string) string {
	return "ride_" + rideID
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
	done       chan struct{}
	logger     *logger.Logger
}

type Message struct {
	Type      string      `json:"type"`
	Room      string      `json:"room,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     log.WithField("component", "websocket_hub"),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mutex.Lock()
		for client := range h.clients {
			h.removeClient(client)
		}
		h.mutex.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.mutex.Lock()
			h.removeClient(client)
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.sendToRoom(message)
		}
	}
}

// Publish queues a message for every client in room without blocking. The
// message is dropped when the hub has stopped or its queue is full.
func (h *Hub) Publish(room, messageType string, data interface{}) {
	message := &Message{
		Type:      messageType,
		Room:      room,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	select {
	case h.broadcast <- message:
	case <-h.done:
	default:
		h.logger.WithFields(map[string]interface{}{
			"room": room,
			"type": messageType,
		}).Warn("Dropping websocket message, hub is busy")
	}
}

// ClientCount returns the number of clients in room.
func (h *Hub) ClientCount(room string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	h.clients[client] = true
	for room := range client.rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]bool)
		}
		h.rooms[room][client] = true
	}
	h.mutex.Unlock()

	h.logger.WithField("rooms", client.roomList()).Debug("Client registered")

	h.sendToClient(client, &Message{
		Type:      MessageTypeWelcome,
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"rooms": client.roomList(),
		},
	})
}

// removeClient must be called with the write lock held.
func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	for room := range client.rooms {
		if members, exists := h.rooms[room]; exists {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

func (h *Hub) sendToRoom(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode websocket message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.rooms[message.Room] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop it rather than stall the hub.
			h.removeClient(client)
		}
	}
}

func (h *Hub) sendToClient(client *Client, message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
		h.removeClient(client)
	}
}
