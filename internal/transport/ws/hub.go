package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// MsgWelcome is the first message on every dashboard socket
const MsgWelcome MessageType = "welcome"

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one admin dashboard socket
type Connection struct {
	AdminID string
	Send    chan []byte
}

// Hub fans submission events out to connected admin dashboards
type Hub struct {
	admins map[*Connection]struct{}
	mu     sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a hub and starts its event loop
func NewHub() *Hub {
	h := &Hub{
		admins:     make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.admins[conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("Admin %s connected to live feed", conn.AdminID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.admins[conn]; ok {
				delete(h.admins, conn)
				close(conn.Send)
				log.Printf("Admin %s disconnected from live feed", conn.AdminID)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.admins {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.admins {
				close(conn.Send)
				delete(h.admins, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the hub and closes every connection's send channel
func (h *Hub) Close() {
	close(h.done)
}

// AdminCount returns the number of connected dashboards
func (h *Hub) AdminCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.admins)
}

// BroadcastToAdmins sends a message to every dashboard (implements service.Broadcaster).
// It never blocks the caller; events are dropped when the queue is full.
func (h *Hub) BroadcastToAdmins(msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		log.Printf("Broadcast %s dropped: %v", msgType, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("Broadcast %s dropped: queue full", msgType)
	}
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: raw})
}
