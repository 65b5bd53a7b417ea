package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// MsgViewers reports the number of open dashboards. Submission, analytics
// and deletion events come from the services as plain strings.
const MsgViewers MessageType = "viewers"

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans form events out to the owner dashboards watching each form
type Hub struct {
	// formID -> open dashboards
	formConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID  string
	OwnerID string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message to broadcast. Close drops every dashboard of
// the form once the queued messages before it have been delivered.
type BroadcastMessage struct {
	FormID  string
	Message *Message
	Close   bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		formConns:  make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.formConns[conn.FormID] == nil {
				h.formConns[conn.FormID] = make(map[*Connection]struct{})
			}
			h.formConns[conn.FormID][conn] = struct{}{}
			log.Printf("Owner %s watching form %s", conn.OwnerID, conn.FormID)
			h.notifyViewers(conn.FormID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.formConns[conn.FormID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Owner %s stopped watching form %s", conn.OwnerID, conn.FormID)
					if len(conns) == 0 {
						delete(h.formConns, conn.FormID)
					} else {
						h.notifyViewers(conn.FormID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			if msg.Close {
				h.closeForm(msg.FormID)
				continue
			}
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.formConns[msg.FormID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToForm sends a message to every dashboard of a form (implements service.Broadcaster)
func (h *Hub) BroadcastToForm(formID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode %s for form %s: %v", msgType, formID, err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectForm closes every dashboard of a form (implements service.Broadcaster)
func (h *Hub) DisconnectForm(formID string) {
	h.broadcast <- &BroadcastMessage{FormID: formID, Close: true}
}

// Viewers reports how many dashboards are watching a form
func (h *Hub) Viewers(formID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.formConns[formID])
}

func (h *Hub) closeForm(formID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.formConns[formID]
	for conn := range conns {
		close(conn.Send)
	}
	delete(h.formConns, formID)
	if len(conns) > 0 {
		log.Printf("Closed %d dashboards of form %s", len(conns), formID)
	}
}

// notifyViewers tells a form's dashboards how many are open; caller holds mu
func (h *Hub) notifyViewers(formID string) {
	conns := h.formConns[formID]
	payload, _ := json.Marshal(map[string]int{"count": len(conns)})
	data, _ := json.Marshal(&Message{Type: MsgViewers, Payload: payload})
	for conn := range conns {
		select {
		case conn.Send <- data:
		default:
		}
	}
}
