package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"monkframe.backend/pkg/logger"
)

// AdminRoom is the broadcast channel consumed by administrator sessions
const AdminRoom = "admin"

// Subscriber abstracts a streaming client.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Event is the wire frame pushed to clients
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

// Hub manages socket subscriptions by room. A room is either a user ID or
// the admin broadcast channel. A client that joined several rooms still
// receives an all-client broadcast once.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[Subscriber]struct{}
	clients  map[Subscriber][]string
	register chan subscription
	unreg    chan Subscriber
	emit     chan message
	emitAll  chan []byte
	done     chan struct{}
	once     sync.Once
}

// message couples payload with its target room.
type message struct {
	room    string
	payload []byte
}

// subscription defines a register request.
type subscription struct {
	rooms  []string
	client Subscriber
}

// NewHub creates an initialized Hub.
func NewHub() *Hub {
	h := &Hub{
		rooms:    make(map[string]map[Subscriber]struct{}),
		clients:  make(map[Subscriber][]string),
		register: make(chan subscription),
		unreg:    make(chan Subscriber),
		emit:     make(chan message),
		emitAll:  make(chan []byte),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				c.Close()
			}
			h.rooms = make(map[string]map[Subscriber]struct{})
			h.clients = make(map[Subscriber][]string)
			h.mu.Unlock()
			return
		case sub := <-h.register:
			h.mu.Lock()
			h.clients[sub.client] = sub.rooms
			for _, room := range sub.rooms {
				if _, ok := h.rooms[room]; !ok {
					h.rooms[room] = make(map[Subscriber]struct{})
				}
				h.rooms[room][sub.client] = struct{}{}
			}
			h.mu.Unlock()
		case client := <-h.unreg:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()
		case msg := <-h.emit:
			h.mu.Lock()
			if clients, ok := h.rooms[msg.room]; ok {
				for c := range clients {
					if err := c.Send(msg.payload); err != nil {
						c.Close()
						h.drop(c)
					}
				}
			}
			h.mu.Unlock()
		case payload := <-h.emitAll:
			h.mu.Lock()
			for c := range h.clients {
				if err := c.Send(payload); err != nil {
					c.Close()
					h.drop(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop removes a client from every room. Callers hold h.mu.
func (h *Hub) drop(client Subscriber) {
	for _, room := range h.clients[client] {
		if clients, ok := h.rooms[room]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	delete(h.clients, client)
}

// Register adds an authenticated client to its rooms.
func (h *Hub) Register(client Subscriber, rooms ...string) {
	select {
	case h.register <- subscription{rooms: rooms, client: client}:
	case <-h.done:
	}
}

// Unregister removes a client from every room it joined.
func (h *Hub) Unregister(client Subscriber) {
	select {
	case h.unreg <- client:
	case <-h.done:
	}
}

// ToRoom pushes an event to every client in a room. A room with no
// connected client is the expected common case and not an error.
func (h *Hub) ToRoom(room string, event string, data interface{}) {
	payload, err := json.Marshal(Event{Name: event, Data: data})
	if err != nil {
		logger.Error(context.Background(), "Failed to encode socket event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.emit <- message{room: room, payload: payload}:
	case <-h.done:
	}
}

// ToAll pushes an event to every connected client once.
func (h *Hub) ToAll(event string, data interface{}) {
	payload, err := json.Marshal(Event{Name: event, Data: data})
	if err != nil {
		logger.Error(context.Background(), "Failed to encode socket event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.emitAll <- payload:
	case <-h.done:
	}
}

// RoomSize reports the number of clients in a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Close shuts the hub down and disconnects every client.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
}
