package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type pushRequest struct {
	userID uuid.UUID
	data   []byte
}

// Hub owns the mapping from user id to that user's live connections.
// All membership mutation happens on the Run loop; a user may hold
// several connections at once (one per open tab), each of which must
// join its room explicitly after connecting.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	join       chan *Client
	push       chan pushRequest
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *Client),
		push:       make(chan pushRequest, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					h.leaveRoom(client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case client := <-h.join:
			h.mu.Lock()
			if !h.stopped && h.clients[client] {
				room, ok := h.rooms[client.userID]
				if !ok {
					room = make(map[*Client]bool)
					h.rooms[client.userID] = room
				}
				room[client] = true
			}
			h.mu.Unlock()
			client.sendRoomJoined()

		case req := <-h.push:
			h.mu.RLock()
			for client := range h.rooms[req.userID] {
				client.enqueue(req.data)
			}
			h.mu.RUnlock()
		}
	}
}

// leaveRoom must be called with h.mu held.
func (h *Hub) leaveRoom(client *Client) {
	room, ok := h.rooms[client.userID]
	if !ok {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.userID)
	}
}

// Stop shuts the hub down and blocks until Run has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}
	h.register <- client
}

// Unregister safely detaches a client, tolerating a hub that is mid
// shutdown.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Push delivers an event to every connection currently in the user's
// room. Delivery is at-most-once and best-effort: with no open
// connections the event is dropped, and Push never blocks the caller.
func (h *Hub) Push(userID uuid.UUID, event *Message) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal realtime event", zap.Error(err))
		return
	}

	select {
	case h.push <- pushRequest{userID: userID, data: data}:
	default:
		h.logger.Warn("realtime push queue full, dropping event",
			zap.String("userId", userID.String()))
	}
}

// ConnectionCount reports how many connections a user currently holds.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
