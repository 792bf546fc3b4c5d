package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 100
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Envelope is the frame exchanged over the plain websocket endpoint.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outgoing struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub tracks plain websocket connections and the auction rooms they joined.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
	rooms   map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		rooms:   make(map[string]map[*client]bool),
	}
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) Join(room string) {
	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if !c.hub.clients[c] {
		return
	}
	members, ok := c.hub.rooms[room]
	if !ok {
		members = make(map[*client]bool)
		c.hub.rooms[room] = members
	}
	members[c] = true
}

func (c *client) Leave(room string) {
	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	c.hub.leave(c, room)
}

func (h *Hub) leave(c *client, room string) {
	members := h.rooms[room]
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// BroadcastToRoom queues the event for every member of room. A member whose
// send buffer is full is disconnected rather than blocking the others.
func (h *Hub) BroadcastToRoom(room, event string, payload any) {
	message, err := json.Marshal(outgoing{Event: event, Data: payload})
	if err != nil {
		log.Printf("WebSocket marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[room] {
		select {
		case c.send <- message:
		default:
			log.Println("WebSocket client too slow, dropping:", c.conn.RemoteAddr())
			h.remove(c)
		}
	}
}

func (h *Hub) emit(c *client, event string, payload any) {
	message, err := json.Marshal(outgoing{Event: event, Data: payload})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	select {
	case c.send <- message:
	default:
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	h.remove(c)
	h.mu.Unlock()
}

// remove must be called with mu held.
func (h *Hub) remove(c *client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for room := range h.rooms {
		h.leave(c, room)
	}
	close(c.send)
}

// Handler upgrades the request and serves auction events until the client
// goes away.
func (h *Hub) Handler(relay *Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}

		c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
		h.register(c)
		log.Println("Client connected:", conn.RemoteAddr())

		go c.writeLoop()
		c.readLoop(relay)
	}
}

func (c *client) readLoop(relay *Relay) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
		log.Println("Client disconnected:", c.conn.RemoteAddr())
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.hub.emit(c, EventError, errorMessage{Message: "malformed message"})
			continue
		}
		if err := c.dispatch(relay, env); err != nil {
			c.hub.emit(c, EventError, errorMessage{Event: env.Event, Message: err.Error()})
		}
	}
}

func (c *client) dispatch(relay *Relay, env Envelope) error {
	switch env.Event {
	case EventJoinAuction, EventLeaveAuction:
		var p AuctionPayload
		if err := decode(env.Data, &p); err != nil {
			return err
		}
		if env.Event == EventJoinAuction {
			return relay.Join(c, p)
		}
		return relay.Leave(c, p)
	case EventPlaceBid:
		var p PlaceBidPayload
		if err := decode(env.Data, &p); err != nil {
			return err
		}
		_, err := relay.PlaceBid(p)
		return err
	}
	return fmt.Errorf("%w: unknown event %q", ErrInvalidPayload, env.Event)
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return ErrInvalidPayload
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ErrInvalidPayload
	}
	return nil
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
