package realtime

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

const namespace = "/"

type socketIOBroadcaster struct {
	server *socketio.Server
}

func (b socketIOBroadcaster) BroadcastToRoom(room, event string, payload any) {
	b.server.BroadcastToRoom(namespace, room, event, payload)
}

// NewSocketIO builds the socket.io server and a relay whose broadcasts reach
// both its rooms and those of any extra transports. The caller runs Serve
// and Close on the returned server.
func NewSocketIO(extra ...Broadcaster) (*socketio.Server, *Relay) {
	server := socketio.NewServer(nil)
	relay := NewRelay(append(Fanout{socketIOBroadcaster{server}}, extra...))

	server.OnConnect(namespace, func(s socketio.Conn) error {
		log.Println("socket.io client connected:", s.ID())
		return nil
	})

	server.OnEvent(namespace, EventJoinAuction, func(s socketio.Conn, p AuctionPayload) {
		if err := relay.Join(s, p); err != nil {
			s.Emit(EventError, errorMessage{Event: EventJoinAuction, Message: err.Error()})
		}
	})

	server.OnEvent(namespace, EventLeaveAuction, func(s socketio.Conn, p AuctionPayload) {
		if err := relay.Leave(s, p); err != nil {
			s.Emit(EventError, errorMessage{Event: EventLeaveAuction, Message: err.Error()})
		}
	})

	server.OnEvent(namespace, EventPlaceBid, func(s socketio.Conn, p PlaceBidPayload) {
		if _, err := relay.PlaceBid(p); err != nil {
			s.Emit(EventError, errorMessage{Event: EventPlaceBid, Message: err.Error()})
		}
	})

	server.OnError(namespace, func(s socketio.Conn, err error) {
		log.Printf("socket.io error: %v", err)
	})

	server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		log.Println("socket.io client disconnected:", s.ID(), reason)
	})

	return server, relay
}
