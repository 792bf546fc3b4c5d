// Package realtime relays live auction bids to the connections watching an
// auction. Membership lives in the transports; the relay only validates and
// stamps events.
package realtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	EventJoinAuction  = "join_auction"
	EventLeaveAuction = "leave_auction"
	EventPlaceBid     = "place_bid"
	EventNewBid       = "new_bid"
	EventError        = "auction_error"
)

var ErrInvalidPayload = errors.New("invalid payload")

// ID is an identifier clients may send either as a JSON string or a number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

type AuctionPayload struct {
	AuctionID ID `json:"auctionId"`
}

type PlaceBidPayload struct {
	AuctionID ID      `json:"auctionId"`
	Amount    float64 `json:"amount"`
	UserID    ID      `json:"userId"`
}

type BidEvent struct {
	Amount    float64   `json:"amount"`
	UserID    ID        `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// Member is one connection that can be put into rooms.
type Member interface {
	Join(room string)
	Leave(room string)
}

type Broadcaster interface {
	BroadcastToRoom(room, event string, payload any)
}

// Fanout sends every broadcast through each transport in turn.
type Fanout []Broadcaster

func (f Fanout) BroadcastToRoom(room, event string, payload any) {
	for _, b := range f {
		b.BroadcastToRoom(room, event, payload)
	}
}

type Relay struct {
	out Broadcaster
	now func() time.Time
}

func NewRelay(out Broadcaster) *Relay {
	return &Relay{out: out, now: time.Now}
}

// Room is the broadcast group for an auction.
func Room(auctionID ID) string {
	return "auction_" + string(auctionID)
}

func (r *Relay) Join(m Member, p AuctionPayload) error {
	if p.AuctionID == "" {
		return fmt.Errorf("%w: auctionId is required", ErrInvalidPayload)
	}
	m.Join(Room(p.AuctionID))
	return nil
}

func (r *Relay) Leave(m Member, p AuctionPayload) error {
	if p.AuctionID == "" {
		return fmt.Errorf("%w: auctionId is required", ErrInvalidPayload)
	}
	m.Leave(Room(p.AuctionID))
	return nil
}

// PlaceBid stamps the bid and broadcasts it to everyone in the auction room,
// including the bidder when it has joined.
func (r *Relay) PlaceBid(p PlaceBidPayload) (BidEvent, error) {
	switch {
	case p.AuctionID == "":
		return BidEvent{}, fmt.Errorf("%w: auctionId is required", ErrInvalidPayload)
	case p.Amount <= 0:
		return BidEvent{}, fmt.Errorf("%w: amount must be positive", ErrInvalidPayload)
	}
	ev := BidEvent{Amount: p.Amount, UserID: p.UserID, Timestamp: r.now().UTC()}
	r.out.BroadcastToRoom(Room(p.AuctionID), EventNewBid, ev)
	return ev, nil
}

type errorMessage struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}
