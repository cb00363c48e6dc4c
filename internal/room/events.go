package room

import "github.com/lamyinia/mahjong-room-server/internal/protocol"

// ClientSender is the narrow interface a room needs from a connection:
// push an encoded frame, tear the connection down, or record which
// seat the room just assigned it (so later client frames from the
// same socket carry the right seat index). Concrete websocket wiring
// lives in internal/transport; this package never imports it, keeping
// events on this thread free of I/O.
type ClientSender interface {
	Send(frame []byte)
	Close()
	AssignSeat(seat int)
}

// GameEvent is anything posted onto a room's single event thread:
// client messages, timer firings, and connection lifecycle changes all
// arrive this way, in arrival order.
type GameEvent interface {
	isGameEvent()
}

type baseEvent struct{}

func (baseEvent) isGameEvent() {}

// JoinEvent is a new connection's first contact with the room, either
// as a fresh lobby arrival or — when ReconnectToken matches a vacant
// seat — a reconnect.
type JoinEvent struct {
	baseEvent
	Conn           ClientSender
	Name           string
	Avatar         string
	ReconnectToken string
}

type ReadyEvent struct {
	baseEvent
	SeatIndex int
	IsReady   bool
}

type StartGameEvent struct {
	baseEvent
	SeatIndex int
}

// ActionEvent is a client's `action` message, valid during its sender's
// turn or an open claim window.
type ActionEvent struct {
	baseEvent
	SeatIndex int
	Action    protocol.ActionType
	TileID    string
	ChiIndex  *int
}

type NextRoundEvent struct {
	baseEvent
	SeatIndex int
}

type LeaveEvent struct {
	baseEvent
	SeatIndex int
}

// DisconnectEvent fires when a connection drops without an explicit
// `leave` message (socket error, client crash).
type DisconnectEvent struct {
	baseEvent
	SeatIndex int
}

// claimWindowTimeoutEvent fires when a claim window's timer expires.
// windowID guards against a stale timer from an already-resolved
// window firing late.
type claimWindowTimeoutEvent struct {
	baseEvent
	windowID uint64
}

// botActionTimeoutEvent fires after the fixed pacing delay scheduled
// for a bot's turn or claim decision.
type botActionTimeoutEvent struct {
	baseEvent
	scheduleID uint64
}

// disconnectGraceTimeoutEvent fires when a disconnected human's grace
// period elapses without a reconnect.
type disconnectGraceTimeoutEvent struct {
	baseEvent
	seatIndex int
	graceID   uint64
}
