// Package transport wires websocket connections to room event
// channels: one reader goroutine decodes client frames into
// room.GameEvent values, one writer goroutine drains a buffered
// outbound channel, and a ping/pong heartbeat keeps the socket honest
// so a dead peer is noticed instead of leaking its goroutines forever.
package transport

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lamyinia/mahjong-room-server/internal/logging"
	"github.com/lamyinia/mahjong-room-server/internal/protocol"
	"github.com/lamyinia/mahjong-room-server/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 32
)

// Connection adapts one websocket to room.ClientSender and feeds
// decoded client frames to a target room as GameEvents.
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
	closed    chan struct{}

	seatIndex int
	target    *room.Room
}

// NewConnection wraps ws; the caller starts ReadLoop and WriteLoop.
// seatIndex is not known until the room assigns one via handleJoin;
// AssignSeat records it so later frames (leave, disconnect) carry it.
func NewConnection(ws *websocket.Conn) *Connection {
	c := &Connection{
		ws:        ws,
		send:      make(chan []byte, sendBufferSize),
		closed:    make(chan struct{}),
		seatIndex: -1,
	}
	ws.SetReadLimit(maxMessageSize)
	return c
}

// Send implements room.ClientSender: enqueues frame for the writer
// goroutine, dropping it if the connection is shutting down or the
// client is too slow to keep up (a full buffer means a dead peer).
func (c *Connection) Send(frame []byte) {
	select {
	case c.send <- frame:
	case <-c.closed:
	default:
		logging.Warn("dropping frame to slow or closing connection")
	}
}

// Close implements room.ClientSender: tears down the socket exactly
// once, safe to call from either goroutine or from the room.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.ws.Close()
	})
}

// AssignSeat implements room.ClientSender: the room calls this once it
// has decided which seat this connection occupies.
func (c *Connection) AssignSeat(seat int) { c.seatIndex = seat }

func (c *Connection) Seat() int              { return c.seatIndex }
func (c *Connection) SetTarget(r *room.Room) { c.target = r }

// ReadLoop decodes client frames and translates them into room events
// until the socket errors or closes. Runs on its own goroutine; the
// caller is expected to call WriteLoop on another.
func (c *Connection) ReadLoop() {
	defer c.onDisconnect()
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var msg protocol.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logging.Warn("discarding malformed client frame: %v", err)
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Connection) dispatch(msg protocol.ClientMessage) {
	if c.target == nil {
		return
	}
	switch msg.Type {
	case protocol.MsgReady:
		c.target.NotifyEvent(room.ReadyEvent{SeatIndex: c.seatIndex, IsReady: msg.IsReady})
	case protocol.MsgStartGame:
		c.target.NotifyEvent(room.StartGameEvent{SeatIndex: c.seatIndex})
	case protocol.MsgAction:
		c.target.NotifyEvent(room.ActionEvent{
			SeatIndex: c.seatIndex,
			Action:    msg.Action,
			TileID:    msg.TileID,
			ChiIndex:  msg.ChiIndex,
		})
	case protocol.MsgNextRound:
		c.target.NotifyEvent(room.NextRoundEvent{SeatIndex: c.seatIndex})
	case protocol.MsgLeave:
		c.target.NotifyEvent(room.LeaveEvent{SeatIndex: c.seatIndex})
	default:
		logging.Warn("unknown client message type %q", msg.Type)
	}
}

func (c *Connection) onDisconnect() {
	if c.target != nil && c.seatIndex >= 0 {
		c.target.NotifyEvent(room.DisconnectEvent{SeatIndex: c.seatIndex})
	}
	c.Close()
}

// WriteLoop drains the send channel to the socket and emits periodic
// pings, exiting when the connection closes.
func (c *Connection) WriteLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.Close()

	for {
		select {
		case frame, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}
