package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lamyinia/mahjong-room-server/internal/logging"
	"github.com/lamyinia/mahjong-room-server/internal/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the HTTP front door: it creates rooms, upgrades websocket
// connections into them, and exposes a liveness endpoint.
type Server struct {
	engine  *gin.Engine
	http    *http.Server
	manager *room.Manager
}

func NewServer(manager *room.Manager) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, manager: manager}
	engine.GET("/healthz", s.handleHealth)
	engine.POST("/rooms", s.handleCreateRoom)
	engine.GET("/ws", s.handleWebsocket)
	return s
}

// Run starts serving addr and blocks until the server stops or errors;
// Shutdown returning from another goroutine makes it return
// http.ErrServerClosed, which callers should treat as a clean stop.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.engine}
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server, letting in-flight requests
// (including the websocket upgrade handshake, not long-lived sockets)
// drain within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCreateRoom allocates a fresh room id and starts its actor
// loop; clients then connect to /ws?roomId=<id>.
func (s *Server) handleCreateRoom(c *gin.Context) {
	id := uuid.NewString()
	s.manager.CreateRoom(id, time.Now().UnixNano())
	c.JSON(http.StatusOK, gin.H{"roomId": id})
}

// handleWebsocket upgrades the connection and posts a JoinEvent. A
// request may identify its target room either directly (roomId) or by
// a previously issued reconnectToken, which the manager's token index
// resolves back to a room id without the client needing to remember it.
func (s *Server) handleWebsocket(c *gin.Context) {
	roomID := c.Query("roomId")
	name := c.Query("name")
	avatar := c.Query("avatar")
	token := c.Query("reconnectToken")

	if roomID == "" && token != "" {
		if resolved, ok := s.manager.ResolveToken(token); ok {
			roomID = resolved
		}
	}
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId or reconnectToken is required"})
		return
	}
	target, ok := s.manager.GetRoom(roomID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws)
	conn.SetTarget(target)
	target.NotifyEvent(room.JoinEvent{
		Conn:           conn,
		Name:           name,
		Avatar:         avatar,
		ReconnectToken: token,
	})

	go conn.WriteLoop()
	conn.ReadLoop()
}
