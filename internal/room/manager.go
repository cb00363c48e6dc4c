package room

import (
	"sync"

	"github.com/lamyinia/mahjong-room-server/internal/auth"
	"github.com/lamyinia/mahjong-room-server/internal/config"
	"github.com/lamyinia/mahjong-room-server/internal/logging"
)

// Manager owns the registry of live rooms and the cross-room token
// index that lets a bare reconnect token (no room id attached) be
// routed to the room that minted it.
type Manager struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	tokens *tokenIndex
	issuer *auth.Issuer
	cfg    *config.Config
}

func NewManager(cfg *config.Config, issuer *auth.Issuer) (*Manager, error) {
	ti, err := newTokenIndex()
	if err != nil {
		return nil, err
	}
	return &Manager{
		rooms:  make(map[string]*Room),
		tokens: ti,
		issuer: issuer,
		cfg:    cfg,
	}, nil
}

// CreateRoom starts a new room's actor loop and registers it.
func (m *Manager) CreateRoom(id string, seed int64) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := NewRoom(id, m.cfg.Room, m.issuer, m.tokens, seed)
	m.rooms[id] = r
	r.Run()
	logging.With("room", id).Info("room created")
	return r
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	return r, ok
}

// ResolveToken looks up which room a bare reconnect token belongs to —
// used when a client's websocket upgrade carries a token but no room
// id (e.g. after a page refresh that only persisted the token).
func (m *Manager) ResolveToken(token string) (string, bool) {
	return m.tokens.Resolve(token)
}

func (m *Manager) DeleteRoom(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		r.Close()
		delete(m.rooms, id)
	}
}

// SweepEmptyRooms closes and removes every room with no connected
// human and no pending reconnect grace, freeing its actor goroutine.
func (m *Manager) SweepEmptyRooms() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		if r.Empty() {
			r.Close()
			delete(m.rooms, id)
			logging.With("room", id).Info("room swept (empty)")
		}
	}
}
