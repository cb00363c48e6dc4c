package room

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lamyinia/mahjong-room-server/internal/auth"
	"github.com/lamyinia/mahjong-room-server/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.Default()
	issuer := auth.NewIssuer("test-secret", 0)
	m, err := NewManager(cfg, issuer)
	require.NoError(t, err)
	return m
}

func TestManager_CreateAndGetRoom(t *testing.T) {
	m := testManager(t)
	r := m.CreateRoom("room-1", 1)
	defer r.Close()

	got, ok := m.GetRoom("room-1")
	require.True(t, ok)
	require.Same(t, r, got)

	_, ok = m.GetRoom("missing")
	require.False(t, ok)
}

func TestManager_DeleteRoomClosesAndRemoves(t *testing.T) {
	m := testManager(t)
	m.CreateRoom("room-1", 1)

	m.DeleteRoom("room-1")

	_, ok := m.GetRoom("room-1")
	require.False(t, ok)
}

func TestManager_SweepEmptyRoomsRemovesOnlyEmptyOnes(t *testing.T) {
	m := testManager(t)
	empty := m.CreateRoom("empty", 1)
	occupied := m.CreateRoom("occupied", 2)
	occupied.process(JoinEvent{Conn: &fakeSender{}, Name: "Alice"})

	require.True(t, empty.Empty())
	require.False(t, occupied.Empty())

	m.SweepEmptyRooms()

	_, ok := m.GetRoom("empty")
	require.False(t, ok)
	_, ok = m.GetRoom("occupied")
	require.True(t, ok)
}

func TestManager_ResolveTokenFindsRoomAfterJoin(t *testing.T) {
	m := testManager(t)
	r := m.CreateRoom("room-1", 1)
	defer r.Close()

	conn := &fakeSender{}
	r.process(JoinEvent{Conn: conn, Name: "Alice"})

	roomID, ok := m.ResolveToken(r.seats[0].reconnectToken)
	require.True(t, ok)
	require.Equal(t, "room-1", roomID)
}
