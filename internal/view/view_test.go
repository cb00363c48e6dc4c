package view

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lamyinia/mahjong-room-server/internal/mahjong"
)

func TestProject_RevealsOnlyOwnHand(t *testing.T) {
	wall := mahjong.NewWall(rand.New(rand.NewSource(1)))
	gs := mahjong.NewGameState(wall, mahjong.East, 1)
	ns, ok := mahjong.DealInitial(gs)
	require.True(t, ok)

	projected := Project(ns, 0)
	require.Equal(t, 0, projected.SelfIndex)
	require.NotEmpty(t, projected.Players[0].Hand)
	require.Equal(t, len(ns.Players[0].Hand), projected.Players[0].HandCount)

	for seat := 1; seat < 4; seat++ {
		require.Empty(t, projected.Players[seat].Hand)
		require.Equal(t, len(ns.Players[seat].Hand), projected.Players[seat].HandCount)
	}
}

func TestProject_SharedFieldsIdenticalAcrossRecipients(t *testing.T) {
	wall := mahjong.NewWall(rand.New(rand.NewSource(2)))
	gs := mahjong.NewGameState(wall, mahjong.South, 2)
	ns, ok := mahjong.DealInitial(gs)
	require.True(t, ok)

	p0 := Project(ns, 0)
	p1 := Project(ns, 1)
	require.Equal(t, p0.CurrentPlayer, p1.CurrentPlayer)
	require.Equal(t, p0.RoundWind, p1.RoundWind)
	require.Equal(t, p0.RoundNumber, p1.RoundNumber)
	require.Equal(t, p0.WallRemaining, p1.WallRemaining)
	require.Equal(t, p0.Players[2].Score, p1.Players[2].Score)
}
