package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func freshDealtState(t *testing.T, seed int64) *GameState {
	t.Helper()
	wall := NewWall(rand.New(rand.NewSource(seed)))
	gs := NewGameState(wall, East, 1)
	ns, ok := DealInitial(gs)
	require.True(t, ok)
	return ns
}

func TestDealInitial_HandSizesAndNoLiveBonus(t *testing.T) {
	gs := freshDealtState(t, 42)
	dealer := gs.Dealer()
	for i, p := range gs.Players {
		expected := 13
		if i == dealer {
			expected = 14
		}
		require.Len(t, p.Hand, expected, "seat %d", i)
		for _, tl := range p.Hand {
			require.NotEqual(t, KindBonus, tl.Def.Kind)
		}
	}
	require.Equal(t, Playing, gs.Phase)
	require.Equal(t, dealer, gs.CurrentPlayer)
}

func TestTileConservation_AcrossDealAndDiscard(t *testing.T) {
	gs := freshDealtState(t, 7)
	require.Equal(t, 144, gs.TotalTileCount())

	discardID := gs.Players[gs.CurrentPlayer].Hand[0].ID
	ns, ok := ApplyDiscard(gs, discardID)
	require.True(t, ok)
	require.Equal(t, 144, ns.TotalTileCount())
	require.Equal(t, NoPlayer, ns.CurrentPlayer)
	require.NotNil(t, ns.LastDiscard)
}

func TestApplyDraw_HandGrowsByOne(t *testing.T) {
	gs := freshDealtState(t, 11)
	nonDealer := (gs.Dealer() + 1) % 4
	gs.CurrentPlayer = nonDealer
	before := len(gs.Players[nonDealer].Hand)
	ns, ok := ApplyDraw(gs)
	require.True(t, ok)
	require.Equal(t, before+1, len(ns.Players[nonDealer].Hand))
	require.Equal(t, 144, ns.TotalTileCount())
}

func TestApplyClaim_PongSetsClaimerCurrentWithoutAdvancing(t *testing.T) {
	gs := freshDealtState(t, 5)
	discarder := gs.CurrentPlayer
	claimer := (discarder + 2) % 4

	discardTile := gs.Players[discarder].Hand[0]
	gs.Players[claimer].Hand = append(gs.Players[claimer].Hand,
		Tile{ID: "m1", Def: discardTile.Def}, Tile{ID: "m2", Def: discardTile.Def})

	ns, ok := ApplyDiscard(gs, discardTile.ID)
	require.True(t, ok)

	handTiles, found := CanPong(ns.Players[claimer].Hand, discardTile.Def)
	require.True(t, found)

	claimed, ok := ApplyClaim(ns, claimer, Pong, handTiles)
	require.True(t, ok)
	require.Equal(t, claimer, claimed.CurrentPlayer)
	require.Nil(t, claimed.LastDiscard)
	require.Len(t, claimed.Players[claimer].Melds, 1)
	require.Equal(t, Pong, claimed.Players[claimer].Melds[0].Kind)
	require.Equal(t, 144, claimed.TotalTileCount())
}

func TestApplyClaim_ChiOnlyValidForNextPlayer(t *testing.T) {
	gs := freshDealtState(t, 9)
	discarder := 1
	gs.CurrentPlayer = discarder
	discardTile := Tile{ID: "d1", Def: SuitDef(Bamboo, 5)}
	gs.Players[discarder].Hand = append(gs.Players[discarder].Hand, discardTile)

	ns, ok := ApplyDiscard(gs, discardTile.ID)
	require.True(t, ok)

	next := (discarder + 1) % 4
	other := (discarder + 2) % 4
	ns.Players[next].Hand = append(ns.Players[next].Hand,
		Tile{ID: "c1", Def: SuitDef(Bamboo, 4)}, Tile{ID: "c2", Def: SuitDef(Bamboo, 6)})
	ns.Players[other].Hand = append(ns.Players[other].Hand,
		Tile{ID: "c3", Def: SuitDef(Bamboo, 4)}, Tile{ID: "c4", Def: SuitDef(Bamboo, 6)})

	require.NotEmpty(t, CanAllChi(ns.Players[next].Hand, discardTile.Def, next, discarder))
	require.Empty(t, CanAllChi(ns.Players[other].Hand, discardTile.Def, other, discarder))
}

func TestAdvanceTurn_WrapsToZero(t *testing.T) {
	gs := freshDealtState(t, 13)
	ns := AdvanceTurn(gs, 3)
	require.Equal(t, 0, ns.CurrentPlayer)
}

func TestApplySelfKong_ConcealedDrawsReplacement(t *testing.T) {
	gs := freshDealtState(t, 21)
	p := gs.Players[0]
	p.Hand = append(p.Hand,
		Tile{ID: "k1", Def: SuitDef(Dot, 3)}, Tile{ID: "k2", Def: SuitDef(Dot, 3)},
		Tile{ID: "k3", Def: SuitDef(Dot, 3)}, Tile{ID: "k4", Def: SuitDef(Dot, 3)})
	before := len(p.Hand)
	opt, ok := CanSelfKong(p)
	require.True(t, ok)
	require.Equal(t, SelfKongConcealed, opt.Kind)

	ns, ok := ApplySelfKong(gs, 0, opt)
	require.True(t, ok)
	require.Len(t, ns.Players[0].Melds, 1)
	require.Equal(t, ConcealedKong, ns.Players[0].Melds[0].Kind)
	// four tiles left the hand, at most one replacement arrived.
	require.LessOrEqual(t, len(ns.Players[0].Hand), before-4+1)
}
