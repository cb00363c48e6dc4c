package mahjong

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tile(def Definition) Tile {
	return newTile(def)
}

func TestCheckWin_ThreeRunsTripletAndPair(t *testing.T) {
	hand := []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 2)), tile(SuitDef(Bamboo, 3)),
		tile(SuitDef(Bamboo, 4)), tile(SuitDef(Bamboo, 5)), tile(SuitDef(Bamboo, 6)),
		tile(SuitDef(Dot, 1)), tile(SuitDef(Dot, 2)), tile(SuitDef(Dot, 3)),
		tile(SuitDef(Character, 4)), tile(SuitDef(Character, 4)), tile(SuitDef(Character, 4)),
		tile(SuitDef(Character, 5)), tile(SuitDef(Character, 5)),
	}
	require.True(t, CheckWin(hand, nil))
}

func TestCheckWin_RejectsIncompleteHand(t *testing.T) {
	hand := []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 2)), tile(SuitDef(Bamboo, 3)),
		tile(SuitDef(Bamboo, 4)), tile(SuitDef(Bamboo, 5)), tile(SuitDef(Bamboo, 6)),
		tile(SuitDef(Dot, 1)), tile(SuitDef(Dot, 2)), tile(SuitDef(Dot, 3)),
		tile(SuitDef(Character, 4)), tile(SuitDef(Character, 4)), tile(SuitDef(Character, 4)),
		tile(SuitDef(Character, 5)), tile(SuitDef(Character, 7)),
	}
	require.False(t, CheckWin(hand, nil))
}

func TestCheckWin_WithDeclaredMelds(t *testing.T) {
	melds := []Meld{
		{Kind: Pong, Tiles: []Tile{tile(DragonDef(Red)), tile(DragonDef(Red)), tile(DragonDef(Red))}},
		{Kind: Kong, Tiles: []Tile{
			tile(WindDef(East)), tile(WindDef(East)), tile(WindDef(East)), tile(WindDef(East)),
		}},
	}
	// 14 - 3*2 = 8 tiles left in hand: 2 sets + pair.
	hand := []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 2)), tile(SuitDef(Bamboo, 3)),
		tile(SuitDef(Dot, 7)), tile(SuitDef(Dot, 7)), tile(SuitDef(Dot, 7)),
		tile(SuitDef(Character, 9)), tile(SuitDef(Character, 9)),
	}
	require.True(t, CheckWin(hand, melds))
}

func TestCheckWinWithTile_AgreesWithCheckWin(t *testing.T) {
	hand := []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 2)), tile(SuitDef(Bamboo, 3)),
		tile(SuitDef(Bamboo, 4)), tile(SuitDef(Bamboo, 5)), tile(SuitDef(Bamboo, 6)),
		tile(SuitDef(Dot, 1)), tile(SuitDef(Dot, 2)), tile(SuitDef(Dot, 3)),
		tile(SuitDef(Character, 4)), tile(SuitDef(Character, 4)), tile(SuitDef(Character, 4)),
		tile(SuitDef(Character, 5)), tile(SuitDef(Character, 5)),
	}
	for i, winning := range hand {
		rest := make([]Tile, 0, len(hand)-1)
		for j, t := range hand {
			if j != i {
				rest = append(rest, t)
			}
		}
		require.Equal(t, CheckWin(hand, nil), CheckWinWithTile(rest, nil, winning), "tile %d", i)
	}
}

func TestCanAllChi_OnlyNextPlayerAndInRange(t *testing.T) {
	hand := []Tile{tile(SuitDef(Bamboo, 4)), tile(SuitDef(Bamboo, 6))}
	discard := SuitDef(Bamboo, 5)

	// discarder 1, claimer 2: legal, next player.
	opts := CanAllChi(hand, discard, 2, 1)
	require.Len(t, opts, 1)

	// discarder 1, claimer 3: not the next player, no options regardless of hand.
	opts = CanAllChi(hand, discard, 3, 1)
	require.Empty(t, opts)
}

func TestCanAllChi_MultipleCombinations(t *testing.T) {
	hand := []Tile{
		tile(SuitDef(Dot, 3)), tile(SuitDef(Dot, 4)),
		tile(SuitDef(Dot, 6)), tile(SuitDef(Dot, 7)),
	}
	discard := SuitDef(Dot, 5)
	// (3,4), (4,6) and (6,7) are all held.
	opts := CanAllChi(hand, discard, 1, 0)
	require.Len(t, opts, 3)
}

func TestCanPongCanKong(t *testing.T) {
	hand := []Tile{tile(DragonDef(Green)), tile(DragonDef(Green)), tile(DragonDef(Green))}
	pongTiles, ok := CanPong(hand, DragonDef(Green))
	require.True(t, ok)
	require.Len(t, pongTiles, 2)

	kongTiles, ok := CanKong(hand, DragonDef(Green))
	require.True(t, ok)
	require.Len(t, kongTiles, 3)

	_, ok = CanKong(hand, DragonDef(Red))
	require.False(t, ok)
}

func TestCanSelfKong_PrefersPromoteOverConcealed(t *testing.T) {
	p := NewPlayer("p", "a", East)
	p.Melds = append(p.Melds, Meld{Kind: Pong, Tiles: []Tile{
		tile(DragonDef(White)), tile(DragonDef(White)), tile(DragonDef(White)),
	}})
	p.Hand = []Tile{
		tile(DragonDef(White)),
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)),
	}
	opt, ok := CanSelfKong(p)
	require.True(t, ok)
	require.Equal(t, SelfKongPromote, opt.Kind)
}

func TestCanSelfKong_ConcealedWhenNoPromote(t *testing.T) {
	p := NewPlayer("p", "a", East)
	p.Hand = []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)),
	}
	opt, ok := CanSelfKong(p)
	require.True(t, ok)
	require.Equal(t, SelfKongConcealed, opt.Kind)
}
