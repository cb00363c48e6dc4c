package mahjong

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateTai_ConcealedSelfDrawMinimum(t *testing.T) {
	p := NewPlayer("p", "a", East)
	p.Hand = []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 2)), tile(SuitDef(Bamboo, 3)),
		tile(SuitDef(Dot, 7)), tile(SuitDef(Dot, 7)), tile(SuitDef(Dot, 7)),
		tile(SuitDef(Character, 9)), tile(SuitDef(Character, 9)),
	}
	patterns, total := CalculateTai(p, true, East)
	require.GreaterOrEqual(t, total, 1)

	names := make(map[string]bool)
	for _, pat := range patterns {
		names[pat.Pattern.String()] = true
	}
	require.True(t, names["Self-draw"])
	require.True(t, names["Concealed hand"])
	require.True(t, names["No bonus tiles"])
}

func TestCalculateTai_IsPure(t *testing.T) {
	p := NewPlayer("p", "a", South)
	p.Melds = []Meld{{Kind: Pong, Tiles: []Tile{
		tile(DragonDef(Red)), tile(DragonDef(Red)), tile(DragonDef(Red)),
	}}}
	p.Hand = []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)),
	}
	first, firstTotal := CalculateTai(p, false, East)
	second, secondTotal := CalculateTai(p, false, East)
	require.Equal(t, first, second)
	require.Equal(t, firstTotal, secondTotal)
}

func TestCalculateTai_DragonPongAndSeatRoundWind(t *testing.T) {
	p := NewPlayer("p", "a", East)
	p.Melds = []Meld{
		{Kind: Pong, Tiles: []Tile{tile(DragonDef(Red)), tile(DragonDef(Red)), tile(DragonDef(Red))}},
		{Kind: Pong, Tiles: []Tile{tile(WindDef(East)), tile(WindDef(East)), tile(WindDef(East))}},
	}
	patterns, _ := CalculateTai(p, false, East)
	seen := map[string]int{}
	for _, pat := range patterns {
		seen[pat.Pattern.String()] = pat.Tai
	}
	require.Equal(t, 1, seen["Dragon pong"])
	require.Equal(t, 1, seen["Seat-wind pong"])
	require.Equal(t, 1, seen["Round-wind pong"])
}

func TestCalculateTai_ClampedToTen(t *testing.T) {
	p := NewPlayer("p", "a", East)
	p.Melds = []Meld{
		{Kind: Pong, Tiles: []Tile{tile(WindDef(East)), tile(WindDef(East)), tile(WindDef(East))}},
		{Kind: Pong, Tiles: []Tile{tile(WindDef(South)), tile(WindDef(South)), tile(WindDef(South))}},
		{Kind: Pong, Tiles: []Tile{tile(WindDef(West)), tile(WindDef(West)), tile(WindDef(West))}},
		{Kind: Pong, Tiles: []Tile{tile(WindDef(North)), tile(WindDef(North)), tile(WindDef(North))}},
	}
	_, total := CalculateTai(p, true, East)
	require.Equal(t, 10, total)
}

func TestCalculatePayments_ZeroSum(t *testing.T) {
	result := CalculatePayments(0, false, 2, BasePoints(2))
	sum := 0
	for _, pay := range result.Payments {
		sum += pay.Amount
	}
	require.Zero(t, sum)

	var winnerAmount int
	var losersAbsSum int
	for _, pay := range result.Payments {
		if pay.PlayerIndex == 0 {
			winnerAmount = pay.Amount
		} else {
			losersAbsSum += -pay.Amount
		}
	}
	require.Equal(t, losersAbsSum, winnerAmount)
}

func TestCalculatePayments_SelfDrawEveryoneEqual(t *testing.T) {
	result := CalculatePayments(1, true, -1, BasePoints(3))
	for _, pay := range result.Payments {
		if pay.PlayerIndex == 1 {
			continue
		}
		require.Equal(t, -BasePoints(3), pay.Amount)
	}
}
