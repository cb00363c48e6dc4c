package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBotPolicy_ChooseDiscard_PrefersOrphanOverMatchedPair(t *testing.T) {
	policy := NewBotPolicy(rand.New(rand.NewSource(1)))
	hand := []Tile{
		tile(SuitDef(Bamboo, 1)), tile(SuitDef(Bamboo, 1)),
		tile(SuitDef(Character, 9)),
	}
	chosen := policy.ChooseDiscard(hand)
	require.Equal(t, SuitDef(Character, 9), chosen.Def)
}

func TestBotPolicy_ChooseDiscard_FavorsDiscardingBonus(t *testing.T) {
	policy := NewBotPolicy(rand.New(rand.NewSource(2)))
	hand := []Tile{
		tile(SuitDef(Bamboo, 5)),
		tile(BonusDef(Flower, 1)),
	}
	chosen := policy.ChooseDiscard(hand)
	require.Equal(t, KindBonus, chosen.Def.Kind)
}

func TestBotPolicy_ShouldClaimPong_AlwaysOnDragonsAndSeatWind(t *testing.T) {
	policy := NewBotPolicy(rand.New(rand.NewSource(3)))
	require.True(t, policy.ShouldClaimPong(DragonDef(Red), East))
	require.True(t, policy.ShouldClaimPong(WindDef(East), East))
}

func TestBotPolicy_ShouldClaimChi_IsSeedable(t *testing.T) {
	a := NewBotPolicy(rand.New(rand.NewSource(99)))
	b := NewBotPolicy(rand.New(rand.NewSource(99)))
	for i := 0; i < 20; i++ {
		require.Equal(t, a.ShouldClaimChi(), b.ShouldClaimChi())
	}
}
