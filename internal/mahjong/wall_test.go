package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAll_HasOneHundredFortyFourUniqueTiles(t *testing.T) {
	tiles := GenerateAll()
	require.Len(t, tiles, 144)

	seen := make(map[string]bool, 144)
	for _, tl := range tiles {
		require.False(t, seen[tl.ID], "duplicate tile id")
		seen[tl.ID] = true
	}

	suitCount, windCount, dragonCount, bonusCount := 0, 0, 0, 0
	for _, tl := range tiles {
		switch tl.Def.Kind {
		case KindSuit:
			suitCount++
		case KindWind:
			windCount++
		case KindDragon:
			dragonCount++
		case KindBonus:
			bonusCount++
		}
	}
	require.Equal(t, 108, suitCount)
	require.Equal(t, 16, windCount)
	require.Equal(t, 12, dragonCount)
	require.Equal(t, 8, bonusCount)
}

func TestWall_DrawHeadAndTailPreserveIdentity(t *testing.T) {
	w := NewWall(rand.New(rand.NewSource(1)))
	require.Equal(t, 144, w.Remaining())

	head, ok := w.DrawHead()
	require.True(t, ok)
	tail, ok := w.DrawTail()
	require.True(t, ok)
	require.NotEqual(t, head.ID, tail.ID)
	require.Equal(t, 142, w.Remaining())
}

func TestWall_ExhaustsCleanly(t *testing.T) {
	w := NewWall(rand.New(rand.NewSource(2)))
	for i := 0; i < 144; i++ {
		_, ok := w.DrawHead()
		require.True(t, ok)
	}
	_, ok := w.DrawHead()
	require.False(t, ok)
	_, ok = w.DrawTail()
	require.False(t, ok)
	require.Equal(t, 0, w.Remaining())
}

func TestWall_Clone_IsIndependent(t *testing.T) {
	w := NewWall(rand.New(rand.NewSource(3)))
	clone := w.Clone()
	_, _ = w.DrawHead()
	require.Equal(t, 144, clone.Remaining())
}
