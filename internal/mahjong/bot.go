package mahjong

import "math/rand"

// BotPolicy is the discard-choice and claim-decision heuristic used
// for bot-owned seats. Randomness is an explicit dependency so tests
// can inject a seeded source for reproducibility; determinism of
// outcomes is not otherwise required.
type BotPolicy struct {
	rng *rand.Rand
}

func NewBotPolicy(rng *rand.Rand) *BotPolicy {
	return &BotPolicy{rng: rng}
}

// ChooseDiscard scores every hand tile by an isolation heuristic and
// returns the highest-scoring (most discardable) one: tiles that
// match others in hand score lower (a kept pair/triplet is worth
// more than an orphan), suited tiles with an adjacent value in hand
// score lower (potential chi), terminals score slightly higher, and a
// residual bonus tile scores far higher than anything else.
func (b *BotPolicy) ChooseDiscard(hand []Tile) Tile {
	best := hand[0]
	bestScore := discardScore(hand[0], hand)
	for _, t := range hand[1:] {
		if s := discardScore(t, hand); s > bestScore {
			bestScore = s
			best = t
		}
	}
	return best
}

func discardScore(tile Tile, hand []Tile) int {
	if tile.Def.Kind == KindBonus {
		return 1000
	}

	score := 0
	sameCount := 0
	for _, t := range hand {
		if t.ID != tile.ID && t.Def == tile.Def {
			sameCount++
		}
	}
	score -= sameCount * 10

	if tile.Def.Kind == KindSuit {
		adjacent := 0
		for _, t := range hand {
			if t.ID == tile.ID || t.Def.Kind != KindSuit || t.Def.Suit != tile.Def.Suit {
				continue
			}
			if abs(t.Def.Value-tile.Def.Value) == 1 {
				adjacent++
			}
		}
		score -= adjacent * 5
		if tile.Def.Value == 1 || tile.Def.Value == 9 {
			score += 2
		}
	}

	return score
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ShouldClaimPong reports whether a bot claims a pong of def: always
// for dragons and for the bot's own seat wind, otherwise with
// probability 0.3.
func (b *BotPolicy) ShouldClaimPong(def Definition, seatWind Wind) bool {
	if def.Kind == KindDragon {
		return true
	}
	if def.Kind == KindWind && def.Wind == seatWind {
		return true
	}
	return b.rng.Float64() < 0.3
}

// ShouldClaimChi reports whether a bot takes an available chi, with
// probability 0.4.
func (b *BotPolicy) ShouldClaimChi() bool {
	return b.rng.Float64() < 0.4
}

// Win, kong, and self-kong are not probabilistic: a bot always claims
// them whenever legally available, which callers decide directly from
// CheckWin / CanKong / CanSelfKong rather than asking this policy.
