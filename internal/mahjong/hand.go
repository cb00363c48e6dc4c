package mahjong

// bucketCounts groups tiles by their 34-slot GroupKey, mirroring the
// Hand34-style count array used for hand decomposition. Bonus tiles
// have no bucket and are ignored here; they must already have been
// replaced out of any hand under test, since a bonus tile can never be
// part of a decomposed set.
func bucketCounts(tiles []Tile) [34]int {
	var counts [34]int
	for _, t := range tiles {
		if k := t.Def.GroupKey(); k >= 0 {
			counts[k]++
		}
	}
	return counts
}

func isSuitBucket(idx int) bool {
	return idx < 27
}

// CheckWin reports whether hand, combined with melds already declared,
// decomposes into exactly 4 sets plus 1 pair. melds (including a
// 4-tile kong) each count as one set; hand must hold the remaining
// 14 − 3·len(melds) tiles.
func CheckWin(hand []Tile, melds []Meld) bool {
	setsNeeded := 4 - len(melds)
	if setsNeeded < 0 {
		return false
	}
	counts := bucketCounts(hand)
	for i := 0; i < 34; i++ {
		if counts[i] >= 2 {
			counts[i] -= 2
			if canFormSets(counts, setsNeeded) {
				return true
			}
			counts[i] += 2
		}
	}
	return false
}

// CheckWinWithTile is equivalent to CheckWin(hand ⊕ tile, melds)
// without mutating hand.
func CheckWinWithTile(hand []Tile, melds []Meld, tile Tile) bool {
	extended := make([]Tile, len(hand)+1)
	copy(extended, hand)
	extended[len(hand)] = tile
	return CheckWin(extended, melds)
}

// canFormSets is the backtracking scan: find the first (canonical
// order) nonzero bucket and try to consume it as a triplet or the
// start of a run. If neither branch on that leading bucket succeeds,
// fail outright — the leading bucket must be consumed by some set in
// any valid decomposition, so there is nothing left to try.
func canFormSets(counts [34]int, setsNeeded int) bool {
	if setsNeeded == 0 {
		for _, c := range counts {
			if c != 0 {
				return false
			}
		}
		return true
	}

	lead := -1
	for i := 0; i < 34; i++ {
		if counts[i] > 0 {
			lead = i
			break
		}
	}
	if lead == -1 {
		return false
	}

	if counts[lead] >= 3 {
		counts[lead] -= 3
		if canFormSets(counts, setsNeeded-1) {
			counts[lead] += 3
			return true
		}
		counts[lead] += 3
	}

	if isSuitBucket(lead) && lead%9 <= 6 && counts[lead+1] > 0 && counts[lead+2] > 0 {
		counts[lead]--
		counts[lead+1]--
		counts[lead+2]--
		if canFormSets(counts, setsNeeded-1) {
			counts[lead]++
			counts[lead+1]++
			counts[lead+2]++
			return true
		}
		counts[lead]++
		counts[lead+1]++
		counts[lead+2]++
	}

	return false
}

// CanPong returns two tiles of def from hand if it holds at least two
// copies.
func CanPong(hand []Tile, def Definition) ([]Tile, bool) {
	found := make([]Tile, 0, 2)
	for _, t := range hand {
		if t.Def == def {
			found = append(found, t)
			if len(found) == 2 {
				return found, true
			}
		}
	}
	return nil, false
}

// CanKong returns three tiles of def from hand if it holds at least
// three copies.
func CanKong(hand []Tile, def Definition) ([]Tile, bool) {
	found := make([]Tile, 0, 3)
	for _, t := range hand {
		if t.Def == def {
			found = append(found, t)
			if len(found) == 3 {
				return found, true
			}
		}
	}
	return nil, false
}

// ChiOption is one valid way to complete a chi: the two tiles taken
// from the claimer's hand (the discard itself is the third).
type ChiOption struct {
	HandTiles []Tile
}

// CanAllChi returns every valid chi completion of discardDef. Chi is
// only legal when claimerIdx is the very next player after
// discarderIdx, and only against suit tiles. For discard value v, the
// three candidate runs are (v-2,v-1), (v-1,v+1), (v+1,v+2), each
// bounded to 1..9 and included only if the claimer's hand holds both
// required values (as two distinct tile ids) in the same suit.
func CanAllChi(hand []Tile, discardDef Definition, claimerIdx, discarderIdx int) []ChiOption {
	if (discarderIdx+1)%4 != claimerIdx {
		return nil
	}
	if discardDef.Kind != KindSuit {
		return nil
	}
	v := discardDef.Value
	candidates := [][2]int{{v - 2, v - 1}, {v - 1, v + 1}, {v + 1, v + 2}}

	var options []ChiOption
	for _, pair := range candidates {
		lo, hi := pair[0], pair[1]
		if lo < 1 || hi > 9 {
			continue
		}
		loTile, loOK := firstMatching(hand, SuitDef(discardDef.Suit, lo))
		hiTile, hiOK := firstMatching(hand, SuitDef(discardDef.Suit, hi))
		if !loOK || !hiOK {
			continue
		}
		if loTile.ID == hiTile.ID {
			continue
		}
		options = append(options, ChiOption{HandTiles: []Tile{loTile, hiTile}})
	}
	return options
}

func firstMatching(hand []Tile, def Definition) (Tile, bool) {
	for _, t := range hand {
		if t.Def == def {
			return t, true
		}
	}
	return Tile{}, false
}

// SelfKongKind distinguishes the two ways a player can declare a
// self-kong.
type SelfKongKind uint8

const (
	SelfKongNone SelfKongKind = iota
	SelfKongConcealed
	SelfKongPromote
)

// SelfKongOption describes a legal self-kong: either promoting an
// existing pong (PromoteMeldIndex identifies which) or forming a new
// concealed kong from four matching hand tiles.
type SelfKongOption struct {
	Kind             SelfKongKind
	Def              Definition
	PromoteMeldIndex int
}

// CanSelfKong reports the player's legal self-kong, preferring a
// promote over a concealed kong when both are available: promoting an
// existing pong upgrades that meld in place instead of adding a new
// one, so it is the more conservative choice whenever either is legal.
func CanSelfKong(p *Player) (SelfKongOption, bool) {
	for i, m := range p.Melds {
		if m.Kind != Pong {
			continue
		}
		def := m.Definition()
		for _, t := range p.Hand {
			if t.Def == def {
				return SelfKongOption{Kind: SelfKongPromote, Def: def, PromoteMeldIndex: i}, true
			}
		}
	}

	counts := make(map[Definition]int, 14)
	for _, t := range p.Hand {
		counts[t.Def]++
	}
	for def, c := range counts {
		if c >= 4 {
			return SelfKongOption{Kind: SelfKongConcealed, Def: def}, true
		}
	}
	return SelfKongOption{}, false
}
