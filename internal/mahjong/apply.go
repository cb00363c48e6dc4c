package mahjong

// drawWithBonusChain draws one tile — from the head when fromHead is
// true (a normal turn draw), from the tail otherwise (a kong or
// self-kong replacement) — and chains further tail draws while the
// drawn tile is a bonus, since a bonus tile is set aside and replaced
// rather than ever entering a hand. It returns the final non-bonus
// tile, the bonus tiles revealed along the way, and whether the chain
// completed (false if the wall ran out mid-chain).
func drawWithBonusChain(wall *Wall, fromHead bool) (Tile, []Tile, bool) {
	var drawn Tile
	var ok bool
	if fromHead {
		drawn, ok = wall.DrawHead()
	} else {
		drawn, ok = wall.DrawTail()
	}
	if !ok {
		return Tile{}, nil, false
	}

	var revealed []Tile
	for drawn.Def.Kind == KindBonus {
		revealed = append(revealed, drawn)
		drawn, ok = wall.DrawTail()
		if !ok {
			return Tile{}, revealed, false
		}
	}
	return drawn, revealed, true
}

func firstBonusInHand(p *Player) (Tile, int) {
	for i, t := range p.Hand {
		if t.Def.Kind == KindBonus {
			return t, i
		}
	}
	return Tile{}, -1
}

// replaceBonusesFixedPoint moves every bonus tile out of every hand,
// drawing a tail replacement for each, iterating per player until no
// bonus remains (a replacement may itself be a bonus). Returns false
// if the wall is exhausted before the fixed point is reached.
func replaceBonusesFixedPoint(gs *GameState) bool {
	for _, p := range gs.Players {
		for p.HasBonus() {
			bonusTile, idx := firstBonusInHand(p)
			p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
			p.RevealedBonuses = append(p.RevealedBonuses, bonusTile)
			replacement, ok := gs.Wall.DrawTail()
			if !ok {
				return false
			}
			p.Hand = append(p.Hand, replacement)
		}
	}
	return true
}

// DealInitial deals 13 tiles to every seat and 14 to the dealer from
// the wall's head, then runs bonus replacement to a fixed point. The
// returned bool is false if the wall exhausted during dealing or
// replacement, in which case the caller must end the hand as a draw.
func DealInitial(gs *GameState) (*GameState, bool) {
	ns := gs.Clone()
	dealer := ns.Dealer()
	for i := 0; i < 4; i++ {
		count := 13
		if i == dealer {
			count = 14
		}
		for n := 0; n < count; n++ {
			t, ok := ns.Wall.DrawHead()
			if !ok {
				return ns, false
			}
			ns.Players[i].Hand = append(ns.Players[i].Hand, t)
		}
	}
	if !replaceBonusesFixedPoint(ns) {
		return ns, false
	}
	ns.Phase = Playing
	ns.CurrentPlayer = dealer
	ns.LastDiscarderIndex = NoPlayer
	return ns, true
}

// ApplyDraw draws a tile for the current player, chaining through any
// bonus replacements. ok is false only if the hand is not in the
// Playing phase or there is no current player to draw for; a wall
// exhausted mid-chain still returns ok=true with
// no tile added — callers detect that by checking Wall.Remaining().
func ApplyDraw(gs *GameState) (*GameState, bool) {
	if gs.Phase != Playing || gs.CurrentPlayer == NoPlayer {
		return gs, false
	}
	ns := gs.Clone()
	player := ns.Players[ns.CurrentPlayer]
	tile, revealed, ok := drawWithBonusChain(ns.Wall, true)
	player.RevealedBonuses = append(player.RevealedBonuses, revealed...)
	if ok {
		player.Hand = append(player.Hand, tile)
	}
	return ns, true
}

// ApplyDiscard removes tileID from the current player's hand, makes it
// the last discard, and clears whose turn it is (the claim window sets
// the next holder).
func ApplyDiscard(gs *GameState, tileID string) (*GameState, bool) {
	if gs.Phase != Playing || gs.CurrentPlayer == NoPlayer {
		return gs, false
	}
	ns := gs.Clone()
	player := ns.Players[ns.CurrentPlayer]

	var discarded Tile
	found := false
	for _, t := range player.Hand {
		if t.ID == tileID {
			discarded = t
			found = true
			break
		}
	}
	if !found {
		return gs, false
	}
	player.removeFromHand(tileID)
	player.Discards = append(player.Discards, discarded)

	ns.LastDiscard = &discarded
	ns.LastDiscarderIndex = ns.CurrentPlayer
	ns.TurnCounter++
	ns.CurrentPlayer = NoPlayer
	return ns, true
}

// ApplyClaim resolves a chi/pong/kong against the current last
// discard: handTiles are removed from claimerIdx's hand and combined
// with the discard into a new meld; the discard is removed from the
// discarder's pile; the claimer becomes current player without
// advancing turn order. A kong additionally draws a tail replacement.
func ApplyClaim(gs *GameState, claimerIdx int, kind MeldKind, handTiles []Tile) (*GameState, bool) {
	if gs.LastDiscard == nil || gs.LastDiscarderIndex == NoPlayer {
		return gs, false
	}
	ns := gs.Clone()
	discard := *ns.LastDiscard
	claimer := ns.Players[claimerIdx]

	for _, t := range handTiles {
		if !claimer.removeFromHand(t.ID) {
			return gs, false
		}
	}
	meld := Meld{Kind: kind, Tiles: append(append([]Tile{}, handTiles...), discard)}
	claimer.Melds = append(claimer.Melds, meld)

	discarder := ns.Players[ns.LastDiscarderIndex]
	removeTileFromSlice(&discarder.Discards, discard.ID)

	ns.LastDiscard = nil
	ns.LastDiscarderIndex = NoPlayer
	ns.CurrentPlayer = claimerIdx

	if kind == Kong {
		tile, revealed, ok := drawWithBonusChain(ns.Wall, false)
		claimer.RevealedBonuses = append(claimer.RevealedBonuses, revealed...)
		if ok {
			claimer.Hand = append(claimer.Hand, tile)
		}
	}
	return ns, true
}

// ApplySelfKong applies a promote or concealed self-kong for
// playerIdx, then draws a tail replacement (same bonus-chain policy as
// a claimed kong).
func ApplySelfKong(gs *GameState, playerIdx int, opt SelfKongOption) (*GameState, bool) {
	if opt.Kind == SelfKongNone {
		return gs, false
	}
	ns := gs.Clone()
	player := ns.Players[playerIdx]

	switch opt.Kind {
	case SelfKongPromote:
		if opt.PromoteMeldIndex < 0 || opt.PromoteMeldIndex >= len(player.Melds) {
			return gs, false
		}
		tiles := player.removeMatchingFromHand(opt.Def, 1)
		if len(tiles) != 1 {
			return gs, false
		}
		m := player.Melds[opt.PromoteMeldIndex]
		m.Tiles = append(m.Tiles, tiles[0])
		m.Kind = Kong
		player.Melds[opt.PromoteMeldIndex] = m
	case SelfKongConcealed:
		tiles := player.removeMatchingFromHand(opt.Def, 4)
		if len(tiles) != 4 {
			return gs, false
		}
		player.Melds = append(player.Melds, Meld{Kind: ConcealedKong, Tiles: tiles})
	}

	tile, revealed, ok := drawWithBonusChain(ns.Wall, false)
	player.RevealedBonuses = append(player.RevealedBonuses, revealed...)
	if ok {
		player.Hand = append(player.Hand, tile)
	}
	return ns, true
}

// AdvanceTurn moves current play to the seat after fromIdx (the
// discarder whose discard went unclaimed by everyone).
func AdvanceTurn(gs *GameState, fromIdx int) *GameState {
	ns := gs.Clone()
	ns.CurrentPlayer = (fromIdx + 1) % 4
	ns.LastDiscarderIndex = NoPlayer
	return ns
}

func removeTileFromSlice(tiles *[]Tile, id string) {
	s := *tiles
	for i, t := range s {
		if t.ID == id {
			*tiles = append(s[:i], s[i+1:]...)
			return
		}
	}
}
