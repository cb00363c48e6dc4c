package room

import (
	"github.com/lamyinia/mahjong-room-server/internal/mahjong"
	"github.com/lamyinia/mahjong-room-server/internal/protocol"
)

// AvailableClaim is one seat's legal responses to the current
// lastDiscard: the hand tiles that would complete each kind of claim,
// nil when that kind is not legal for this seat.
type AvailableClaim struct {
	Win        bool
	KongTiles  []mahjong.Tile
	PongTiles  []mahjong.Tile
	ChiOptions []mahjong.ChiOption
}

func (a AvailableClaim) empty() bool {
	return !a.Win && a.KongTiles == nil && a.PongTiles == nil && len(a.ChiOptions) == 0
}

// computeAvailableClaims computes, for every non-discarder seat, the
// set of legal claims against discard — win, kong, pong, and (for the
// seat immediately after the discarder only, since a chi run can only
// extend that seat's own hand) chi.
func computeAvailableClaims(gs *mahjong.GameState, discarderIdx int, discard mahjong.Tile) map[int]AvailableClaim {
	avail := make(map[int]AvailableClaim)
	for i := 0; i < 4; i++ {
		if i == discarderIdx {
			continue
		}
		p := gs.Players[i]
		var a AvailableClaim
		if winnableWithTile(p, discard) {
			a.Win = true
		}
		if tiles, ok := mahjong.CanKong(p.Hand, discard.Def); ok {
			a.KongTiles = tiles
		}
		if tiles, ok := mahjong.CanPong(p.Hand, discard.Def); ok {
			a.PongTiles = tiles
		}
		if (discarderIdx+1)%4 == i {
			a.ChiOptions = mahjong.CanAllChi(p.Hand, discard.Def, i, discarderIdx)
		}
		if !a.empty() {
			avail[i] = a
		}
	}
	return avail
}

// winnableWithTile reports whether p could win by claiming discard: the
// resulting hand must decompose into four sets and a pair and match at
// least one named tai pattern. The scoring copy carries no revealed
// bonuses, so "No bonus tiles" always matches and the pattern check
// never rejects a decomposable hand.
func winnableWithTile(p *mahjong.Player, discard mahjong.Tile) bool {
	if !mahjong.CheckWinWithTile(p.Hand, p.Melds, discard) {
		return false
	}
	after := append(append([]mahjong.Tile(nil), p.Hand...), discard)
	patterns, _ := mahjong.CalculateTai(&mahjong.Player{
		SeatWind: p.SeatWind,
		Hand:     after,
		Melds:    p.Melds,
	}, false, mahjong.East)
	return len(patterns) > 0
}

// claimResponse is one seat's recorded answer within an open window.
type claimResponse struct {
	responded bool
	action    protocol.ActionType
	chiIndex  int
}

// claimWindow is the open arbitration state after a discard.
type claimWindow struct {
	id           uint64
	discarderIdx int
	discard      mahjong.Tile
	available    map[int]AvailableClaim
	responses    [4]claimResponse
	timer        *timerHandle
	robbingKong  bool
	robberSeat   int // only meaningful when robbingKong
}

func (cw *claimWindow) allResponded() bool {
	for seat := range cw.available {
		if !cw.responses[seat].responded {
			return false
		}
	}
	return true
}

// claimResolution is the outcome of resolving a fully-answered window.
type claimResolution struct {
	kind       protocol.ActionType // ActionWin, ActionKong, ActionPong, ActionChi, or ActionPass (no-op)
	seat       int
	chiOption  mahjong.ChiOption
	handTiles  []mahjong.Tile
}

// resolve applies the claim priority rule: win (closest to the
// discarder first, skipping any candidate that fails the minimum-tai
// check) beats kong beats pong beats chi; an all-pass window advances
// the turn.
func (cw *claimWindow) resolve(gs *mahjong.GameState) claimResolution {
	// 1. Win, by proximity to the discarder (next seat first).
	for step := 1; step <= 3; step++ {
		seat := (cw.discarderIdx + step) % 4
		if cw.responses[seat].responded && cw.responses[seat].action == protocol.ActionWin {
			if a, ok := cw.available[seat]; ok && a.Win {
				return claimResolution{kind: protocol.ActionWin, seat: seat}
			}
		}
	}
	// 2. Kong — at most one possible.
	for seat, a := range cw.available {
		if cw.responses[seat].responded && cw.responses[seat].action == protocol.ActionKong && a.KongTiles != nil {
			return claimResolution{kind: protocol.ActionKong, seat: seat, handTiles: a.KongTiles}
		}
	}
	// 3. Pong — at most one possible.
	for seat, a := range cw.available {
		if cw.responses[seat].responded && cw.responses[seat].action == protocol.ActionPong && a.PongTiles != nil {
			return claimResolution{kind: protocol.ActionPong, seat: seat, handTiles: a.PongTiles}
		}
	}
	// 4. Chi — only the next seat can ever hold this option.
	next := (cw.discarderIdx + 1) % 4
	if cw.responses[next].responded && cw.responses[next].action == protocol.ActionChi {
		if a, ok := cw.available[next]; ok && len(a.ChiOptions) > 0 {
			idx := cw.responses[next].chiIndex
			if idx < 0 || idx >= len(a.ChiOptions) {
				idx = 0
			}
			return claimResolution{kind: protocol.ActionChi, seat: next, chiOption: a.ChiOptions[idx]}
		}
	}
	return claimResolution{kind: protocol.ActionPass}
}
