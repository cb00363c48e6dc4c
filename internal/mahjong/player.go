package mahjong

// ConnectionStatus tracks whether a seat is driven by a real client.
type ConnectionStatus uint8

const (
	HumanConnected ConnectionStatus = iota
	HumanDisconnected
	BotOwned
)

// Player is one of the four fixed seats.
type Player struct {
	Name            string
	Avatar          string
	SeatWind        Wind
	Hand            []Tile
	Discards        []Tile
	Melds           []Meld
	RevealedBonuses []Tile
	Score           int
	Status          ConnectionStatus
}

func NewPlayer(name, avatar string, seatWind Wind) *Player {
	return &Player{
		Name:            name,
		Avatar:          avatar,
		SeatWind:        seatWind,
		Hand:            make([]Tile, 0, 14),
		Discards:        make([]Tile, 0, 24),
		Melds:           make([]Meld, 0, 4),
		RevealedBonuses: make([]Tile, 0, 8),
		Status:          HumanConnected,
	}
}

func (p *Player) clone() *Player {
	cp := *p
	cp.Hand = append([]Tile(nil), p.Hand...)
	cp.Discards = append([]Tile(nil), p.Discards...)
	cp.Melds = cloneMelds(p.Melds)
	cp.RevealedBonuses = append([]Tile(nil), p.RevealedBonuses...)
	return &cp
}

// MeldCount is how many declared sets (of any kind) the player holds;
// every kind — including a 4-tile kong — counts as one set towards the
// 13-tile-plus-one-drawn hand shape, so a kong's extra tile never
// shows up as an extra set in that arithmetic.
func (p *Player) MeldCount() int {
	return len(p.Melds)
}

// removeFromHand removes the first tile matching id, reporting
// whether it was found.
func (p *Player) removeFromHand(id string) bool {
	for i, t := range p.Hand {
		if t.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// removeMatchingFromHand removes up to n tiles matching def from the
// hand and returns the removed tiles.
func (p *Player) removeMatchingFromHand(def Definition, n int) []Tile {
	removed := make([]Tile, 0, n)
	remaining := p.Hand[:0:0]
	remaining = append(remaining, p.Hand...)
	kept := make([]Tile, 0, len(p.Hand))
	for _, t := range remaining {
		if len(removed) < n && t.Def == def {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	p.Hand = kept
	return removed
}

// HasBonus reports whether any tile currently in hand is a bonus tile.
func (p *Player) HasBonus() bool {
	for _, t := range p.Hand {
		if t.Def.Kind == KindBonus {
			return true
		}
	}
	return false
}
