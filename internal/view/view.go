// Package view projects the authoritative mahjong.GameState down to
// what one specific seat is allowed to see: that seat's own hand is
// revealed, every other seat's hand is elided to a tile count. Melds,
// discards, revealed bonuses, scores, seat winds, wall remaining,
// current turn and round info are identical for every recipient.
package view

import "github.com/lamyinia/mahjong-room-server/internal/mahjong"

type TileView struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Suit   string `json:"suit,omitempty"`
	Value  int    `json:"value,omitempty"`
	Wind   string `json:"wind,omitempty"`
	Dragon string `json:"dragon,omitempty"`
	Bonus  string `json:"bonus,omitempty"`
}

func newTileView(t mahjong.Tile) TileView {
	tv := TileView{ID: t.ID}
	switch t.Def.Kind {
	case mahjong.KindSuit:
		tv.Kind = "suit"
		tv.Suit = suitName(t.Def.Suit)
		tv.Value = t.Def.Value
	case mahjong.KindWind:
		tv.Kind = "wind"
		tv.Wind = t.Def.Wind.String()
	case mahjong.KindDragon:
		tv.Kind = "dragon"
		tv.Dragon = dragonName(t.Def.Dragon)
	case mahjong.KindBonus:
		tv.Kind = "bonus"
		tv.Bonus = bonusName(t.Def.Bonus)
		tv.Value = t.Def.Value
	}
	return tv
}

func suitName(s mahjong.Suit) string {
	switch s {
	case mahjong.Bamboo:
		return "bamboo"
	case mahjong.Character:
		return "character"
	default:
		return "dot"
	}
}

func dragonName(d mahjong.DragonColor) string {
	switch d {
	case mahjong.Red:
		return "red"
	case mahjong.Green:
		return "green"
	default:
		return "white"
	}
}

func bonusName(b mahjong.BonusKind) string {
	if b == mahjong.Flower {
		return "flower"
	}
	return "animal"
}

// NewTileView exposes the tile→wire conversion for callers outside
// this package that need to encode a bare tile list (e.g. claim
// options), without projecting a whole GameState.
func NewTileView(t mahjong.Tile) TileView {
	return newTileView(t)
}

func tilesView(tiles []mahjong.Tile) []TileView {
	out := make([]TileView, len(tiles))
	for i, t := range tiles {
		out[i] = newTileView(t)
	}
	return out
}

type MeldView struct {
	Kind  string     `json:"kind"`
	Tiles []TileView `json:"tiles"`
}

func meldKindName(k mahjong.MeldKind) string {
	switch k {
	case mahjong.Chi:
		return "chi"
	case mahjong.Pong:
		return "pong"
	case mahjong.Kong:
		return "kong"
	default:
		return "concealed-kong"
	}
}

func meldsView(melds []mahjong.Meld) []MeldView {
	out := make([]MeldView, len(melds))
	for i, m := range melds {
		out[i] = MeldView{Kind: meldKindName(m.Kind), Tiles: tilesView(m.Tiles)}
	}
	return out
}

func statusName(s mahjong.ConnectionStatus) string {
	switch s {
	case mahjong.HumanConnected:
		return "human-connected"
	case mahjong.HumanDisconnected:
		return "human-disconnected"
	default:
		return "bot"
	}
}

// PlayerView is one seat as seen by a given recipient: Hand is
// populated only for the recipient's own seat, nil otherwise (only
// HandCount is then meaningful).
type PlayerView struct {
	Name            string     `json:"name"`
	Avatar          string     `json:"avatar"`
	SeatWind        string     `json:"seatWind"`
	Hand            []TileView `json:"hand,omitempty"`
	HandCount       int        `json:"handCount"`
	Discards        []TileView `json:"discards"`
	Melds           []MeldView `json:"melds"`
	RevealedBonuses []TileView `json:"revealedBonuses"`
	Score           int        `json:"score"`
	Status          string     `json:"status"`
}

func playerView(p *mahjong.Player, reveal bool) PlayerView {
	pv := PlayerView{
		Name:            p.Name,
		Avatar:          p.Avatar,
		SeatWind:        p.SeatWind.String(),
		HandCount:       len(p.Hand),
		Discards:        tilesView(p.Discards),
		Melds:           meldsView(p.Melds),
		RevealedBonuses: tilesView(p.RevealedBonuses),
		Score:           p.Score,
		Status:          statusName(p.Status),
	}
	if reveal {
		pv.Hand = tilesView(p.Hand)
	}
	return pv
}

func phaseName(ph mahjong.Phase) string {
	switch ph {
	case mahjong.Waiting:
		return "waiting"
	case mahjong.Playing:
		return "playing"
	default:
		return "finished"
	}
}

// ClientGameState is the per-recipient projection of a GameState.
type ClientGameState struct {
	Players            [4]PlayerView `json:"players"`
	SelfIndex          int           `json:"selfIndex"`
	CurrentPlayer      int           `json:"currentPlayer"`
	RoundWind          string        `json:"roundWind"`
	RoundNumber        int           `json:"roundNumber"`
	TurnCounter        int           `json:"turnCounter"`
	WallRemaining      int           `json:"wallRemaining"`
	LastDiscarderIndex int           `json:"lastDiscarderIndex"`
	Phase              string        `json:"phase"`
}

// Project builds the ClientGameState for the seat at forSeat.
func Project(gs *mahjong.GameState, forSeat int) *ClientGameState {
	cgs := &ClientGameState{
		SelfIndex:          forSeat,
		CurrentPlayer:      gs.CurrentPlayer,
		RoundWind:          gs.RoundWind.String(),
		RoundNumber:        gs.RoundNumber,
		TurnCounter:        gs.TurnCounter,
		WallRemaining:      gs.Wall.Remaining(),
		LastDiscarderIndex: gs.LastDiscarderIndex,
		Phase:              phaseName(gs.Phase),
	}
	for i, p := range gs.Players {
		cgs.Players[i] = playerView(p, i == forSeat)
	}
	return cgs
}

// ClientRoomPlayer is one lobby seat.
type ClientRoomPlayer struct {
	SeatIndex int    `json:"seatIndex"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Ready     bool   `json:"ready"`
	IsHost    bool   `json:"isHost"`
	IsBot     bool   `json:"isBot"`
}

// ClientRoom is the lobby roster broadcast on membership changes.
type ClientRoom struct {
	RoomID  string             `json:"roomId"`
	Players []ClientRoomPlayer `json:"players"`
}
