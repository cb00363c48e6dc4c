package mahjong

// Phase is the round-level lifecycle stage of a GameState.
type Phase uint8

const (
	Waiting Phase = iota
	Playing
	Finished
)

// NoPlayer is the sentinel value for "no current player" / "no last
// discarder", used between rounds and at game end.
const NoPlayer = -1

// GameState is the full authoritative state of one hand in progress.
// Every move applicator in this package is a pure function of a
// GameState, returning a new GameState (or the same value unchanged on
// rejection) rather than mutating the caller's copy.
type GameState struct {
	Players            [4]*Player
	Wall               *Wall
	CurrentPlayer      int
	RoundWind          Wind
	RoundNumber        int
	TurnCounter        int
	LastDiscard        *Tile
	LastDiscarderIndex int
	Phase              Phase
}

// NewGameState builds an empty, pre-deal GameState for four named
// seats with the given round wind and round number.
func NewGameState(wall *Wall, roundWind Wind, roundNumber int) *GameState {
	gs := &GameState{
		Wall:               wall,
		CurrentPlayer:      NoPlayer,
		RoundWind:          roundWind,
		RoundNumber:        roundNumber,
		LastDiscarderIndex: NoPlayer,
		Phase:              Waiting,
	}
	for i := range gs.Players {
		gs.Players[i] = NewPlayer("", "", Wind(i))
	}
	return gs
}

// Clone deep-copies the state so applicators never alias the input.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Wall = gs.Wall.Clone()
	for i, p := range gs.Players {
		cp.Players[i] = p.clone()
	}
	if gs.LastDiscard != nil {
		d := *gs.LastDiscard
		cp.LastDiscard = &d
	}
	return &cp
}

// Dealer is the seat currently holding east wind.
func (gs *GameState) Dealer() int {
	for i, p := range gs.Players {
		if p.SeatWind == East {
			return i
		}
	}
	return 0
}

// TotalTileCount sums tiles across the wall and every player's hand,
// discards, melds, and revealed bonuses — used by tests to verify no
// tile is ever created or lost as state transitions are applied.
func (gs *GameState) TotalTileCount() int {
	total := gs.Wall.Remaining()
	for _, p := range gs.Players {
		total += len(p.Hand) + len(p.Discards) + len(p.RevealedBonuses)
		for _, m := range p.Melds {
			total += len(m.Tiles)
		}
	}
	if gs.LastDiscard != nil {
		// lastDiscard also sits in the discarder's pile until claimed,
		// so it is not counted twice here.
		_ = gs.LastDiscard
	}
	return total
}
