// Package mahjong implements the Singapore-style four-player Mahjong
// engine: tile model and wall, hand analysis, move application, bot
// policy, and Singapore tai scoring. Every function below that
// represents a move applicator is pure: it takes a GameState and
// returns a new one (or the same value unmodified on rejection), and
// performs no I/O.
package mahjong

import "github.com/google/uuid"

// Kind discriminates the four tile families.
type Kind uint8

const (
	KindSuit Kind = iota
	KindWind
	KindDragon
	KindBonus
)

type Suit uint8

const (
	Bamboo Suit = iota
	Character
	Dot
)

type Wind uint8

const (
	East Wind = iota
	South
	West
	North
)

// Next returns the wind one step counter-clockwise, the rotation order
// used for both seat-wind rotation and round-wind rotation.
func (w Wind) Next() Wind {
	return (w + 1) % 4
}

func (w Wind) String() string {
	return [...]string{"east", "south", "west", "north"}[w]
}

type DragonColor uint8

const (
	Red DragonColor = iota
	Green
	White
)

type BonusKind uint8

const (
	Flower BonusKind = iota
	Animal
)

// Definition is the matchable identity of a tile: suit/value, wind,
// dragon color, or bonus kind/value. Two tiles with equal Definitions
// are interchangeable for every rule in the game; only the Tile's ID
// distinguishes them for animation continuity.
type Definition struct {
	Kind   Kind
	Suit   Suit
	Value  int // 1..9 for suits, 1..4 for bonus
	Wind   Wind
	Dragon DragonColor
	Bonus  BonusKind
}

func SuitDef(suit Suit, value int) Definition {
	return Definition{Kind: KindSuit, Suit: suit, Value: value}
}

func WindDef(wind Wind) Definition {
	return Definition{Kind: KindWind, Wind: wind}
}

func DragonDef(color DragonColor) Definition {
	return Definition{Kind: KindDragon, Dragon: color}
}

func BonusDef(kind BonusKind, value int) Definition {
	return Definition{Kind: KindBonus, Bonus: kind, Value: value}
}

// GroupKey returns the 0..33 bucket index used to count suit/wind/dragon
// tiles for hand decomposition. Bonus tiles have no bucket (they never
// participate in a set) and return -1.
func (d Definition) GroupKey() int {
	switch d.Kind {
	case KindSuit:
		return int(d.Suit)*9 + (d.Value - 1)
	case KindWind:
		return 27 + int(d.Wind)
	case KindDragon:
		return 31 + int(d.Dragon)
	default:
		return -1
	}
}

// displaySuitOrder fixes the character/bamboo/dot ordering used for
// client-facing sort, independent of the internal Suit enum's layout.
var displaySuitOrder = map[Suit]int{Character: 0, Bamboo: 1, Dot: 2}

// TileOrder gives the total ordering clients rely on to display hands
// deterministically: suits (character, bamboo, dot) by value, then
// winds E/S/W/N, then dragons R/G/W, then flowers, then animals.
func TileOrder(d Definition) int {
	switch d.Kind {
	case KindSuit:
		return displaySuitOrder[d.Suit]*9 + (d.Value - 1)
	case KindWind:
		return 100 + int(d.Wind)
	case KindDragon:
		return 200 + int(d.Dragon)
	case KindBonus:
		if d.Bonus == Flower {
			return 300 + (d.Value - 1)
		}
		return 310 + (d.Value - 1)
	}
	return 1000
}

// Tile is (stable id, definition, face-up flag). Tiles compare by ID
// for set membership and by Definition for matching.
type Tile struct {
	ID     string
	Def    Definition
	FaceUp bool
}

func newTile(def Definition) Tile {
	return Tile{ID: uuid.NewString(), Def: def, FaceUp: false}
}

// SameDefinition reports whether two tiles match for claim purposes,
// independent of identity.
func SameDefinition(a, b Tile) bool {
	return a.Def == b.Def
}
