package mahjong

import "math/rand"

// GenerateAll returns the full 144-tile multiset: 108 suit tiles (4
// copies of each value 1..9 across 3 suits), 16 wind tiles (4 copies of
// each direction), 12 dragon tiles (4 copies of each color), and 8
// bonus tiles (1 copy of each flower/animal value 1..4).
func GenerateAll() []Tile {
	tiles := make([]Tile, 0, 144)
	for _, suit := range []Suit{Bamboo, Character, Dot} {
		for value := 1; value <= 9; value++ {
			for copyIdx := 0; copyIdx < 4; copyIdx++ {
				tiles = append(tiles, newTile(SuitDef(suit, value)))
			}
		}
	}
	for _, wind := range []Wind{East, South, West, North} {
		for copyIdx := 0; copyIdx < 4; copyIdx++ {
			tiles = append(tiles, newTile(WindDef(wind)))
		}
	}
	for _, dragon := range []DragonColor{Red, Green, White} {
		for copyIdx := 0; copyIdx < 4; copyIdx++ {
			tiles = append(tiles, newTile(DragonDef(dragon)))
		}
	}
	for _, bonus := range []BonusKind{Flower, Animal} {
		for value := 1; value <= 4; value++ {
			tiles = append(tiles, newTile(BonusDef(bonus, value)))
		}
	}
	return tiles
}

// Wall is the shuffled draw pile, consumed as a deque: normal draws pop
// the head, bonus and kong replacements pop the tail. Both ends share
// one backing slice so every tile keeps the identity it was shuffled
// with, regardless of which end eventually deals it.
type Wall struct {
	tiles []Tile
	head  int
	tail  int // exclusive
}

// NewWall builds a freshly shuffled 144-tile wall using rng, which
// callers inject explicitly so tests can reproduce a deal.
func NewWall(rng *rand.Rand) *Wall {
	tiles := GenerateAll()
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return &Wall{tiles: tiles, head: 0, tail: len(tiles)}
}

// Remaining is the number of undrawn tiles.
func (w *Wall) Remaining() int {
	return w.tail - w.head
}

// DrawHead removes and returns the tile at the head of the deque (a
// normal turn draw), reporting false if the wall is empty.
func (w *Wall) DrawHead() (Tile, bool) {
	if w.Remaining() <= 0 {
		return Tile{}, false
	}
	t := w.tiles[w.head]
	w.head++
	return t, true
}

// DrawTail removes and returns the tile at the tail of the deque (a
// bonus or kong replacement), reporting false if the wall is empty.
func (w *Wall) DrawTail() (Tile, bool) {
	if w.Remaining() <= 0 {
		return Tile{}, false
	}
	w.tail--
	return w.tiles[w.tail], true
}

// Clone deep-copies the wall so applicators can produce a new
// GameState without aliasing the caller's wall.
func (w *Wall) Clone() *Wall {
	cp := make([]Tile, len(w.tiles))
	copy(cp, w.tiles)
	return &Wall{tiles: cp, head: w.head, tail: w.tail}
}
