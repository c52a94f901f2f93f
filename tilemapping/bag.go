package tilemapping

import (
	"lukechampine.com/frand"
)

// A Bag is the bag o'tiles! Tiles only ever leave it.
type Bag struct {
	tiles      []Tile
	initial    int
	randSource *frand.RNG
}

// MakeBag fills a bag from the distribution, giving every tile a fresh ID
// starting at zero.
func (ld *LetterDistribution) MakeBag(rng *frand.RNG) *Bag {
	b := &Bag{
		tiles:      make([]Tile, 0, ld.numLetters),
		randSource: rng,
	}
	id := TileID(0)
	for _, ls := range ld.letters {
		for i := 0; i < ls.Count; i++ {
			b.tiles = append(b.tiles, Tile{
				ID:         id,
				Letter:     ls.Letter,
				Value:      ls.Value,
				Multiplier: ls.Multiplier,
			})
			id++
		}
	}
	b.initial = len(b.tiles)
	return b
}

// DrawOne removes a uniformly random tile from the bag. ok is false if the
// bag is empty; that is not an error.
func (b *Bag) DrawOne() (t Tile, ok bool) {
	n := len(b.tiles)
	if n == 0 {
		return Tile{}, false
	}
	idx := b.randSource.Intn(n)
	t = b.tiles[idx]
	// Order in the bag means nothing, so swap the last tile into the hole.
	b.tiles[idx] = b.tiles[n-1]
	b.tiles = b.tiles[:n-1]
	return t, true
}

// DrawAtMost draws up to n tiles. It can draw fewer if there are fewer than
// n left, and even draw no tiles at all :o
func (b *Bag) DrawAtMost(n int) []Tile {
	drawn := make([]Tile, 0, n)
	for i := 0; i < n; i++ {
		t, ok := b.DrawOne()
		if !ok {
			break
		}
		drawn = append(drawn, t)
	}
	return drawn
}

func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

// InitialSize is how many tiles the bag started with.
func (b *Bag) InitialSize() int {
	return b.initial
}

// Peek returns a copy of what is left, in no particular order.
func (b *Bag) Peek() []Tile {
	ret := make([]Tile, len(b.tiles))
	copy(ret, b.tiles)
	return ret
}

// LetterCounts tallies the remaining tiles by letter.
func (b *Bag) LetterCounts() map[rune]int {
	counts := make(map[rune]int)
	for _, t := range b.tiles {
		counts[t.Letter]++
	}
	return counts
}
