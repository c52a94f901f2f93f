package tilemapping

import (
	"errors"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// ErrUnknownTile is returned when a tile ID is on neither the rack nor the
// selection, usually a stale reference to a tile already played.
var ErrUnknownTile = errors.New("tile is not on the rack or selected")

// Rack splits the drawn, unplayed tiles into the ones still on the rack and
// the ones selected for the next word. A tile is in exactly one of the two.
type Rack struct {
	tiles    []Tile
	selected []Tile
}

func NewRack() *Rack {
	return &Rack{}
}

// Refill draws from the bag until the rack holds target tiles or the bag is
// empty, and returns how many were drawn.
func (r *Rack) Refill(bag *Bag, target int) int {
	drawn := 0
	for len(r.tiles) < target {
		t, ok := bag.DrawOne()
		if !ok {
			log.Debug().Int("rack", len(r.tiles)).Int("target", target).Msg("bag-exhausted")
			break
		}
		r.tiles = append(r.tiles, t)
		drawn++
	}
	return drawn
}

// Toggle moves the tile with the given ID from the rack to the end of the
// selection, or from the selection back to the end of the rack.
func (r *Rack) Toggle(id TileID) error {
	if idx := indexOf(r.tiles, id); idx >= 0 {
		t := r.tiles[idx]
		r.tiles = append(r.tiles[:idx], r.tiles[idx+1:]...)
		r.selected = append(r.selected, t)
		return nil
	}
	if idx := indexOf(r.selected, id); idx >= 0 {
		t := r.selected[idx]
		r.selected = append(r.selected[:idx], r.selected[idx+1:]...)
		r.tiles = append(r.tiles, t)
		return nil
	}
	return ErrUnknownTile
}

// ResetSelection puts every selected tile back on the rack. It reports
// whether anything moved; a second call in a row never does.
func (r *Rack) ResetSelection() bool {
	if len(r.selected) == 0 {
		return false
	}
	r.tiles = append(r.tiles, r.selected...)
	r.selected = nil
	return true
}

// Shuffle only changes the order the rack tiles are shown in.
func (r *Rack) Shuffle(rng *frand.RNG) {
	rng.Shuffle(len(r.tiles), func(i, j int) {
		r.tiles[i], r.tiles[j] = r.tiles[j], r.tiles[i]
	})
}

// TakeSelected removes the selection and hands it back.
func (r *Rack) TakeSelected() []Tile {
	taken := r.selected
	r.selected = nil
	return taken
}

// SelectedWord spells the selection in the order it was picked.
func (r *Rack) SelectedWord() string {
	return Word(r.selected)
}

// Tiles returns a copy of the tiles on the rack, in display order.
func (r *Rack) Tiles() []Tile {
	ret := make([]Tile, len(r.tiles))
	copy(ret, r.tiles)
	return ret
}

// Selected returns a copy of the selection, in selection order.
func (r *Rack) Selected() []Tile {
	ret := make([]Tile, len(r.selected))
	copy(ret, r.selected)
	return ret
}

func (r *Rack) NumTiles() int {
	return len(r.tiles)
}

func (r *Rack) NumSelected() int {
	return len(r.selected)
}

// FindOnRack returns the ID of the first rack tile showing letter.
func (r *Rack) FindOnRack(letter rune) (TileID, bool) {
	for _, t := range r.tiles {
		if t.Letter == letter {
			return t.ID, true
		}
	}
	return 0, false
}

// String returns the rack letters, then the selection after a slash.
func (r *Rack) String() string {
	if len(r.selected) == 0 {
		return Word(r.tiles)
	}
	return Word(r.tiles) + "/" + Word(r.selected)
}
