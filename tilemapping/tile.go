// Package tilemapping deals with tiles: what letters exist, how many of each
// go into the bag, drawing them, and the rack they are drawn onto.
package tilemapping

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TileID tells apart tiles that otherwise look the same, like two As.
type TileID int

// Tile is a single letter tile. Tiles are values and never change once the
// bag has been made; rack operations go by ID, not by letter.
type Tile struct {
	ID         TileID  `json:"id" yaml:"id"`
	Letter     rune    `json:"letter" yaml:"letter"`
	Value      int     `json:"value" yaml:"value"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

func (t Tile) String() string {
	if t.Multiplier != 1 {
		return fmt.Sprintf("%c%d(x%g)#%d", t.Letter, t.Value, t.Multiplier, t.ID)
	}
	return fmt.Sprintf("%c%d#%d", t.Letter, t.Value, t.ID)
}

// MarshalJSON writes the letter as a string rather than a code point.
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         TileID  `json:"id"`
		Letter     string  `json:"letter"`
		Value      int     `json:"value"`
		Multiplier float64 `json:"multiplier"`
	}{t.ID, string(t.Letter), t.Value, t.Multiplier})
}

// Word spells out the letters of tiles in order.
func Word(tiles []Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}

func indexOf(tiles []Tile, id TileID) int {
	for i, t := range tiles {
		if t.ID == id {
			return i
		}
	}
	return -1
}
