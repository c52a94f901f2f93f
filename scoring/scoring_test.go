package scoring

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/logatro/tilemapping"
)

func tiles(triples ...any) []tilemapping.Tile {
	// letter, value, multiplier, repeated.
	ret := []tilemapping.Tile{}
	for i := 0; i < len(triples); i += 3 {
		ret = append(ret, tilemapping.Tile{
			ID:         tilemapping.TileID(i / 3),
			Letter:     triples[i].(rune),
			Value:      triples[i+1].(int),
			Multiplier: triples[i+2].(float64),
		})
	}
	return ret
}

func TestScores(t *testing.T) {
	is := is.New(t)
	type scoretest struct {
		name   string
		tiles  []tilemapping.Tile
		length int
		flat   int
	}
	testCases := []scoretest{
		{"BAT", tiles('B', 3, 1.0, 'A', 1, 1.0, 'T', 1, 1.0), 5, 5},
		{"CRATE", tiles('C', 3, 1.0, 'R', 1, 1.0, 'A', 1, 1.0, 'T', 1, 1.0, 'E', 1, 1.0), 63, 7},
		{"QUIZ", tiles('Q', 10, 1.0, 'U', 1, 1.0, 'I', 1, 1.0, 'Z', 10, 1.0), 88, 22},
		{"doubled", tiles('C', 3, 2.0, 'A', 1, 1.0, 'T', 1, 1.0), 10, 10},
		{"fractional", tiles('C', 3, 1.5, 'A', 1, 1.0, 'T', 1, 1.0), 7, 7},
		{"two letters", tiles('A', 1, 1.0, 'T', 1, 1.0), 0, 2},
		{"empty", nil, 0, 0},
	}
	for _, tc := range testCases {
		if got := (LengthBonus{}).Score(tc.tiles); got != tc.length {
			t.Errorf("%v: length-bonus expected %v, got %v", tc.name, tc.length, got)
		}
		if got := (Flat{}).Score(tc.tiles); got != tc.flat {
			t.Errorf("%v: flat expected %v, got %v", tc.name, tc.flat, got)
		}
	}
	is.Equal((LengthBonus{}).Name(), LengthBonusName)
}

func TestNew(t *testing.T) {
	is := is.New(t)
	s, err := New("flat")
	is.NoErr(err)
	is.Equal(s.Name(), FlatName)
	s, err = New("")
	is.NoErr(err)
	is.Equal(s.Name(), LengthBonusName)
	_, err = New("bogus")
	is.True(err != nil)
}
