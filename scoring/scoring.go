// Package scoring turns a valid word's tiles into points.
package scoring

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/domino14/logatro/tilemapping"
)

const (
	LengthBonusName = "length-bonus"
	FlatName        = "flat"
)

// Scorer scores a word that the dictionary has already accepted.
type Scorer interface {
	Name() string
	Score(tiles []tilemapping.Tile) int
}

func baseAndMultiplier(tiles []tilemapping.Tile) (int, float64) {
	sum := lo.SumBy(tiles, func(t tilemapping.Tile) int { return t.Value })
	mult := lo.ProductBy(tiles, func(t tilemapping.Tile) float64 { return t.Multiplier })
	return sum, mult
}

// LengthBonus multiplies the tile sum by every tile multiplier and by
// (n-2)^2, so a three-letter word scores its face value and each extra
// letter grows the bonus quadratically.
type LengthBonus struct{}

func (LengthBonus) Name() string { return LengthBonusName }

func (LengthBonus) Score(tiles []tilemapping.Tile) int {
	sum, mult := baseAndMultiplier(tiles)
	bonus := max(0, len(tiles)-2)
	return int(math.Floor(float64(sum) * mult * float64(bonus*bonus)))
}

// Flat is the tile sum times every tile multiplier, with no length bonus.
type Flat struct{}

func (Flat) Name() string { return FlatName }

func (Flat) Score(tiles []tilemapping.Tile) int {
	sum, mult := baseAndMultiplier(tiles)
	return int(math.Floor(float64(sum) * mult))
}

// New returns the scorer with the given config name.
func New(name string) (Scorer, error) {
	switch name {
	case LengthBonusName, "":
		return LengthBonus{}, nil
	case FlatName:
		return Flat{}, nil
	}
	return nil, fmt.Errorf("unknown scoring variant %q", name)
}
