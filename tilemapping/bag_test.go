package tilemapping

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/logatro/config"
)

func testRNG() *frand.RNG {
	var seed [32]byte
	copy(seed[:], "tilemapping-test-seed-0123456789")
	return frand.NewCustom(seed[:], 1024, 12)
}

func TestEnglishDistribution(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	is.Equal(len(ld.Letters()), 26)
	is.Equal(ld.NumLetters(), 196)

	byLetter := map[rune]LetterSpec{}
	for _, l := range ld.Letters() {
		byLetter[l.Letter] = l
	}
	is.Equal(byLetter['A'], LetterSpec{Letter: 'A', Count: 16, Value: 1, Multiplier: 1})
	is.Equal(byLetter['E'].Count, 24)
	is.Equal(byLetter['Q'], LetterSpec{Letter: 'Q', Count: 2, Value: 10, Multiplier: 1})
	is.Equal(byLetter['K'].Value, 5)
	is.Equal(byLetter['V'].Count, 3)
}

func TestScanLetterDistribution(t *testing.T) {
	is := is.New(t)
	ld, err := ScanLetterDistribution(strings.NewReader("A,2,1\nB,1,3,2.5\n"))
	is.NoErr(err)
	is.Equal(ld.NumLetters(), 3)
	is.Equal(ld.Letters()[1].Multiplier, 2.5)
	is.Equal(ld.Letters()[0].Multiplier, 1.0)

	for _, bad := range []string{"A,2\n", "AB,1,1\n", "A,x,1\n", "A,1,0\n", "A,1,1\nA,1,1\n", "A,1,1,zz\n"} {
		_, err := ScanLetterDistribution(strings.NewReader(bad))
		is.True(err != nil)
	}
}

func TestNamedLetterDistribution(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	ld, err := NamedLetterDistribution(cfg, "english")
	is.NoErr(err)
	is.Equal(ld.Name, "english")
	_, err = NamedLetterDistribution(cfg, "/nonexistent/dist.csv")
	is.True(err != nil)
}

func TestBagDrawsEverythingOnce(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	bag := ld.MakeBag(testRNG())
	is.Equal(bag.TilesRemaining(), 196)
	is.Equal(bag.InitialSize(), 196)

	seen := map[TileID]bool{}
	counts := map[rune]int{}
	for {
		tile, ok := bag.DrawOne()
		if !ok {
			break
		}
		is.True(!seen[tile.ID])
		seen[tile.ID] = true
		counts[tile.Letter]++
	}
	is.Equal(len(seen), 196)
	is.Equal(bag.TilesRemaining(), 0)
	for _, l := range ld.Letters() {
		is.Equal(counts[l.Letter], l.Count)
	}
	_, ok := bag.DrawOne()
	is.True(!ok)
}

func TestBagSameSeedSameDraws(t *testing.T) {
	ld := EnglishLetterDistribution()
	b1 := ld.MakeBag(testRNG())
	b2 := ld.MakeBag(testRNG())
	assert.Equal(t, b1.DrawAtMost(20), b2.DrawAtMost(20))
}

func TestDrawAtMost(t *testing.T) {
	is := is.New(t)
	ld, err := ScanLetterDistribution(strings.NewReader("A,3,1\nB,2,3\n"))
	is.NoErr(err)
	bag := ld.MakeBag(testRNG())
	is.Equal(len(bag.DrawAtMost(4)), 4)
	is.Equal(bag.TilesRemaining(), 1)
	is.Equal(len(bag.DrawAtMost(4)), 1)
	is.Equal(len(bag.DrawAtMost(4)), 0)
}

func TestPeekAndLetterCounts(t *testing.T) {
	is := is.New(t)
	ld, err := ScanLetterDistribution(strings.NewReader("A,3,1\nB,2,3\n"))
	is.NoErr(err)
	bag := ld.MakeBag(testRNG())
	is.Equal(bag.LetterCounts(), map[rune]int{'A': 3, 'B': 2})
	peek := bag.Peek()
	is.Equal(len(peek), 5)
	peek[0] = Tile{}
	is.Equal(bag.TilesRemaining(), 5)
}
