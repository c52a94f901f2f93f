// Package movegen finds the words a rack can make. It backs the wordless
// (deadlock) check that runs after every refill, hints, and the autoplay bot.
package movegen

import (
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/logatro/tilemapping"
)

// TripleLength is the only word length the wordless check looks at.
const TripleLength = 3

// Lexicon is anything that can say whether a string is a word.
type Lexicon interface {
	Contains(word string) bool
}

// WordFinder can also list the words that share a three-letter prefix.
type WordFinder interface {
	Lexicon
	WordsWithPrefix(p string) []string
}

// Play is a word together with the tiles, in order, that spell it.
type Play struct {
	Tiles []tilemapping.Tile
	Word  string
}

// permutations calls fn with every ordered arrangement of k distinct tiles,
// stopping as soon as fn returns false.
func permutations(tiles []tilemapping.Tile, k int, fn func(idxs []int) bool) {
	if k > len(tiles) || k <= 0 {
		return
	}
	gen := combin.NewPermutationGenerator(len(tiles), k)
	idxs := make([]int, k)
	for gen.Next() {
		gen.Permutation(idxs)
		if !fn(idxs) {
			return
		}
	}
}

func spell(tiles []tilemapping.Tile, idxs []int, buf []rune) string {
	buf = buf[:0]
	for _, i := range idxs {
		buf = append(buf, tiles[i].Letter)
	}
	return string(buf)
}

// Wordless reports whether no ordering of any three distinct tiles spells a
// word. Fewer than three tiles is always wordless.
//
// Only three-letter words are tried. A rack that can only make longer words
// still counts as wordless; that keeps the check to at most n*(n-1)*(n-2)
// lookups.
func Wordless(tiles []tilemapping.Tile, lex Lexicon) bool {
	found := false
	buf := make([]rune, 0, TripleLength)
	probes := 0
	permutations(tiles, TripleLength, func(idxs []int) bool {
		probes++
		if lex.Contains(spell(tiles, idxs, buf)) {
			found = true
			return false
		}
		return true
	})
	log.Debug().Int("probes", probes).Bool("wordless", !found).
		Str("rack", tilemapping.Word(tiles)).Msg("wordless-check")
	return !found
}

// PlayableTriples lists every distinct three-letter word the tiles can make,
// sorted.
func PlayableTriples(tiles []tilemapping.Tile, lex WordFinder) []string {
	plays := generate(tiles, lex, TripleLength, TripleLength)
	words := make([]string, len(plays))
	for i, p := range plays {
		words[i] = p.Word
	}
	sort.Strings(words)
	return words
}

// GenerateWords returns one play for every distinct word of at least
// minLength letters that the tiles can spell, shortest first and then in
// alphabetical order.
func GenerateWords(tiles []tilemapping.Tile, lex WordFinder, minLength int) []Play {
	return generate(tiles, lex, max(minLength, TripleLength), len(tiles))
}

// tilesFor picks, for each letter of word in turn, the first unused tile
// with that letter.
func tilesFor(word string, tiles []tilemapping.Tile) ([]tilemapping.Tile, bool) {
	used := make([]bool, len(tiles))
	ret := make([]tilemapping.Tile, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		found := false
		for i, t := range tiles {
			if !used[i] && t.Letter == r {
				used[i] = true
				ret = append(ret, t)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return ret, true
}

// generate only enumerates three-tile prefixes. Every word the tiles can
// spell starts with one of them, so the candidates are the words in those
// prefix buckets that the remaining tiles can finish. The work is bounded
// by n*(n-1)*(n-2) prefixes plus the size of the buckets they hit.
func generate(tiles []tilemapping.Tile, lex WordFinder, minLength, maxLength int) []Play {
	var plays []Play
	seen := map[string]bool{}
	prefixes := map[string]bool{}
	buf := make([]rune, 0, TripleLength)
	permutations(tiles, TripleLength, func(idxs []int) bool {
		p := spell(tiles, idxs, buf)
		if prefixes[p] {
			return true
		}
		prefixes[p] = true
		for _, w := range lex.WordsWithPrefix(p) {
			n := utf8.RuneCountInString(w)
			if n < minLength || n > maxLength || seen[w] {
				continue
			}
			ptiles, ok := tilesFor(w, tiles)
			if !ok {
				continue
			}
			seen[w] = true
			plays = append(plays, Play{Tiles: ptiles, Word: w})
		}
		return true
	})
	sort.Slice(plays, func(i, j int) bool {
		if len(plays[i].Tiles) != len(plays[j].Tiles) {
			return len(plays[i].Tiles) < len(plays[j].Tiles)
		}
		return plays[i].Word < plays[j].Word
	})
	log.Debug().Int("prefixes", len(prefixes)).Int("plays", len(plays)).
		Str("rack", tilemapping.Word(tiles)).Msg("generate-words")
	return plays
}
