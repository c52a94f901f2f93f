// Package lexicon holds the word list the game checks submissions against.
//
// Words are bucketed by their first three letters in a three-level nested
// map. A lookup descends one level per letter and finishes with an exact
// membership test in the leaf set, so there are no false positives from the
// bucketing itself. Words shorter than three letters are never stored and
// never valid.
package lexicon

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinWordLength is the shortest word that can be stored or played.
const MinWordLength = 3

type leaf map[string]struct{}

// Dictionary is immutable once built and is safe for any number of
// concurrent readers.
type Dictionary struct {
	name     string
	index    map[rune]map[rune]map[rune]leaf
	numWords int
	checksum uint64
}

type buildOptions struct {
	name      string
	uppercase bool
}

type BuildOption func(*buildOptions)

// WithName names the dictionary; the name only shows up in logs.
func WithName(name string) BuildOption {
	return func(o *buildOptions) { o.name = name }
}

// WithUppercase uppercases every line before storing it, so a lowercase
// word list matches uppercase tile letters.
func WithUppercase() BuildOption {
	return func(o *buildOptions) { o.uppercase = true }
}

// Build reads one word per line until EOF.
func Build(r io.Reader, opts ...BuildOption) (*Dictionary, error) {
	return BuildContext(context.Background(), r, opts...)
}

// BuildContext is Build, but it stops early with ctx.Err() if ctx is
// cancelled while reading.
func BuildContext(ctx context.Context, r io.Reader, opts ...BuildOption) (*Dictionary, error) {
	bo := &buildOptions{}
	for _, o := range opts {
		o(bo)
	}
	var upper cases.Caser
	if bo.uppercase {
		upper = cases.Upper(language.Und)
	}

	d := &Dictionary{
		name:  bo.name,
		index: make(map[rune]map[rune]map[rune]leaf),
	}
	hasher := xxhash.New()
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		if lineno%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		word := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if bo.uppercase {
			word = upper.String(word)
		}
		if utf8.RuneCountInString(word) < MinWordLength {
			continue
		}
		if d.insert(word) {
			hasher.Write([]byte(word))
			hasher.Write([]byte{'\n'})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	d.checksum = hasher.Sum64()
	log.Debug().Str("name", d.name).Int("words", d.numWords).
		Uint64("checksum", d.checksum).Msg("lexicon-built")
	return d, nil
}

// prefix splits off the first three runes of word. ok is false if word is
// too short.
func prefix(word string) (a, b, c rune, ok bool) {
	var rs [MinWordLength]rune
	i := 0
	for _, r := range word {
		rs[i] = r
		i++
		if i == MinWordLength {
			return rs[0], rs[1], rs[2], true
		}
	}
	return 0, 0, 0, false
}

func (d *Dictionary) insert(word string) bool {
	a, b, c, ok := prefix(word)
	if !ok {
		return false
	}
	second, ok := d.index[a]
	if !ok {
		second = make(map[rune]map[rune]leaf)
		d.index[a] = second
	}
	third, ok := second[b]
	if !ok {
		third = make(map[rune]leaf)
		second[b] = third
	}
	words, ok := third[c]
	if !ok {
		words = make(leaf)
		third[c] = words
	}
	if _, dup := words[word]; dup {
		return false
	}
	words[word] = struct{}{}
	d.numWords++
	return true
}

func (d *Dictionary) bucket(word string) leaf {
	a, b, c, ok := prefix(word)
	if !ok {
		return nil
	}
	// Indexing a nil map is fine, so a missing level just falls through
	// to an empty leaf.
	return d.index[a][b][c]
}

// Contains reports whether word is exactly a word in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	words := d.bucket(word)
	if words == nil {
		return false
	}
	_, ok := words[word]
	return ok
}

// HasPrefix reports whether any word starts with the first three letters
// of p.
func (d *Dictionary) HasPrefix(p string) bool {
	return len(d.bucket(p)) > 0
}

// WordsWithPrefix returns the words sharing p's three-letter bucket, in no
// particular order.
func (d *Dictionary) WordsWithPrefix(p string) []string {
	words := d.bucket(p)
	ret := make([]string, 0, len(words))
	for w := range words {
		ret = append(ret, w)
	}
	return ret
}

func (d *Dictionary) Name() string {
	return d.name
}

// Len is the number of distinct words stored.
func (d *Dictionary) Len() int {
	return d.numWords
}

// Checksum is an xxhash of the distinct stored words in load order. Two
// dictionaries built from the same list have the same checksum.
func (d *Dictionary) Checksum() uint64 {
	return d.checksum
}
