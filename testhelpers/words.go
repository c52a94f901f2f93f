// Package testhelpers has fixtures shared by tests across packages.
package testhelpers

import (
	"strings"

	"github.com/domino14/logatro/lexicon"
)

// SmallWordList is a tiny word list. It deliberately includes a couple of
// short lines that must be skipped, and no word that can be made only from
// Q, Z and X.
const SmallWordList = `A
AB
DA
ACT
BAT
CAT
TAB
TAR
RAT
ART
ACE
EAT
TEA
ATE
ETA
CARE
RACE
ACRE
CART
TEAR
RATE
CRATE
TRACE
REACT
CATER
CARET
TRACES
CRATES
`

// SmallDictionary builds SmallWordList. It panics on error, since the input
// is a constant.
func SmallDictionary() *lexicon.Dictionary {
	d, err := lexicon.Build(strings.NewReader(SmallWordList), lexicon.WithName("small"))
	if err != nil {
		panic(err)
	}
	return d
}

// FixedSeed is a 32-byte seed for reproducible bags.
func FixedSeed() [32]byte {
	var seed [32]byte
	copy(seed[:], "logatro-test-seed-0123456789abcd")
	return seed
}
