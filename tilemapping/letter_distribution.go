package tilemapping

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/domino14/logatro/cache"
	"github.com/domino14/logatro/config"
)

//go:embed distributions/english.csv
var englishCSV []byte

// LetterSpec is one row of a letter distribution.
type LetterSpec struct {
	Letter     rune
	Count      int
	Value      int
	Multiplier float64
}

// LetterDistribution says how many tiles of each letter go into a fresh bag,
// and what each is worth.
type LetterDistribution struct {
	Name       string
	letters    []LetterSpec
	numLetters int
}

// ScanLetterDistribution reads CSV rows of letter,quantity,value[,multiplier].
// The multiplier defaults to 1.
func ScanLetterDistribution(data io.Reader) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	ld := &LetterDistribution{}
	seen := map[rune]bool{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("letter distribution row %v: need at least 3 fields", record)
		}
		letter, size := utf8.DecodeRuneInString(record[0])
		if size != len(record[0]) || letter == utf8.RuneError {
			return nil, fmt.Errorf("letter distribution: bad letter %q", record[0])
		}
		if seen[letter] {
			return nil, fmt.Errorf("letter distribution: duplicate letter %c", letter)
		}
		seen[letter] = true
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		p, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		if n < 0 || p <= 0 {
			return nil, fmt.Errorf("letter distribution: bad count/value for %c", letter)
		}
		mult := 1.0
		if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
			mult, err = strconv.ParseFloat(record[3], 64)
			if err != nil {
				return nil, err
			}
		}
		ld.letters = append(ld.letters, LetterSpec{Letter: letter, Count: n, Value: p, Multiplier: mult})
		ld.numLetters += n
	}
	return ld, nil
}

// EnglishLetterDistribution is the built-in 26-letter distribution.
func EnglishLetterDistribution() *LetterDistribution {
	ld, err := ScanLetterDistribution(bytes.NewReader(englishCSV))
	if err != nil {
		// The embedded file is part of the build.
		panic(err)
	}
	ld.Name = "english"
	return ld
}

func loadDistribution(cfg *config.Config, key string) (any, error) {
	name := strings.TrimPrefix(key, "letterdist:")
	if strings.EqualFold(name, "english") {
		return EnglishLetterDistribution(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ld, err := ScanLetterDistribution(f)
	if err != nil {
		return nil, err
	}
	ld.Name = name
	return ld, nil
}

// NamedLetterDistribution returns "english", or reads the CSV at the path
// given as name. Results are cached.
func NamedLetterDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	obj, err := cache.Load(cfg, "letterdist:"+name, loadDistribution)
	if err != nil {
		return nil, err
	}
	return obj.(*LetterDistribution), nil
}

// Letters returns a copy of the distribution's rows.
func (ld *LetterDistribution) Letters() []LetterSpec {
	ret := make([]LetterSpec, len(ld.letters))
	copy(ret, ld.letters)
	return ret
}

// NumLetters is the total number of tiles in a full bag.
func (ld *LetterDistribution) NumLetters() int {
	return ld.numLetters
}
