package game

import (
	"encoding/hex"
	"fmt"
	"io"

	"lukechampine.com/frand"

	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/lexicon"
	"github.com/domino14/logatro/scoring"
	"github.com/domino14/logatro/tilemapping"
)

type options struct {
	dictionary   *lexicon.Dictionary
	wordList     io.Reader
	lexiconName  string
	distribution *tilemapping.LetterDistribution
	seed         *[32]byte
	scorer       scoring.Scorer
	rackSize     int
}

// Option overrides something the config would otherwise decide.
type Option func(*options)

// WithDictionary uses an already built dictionary. Many sessions can share
// one.
func WithDictionary(d *lexicon.Dictionary) Option {
	return func(o *options) { o.dictionary = d }
}

// WithWordList builds the session's dictionary from r during initialization.
func WithWordList(r io.Reader) Option {
	return func(o *options) { o.wordList = r }
}

// WithLexicon loads the named word list from the lexicon path instead of
// the configured default.
func WithLexicon(name string) Option {
	return func(o *options) { o.lexiconName = name }
}

func WithLetterDistribution(ld *tilemapping.LetterDistribution) Option {
	return func(o *options) { o.distribution = ld }
}

// WithSeed makes the session's draws and shuffles reproducible.
func WithSeed(seed [32]byte) Option {
	return func(o *options) { o.seed = &seed }
}

func WithScorer(s scoring.Scorer) Option {
	return func(o *options) { o.scorer = s }
}

func WithRackSize(n int) Option {
	return func(o *options) { o.rackSize = n }
}

// resolve fills in whatever the options left open from the config.
func resolve(cfg *config.Config, opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.lexiconName == "" {
		o.lexiconName = cfg.GetString(config.ConfigDefaultLexicon)
	}
	if o.rackSize == 0 {
		o.rackSize = cfg.GetInt(config.ConfigRackSize)
	}
	if o.rackSize < 1 {
		return nil, fmt.Errorf("rack size must be positive, got %d", o.rackSize)
	}
	if o.scorer == nil {
		s, err := scoring.New(cfg.GetString(config.ConfigScoring))
		if err != nil {
			return nil, err
		}
		o.scorer = s
	}
	if o.distribution == nil {
		ld, err := tilemapping.NamedLetterDistribution(cfg, cfg.GetString(config.ConfigLetterDistribution))
		if err != nil {
			return nil, err
		}
		o.distribution = ld
	}
	if o.seed == nil {
		seed, err := ParseSeed(cfg.GetString(config.ConfigSeed))
		if err != nil {
			return nil, err
		}
		o.seed = &seed
	}
	return o, nil
}

// ParseSeed decodes a hex seed, or makes a fresh random one if s is empty.
func ParseSeed(s string) ([32]byte, error) {
	var seed [32]byte
	if s == "" {
		return frand.Entropy256(), nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("bad seed: %w", err)
	}
	if len(b) != len(seed) {
		return seed, fmt.Errorf("seed must be %d bytes, got %d", len(seed), len(b))
	}
	copy(seed[:], b)
	return seed, nil
}
