// Package game runs a single-player word game session: tiles are drawn from
// a bag onto a rack, the player selects some of them, and a selection that
// spells a dictionary word scores and gets replaced from the bag.
//
// A Session is the only owner of its bag, rack and score. Every intent takes
// the session lock for its whole read-modify-write, so intents from any
// number of goroutines are applied one at a time.
package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/lexicon"
	"github.com/domino14/logatro/movegen"
	"github.com/domino14/logatro/scoring"
	"github.com/domino14/logatro/tilemapping"
)

// PlayRecord is an accepted word.
type PlayRecord struct {
	Word  string             `json:"word" yaml:"word"`
	Score int                `json:"score" yaml:"score"`
	Tiles []tilemapping.Tile `json:"tiles" yaml:"tiles"`
}

type Session struct {
	mu sync.Mutex

	cfg  *config.Config
	opts *options

	lex      *lexicon.Dictionary
	bag      *tilemapping.Bag
	rack     *tilemapping.Rack
	rng      *frand.RNG
	scorer   scoring.Scorer
	rackSize int

	score     int
	wordless  bool
	played    []tilemapping.Tile
	discarded []tilemapping.Tile
	history   []PlayRecord

	isReady bool
	initErr error
	ready   chan struct{}
	cancel  context.CancelFunc

	observers      map[int]Observer
	nextObserverID int
}

// New creates a session and starts loading it in the background. The
// session accepts intents once Ready is closed; Wait blocks until then.
// Errors returned here are configuration errors; loading errors come back
// from Wait.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	o, err := resolve(cfg, opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		cfg:       cfg,
		opts:      o,
		rack:      tilemapping.NewRack(),
		rng:       frand.NewCustom(o.seed[:], 1024, 12),
		scorer:    o.scorer,
		rackSize:  o.rackSize,
		ready:     make(chan struct{}),
		cancel:    cancel,
		observers: make(map[int]Observer),
	}
	log.Debug().Hex("seed", o.seed[:]).Int("rack-size", o.rackSize).
		Str("scoring", o.scorer.Name()).Msg("new-session")
	go s.initialize(ctx)
	return s, nil
}

func (s *Session) loadDictionary(ctx context.Context) (*lexicon.Dictionary, error) {
	switch {
	case s.opts.dictionary != nil:
		return s.opts.dictionary, nil
	case s.opts.wordList != nil:
		var bopts []lexicon.BuildOption
		if s.cfg.GetBool(config.ConfigUppercaseLexicon) {
			bopts = append(bopts, lexicon.WithUppercase())
		}
		return lexicon.BuildContext(ctx, s.opts.wordList, bopts...)
	}
	return lexicon.Get(s.cfg, s.opts.lexiconName)
}

// initialize loads the dictionary, fills the bag, and draws the first rack,
// in that order. The session only becomes ready once all three are done.
func (s *Session) initialize(ctx context.Context) {
	defer close(s.ready)

	lex, err := s.loadDictionary(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Error().Err(err).Msg("session-init-failed")
		s.mu.Lock()
		s.initErr = err
		s.mu.Unlock()
		return
	}
	bag := s.opts.distribution.MakeBag(s.rng)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lex = lex
	s.bag = bag
	s.refill()
	s.isReady = true
	log.Debug().Str("rack", s.rack.String()).Int("bag", bag.TilesRemaining()).
		Bool("wordless", s.wordless).Msg("session-ready")
	s.notify(FieldReady | FieldRack | FieldWordless)
}

// Ready is closed once initialization finishes, whether or not it worked.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the session is ready and returns the loading error, if
// any.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.initErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close abandons initialization if it is still running. A closed session
// that was already ready keeps working; there is nothing else to release.
func (s *Session) Close() {
	s.cancel()
}

// checkReady must be called with the lock held.
func (s *Session) checkReady() error {
	if s.isReady {
		return nil
	}
	if s.initErr != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, s.initErr)
	}
	return ErrNotReady
}

// refill tops the rack back up and recomputes the wordless flag. It returns
// the fields that changed. Call with the lock held.
func (s *Session) refill() Field {
	var fields Field
	if s.rack.Refill(s.bag, s.rackSize) > 0 {
		fields |= FieldRack
	}
	wordless := movegen.Wordless(s.rack.Tiles(), s.lex)
	if wordless != s.wordless {
		s.wordless = wordless
		fields |= FieldWordless
	}
	return fields
}

// Tap moves a tile between the rack and the selection. An ID on neither is
// ErrUnknownTile and changes nothing.
func (s *Session) Tap(id tilemapping.TileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return err
	}
	if err := s.rack.Toggle(id); err != nil {
		log.Debug().Int("tile-id", int(id)).Msg("tile-not-found")
		return err
	}
	s.notify(FieldRack | FieldSelected)
	return nil
}

// SelectLetters taps, for each letter in order, the first matching tile
// still on the rack. Either every letter is found and selected, or nothing
// changes.
func (s *Session) SelectLetters(letters string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return err
	}
	avail := s.rack.Tiles()
	picks := make([]tilemapping.TileID, 0, len(letters))
	for _, l := range letters {
		tile, idx, ok := lo.FindIndexOf(avail, func(t tilemapping.Tile) bool {
			return t.Letter == l
		})
		if !ok {
			return fmt.Errorf("%w: no %c on the rack", ErrUnknownTile, l)
		}
		picks = append(picks, tile.ID)
		avail = append(avail[:idx], avail[idx+1:]...)
	}
	if len(picks) == 0 {
		return nil
	}
	for _, id := range picks {
		if err := s.rack.Toggle(id); err != nil {
			return err
		}
	}
	s.notify(FieldRack | FieldSelected)
	return nil
}

// Submit scores the selection if it spells a word, then refills the rack.
// If it does not, the error wraps ErrInvalidWord and nothing changes.
func (s *Session) Submit() (PlayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return PlayRecord{}, err
	}
	word := s.rack.SelectedWord()
	if !s.lex.Contains(word) {
		log.Debug().Str("word", word).Msg("invalid-word")
		return PlayRecord{}, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	tiles := s.rack.TakeSelected()
	rec := PlayRecord{Word: word, Score: s.scorer.Score(tiles), Tiles: tiles}
	s.score += rec.Score
	s.played = append(s.played, tiles...)
	s.history = append(s.history, rec)
	log.Debug().Str("word", word).Int("score", rec.Score).Int("total", s.score).Msg("word-played")

	fields := FieldSelected | s.refill()
	if rec.Score != 0 {
		fields |= FieldScore
	}
	s.notify(fields)
	return rec, nil
}

// Discard throws the selected tiles away for good and refills the rack.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return err
	}
	if s.rack.NumSelected() == 0 {
		return ErrEmptySelection
	}
	tiles := s.rack.TakeSelected()
	s.discarded = append(s.discarded, tiles...)
	log.Debug().Str("tiles", tilemapping.Word(tiles)).Msg("discarded")
	s.notify(FieldSelected | s.refill())
	return nil
}

// ResetSelection puts every selected tile back on the rack.
func (s *Session) ResetSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return err
	}
	if s.rack.ResetSelection() {
		s.notify(FieldRack | FieldSelected)
	}
	return nil
}

// Shuffle reorders the rack for display.
func (s *Session) Shuffle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return err
	}
	if s.rack.NumTiles() < 2 {
		return nil
	}
	s.rack.Shuffle(s.rng)
	s.notify(FieldRack)
	return nil
}

// CheckWord looks word up without touching the session.
func (s *Session) CheckWord(word string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return false, err
	}
	return s.lex.Contains(word), nil
}

// Hint lists the three-letter words the rack and selection together could
// make.
func (s *Session) Hint() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	return movegen.PlayableTriples(append(s.rack.Tiles(), s.rack.Selected()...), s.lex), nil
}

// Unseen tallies what is still in the bag, by letter.
func (s *Session) Unseen() (map[rune]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	return s.bag.LetterCounts(), nil
}

// Dictionary returns the session's dictionary, or nil before it is ready.
func (s *Session) Dictionary() *lexicon.Dictionary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lex
}

// Seed is what the session's random source was seeded with.
func (s *Session) Seed() [32]byte {
	return *s.opts.seed
}

func (s *Session) Scorer() scoring.Scorer {
	return s.scorer
}

// History returns the accepted words, oldest first.
func (s *Session) History() []PlayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]PlayRecord, len(s.history))
	copy(ret, s.history)
	return ret
}

// Over reports whether nothing more can be scored: the bag is empty and no
// word of any length can be made from the rack and selection together.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isReady || s.bag.TilesRemaining() > 0 {
		return false
	}
	tiles := append(s.rack.Tiles(), s.rack.Selected()...)
	return len(movegen.GenerateWords(tiles, s.lex, lexicon.MinWordLength)) == 0
}
