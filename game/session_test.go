package game

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/movegen"
	"github.com/domino14/logatro/testhelpers"
	"github.com/domino14/logatro/tilemapping"
)

func distribution(t *testing.T, csv string) *tilemapping.LetterDistribution {
	t.Helper()
	ld, err := tilemapping.ScanLetterDistribution(strings.NewReader(csv))
	require.NoError(t, err)
	return ld
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	base := []Option{
		WithDictionary(testhelpers.SmallDictionary()),
		WithSeed(testhelpers.FixedSeed()),
	}
	s, err := New(context.Background(), config.DefaultConfig(), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Wait(context.Background()))
	return s
}

func letters(tiles []tilemapping.Tile) string {
	return tilemapping.Word(tiles)
}

func sortedLetters(tiles []tilemapping.Tile) string {
	rs := []rune(letters(tiles))
	slices.Sort(rs)
	return string(rs)
}

func TestPlayBat(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t,
		WithLetterDistribution(distribution(t, "B,1,3\nA,1,1\nT,1,1\n")),
		WithRackSize(3))

	is.Equal(sortedLetters(s.Snapshot().Rack), "ABT")
	is.NoErr(s.SelectLetters("BAT"))
	rec, err := s.Submit()
	is.NoErr(err)
	is.Equal(rec.Word, "BAT")
	is.Equal(rec.Score, 5)

	snap := s.Snapshot()
	is.Equal(snap.Score, 5)
	is.Equal(len(snap.Rack), 0)
	is.Equal(len(snap.Selected), 0)
	is.Equal(snap.BagRemaining, 0)
	is.True(snap.Wordless)
	is.True(s.Over())
	is.Equal(len(s.History()), 1)
}

func TestInvalidWordChangesNothing(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t,
		WithLetterDistribution(distribution(t, "Z,4,10\n")),
		WithRackSize(3))

	is.NoErr(s.SelectLetters("ZZZ"))
	before := s.Snapshot()
	_, err := s.Submit()
	is.True(errors.Is(err, ErrInvalidWord))
	after := s.Snapshot()
	is.Equal(before, after)
	is.Equal(after.Score, 0)
	is.Equal(letters(after.Selected), "ZZZ")
	is.Equal(after.BagRemaining, 1)
	is.Equal(len(s.History()), 0)
}

// seedFor finds a seed whose first rack, sorted, is want.
func seedFor(t *testing.T, ld *tilemapping.LetterDistribution, rackSize int, want string) [32]byte {
	t.Helper()
	for i := 0; i < 1024; i++ {
		seed := testhelpers.FixedSeed()
		seed[0], seed[1] = byte(i), byte(i>>8)
		s := newTestSession(t, WithLetterDistribution(ld), WithRackSize(rackSize), WithSeed(seed))
		if sortedLetters(s.Snapshot().Rack) == want {
			return seed
		}
	}
	t.Fatalf("no seed draws %s", want)
	return [32]byte{}
}

func TestWordlessThenDiscard(t *testing.T) {
	is := is.New(t)
	ld := distribution(t, "Q,1,10\nZ,1,10\nX,1,8\nC,1,3\nA,1,1\nT,1,1\n")
	seed := seedFor(t, ld, 3, "QXZ")
	s := newTestSession(t, WithLetterDistribution(ld), WithRackSize(3), WithSeed(seed))

	is.True(s.Snapshot().Wordless)
	is.NoErr(s.SelectLetters("QZX"))
	is.NoErr(s.Discard())

	snap := s.Snapshot()
	is.Equal(sortedLetters(snap.Rack), "ACT")
	is.True(!snap.Wordless)
	is.Equal(snap.Discarded, 3)
	is.Equal(snap.Score, 0)
	is.Equal(snap.BagRemaining, 0)

	hints, err := s.Hint()
	is.NoErr(err)
	assert.Equal(t, []string{"ACT", "CAT"}, hints)
}

// checkConservation verifies that every tile is in exactly one place.
func checkConservation(t *testing.T, s *Session) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []tilemapping.Tile
	all = append(all, s.bag.Peek()...)
	all = append(all, s.rack.Tiles()...)
	all = append(all, s.rack.Selected()...)
	all = append(all, s.played...)
	all = append(all, s.discarded...)
	require.Equal(t, s.bag.InitialSize(), len(all))
	seen := map[tilemapping.TileID]bool{}
	for _, tile := range all {
		require.False(t, seen[tile.ID], "tile %v in two places", tile)
		seen[tile.ID] = true
	}
	require.LessOrEqual(t, s.rack.NumTiles()+s.rack.NumSelected(), s.rackSize)
	if s.bag.TilesRemaining() > 0 {
		require.Equal(t, s.rackSize, s.rack.NumTiles()+s.rack.NumSelected())
	}
	require.Equal(t, movegen.Wordless(s.rack.Tiles(), s.lex), s.wordless)
}

func TestWholeGameConservesTiles(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.Equal(s.Snapshot().BagRemaining, 196-7)
	checkConservation(t, s)

	total := 0
	for turn := 0; turn < 200 && !s.Over(); turn++ {
		snap := s.Snapshot()
		plays := movegen.GenerateWords(snap.Rack, s.Dictionary(), 3)
		if len(plays) > 0 {
			for _, tile := range plays[0].Tiles {
				is.NoErr(s.Tap(tile.ID))
			}
			rec, err := s.Submit()
			is.NoErr(err)
			total += rec.Score
		} else {
			for _, tile := range snap.Rack {
				is.NoErr(s.Tap(tile.ID))
			}
			is.NoErr(s.Discard())
		}
		checkConservation(t, s)
		is.Equal(s.Snapshot().Score, total)
	}
	is.True(s.Over())
}

func TestTapUnknownTile(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	before := s.Snapshot()
	err := s.Tap(9999)
	is.True(errors.Is(err, ErrUnknownTile))
	is.Equal(before, s.Snapshot())

	// A played tile is a stale reference.
	s2 := newTestSession(t,
		WithLetterDistribution(distribution(t, "B,1,3\nA,1,1\nT,1,1\n")),
		WithRackSize(3))
	is.NoErr(s2.SelectLetters("BAT"))
	rec, err := s2.Submit()
	is.NoErr(err)
	is.True(errors.Is(s2.Tap(rec.Tiles[0].ID), ErrUnknownTile))
}

func TestTapTogglesAndOrders(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	rack := s.Snapshot().Rack
	is.NoErr(s.Tap(rack[2].ID))
	is.NoErr(s.Tap(rack[0].ID))
	snap := s.Snapshot()
	is.Equal(len(snap.Rack), 5)
	is.Equal(snap.Selected[0].ID, rack[2].ID)
	is.Equal(snap.Selected[1].ID, rack[0].ID)

	is.NoErr(s.Tap(rack[2].ID))
	snap = s.Snapshot()
	is.Equal(len(snap.Selected), 1)
	is.Equal(snap.Rack[len(snap.Rack)-1].ID, rack[2].ID)
}

func TestSelectLettersAllOrNothing(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t,
		WithLetterDistribution(distribution(t, "B,1,3\nA,1,1\nT,1,1\n")),
		WithRackSize(3))
	err := s.SelectLetters("BAA")
	is.True(errors.Is(err, ErrUnknownTile))
	is.Equal(len(s.Snapshot().Selected), 0)
}

func TestResetSelectionIdempotent(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	rack := s.Snapshot().Rack
	is.NoErr(s.Tap(rack[0].ID))
	is.NoErr(s.Tap(rack[1].ID))
	is.NoErr(s.ResetSelection())
	after := s.Snapshot()
	is.Equal(len(after.Selected), 0)
	is.Equal(len(after.Rack), 7)
	n := len(changes)

	is.NoErr(s.ResetSelection())
	is.Equal(after, s.Snapshot())
	is.Equal(len(changes), n)
}

func TestDiscardNeedsSelection(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	before := s.Snapshot()
	is.True(errors.Is(s.Discard(), ErrEmptySelection))
	is.Equal(before, s.Snapshot())
}

func TestShuffleKeepsTiles(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	before := s.Snapshot()
	is.NoErr(s.Shuffle())
	after := s.Snapshot()
	is.Equal(sortedLetters(before.Rack), sortedLetters(after.Rack))
	is.Equal(before.BagRemaining, after.BagRemaining)
	is.Equal(before.Wordless, after.Wordless)
}

func TestSameSeedSameGame(t *testing.T) {
	is := is.New(t)
	a := newTestSession(t)
	b := newTestSession(t)
	is.Equal(a.Snapshot(), b.Snapshot())
	is.NoErr(a.Shuffle())
	is.NoErr(b.Shuffle())
	is.Equal(a.Snapshot().Rack, b.Snapshot().Rack)
	is.Equal(a.Seed(), testhelpers.FixedSeed())
}

func TestObserversSeeChangesBeforeReturn(t *testing.T) {
	is := is.New(t)
	// The whole bag fits on the rack, so the draw order does not matter.
	s := newTestSession(t,
		WithLetterDistribution(distribution(t, "B,2,3\nA,2,1\nT,2,1\n")),
		WithRackSize(6))
	var changes []Change
	cancel := s.Subscribe(func(c Change) { changes = append(changes, c) })

	is.NoErr(s.SelectLetters("BAT"))
	is.Equal(len(changes), 1)
	is.True(changes[0].Fields.Has(FieldSelected))
	is.Equal(letters(changes[0].State.Selected), "BAT")

	_, err := s.Submit()
	is.NoErr(err)
	is.Equal(len(changes), 2)
	last := changes[1]
	is.True(last.Fields.Has(FieldScore))
	is.True(last.Fields.Has(FieldSelected))
	is.Equal(last.State.Score, 5)
	is.Equal(len(last.State.Rack), 3)
	is.Equal(len(last.State.Selected), 0)

	// Rejected intents notify nobody.
	is.True(errors.Is(s.SelectLetters("BBB"), ErrUnknownTile))
	_, err = s.Submit()
	is.True(errors.Is(err, ErrInvalidWord))
	is.Equal(len(changes), 2)

	cancel()
	is.NoErr(s.Shuffle())
	is.Equal(len(changes), 2)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "score|rack", (FieldScore | FieldRack).String())
	assert.Equal(t, "", Field(0).String())
}

type gatedReader struct {
	gate <-chan struct{}
	r    io.Reader
}

func (g *gatedReader) Read(p []byte) (int, error) {
	<-g.gate
	return g.r.Read(p)
}

func TestNotReadyFailsFast(t *testing.T) {
	is := is.New(t)
	gate := make(chan struct{})
	var readyChanges int
	s, err := New(context.Background(), config.DefaultConfig(),
		WithWordList(&gatedReader{gate: gate, r: strings.NewReader(testhelpers.SmallWordList)}),
		WithSeed(testhelpers.FixedSeed()))
	is.NoErr(err)
	defer s.Close()
	s.Subscribe(func(c Change) {
		if c.Fields.Has(FieldReady) {
			readyChanges++
		}
	})

	is.True(errors.Is(s.Tap(0), ErrNotReady))
	_, err = s.Submit()
	is.True(errors.Is(err, ErrNotReady))
	is.True(errors.Is(s.Discard(), ErrNotReady))
	is.True(errors.Is(s.Shuffle(), ErrNotReady))
	is.True(errors.Is(s.ResetSelection(), ErrNotReady))
	_, err = s.CheckWord("CAT")
	is.True(errors.Is(err, ErrNotReady))
	is.True(!s.Snapshot().Ready)
	is.True(!s.Over())
	select {
	case <-s.Ready():
		t.Fatal("ready before the word list was read")
	default:
	}

	close(gate)
	is.NoErr(s.Wait(context.Background()))
	is.True(s.Snapshot().Ready)
	is.Equal(readyChanges, 1)
	ok, err := s.CheckWord("CAT")
	is.NoErr(err)
	is.True(ok)
	is.Equal(s.Dictionary().Len(), 25)
}

func TestInitFailure(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, t.TempDir())
	s, err := New(context.Background(), cfg, WithLexicon("NOPE"))
	is.NoErr(err)
	defer s.Close()
	is.True(s.Wait(context.Background()) != nil)
	err = s.Tap(0)
	is.True(errors.Is(err, ErrNotReady))
	is.True(!s.Snapshot().Ready)
}

type endlessWords struct{}

func (endlessWords) Read(p []byte) (int, error) {
	const line = "CAT\n"
	n := 0
	for n+len(line) <= len(p) {
		n += copy(p[n:], line)
	}
	return n, nil
}

func TestCloseCancelsInit(t *testing.T) {
	is := is.New(t)
	s, err := New(context.Background(), config.DefaultConfig(), WithWordList(endlessWords{}))
	is.NoErr(err)
	s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = s.Wait(ctx)
	is.True(errors.Is(err, context.Canceled))
	is.True(errors.Is(s.Tap(0), ErrNotReady))
}

func TestBadOptions(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	_, err := New(context.Background(), cfg, WithRackSize(-1))
	is.True(err != nil)

	cfg.Set(config.ConfigScoring, "golf")
	_, err = New(context.Background(), cfg)
	is.True(err != nil)

	cfg = config.DefaultConfig()
	cfg.Set(config.ConfigSeed, "abcd")
	_, err = New(context.Background(), cfg)
	is.True(err != nil)
}

func TestConcurrentIntents(t *testing.T) {
	s := newTestSession(t)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				snap := s.Snapshot()
				if len(snap.Rack) > 0 {
					// Another goroutine may have moved this tile already.
					_ = s.Tap(snap.Rack[i%len(snap.Rack)].ID)
				}
				switch i % 5 {
				case 0:
					_ = s.Shuffle()
				case 1:
					_, _ = s.Submit()
				case 2:
					_ = s.ResetSelection()
				case 3:
					_ = s.Discard()
				}
			}
		}()
	}
	wg.Wait()
	require.NoError(t, s.ResetSelection())
	checkConservation(t, s)
}
