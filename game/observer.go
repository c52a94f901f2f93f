package game

import (
	"strings"

	"github.com/domino14/logatro/tilemapping"
)

// Field is a set of session fields that changed.
type Field uint8

const (
	FieldScore Field = 1 << iota
	FieldRack
	FieldSelected
	FieldWordless
	FieldReady
)

func (f Field) Has(other Field) bool {
	return f&other != 0
}

func (f Field) String() string {
	names := []string{}
	for _, n := range []struct {
		f    Field
		name string
	}{
		{FieldScore, "score"}, {FieldRack, "rack"}, {FieldSelected, "selected"},
		{FieldWordless, "wordless"}, {FieldReady, "ready"},
	} {
		if f.Has(n.f) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Snapshot is everything a presentation layer needs to draw the game.
type Snapshot struct {
	Ready        bool               `json:"ready"`
	Score        int                `json:"score"`
	Rack         []tilemapping.Tile `json:"rack"`
	Selected     []tilemapping.Tile `json:"selected"`
	Wordless     bool               `json:"wordless"`
	BagRemaining int                `json:"bag_remaining"`
	Played       int                `json:"played"`
	Discarded    int                `json:"discarded"`
	Words        int                `json:"words"`
}

// Change tells an observer which fields changed and what the whole state
// looks like right after the change.
type Change struct {
	Fields Field
	State  Snapshot
}

// Observer is called synchronously, with the session locked, after every
// change and before the intent that caused it returns. Observers see changes
// in the order they happened. An observer must not call back into the
// Session; everything it needs is in the Change.
type Observer func(Change)

// Subscribe registers obs and returns a function that unregisters it.
func (s *Session) Subscribe(obs Observer) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObserverID
	s.nextObserverID++
	s.observers[id] = obs
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Snapshot returns the current state. Before the session is ready only
// Ready (false) is meaningful.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	if !s.isReady {
		return Snapshot{}
	}
	return Snapshot{
		Ready:        true,
		Score:        s.score,
		Rack:         s.rack.Tiles(),
		Selected:     s.rack.Selected(),
		Wordless:     s.wordless,
		BagRemaining: s.bag.TilesRemaining(),
		Played:       len(s.played),
		Discarded:    len(s.discarded),
		Words:        len(s.history),
	}
}

// notify must be called with the lock held.
func (s *Session) notify(fields Field) {
	if len(s.observers) == 0 || fields == 0 {
		return
	}
	ch := Change{Fields: fields, State: s.snapshot()}
	for _, obs := range s.observers {
		obs(ch)
	}
}
