package game

import (
	"errors"

	"github.com/domino14/logatro/tilemapping"
)

var (
	// ErrNotReady means the session is still loading, or failed to load.
	// Intents fail fast rather than block.
	ErrNotReady = errors.New("session is not ready")
	// ErrInvalidWord means the selection does not spell a dictionary word.
	// Nothing about the session changed.
	ErrInvalidWord = errors.New("not a valid word")
	// ErrEmptySelection is returned by Discard when nothing is selected.
	ErrEmptySelection = errors.New("no tiles selected")
	// ErrUnknownTile means a tile reference is stale or made up.
	ErrUnknownTile = tilemapping.ErrUnknownTile
)
