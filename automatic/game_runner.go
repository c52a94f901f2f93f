// Package automatic plays whole games with no one at the keyboard, so that
// scoring variants, distributions and word lists can be compared over many
// games.
package automatic

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/game"
	"github.com/domino14/logatro/lexicon"
	"github.com/domino14/logatro/movegen"
	"github.com/domino14/logatro/tilemapping"
)

const (
	ActionPlay    = "play"
	ActionDiscard = "discard"
)

// TurnLog is one bot turn.
type TurnLog struct {
	Turn         int    `yaml:"turn"`
	Rack         string `yaml:"rack"`
	Action       string `yaml:"action"`
	Word         string `yaml:"word,omitempty"`
	Score        int    `yaml:"score"`
	Total        int    `yaml:"total"`
	BagRemaining int    `yaml:"bag_remaining"`
}

// GameResult is what one finished game writes to the log.
type GameResult struct {
	GameID   int       `yaml:"game_id"`
	Seed     string    `yaml:"seed"`
	Score    int       `yaml:"score"`
	Words    int       `yaml:"words"`
	Discards int       `yaml:"discards"`
	Turns    []TurnLog `yaml:"turns"`
}

// GameRunner drives one session with a greedy bot.
type GameRunner struct {
	session *game.Session
	lex     *lexicon.Dictionary
	gameID  int
	seed    [32]byte
	turns   []TurnLog
}

// NewGameRunner starts a session sharing lex and waits until it is ready.
func NewGameRunner(ctx context.Context, cfg *config.Config, lex *lexicon.Dictionary,
	gameID int, seed [32]byte, opts ...game.Option) (*GameRunner, error) {

	opts = append([]game.Option{game.WithDictionary(lex), game.WithSeed(seed)}, opts...)
	s, err := game.New(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Wait(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return &GameRunner{session: s, lex: lex, gameID: gameID, seed: seed}, nil
}

func (r *GameRunner) Session() *game.Session {
	return r.session
}

// BestPlay returns the highest-scoring word the rack can make. Ties go to
// the alphabetically first word so that games replay exactly from a seed.
func (r *GameRunner) BestPlay() (movegen.Play, int, bool) {
	rack := r.session.Snapshot().Rack
	plays := movegen.GenerateWords(rack, r.lex, lexicon.MinWordLength)
	if len(plays) == 0 {
		return movegen.Play{}, 0, false
	}
	scorer := r.session.Scorer()
	scored := lo.Map(plays, func(p movegen.Play, _ int) lo.Tuple2[movegen.Play, int] {
		return lo.T2(p, scorer.Score(p.Tiles))
	})
	best := lo.MaxBy(scored, func(a, b lo.Tuple2[movegen.Play, int]) bool {
		return a.B > b.B || (a.B == b.B && a.A.Word < b.A.Word)
	})
	return best.A, best.B, true
}

func (r *GameRunner) tapAll(tiles []tilemapping.Tile) error {
	for _, t := range tiles {
		if err := r.session.Tap(t.ID); err != nil {
			return err
		}
	}
	return nil
}

// PlayTurn plays the best word, or throws the whole rack away if there is
// none. Either way at least one tile leaves the game for good.
func (r *GameRunner) PlayTurn() (TurnLog, error) {
	before := r.session.Snapshot()
	tl := TurnLog{Turn: len(r.turns) + 1, Rack: tilemapping.Word(before.Rack)}

	if play, _, ok := r.BestPlay(); ok {
		if err := r.tapAll(play.Tiles); err != nil {
			return tl, err
		}
		rec, err := r.session.Submit()
		if err != nil {
			return tl, err
		}
		tl.Action, tl.Word, tl.Score = ActionPlay, rec.Word, rec.Score
	} else {
		if len(before.Rack) == 0 {
			return tl, errors.New("nothing left to play or discard")
		}
		if err := r.tapAll(before.Rack); err != nil {
			return tl, err
		}
		if err := r.session.Discard(); err != nil {
			return tl, err
		}
		tl.Action = ActionDiscard
	}
	after := r.session.Snapshot()
	tl.Total, tl.BagRemaining = after.Score, after.BagRemaining
	r.turns = append(r.turns, tl)
	log.Debug().Int("game", r.gameID).Int("turn", tl.Turn).Str("rack", tl.Rack).
		Str("action", tl.Action).Str("word", tl.Word).Int("score", tl.Score).Msg("bot-turn")
	return tl, nil
}

// PlayGame plays turns until the session is over.
func (r *GameRunner) PlayGame(ctx context.Context) (GameResult, error) {
	defer r.session.Close()
	for !r.session.Over() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if _, err := r.PlayTurn(); err != nil {
			return GameResult{}, fmt.Errorf("game %d: %w", r.gameID, err)
		}
	}
	res := GameResult{
		GameID: r.gameID,
		Seed:   hex.EncodeToString(r.seed[:]),
		Score:  r.session.Snapshot().Score,
		Turns:  r.turns,
	}
	for _, t := range r.turns {
		if t.Action == ActionPlay {
			res.Words++
		} else {
			res.Discards++
		}
	}
	return res, nil
}
