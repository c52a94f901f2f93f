package automatic

// Bot-vs-bag games, many at once, for collecting score statistics.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/game"
	"github.com/domino14/logatro/lexicon"
	"github.com/domino14/logatro/stats"
)

var (
	GamesPlayed = expvar.NewInt("autoplayGamesPlayed")
	IsPlaying   = expvar.NewInt("autoplayIsPlaying")
)

// Summary aggregates finished games.
type Summary struct {
	Games    int
	Scores   *stats.Statistic
	Words    *stats.Statistic
	Discards *stats.Statistic
	scores   []float64
}

func NewSummary() *Summary {
	return &Summary{
		Scores:   &stats.Statistic{},
		Words:    &stats.Statistic{},
		Discards: &stats.Statistic{},
	}
}

func (s *Summary) Add(res GameResult) {
	s.Games++
	s.Scores.Push(float64(res.Score))
	s.Words.Push(float64(res.Words))
	s.Discards.Push(float64(res.Discards))
	s.scores = append(s.scores, float64(res.Score))
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	fmt.Fprintf(&sb, "Score:    %s\n", s.Scores)
	fmt.Fprintf(&sb, "Words:    %s\n", s.Words)
	fmt.Fprintf(&sb, "Discards: %s\n", s.Discards)
	if len(s.scores) > 1 {
		sb.WriteString("\nScore distribution:\n")
		if err := histogram.Fprint(&sb, histogram.Hist(15, s.scores), histogram.Linear(40)); err != nil {
			log.Err(err).Msg("histogram-render-failed")
		}
	}
	return sb.String()
}

// PlayGames plays one game per seed, at most threads at a time, all sharing
// lex. Each finished game is written to w as a YAML document, in seed
// order. w may be nil.
func PlayGames(ctx context.Context, cfg *config.Config, lex *lexicon.Dictionary,
	seeds [][32]byte, threads int, w io.Writer, opts ...game.Option) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	log.Info().Int("games", len(seeds)).Int("threads", threads).Str("lexicon", lex.Name()).
		Msg("starting-autoplay")

	results := make([]GameResult, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, seed := range seeds {
		if gctx.Err() != nil {
			break
		}
		i, seed := i, seed
		g.Go(func() error {
			r, err := NewGameRunner(gctx, cfg, lex, i+1, seed, opts...)
			if err != nil {
				return err
			}
			res, err := r.PlayGame(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			GamesPlayed.Add(1)
			if n := GamesPlayed.Value(); n%1000 == 0 {
				log.Info().Int64("played", n).Msg("autoplay-progress")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := NewSummary()
	var enc *yaml.Encoder
	if w != nil {
		enc = yaml.NewEncoder(w)
		defer enc.Close()
	}
	for _, res := range results {
		summary.Add(res)
		if enc != nil {
			if err := enc.Encode(res); err != nil {
				return nil, err
			}
		}
	}
	log.Info().Int("games", summary.Games).Float64("mean-score", summary.Scores.Mean()).
		Msg("autoplay-finished")
	return summary, nil
}
