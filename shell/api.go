package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/logatro/automatic"
	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/game"
	"github.com/domino14/logatro/lexicon"
	"github.com/domino14/logatro/scoring"
	"github.com/domino14/logatro/tilemapping"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func tileList(tiles []tilemapping.Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func displayState(s game.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rack:     %s\n", tileList(s.Rack))
	fmt.Fprintf(&sb, "Selected: %s", tileList(s.Selected))
	if len(s.Selected) > 0 {
		fmt.Fprintf(&sb, "  (%s)", tilemapping.Word(s.Selected))
	}
	fmt.Fprintf(&sb, "\nScore: %d   Bag: %d", s.Score, s.BagRemaining)
	if s.Wordless {
		sb.WriteString("   [no three-letter word]")
	}
	return sb.String()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	var opts []game.Option
	if lex := cmd.options.String("lexicon"); lex != "" {
		opts = append(opts, game.WithLexicon(lex))
	}
	if n, err := cmd.options.IntDefault("rack-size", 0); err != nil {
		return nil, err
	} else if n != 0 {
		opts = append(opts, game.WithRackSize(n))
	}
	if name := cmd.options.String("scoring"); name != "" {
		scorer, err := scoring.New(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithScorer(scorer))
	}
	if ld := cmd.options.String("letterdist"); ld != "" {
		dist, err := tilemapping.NamedLetterDistribution(sc.cfg, ld)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithLetterDistribution(dist))
	}
	if seed := cmd.options.String("seed"); seed != "" {
		parsed, err := game.ParseSeed(seed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithSeed(parsed))
	}

	s, err := game.New(context.Background(), sc.cfg, opts...)
	if err != nil {
		return nil, err
	}
	sc.setSession(s)
	if err := sc.waitReady(context.Background()); err != nil {
		return nil, err
	}
	seed := s.Seed()
	log.Info().Str("lexicon", s.Dictionary().Name()).Hex("seed", seed[:]).Msg("new-game")
	return msg(displayState(s.Snapshot())), nil
}

func (sc *ShellController) rack(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	return msg(displayState(sc.session.Snapshot())), nil
}

func (sc *ShellController) tap(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("tap needs one or more tile IDs, e.g. tap 12 40")
	}
	for _, arg := range cmd.args {
		id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
		if err != nil {
			return nil, fmt.Errorf("%q is not a tile ID", arg)
		}
		if err := sc.session.Tap(tilemapping.TileID(id)); err != nil {
			return nil, err
		}
	}
	return msg(displayState(sc.session.Snapshot())), nil
}

func (sc *ShellController) pick(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("pick needs the letters to select, e.g. pick CAT")
	}
	if err := sc.session.SelectLetters(strings.ToUpper(cmd.args[0])); err != nil {
		return nil, err
	}
	return msg(displayState(sc.session.Snapshot())), nil
}

func (sc *ShellController) submit(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	rec, err := sc.session.Submit()
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s for %d points\n%s", rec.Word, rec.Score,
		displayState(sc.session.Snapshot()))), nil
}

func (sc *ShellController) discard(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if err := sc.session.Discard(); err != nil {
		return nil, err
	}
	return msg(displayState(sc.session.Snapshot())), nil
}

func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if err := sc.session.ResetSelection(); err != nil {
		return nil, err
	}
	return msg(displayState(sc.session.Snapshot())), nil
}

func (sc *ShellController) shuffle(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if err := sc.session.Shuffle(); err != nil {
		return nil, err
	}
	return msg(displayState(sc.session.Snapshot())), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("check needs one or more words")
	}
	var sb strings.Builder
	for i, w := range cmd.args {
		w = strings.ToUpper(w)
		ok, err := sc.session.CheckWord(w)
		if err != nil {
			return nil, err
		}
		verdict := "invalid"
		if ok {
			verdict = "valid"
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s is %s", w, verdict)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	words, err := sc.session.Hint()
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return msg("No three-letter words."), nil
	}
	return msg(strings.Join(words, " ")), nil
}

func (sc *ShellController) bag(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	counts, err := sc.session.Unseen()
	if err != nil {
		return nil, err
	}
	letters := make([]rune, 0, len(counts))
	total := 0
	for l, ct := range counts {
		letters = append(letters, l)
		total += ct
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	var sb strings.Builder
	for _, l := range letters {
		fmt.Fprintf(&sb, "%c: %d\n", l, counts[l])
	}
	fmt.Fprintf(&sb, "%d tiles in the bag", total)
	return msg(sb.String()), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	hist := sc.session.History()
	if len(hist) == 0 {
		return msg("No words played yet."), nil
	}
	var sb strings.Builder
	total := 0
	for i, rec := range hist {
		total += rec.Score
		fmt.Fprintf(&sb, "%3d: %-10s %5d %6d\n", i+1, rec.Word, rec.Score, total)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) settings(cmd *shellcmd) (*Response, error) {
	settings := sc.cfg.SanitizedSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %v", k, settings[k])
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	games, err := cmd.options.IntDefault("games", sc.cfg.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.cfg.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	if games < 1 || threads < 1 {
		return nil, errors.New("games and threads must be positive")
	}
	outFile := cmd.options.String("file")
	if outFile == "" {
		outFile = sc.cfg.GetString(config.ConfigAutoplayOutput)
	}
	base := frand.Entropy256()
	if s := cmd.options.String("seed"); s != "" {
		if base, err = game.ParseSeed(s); err != nil {
			return nil, err
		}
	}
	lex, err := lexicon.Get(sc.cfg, sc.cfg.GetString(config.ConfigDefaultLexicon))
	if err != nil {
		return nil, err
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	summary, err := automatic.PlayGames(context.Background(), sc.cfg, lex,
		automatic.GameSeeds(base, games), threads, f)
	if err != nil {
		return nil, err
	}
	return msg(summary.String() + "\nGame log written to " + outFile), nil
}
