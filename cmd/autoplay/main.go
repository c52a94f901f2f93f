// autoplay lets the greedy bot play many games and prints score statistics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/logatro/automatic"
	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/game"
	"github.com/domino14/logatro/lexicon"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("autoplay-failed")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// With no seed every run differs; with one, the whole run replays.
	base := frand.Entropy256()
	if s := cfg.GetString(config.ConfigSeed); s != "" {
		var err error
		if base, err = game.ParseSeed(s); err != nil {
			return err
		}
	}
	seeds := automatic.GameSeeds(base, cfg.GetInt(config.ConfigAutoplayGames))

	if path := cfg.GetString(config.ConfigAutoplaySeeds); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		seeds, err = automatic.LoadSeeds(f)
		f.Close()
		if err != nil {
			return err
		}
		log.Info().Int("seeds", len(seeds)).Str("file", path).Msg("loaded-seeds")
	} else if err := saveSeeds(cfg.GetString(config.ConfigAutoplayOutput)+".seeds", seeds); err != nil {
		return err
	}

	lex, err := lexicon.Get(cfg, cfg.GetString(config.ConfigDefaultLexicon))
	if err != nil {
		return err
	}
	out, err := os.Create(cfg.GetString(config.ConfigAutoplayOutput))
	if err != nil {
		return err
	}
	defer out.Close()

	start := time.Now()
	summary, err := automatic.PlayGames(ctx, cfg, lex, seeds,
		cfg.GetInt(config.ConfigAutoplayThreads), out)
	if err != nil {
		return err
	}
	fmt.Print(summary)
	log.Info().Dur("elapsed", time.Since(start)).Str("log", out.Name()).Msg("done")
	return nil
}

func saveSeeds(path string, seeds [][32]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := automatic.SaveSeeds(f, seeds); err != nil {
		return err
	}
	log.Info().Str("file", path).Msg("saved-seeds")
	return nil
}
