package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigConfigFile         = "config"
	ConfigLexiconPath        = "lexicon-path"
	ConfigDefaultLexicon     = "default-lexicon"
	ConfigLexiconEncoding    = "lexicon-encoding"
	ConfigUppercaseLexicon   = "uppercase-lexicon"
	ConfigLetterDistribution = "letter-distribution"
	ConfigRackSize           = "rack-size"
	ConfigScoring            = "scoring"
	ConfigSeed               = "seed"
	ConfigAutoplayGames      = "autoplay-games"
	ConfigAutoplayThreads    = "autoplay-threads"
	ConfigAutoplayOutput     = "autoplay-output"
	ConfigAutoplaySeeds      = "autoplay-seeds"
)

// Config wraps a viper instance. Values come, in increasing precedence, from
// defaults, an optional YAML config file, LOGATRO_* environment variables,
// and command-line flags.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigLexiconPath, "./data/lexica")
	v.SetDefault(ConfigDefaultLexicon, "SAMPLE")
	v.SetDefault(ConfigLexiconEncoding, "utf-8")
	v.SetDefault(ConfigUppercaseLexicon, true)
	v.SetDefault(ConfigLetterDistribution, "english")
	v.SetDefault(ConfigRackSize, 7)
	v.SetDefault(ConfigScoring, "length-bonus")
	v.SetDefault(ConfigSeed, "")
	v.SetDefault(ConfigAutoplayGames, 100)
	v.SetDefault(ConfigAutoplayThreads, 4)
	v.SetDefault(ConfigAutoplayOutput, "/tmp/autoplay.yaml")
	v.SetDefault(ConfigAutoplaySeeds, "")
}

// DefaultConfig returns a config with only the defaults set. It does not
// look at the environment; tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load parses the given command-line arguments. Unknown positional arguments
// are left alone so callers (the shell) can treat them as a command.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("logatro", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "path to a YAML config file")
	fs.String(ConfigLexiconPath, "./data/lexica", "directory holding word lists")
	fs.String(ConfigDefaultLexicon, "SAMPLE", "the word list to use; <lexicon-path>/<name>.txt")
	fs.String(ConfigLexiconEncoding, "utf-8", "word list encoding (utf-8 or iso-8859-1)")
	fs.Bool(ConfigUppercaseLexicon, true, "uppercase every word list entry on load")
	fs.String(ConfigLetterDistribution, "english", "english, or a path to a letter,quantity,value,multiplier CSV")
	fs.Int(ConfigRackSize, 7, "target rack size")
	fs.String(ConfigScoring, "length-bonus", "scoring variant: length-bonus or flat")
	fs.String(ConfigSeed, "", "hex-encoded 32-byte seed for reproducible sessions")
	fs.Int(ConfigAutoplayGames, 100, "number of games for autoplay")
	fs.Int(ConfigAutoplayThreads, 4, "number of concurrent autoplay games")
	fs.String(ConfigAutoplayOutput, "/tmp/autoplay.yaml", "where autoplay writes its game log")
	fs.String(ConfigAutoplaySeeds, "", "replay the games whose seeds are in this file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("logatro")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	return c.validate()
}

// Args returns the positional arguments left over after Load parsed the
// flags.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) validate() error {
	if c.GetInt(ConfigRackSize) < 1 {
		return errors.New("rack-size must be positive")
	}
	if c.GetInt(ConfigAutoplayThreads) < 1 {
		return errors.New("autoplay-threads must be positive")
	}
	return nil
}

// AdjustRelativePaths makes the lexicon path absolute with respect to the
// executable's directory, so the binary can be run from anywhere.
func (c *Config) AdjustRelativePaths(basepath string) {
	p := c.GetString(ConfigLexiconPath)
	if filepath.IsAbs(p) {
		return
	}
	abs := filepath.Join(basepath, p)
	log.Debug().Str("old", p).Str("new", abs).Msg("adjusted-lexicon-path")
	c.Set(ConfigLexiconPath, abs)
}

// SanitizedSettings returns all settings. There is nothing secret in here
// yet, but the shell prints this so keep it that way.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
