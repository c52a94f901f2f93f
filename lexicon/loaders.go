package lexicon

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/logatro/cache"
	"github.com/domino14/logatro/config"
)

const cachePrefix = "lexicon:"

// Path returns where the word list called name lives.
func Path(cfg *config.Config, name string) string {
	return filepath.Join(cfg.GetString(config.ConfigLexiconPath), name+".txt")
}

func decoderFor(enc string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "latin1", "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported lexicon encoding %q", enc)
}

func optionsFor(cfg *config.Config, name string) []BuildOption {
	opts := []BuildOption{WithName(name)}
	if cfg.GetBool(config.ConfigUppercaseLexicon) {
		opts = append(opts, WithUppercase())
	}
	return opts
}

// LoadFile builds a dictionary from the word list at path, honouring the
// configured encoding and case normalization.
func LoadFile(ctx context.Context, cfg *config.Config, name, path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := decoderFor(cfg.GetString(config.ConfigLexiconEncoding), f)
	if err != nil {
		return nil, err
	}
	d, err := BuildContext(ctx, r, optionsFor(cfg, name)...)
	if err != nil {
		return nil, fmt.Errorf("building lexicon %s: %w", name, err)
	}
	log.Info().Str("lexicon", name).Int("words", d.Len()).
		Str("checksum", fmt.Sprintf("%016x", d.Checksum())).Msg("lexicon-loaded")
	return d, nil
}

func cacheLoadFunc(cfg *config.Config, key string) (any, error) {
	name := strings.TrimPrefix(key, cachePrefix)
	return LoadFile(context.Background(), cfg, name, Path(cfg, name))
}

// Get returns the named dictionary, loading it into the global object cache
// the first time it is asked for.
func Get(cfg *config.Config, name string) (*Dictionary, error) {
	obj, err := cache.Load(cfg, cachePrefix+name, cacheLoadFunc)
	if err != nil {
		return nil, err
	}
	d, ok := obj.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("cached object %s is not a dictionary", name)
	}
	return d, nil
}
