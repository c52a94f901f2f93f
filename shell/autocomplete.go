package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter completes command names, their options, and tile IDs.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-lexicon", "-seed", "-rack-size", "-scoring", "-letterdist"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-file", "-seed"},
	},
	"help": {
		Args: []string{"scoring", "script"},
	},
}

var commandNames = []string{
	"new", "rack", "tap", "pick", "submit", "discard", "reset", "shuffle",
	"check", "hint", "bag", "history", "settings", "autoplay", "script",
	"help", "exit",
}

var scoringValues = []string{"length-bonus", "flat"}

// tileIDs suggests the IDs of every tile on the rack or selected.
func (c *ShellCompleter) tileIDs() []string {
	if c.sc.session == nil {
		return nil
	}
	snap := c.sc.session.Snapshot()
	var ids []string
	for _, t := range append(snap.Rack, snap.Selected...) {
		ids = append(ids, strconv.Itoa(int(t.ID)))
	}
	return ids
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}
		if lastCompleteField == "-scoring" {
			completions = scoringValues
		}
		if completions == nil && cmdName == "tap" {
			completions = c.tileIDs()
		}
		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
