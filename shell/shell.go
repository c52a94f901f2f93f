package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/logatro/config"
	"github.com/domino14/logatro/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer
	cfg *config.Config

	execPath   string
	gitVersion string

	session     *game.Session
	unsubscribe func()
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// quit asks main to shut down. It never blocks; one pending signal is
// enough.
func quit(sig chan os.Signal) {
	select {
	case sig <- syscall.SIGINT:
	default:
	}
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := &ShellController{cfg: cfg, execPath: execPath, gitVersion: gitVersion}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mlogatro>\033[0m ",
		HistoryFile:     "/tmp/logatro_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// extractFields splits a line into a command, its positional arguments, and
// -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && len(fields[i]) > 1 {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[i][1:]
			options[key] = append(options[key], fields[i+1])
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		quit(sig)
		return nil, nil
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "rack":
		return sc.rack(cmd)
	case "tap":
		return sc.tap(cmd)
	case "pick":
		return sc.pick(cmd)
	case "submit":
		return sc.submit(cmd)
	case "discard":
		return sc.discard(cmd)
	case "reset":
		return sc.reset(cmd)
	case "shuffle":
		return sc.shuffle(cmd)
	case "check":
		return sc.check(cmd)
	case "hint":
		return sc.hint(cmd)
	case "bag":
		return sc.bag(cmd)
	case "history":
		return sc.history(cmd)
	case "settings":
		return sc.settings(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	}
	log.Debug().Str("cmd", cmd.cmd).Msg("unknown-command")
	return nil, fmt.Errorf("command %v not found", cmd.cmd)
}

// Execute runs a single line and prints its result.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		showMessage("Error: "+err.Error(), sc.out)
		return
	}
	if resp != nil && resp.message != "" {
		showMessage(resp.message, sc.out)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				quit(sig)
				break
			}
			continue
		} else if err == io.EOF {
			quit(sig)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msg("exiting readline loop")
}

// setSession replaces the current game, if any, and starts watching the new
// one.
func (sc *ShellController) setSession(s *game.Session) {
	sc.Cleanup()
	sc.session = s
	sc.unsubscribe = s.Subscribe(sc.onChange)
}

// onChange runs under the session lock; it only prints.
func (sc *ShellController) onChange(c game.Change) {
	log.Debug().Str("fields", c.Fields.String()).Int("score", c.State.Score).Msg("session-changed")
	if c.Fields.Has(game.FieldWordless) && c.State.Wordless && c.State.BagRemaining > 0 {
		showMessage("No three-letter word on this rack. Select some tiles and `discard` them.", sc.out)
	}
}

func (sc *ShellController) ready() error {
	if sc.session == nil {
		return errNoGame
	}
	return nil
}

// waitReady blocks until the session has loaded.
func (sc *ShellController) waitReady(ctx context.Context) error {
	if err := sc.ready(); err != nil {
		return err
	}
	return sc.session.Wait(ctx)
}

func (sc *ShellController) Cleanup() {
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
	if sc.session != nil {
		sc.session.Close()
	}
}
