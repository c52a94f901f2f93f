package shell

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("logatro_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		L.RaiseError("logatro_shell is not set")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		L.RaiseError("logatro_shell is not a shell")
	}
	return sc
}

// command binds a shell command. The Lua function takes an optional string
// of arguments and returns the command's output, or "ERROR: ..." on failure.
func command(name string, handler func(*ShellController, *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		sc := getShell(L)
		cmd, err := extractFields(strings.TrimSpace(name + " " + L.OptString(1, "")))
		if err == nil {
			var r *Response
			r, err = handler(sc, cmd)
			if err == nil {
				if r == nil {
					r = msg("")
				}
				L.Push(lua.LString(r.message))
				return 1
			}
		}
		log.Err(err).Str("cmd", name).Msg("error-executing-script-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
}

func Check(L *lua.LState) int {
	sc := getShell(L)
	if err := sc.ready(); err != nil {
		L.RaiseError("%v", err)
	}
	ok, err := sc.session.CheckWord(strings.ToUpper(L.CheckString(1)))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// State returns the snapshot as a JSON string.
func State(L *lua.LState) int {
	sc := getShell(L)
	if err := sc.ready(); err != nil {
		L.RaiseError("%v", err)
	}
	bts, err := json.Marshal(sc.session.Snapshot())
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LString(bts))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("logatro_shell", lsc)
	L.SetGlobal("logatro_new", L.NewFunction(command("new", (*ShellController).newGame)))
	L.SetGlobal("logatro_pick", L.NewFunction(command("pick", (*ShellController).pick)))
	L.SetGlobal("logatro_tap", L.NewFunction(command("tap", (*ShellController).tap)))
	L.SetGlobal("logatro_submit", L.NewFunction(command("submit", (*ShellController).submit)))
	L.SetGlobal("logatro_discard", L.NewFunction(command("discard", (*ShellController).discard)))
	L.SetGlobal("logatro_reset", L.NewFunction(command("reset", (*ShellController).reset)))
	L.SetGlobal("logatro_shuffle", L.NewFunction(command("shuffle", (*ShellController).shuffle)))
	L.SetGlobal("logatro_hint", L.NewFunction(command("hint", (*ShellController).hint)))
	L.SetGlobal("logatro_check", L.NewFunction(Check))
	L.SetGlobal("logatro_state", L.NewFunction(State))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Str("script", filepath).Msg("script-failed")
		return nil, err
	}
	return nil, nil
}
