package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/chess10kp/xpdesk/internal/winstate"
)

// Manager is the window manager surface reachable over IPC.
type Manager interface {
	States() winstate.Snapshot
	RestoreAll()
	ActivateStart()
	Minimize(p winstate.Panel)
	Maximize(p winstate.Panel)
	Close(p winstate.Panel)
}

// Menu is the start menu search.
type Menu interface {
	Search(query string) []winstate.Entry
	Launch(query string) (winstate.Entry, error)
}

// Resolver finds the panel a window command targets. arg is whatever
// followed the command name and may be empty.
type Resolver func(arg string) (winstate.Panel, bool)

// Commands answers the desktop IPC commands.
type Commands struct {
	Manager Manager
	Menu    Menu
	Resolve Resolver

	// Defer schedules work that must not hold up the reply, such as the
	// start button prompt which blocks until the user answers. Nil runs it
	// inline.
	Defer Runner
}

func (c *Commands) Handle(cmd Command) (string, error) {
	switch cmd.Name {
	case CmdPing:
		return "pong", nil
	case CmdStates:
		return encode(c.Manager.States())
	case CmdRestoreAll:
		c.Manager.RestoreAll()
		return replyOK, nil
	case CmdStart:
		if c.Defer != nil {
			c.Defer(c.Manager.ActivateStart)
		} else {
			c.Manager.ActivateStart()
		}
		return replyOK, nil
	case CmdSearch:
		results := c.Menu.Search(cmd.Arg)
		if results == nil {
			results = []winstate.Entry{}
		}
		return encode(results)
	case CmdRestore:
		if cmd.Arg == "" {
			return "", fmt.Errorf("%s: %w", cmd.Name, ErrMissingArgument)
		}
		e, err := c.Menu.Launch(cmd.Arg)
		if err != nil {
			return "", err
		}
		return e.ID, nil
	case CmdMinimize, CmdMaximize, CmdClose:
		p, ok := c.Resolve(cmd.Arg)
		if !ok {
			return "", fmt.Errorf("%s %q: %w", cmd.Name, cmd.Arg, ErrNoWindow)
		}
		switch cmd.Name {
		case CmdMinimize:
			c.Manager.Minimize(p)
		case CmdMaximize:
			c.Manager.Maximize(p)
		default:
			c.Manager.Close(p)
		}
		return replyOK, nil
	}
	return "", fmt.Errorf("%q: %w", cmd.Name, ErrUnknownCommand)
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
