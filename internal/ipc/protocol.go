// Package ipc is the unix socket control channel between xpdeskctl and the
// running desktop.
package ipc

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Command names.
const (
	CmdStates     = "states"
	CmdRestoreAll = "restore-all"
	CmdStart      = "start"
	CmdRestore    = "restore"
	CmdSearch     = "search"
	CmdMinimize   = "minimize"
	CmdMaximize   = "maximize"
	CmdClose      = "close"
	CmdPing       = "ping"
)

const (
	replyOK     = "ok"
	errorPrefix = "error: "
	maxMessage  = 1024
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrNoWindow        = errors.New("no matching window")
	ErrTimeout         = errors.New("desktop did not answer in time")
	ErrAlreadyRunning  = errors.New("IPC server already running")
)

type Command struct {
	Name string
	Arg  string
}

func (c Command) String() string {
	if c.Arg == "" {
		return c.Name
	}
	return c.Name + " " + c.Arg
}

// Parse splits a message into its command name and the rest of the line.
func Parse(message string) Command {
	message = strings.TrimSpace(message)
	name, arg, _ := strings.Cut(message, " ")
	return Command{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}
}

// Send delivers one message and returns the reply. Replies that report
// a failure come back as errors.
func Send(socketPath, message string, timeout time.Duration) (string, error) {
	conn, err := net.DialTimeout("unix", socketPath, timeout)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	if timeout > 0 {
		conn.SetDeadline(time.Now().Add(timeout))
	}
	if _, err := conn.Write([]byte(message + "\n")); err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	reply := strings.TrimSpace(string(data))
	if msg, ok := strings.CutPrefix(reply, errorPrefix); ok {
		return "", errors.New(msg)
	}
	return reply, nil
}
