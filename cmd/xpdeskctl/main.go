package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chess10kp/xpdesk/internal/config"
	"github.com/chess10kp/xpdesk/internal/ipc"
	"github.com/chess10kp/xpdesk/internal/winstate"
)

type options struct {
	configPath string
	socketPath string
	timeout    time.Duration
	jsonOutput bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xpdeskctl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "xpdeskctl",
		Short:         "Control a running xpdesk from the command line",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "~/.config/xpdesk/config.toml", "config file used to find the socket")
	root.PersistentFlags().StringVar(&opts.socketPath, "socket", "", "socket path (overrides the config)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "how long to wait for a reply")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print raw JSON replies")

	root.AddCommand(
		newStatesCmd(opts),
		newSearchCmd(opts),
		newSimpleCmd(opts, ipc.CmdRestoreAll, "Reopen closed windows and restore minimized ones"),
		newSimpleCmd(opts, ipc.CmdStart, "Press the start button"),
		newSimpleCmd(opts, ipc.CmdPing, "Check that xpdesk is answering"),
		newRestoreCmd(opts),
		newWindowCmd(opts, ipc.CmdMinimize, "Minimize a window"),
		newWindowCmd(opts, ipc.CmdMaximize, "Toggle maximize on a window"),
		newWindowCmd(opts, ipc.CmdClose, "Close a window"),
	)
	return root
}

func (o *options) send(message string) (string, error) {
	socket := o.socketPath
	if socket == "" {
		cfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return "", err
		}
		socket = cfg.SocketPath
	}
	return ipc.Send(socket, message, o.timeout)
}

func (o *options) print(cmd *cobra.Command, reply string) error {
	if !o.jsonOutput || !json.Valid([]byte(reply)) {
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(reply), "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}

func newSimpleCmd(opts *options, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reply, err := opts.send(name)
			if err != nil {
				return err
			}
			return opts.print(cmd, reply)
		},
	}
}

func newStatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   ipc.CmdStates,
		Short: "Show open, minimized and closed windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reply, err := opts.send(ipc.CmdStates)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return opts.print(cmd, reply)
			}
			var s winstate.Snapshot
			if err := json.Unmarshal([]byte(reply), &s); err != nil {
				return fmt.Errorf("unexpected reply: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "open:      %s\n", strings.Join(s.Open, ", "))
			fmt.Fprintf(out, "minimized: %s\n", strings.Join(s.Minimized, ", "))
			fmt.Fprintf(out, "closed:    %s\n", strings.Join(s.Closed, ", "))
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   ipc.CmdSearch + " [query]",
		Short: "List restorable windows matching a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.send(ipc.Command{Name: ipc.CmdSearch, Arg: strings.Join(args, " ")}.String())
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return opts.print(cmd, reply)
			}
			var entries []winstate.Entry
			if err := json.Unmarshal([]byte(reply), &entries); err != nil {
				return fmt.Errorf("unexpected reply: %w", err)
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s %s (%s)\n", e.Kind, e.Icon, e.Title, e.ID)
			}
			return nil
		},
	}
}

func newRestoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   ipc.CmdRestore + " <query>",
		Short: "Bring back the best matching closed or minimized window",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.send(ipc.Command{Name: ipc.CmdRestore, Arg: strings.Join(args, " ")}.String())
			if err != nil {
				return err
			}
			return opts.print(cmd, reply)
		},
	}
}

// newWindowCmd targets a window by title. Without a title the sway
// backend uses the focused window.
func newWindowCmd(opts *options, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [title]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.send(ipc.Command{Name: name, Arg: strings.Join(args, " ")}.String())
			if err != nil {
				return err
			}
			return opts.print(cmd, reply)
		},
	}
}
