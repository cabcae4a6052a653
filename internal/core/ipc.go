package core

import (
	"context"
	"log"

	"github.com/chess10kp/xpdesk/internal/ipc"
	"github.com/chess10kp/xpdesk/internal/winstate"
)

// startIPC serves xpdeskctl commands on the socket and the same commands
// on the session bus. Every command runs on the GTK main loop.
func (a *App) startIPC() error {
	cmds := &ipc.Commands{
		Manager: a.mgr,
		Menu:    a.menu,
		Resolve: a.resolve,
		Defer:   onMainLoop,
	}
	srv := ipc.NewServer(a.config.SocketPath, cmds, onMainLoop)
	if err := srv.Start(); err != nil {
		return err
	}
	a.ipc = srv

	if a.config.DBus {
		bus := ipc.NewBusService(cmds, onMainLoop)
		if err := bus.Start(); err != nil {
			log.Printf("[DBUS] not available: %v", err)
		} else {
			a.bus = bus
		}
	}
	return nil
}

// resolve finds the target of a window command: a page panel by title,
// or in sway mode the focused window when no title is given.
func (a *App) resolve(arg string) (winstate.Panel, bool) {
	if a.sway != nil {
		if err := a.sway.Refresh(context.Background()); err != nil {
			log.Printf("[IPC] %v", err)
		}
		if arg == "" {
			if p, ok := a.sway.Focused(); ok {
				return p, true
			}
			return nil, false
		}
		if p, ok := a.sway.FindByTitle(arg); ok {
			return p, true
		}
		return nil, false
	}
	if a.page == nil {
		return nil, false
	}
	if p, ok := a.page.FindByTitle(arg); ok {
		return p, true
	}
	return nil, false
}
