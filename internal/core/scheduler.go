package core

import (
	"time"

	"github.com/gotk3/gotk3/glib"
)

// glibScheduler runs deferred window transitions on the GTK main loop.
type glibScheduler struct{}

func (glibScheduler) After(d time.Duration, fn func()) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	glib.TimeoutAdd(uint(ms), func() bool {
		fn()
		return false
	})
}

// onMainLoop hands fn to the GTK main loop. It is the IPC runner.
func onMainLoop(fn func()) {
	glib.IdleAdd(fn)
}
