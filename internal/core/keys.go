package core

import (
	"encoding/json"
	"log"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// setupDebugKeys binds Ctrl+Alt+W (dump window states) and Ctrl+Alt+R
// (restore everything) on window.
func (a *App) setupDebugKeys(window *gtk.Window) {
	window.Connect("key-press-event", func(_ *gtk.Window, event *gdk.Event) bool {
		keyEvent := gdk.EventKeyNewFromEvent(event)
		if keyEvent == nil {
			return false
		}

		state := gdk.ModifierType(keyEvent.State())
		if state&gdk.CONTROL_MASK == 0 || state&gdk.MOD1_MASK == 0 {
			return false
		}

		switch keyEvent.KeyVal() {
		case gdk.KEY_w, gdk.KEY_W:
			data, err := json.Marshal(a.mgr.States())
			if err != nil {
				log.Printf("[DEBUG] failed to encode window states: %v", err)
				return true
			}
			log.Printf("[DEBUG] window states: %s", data)
			return true
		case gdk.KEY_r, gdk.KEY_R:
			log.Println("[DEBUG] restoring all windows")
			a.mgr.RestoreAll()
			return true
		}
		return false
	})
}
