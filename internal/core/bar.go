package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/xpdesk/internal/config"
	"github.com/chess10kp/xpdesk/internal/layer"
	"github.com/chess10kp/xpdesk/internal/swaywin"
	"github.com/chess10kp/xpdesk/internal/winstate"
)

const swayRefreshInterval = time.Second

// Bar hosts the taskbar as a layer shell panel when xpdesk manages sway
// windows instead of its own page.
type Bar struct {
	window  *gtk.Window
	backend *swaywin.Backend
	running bool
}

func NewBar(cfg *config.Config, taskbar *Taskbar, backend *swaywin.Backend) (*Bar, error) {
	window, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, fmt.Errorf("failed to create taskbar window: %w", err)
	}
	window.SetTitle(cfg.AppName)
	window.SetName("taskbar-window")
	window.Add(taskbar.Widget())
	if cfg.Taskbar.Height > 0 {
		window.SetSizeRequest(-1, cfg.Taskbar.Height)
	}

	if layer.IsSupported() {
		layer.DockBottom(window, cfg.Taskbar.Height)
	} else {
		log.Println("[BAR] layer shell unsupported, using a plain window")
	}

	return &Bar{window: window, backend: backend}, nil
}

func (b *Bar) Window() *gtk.Window { return b.window }

// Start shows the bar and keeps the sway window list current. forget is
// told about every window whose container went away.
func (b *Bar) Start(forget func(winstate.Panel)) {
	b.backend.OnGone = forget
	b.running = true
	b.window.ShowAll()
	glib.TimeoutAdd(uint(swayRefreshInterval.Milliseconds()), func() bool {
		if !b.running {
			return false
		}
		if err := b.backend.Refresh(context.Background()); err != nil {
			log.Printf("[BAR] %v", err)
		}
		return true
	})
}

func (b *Bar) Stop() {
	b.running = false
}
