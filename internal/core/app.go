package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/xpdesk/internal/config"
	"github.com/chess10kp/xpdesk/internal/ipc"
	"github.com/chess10kp/xpdesk/internal/page"
	"github.com/chess10kp/xpdesk/internal/startmenu"
	"github.com/chess10kp/xpdesk/internal/swaywin"
	"github.com/chess10kp/xpdesk/internal/winstate"
)

const cartButtonLabel = "🛍️ Cart"

// App is the running desktop.
type App struct {
	config  *config.Config
	running bool
	sigChan chan os.Signal
	mgr     *winstate.Manager
	menu    *startmenu.Menu
	taskbar *Taskbar
	page    *page.Page
	desktop *Desktop
	sway    *swaywin.Backend
	bar     *Bar
	ipc     *ipc.Server
	bus     *ipc.BusService
}

func NewApp(cfg *config.Config) (*App, error) {
	return &App{
		config:  cfg,
		running: false,
		sigChan: make(chan os.Signal, 1),
	}, nil
}

// Run builds the desktop and blocks in the GTK main loop.
func (a *App) Run() error {
	a.running = true

	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-a.sigChan
		log.Printf("Received signal: %v", sig)
		glib.IdleAdd(a.Quit)
	}()

	log.Println("xpdesk starting...")

	if err := a.initialize(); err != nil {
		return err
	}

	gtk.Main()
	return nil
}

func (a *App) initialize() error {
	log.Printf("Initializing components (backend=%s)...", a.config.Backend)

	gtk.Init(nil)
	SetupStyles(a.config)

	go a.monitorGTKMainLoop()

	taskbar, err := NewTaskbar(a.config)
	if err != nil {
		return err
	}
	a.taskbar = taskbar

	deps := winstate.Deps{
		Scheduler: glibScheduler{},
		Taskbar:   taskbar,
		Start:     taskbar.Start(),
	}

	var top *gtk.Window
	switch a.config.Backend {
	case config.BackendSway:
		backend, err := swaywin.Connect(context.Background(), a.config.Sway.Icons, a.config.Sway.DefaultIcon)
		if err != nil {
			return err
		}
		if err := backend.Refresh(context.Background()); err != nil {
			return err
		}
		bar, err := NewBar(a.config, taskbar, backend)
		if err != nil {
			return err
		}
		a.sway, a.bar = backend, bar
		deps.Tree = backend
		top = bar.Window()
	default:
		p, err := page.Load(a.config.LayoutPath)
		if err != nil {
			return fmt.Errorf("failed to load layout: %w", err)
		}
		p.SetCartID(a.config.Cart.ContainerID)
		desktop, err := NewDesktop(a.config, p, taskbar)
		if err != nil {
			return err
		}
		if a.config.Taskbar.ShowCart {
			cart := p.Cart()
			if err := taskbar.AddCartButton(cartButtonLabel, cart.Show); err != nil {
				log.Printf("Failed to add cart button: %v", err)
			}
		}
		a.page, a.desktop = p, desktop
		deps.Tree = p
		deps.Cart = p.Cart()
		top = desktop.Window()
	}

	deps.Prompter = &dialogPrompter{parent: top}
	a.mgr = winstate.NewManager(a.config.ManagerConfig(), deps)
	a.mgr.Bind()

	menu, err := startmenu.New(a.mgr, startmenu.Options{
		MaxResults: a.config.StartMenu.MaxResults,
		MinScore:   a.config.StartMenu.MinScore,
		CacheSize:  a.config.StartMenu.CacheSize,
	})
	if err != nil {
		return err
	}
	a.menu = menu

	if a.config.Debug.KeyBindings {
		a.setupDebugKeys(top)
	}
	top.Connect("destroy", a.Quit)

	if a.desktop != nil {
		a.desktop.Show()
	}
	if a.bar != nil {
		a.bar.Start(a.mgr.Forget)
	}

	if err := a.startIPC(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
	}

	log.Println("Initialization complete")
	return nil
}

// Quit gracefully quits the application.
func (a *App) Quit() {
	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	if a.bar != nil {
		a.bar.Stop()
	}
	if a.bus != nil {
		a.bus.Stop()
	}
	if a.ipc != nil {
		a.ipc.Stop()
	}

	gtk.MainQuit()
}

// monitorGTKMainLoop logs when the main loop stops answering, which
// stalls every pending window transition.
func (a *App) monitorGTKMainLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		log.Printf("[MONITOR] Goroutines: %d, Alloc: %d MB", runtime.NumGoroutine(), m.Alloc/1024/1024)

		done := make(chan struct{}, 1)
		glib.IdleAdd(func() {
			done <- struct{}{}
		})

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			log.Printf("[MONITOR] WARNING: GTK main loop appears to be BLOCKED (callback not executed in 2s)")
		}
	}
}
