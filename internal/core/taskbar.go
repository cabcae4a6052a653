package core

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/xpdesk/internal/config"
)

// Taskbar is the bottom strip holding the start button and one button per
// minimized window.
type Taskbar struct {
	config  *config.Config
	box     *gtk.Box
	tasks   *gtk.Box
	start   *StartButton
	cart    *gtk.Button
	buttons map[string]*pooledButton
	pool    buttonPool
}

func NewTaskbar(cfg *config.Config) (*Taskbar, error) {
	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create taskbar box: %w", err)
	}
	box.SetName("taskbar")
	if cfg.Taskbar.Height > 0 {
		box.SetSizeRequest(-1, cfg.Taskbar.Height)
	}

	startBtn, err := gtk.ButtonNewWithLabel(cfg.Taskbar.StartLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to create start button: %w", err)
	}
	startBtn.SetName("start-button")
	box.PackStart(startBtn, false, false, 0)

	tasks, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}
	box.PackStart(tasks, true, true, 4)

	return &Taskbar{
		config:  cfg,
		box:     box,
		tasks:   tasks,
		start:   &StartButton{button: startBtn},
		buttons: make(map[string]*pooledButton),
	}, nil
}

// AddCartButton adds a tray button that shows the cart overlay.
func (t *Taskbar) AddCartButton(label string, onClick func()) error {
	btn, err := gtk.ButtonNewWithLabel(label)
	if err != nil {
		return fmt.Errorf("failed to create cart button: %w", err)
	}
	setStyleClass(btn, "task-button", true)
	btn.Connect("clicked", onClick)
	t.box.PackEnd(btn, false, false, 4)
	t.cart = btn
	return nil
}

func (t *Taskbar) Widget() *gtk.Box { return t.box }

func (t *Taskbar) Start() *StartButton { return t.start }

// Add shows a button for a minimized window. Clicking it runs activate.
func (t *Taskbar) Add(id, title, icon string, activate func()) {
	t.Remove(id)

	b, err := t.pool.get(fmt.Sprintf("%s %s", icon, title), activate)
	if err != nil {
		log.Printf("[TASKBAR] failed to create button for %s: %v", id, err)
		return
	}
	setStyleClass(b, "task-button", true)
	b.SetTooltipText(title)
	if w := t.config.Taskbar.ButtonWidth; w > 0 {
		b.SetSizeRequest(w, -1)
	}
	t.tasks.PackStart(b, false, false, 0)
	b.ShowAll()
	t.buttons[id] = b
}

// Remove drops the button of a window, if present.
func (t *Taskbar) Remove(id string) {
	b, ok := t.buttons[id]
	if !ok {
		return
	}
	delete(t.buttons, id)
	t.tasks.Remove(b)
	t.pool.put(b)
	log.Printf("[TASKBAR] removed %s (%d pooled)", id, t.pool.size())
}

// StartButton adapts the taskbar start button to the window manager.
type StartButton struct {
	button *gtk.Button
}

func (s *StartButton) SetTooltip(text string) {
	s.button.SetTooltipText(text)
}

func (s *StartButton) SetClass(class string, on bool) {
	setStyleClass(s.button, class, on)
}

func (s *StartButton) OnActivate(fn func()) {
	s.button.Connect("clicked", fn)
}
