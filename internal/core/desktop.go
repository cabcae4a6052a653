package core

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/xpdesk/internal/config"
	"github.com/chess10kp/xpdesk/internal/page"
	"github.com/chess10kp/xpdesk/internal/winstate"
)

// stateClasses are mirrored from page panels onto their widgets.
var stateClasses = []string{
	winstate.ClassTransition,
	winstate.ClassMinimizing,
	winstate.ClassMinimized,
	winstate.ClassRestoring,
	winstate.ClassClosing,
	winstate.ClassClosed,
	winstate.ClassOpening,
	winstate.ClassCollection,
	winstate.ClassMaximized,
}

var controlLabels = map[string]string{
	winstate.RoleMinimize: "_",
	winstate.RoleMaximize: "□",
	winstate.RoleClose:    "✕",
}

// Desktop draws the panels of a page layout above the taskbar.
type Desktop struct {
	config  *config.Config
	page    *page.Page
	window  *gtk.Window
	area    *gtk.Box
	taskbar *Taskbar
	widgets map[*page.Panel]*gtk.Box
}

func NewDesktop(cfg *config.Config, p *page.Page, taskbar *Taskbar) (*Desktop, error) {
	window, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop window: %w", err)
	}
	window.SetTitle(cfg.AppName)
	window.SetName("desktop")
	window.SetDefaultSize(1280, 800)

	root, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop box: %w", err)
	}

	area, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop area: %w", err)
	}
	area.SetHomogeneous(false)

	root.PackStart(area, true, true, 0)
	root.PackEnd(taskbar.Widget(), false, false, 0)
	window.Add(root)

	d := &Desktop{
		config:  cfg,
		page:    p,
		window:  window,
		area:    area,
		taskbar: taskbar,
		widgets: make(map[*page.Panel]*gtk.Box),
	}

	for _, panel := range p.Windows() {
		w, err := d.buildPanel(panel)
		if err != nil {
			return nil, err
		}
		area.PackStart(w, !panel.Within(cfg.Cart.ContainerID), true, 0)
		d.widgets[panel] = w
	}
	p.Observe(d.sync)

	return d, nil
}

func (d *Desktop) Window() *gtk.Window { return d.window }

// Show presents the desktop and applies the initial panel state.
func (d *Desktop) Show() {
	d.window.ShowAll()
	for panel := range d.widgets {
		d.sync(panel)
	}
}

func (d *Desktop) buildPanel(panel *page.Panel) (*gtk.Box, error) {
	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create window box: %w", err)
	}
	setStyleClass(box, "xp-window", true)

	titlebar, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to create title bar: %w", err)
	}
	setStyleClass(titlebar, "xp-titlebar", true)

	title, ok := panel.Title()
	if !ok {
		title = d.config.Windows.PlaceholderTitle
	}
	icon, ok := panel.Icon()
	if !ok {
		icon = d.config.Windows.PlaceholderIcon
	}
	label, err := gtk.LabelNew(fmt.Sprintf("%s %s", icon, title))
	if err != nil {
		return nil, fmt.Errorf("failed to create title label: %w", err)
	}
	label.SetXAlign(0)
	setStyleClass(label, "xp-titlebar-text", true)
	titlebar.PackStart(label, true, true, 0)

	for _, ctrl := range panel.Controls() {
		c := ctrl
		btn, err := gtk.ButtonNewWithLabel(controlLabels[c.Role])
		if err != nil {
			return nil, fmt.Errorf("failed to create %s control: %w", c.Role, err)
		}
		setStyleClass(btn, "xp-control", true)
		setStyleClass(btn, c.Role, true)
		btn.Connect("clicked", func() { c.Click() })
		titlebar.PackStart(btn, false, false, 0)
	}
	box.PackStart(titlebar, false, false, 0)

	content, err := gtk.LabelNew(panel.Content())
	if err != nil {
		return nil, fmt.Errorf("failed to create content label: %w", err)
	}
	content.SetLineWrap(true)
	content.SetXAlign(0)
	content.SetYAlign(0)
	setStyleClass(content, "xp-window-content", true)
	box.PackStart(content, true, true, 0)

	return box, nil
}

// sync mirrors a panel's classes and visibility onto its widget.
func (d *Desktop) sync(panel *page.Panel) {
	w, ok := d.widgets[panel]
	if !ok {
		return
	}
	for _, class := range stateClasses {
		setStyleClass(w, class, panel.HasClass(class))
	}
	if panel.Visible() {
		w.Show()
	} else {
		w.Hide()
	}
	if title, ok := panel.Title(); ok {
		log.Printf("[DESKTOP] %s: %v", title, panel.Classes())
	}
}
