package winstate

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Config holds the manager settings.
type Config struct {
	Timings          Timings
	PlaceholderTitle string
	PlaceholderIcon  string
	UnknownTitle     string
	CartContainerID  string
}

// DefaultManagerConfig returns the stock manager settings.
func DefaultManagerConfig() Config {
	return Config{
		Timings:          DefaultTimings(),
		PlaceholderTitle: "Window",
		PlaceholderIcon:  "📄",
		UnknownTitle:     "Unknown Window",
		CartContainerID:  "cart-modal",
	}
}

// Deps are the collaborators a manager drives. Nil members are replaced
// with no-op implementations, except Scheduler which is required.
type Deps struct {
	Tree      Tree
	Scheduler Scheduler
	Taskbar   Taskbar
	Start     StartButton
	Prompter  Prompter
	Cart      Cart
}

// Manager owns the minimize/maximize/close lifecycle of every window panel.
//
// A Manager is not safe for concurrent use: every method, and every
// callback it hands to the Scheduler, must run on the UI thread.
type Manager struct {
	cfg     Config
	tree    Tree
	sched   Scheduler
	taskbar Taskbar
	start   StartButton
	prompt  Prompter
	cart    Cart

	windows    map[Panel]*Window
	byID       map[string]*Window
	order      []*Window
	minimized  *registry
	closed     *registry
	generation uint64
}

// NewManager creates a window manager. Call Bind to attach it to the tree.
func NewManager(cfg Config, deps Deps) *Manager {
	def := DefaultManagerConfig()
	if cfg.Timings == (Timings{}) {
		cfg.Timings = def.Timings
	}
	if cfg.PlaceholderTitle == "" {
		cfg.PlaceholderTitle = def.PlaceholderTitle
	}
	if cfg.PlaceholderIcon == "" {
		cfg.PlaceholderIcon = def.PlaceholderIcon
	}
	if cfg.UnknownTitle == "" {
		cfg.UnknownTitle = def.UnknownTitle
	}

	m := &Manager{
		cfg:       cfg,
		tree:      deps.Tree,
		sched:     deps.Scheduler,
		taskbar:   deps.Taskbar,
		start:     deps.Start,
		prompt:    deps.Prompter,
		cart:      deps.Cart,
		windows:   make(map[Panel]*Window),
		byID:      make(map[string]*Window),
		minimized: newRegistry(),
		closed:    newRegistry(),
	}
	if m.tree == nil {
		m.tree = nopTree{}
	}
	if m.taskbar == nil {
		m.taskbar = nopTaskbar{}
	}
	if m.start == nil {
		m.start = nopStart{}
	}
	if m.prompt == nil {
		m.prompt = nopPrompter{}
	}
	if m.cart == nil {
		m.cart = nopCart{}
	}
	return m
}

// Bind assigns an id to every panel in the tree and wires the title bar
// controls and the start button to the manager.
func (m *Manager) Bind() {
	for _, p := range m.tree.Panels() {
		m.track(p)
	}

	bound := 0
	for _, role := range []string{RoleMinimize, RoleMaximize, RoleClose} {
		for _, c := range m.tree.Controls(role) {
			if c.Bind == nil || c.Panel == nil {
				continue
			}
			panel := c.Panel
			switch role {
			case RoleMinimize:
				c.Bind(func() { m.Minimize(panel) })
			case RoleMaximize:
				c.Bind(func() { m.Maximize(panel) })
			case RoleClose:
				c.Bind(func() { m.Close(panel) })
			}
			bound++
		}
	}

	m.start.OnActivate(m.ActivateStart)
	m.refreshStart()

	log.Printf("[WINSTATE] Tracking %d windows, %d controls bound", len(m.order), bound)
}

// Minimize animates an open window into the taskbar.
func (m *Manager) Minimize(p Panel) {
	if p == nil {
		return
	}
	w := m.track(p)
	if !m.apply(w, EventMinimize) {
		return
	}
	m.capture(w)

	p.SetClass(ClassTransition, true)
	p.SetClass(ClassMinimizing, true)

	m.sched.After(m.cfg.Timings.Minimize, func() {
		if !m.tracked(w) {
			return
		}
		m.apply(w, EventMinimizeDone)
		p.SetClass(ClassMinimized, true)
		p.SetClass(ClassMinimizing, false)
		p.SetClass(ClassTransition, false)

		m.minimized.put(w)
		m.bump()

		id := w.ID
		m.taskbar.Add(id, w.Title, w.Icon, func() { m.Restore(id) })
		m.refreshStart()

		log.Printf("[WINSTATE] Window %q minimized to taskbar", w.Title)
	})
}

// Restore brings a minimized window back. Unknown ids are ignored.
func (m *Manager) Restore(id string) {
	w, ok := m.minimized.get(id)
	if !ok {
		return
	}
	if !m.apply(w, EventRestore) {
		return
	}

	m.minimized.remove(id)
	m.bump()
	m.taskbar.Remove(id)

	p := w.Panel
	p.SetClass(ClassTransition, true)
	p.SetClass(ClassMinimized, false)
	p.SetClass(ClassRestoring, true)

	m.sched.After(m.cfg.Timings.Restore, func() {
		m.apply(w, EventRestoreDone)
		p.SetClass(ClassRestoring, false)
		p.SetClass(ClassTransition, false)
		m.refreshStart()
	})
}

// Close hides an open window and keeps it for reopening. The cart overlay
// is handed to the cart collaborator instead and never tracked.
func (m *Manager) Close(p Panel) {
	if p == nil {
		return
	}
	if m.cfg.CartContainerID != "" && p.Within(m.cfg.CartContainerID) {
		m.cart.Hide()
		return
	}

	w := m.track(p)
	if !m.apply(w, EventClose) {
		return
	}
	m.capture(w)

	p.SetClass(ClassTransition, true)
	p.SetClass(ClassClosing, true)

	m.highlightStart()

	m.sched.After(m.cfg.Timings.Close, func() {
		if !m.tracked(w) {
			return
		}
		m.apply(w, EventCloseDone)
		p.SetClass(ClassClosed, true)
		p.SetClass(ClassClosing, false)
		p.SetClass(ClassTransition, false)

		m.closed.put(w)
		m.bump()
		m.refreshStart()

		log.Printf("[WINSTATE] Window %q closed and stored for reopening", w.Title)
	})
}

// Reopen shows a closed window again. collection selects the longer
// animation used by RestoreAll. Unknown ids are ignored.
func (m *Manager) Reopen(id string, collection bool) {
	w, ok := m.closed.get(id)
	if !ok {
		return
	}
	if !m.apply(w, EventReopen) {
		return
	}

	m.closed.remove(id)
	m.bump()

	class, d := ClassOpening, m.cfg.Timings.Reopen
	if collection {
		class, d = ClassCollection, m.cfg.Timings.CollectionReopen
	}

	p := w.Panel
	p.SetClass(ClassTransition, true)
	p.SetClass(ClassClosed, false)
	p.SetClass(class, true)

	m.sched.After(d, func() {
		m.apply(w, EventReopenDone)
		p.SetClass(class, false)
		p.SetClass(ClassTransition, false)
		m.refreshStart()
	})

	log.Printf("[WINSTATE] Window %q reopened", w.Title)
}

// Maximize toggles the maximized flag of an open window.
func (m *Manager) Maximize(p Panel) {
	if p == nil {
		return
	}
	w := m.track(p)
	if w.State != StateOpen {
		return
	}
	w.Maximized = !w.Maximized
	p.SetClass(ClassMaximized, w.Maximized)
}

// RestoreAll reopens every closed window and then restores every
// minimized one, one stagger interval apart.
func (m *Manager) RestoreAll() {
	m.start.SetClass(ClassStartPulse, false)

	closed := m.closed.ids()
	minimized := m.minimized.ids()

	var delay time.Duration
	for _, id := range closed {
		id := id
		m.sched.After(delay, func() { m.Reopen(id, true) })
		delay += m.cfg.Timings.Stagger
	}
	for _, id := range minimized {
		id := id
		m.sched.After(delay, func() { m.Restore(id) })
		delay += m.cfg.Timings.Stagger
	}

	log.Printf("[WINSTATE] Restoring %d windows from start menu", len(closed)+len(minimized))
}

// ActivateStart handles a click on the start button.
func (m *Manager) ActivateStart() {
	closedCount := m.closed.len()
	minimizedCount := m.minimized.len()

	if closedCount == 0 && minimizedCount == 0 {
		m.prompt.Inform("Start Menu\n\nAll windows are currently open and active.\nNo windows need to be restored.")
		return
	}

	var b strings.Builder
	b.WriteString("Start Menu\n\n")
	if closedCount > 0 {
		fmt.Fprintf(&b, "%d closed window(s) available to reopen\n", closedCount)
	}
	if minimizedCount > 0 {
		fmt.Fprintf(&b, "%d minimized window(s) available to restore\n", minimizedCount)
	}
	b.WriteString("\nWould you like to restore all windows?")

	if m.prompt.Confirm(b.String()) {
		m.RestoreAll()
	}
}

// States returns the minimized and closed ids and the titles of the
// windows currently open in the tree.
func (m *Manager) States() Snapshot {
	s := Snapshot{
		Minimized: m.minimized.ids(),
		Closed:    m.closed.ids(),
		Open:      make([]string, 0),
	}
	for _, p := range m.tree.Panels() {
		if p.HasClass(ClassMinimized) || p.HasClass(ClassClosed) {
			continue
		}
		title, ok := p.Title()
		if !ok || title == "" {
			title = m.cfg.UnknownTitle
		}
		s.Open = append(s.Open, title)
	}
	return s
}

// Forget drops a panel that no longer exists, along with any taskbar
// entry or registry membership it had.
func (m *Manager) Forget(p Panel) {
	w, ok := m.windows[p]
	if !ok {
		return
	}
	delete(m.windows, p)
	delete(m.byID, w.ID)
	for i, o := range m.order {
		if o == w {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	wasMinimized := m.minimized.remove(w.ID)
	wasClosed := m.closed.remove(w.ID)
	if wasMinimized {
		m.taskbar.Remove(w.ID)
	}
	if wasMinimized || wasClosed {
		m.bump()
	}
	m.refreshStart()

	log.Printf("[WINSTATE] Window %q is gone", w.Title)
}

// Restorable lists closed windows, then minimized ones, in registry order.
func (m *Manager) Restorable() []Entry {
	entries := make([]Entry, 0, m.closed.len()+m.minimized.len())
	for _, w := range m.closed.windows() {
		entries = append(entries, Entry{ID: w.ID, Title: w.Title, Icon: w.Icon, Kind: KindClosed})
	}
	for _, w := range m.minimized.windows() {
		entries = append(entries, Entry{ID: w.ID, Title: w.Title, Icon: w.Icon, Kind: KindMinimized})
	}
	return entries
}

// Activate reopens or restores the window with the given id, whichever
// registry holds it. It reports whether the id was found.
func (m *Manager) Activate(id string) bool {
	if _, ok := m.closed.get(id); ok {
		m.Reopen(id, false)
		return true
	}
	if _, ok := m.minimized.get(id); ok {
		m.Restore(id)
		return true
	}
	return false
}

// Window returns a copy of the tracked window with the given id.
func (m *Manager) Window(id string) (Window, bool) {
	w, ok := m.byID[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// WindowOf returns a copy of the tracked window for a panel.
func (m *Manager) WindowOf(p Panel) (Window, bool) {
	w, ok := m.windows[p]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of all tracked windows in the order they were
// first seen.
func (m *Manager) Windows() []Window {
	out := make([]Window, len(m.order))
	for i, w := range m.order {
		out[i] = *w
	}
	return out
}

// RestorableCount returns the number of closed plus minimized windows.
func (m *Manager) RestorableCount() int {
	return m.closed.len() + m.minimized.len()
}

// Generation changes every time registry membership changes.
func (m *Manager) Generation() uint64 {
	return m.generation
}

func (m *Manager) tracked(w *Window) bool {
	return m.windows[w.Panel] == w
}

func (m *Manager) track(p Panel) *Window {
	if w, ok := m.windows[p]; ok {
		return w
	}

	w := &Window{Panel: p, State: StateOpen, Maximized: p.HasClass(ClassMaximized)}
	m.capture(w)
	w.ID = windowID(w.Section, w.Title, func(id string) bool {
		_, taken := m.byID[id]
		return taken
	})

	m.windows[p] = w
	m.byID[w.ID] = w
	m.order = append(m.order, w)
	return w
}

// capture reads title, icon and section from the panel as they are now.
func (m *Manager) capture(w *Window) {
	title, ok := w.Panel.Title()
	if !ok || title == "" {
		title = m.cfg.PlaceholderTitle
	}
	icon, ok := w.Panel.Icon()
	if !ok || icon == "" {
		icon = m.cfg.PlaceholderIcon
	}
	w.Title = title
	w.Icon = icon
	w.Section = w.Panel.Section()
}

func (m *Manager) apply(w *Window, e Event) bool {
	next, ok := Transition(w.State, e)
	if !ok {
		log.Printf("[WINSTATE] Ignoring %s on %s (state %s)", e, w.ID, w.State)
		return false
	}
	w.State = next
	return true
}

func (m *Manager) bump() {
	m.generation++
}

func (m *Manager) refreshStart() {
	n := m.RestorableCount()
	if n > 0 {
		m.start.SetClass(ClassStartPulse, true)
		m.start.SetTooltip(fmt.Sprintf("Click to restore %d window(s)", n))
		return
	}
	m.start.SetClass(ClassStartPulse, false)
	m.start.SetTooltip("Start")
}

func (m *Manager) highlightStart() {
	m.start.SetClass(ClassStartHighlight, true)
	m.sched.After(m.cfg.Timings.Highlight, func() {
		m.start.SetClass(ClassStartHighlight, false)
		if m.closed.len() > 0 {
			m.start.SetClass(ClassStartPulse, true)
		}
	})
}

type nopTree struct{}

func (nopTree) Panels() []Panel           { return nil }
func (nopTree) Controls(string) []Control { return nil }

type nopTaskbar struct{}

func (nopTaskbar) Add(string, string, string, func()) {}
func (nopTaskbar) Remove(string)                      {}

type nopStart struct{}

func (nopStart) SetTooltip(string)     {}
func (nopStart) SetClass(string, bool) {}
func (nopStart) OnActivate(func())     {}

type nopPrompter struct{}

func (nopPrompter) Confirm(string) bool { return false }
func (nopPrompter) Inform(string)       {}

type nopCart struct{}

func (nopCart) Hide() {}
