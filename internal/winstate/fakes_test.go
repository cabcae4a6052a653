package winstate

import (
	"time"

	"github.com/chess10kp/xpdesk/internal/schedule"
)

type classChange struct {
	at    time.Duration
	class string
	on    bool
}

type fakePanel struct {
	clock      *schedule.Virtual
	title      string
	icon       string
	section    string
	noTitle    bool
	containers []string
	classes    map[string]bool
	changes    []classChange
}

func newPanel(clock *schedule.Virtual, section, title, icon string) *fakePanel {
	return &fakePanel{
		clock:   clock,
		title:   title,
		icon:    icon,
		section: section,
		classes: make(map[string]bool),
	}
}

func (p *fakePanel) Title() (string, bool) {
	if p.noTitle {
		return "", false
	}
	return p.title, true
}

func (p *fakePanel) Icon() (string, bool) {
	if p.noTitle || p.icon == "" {
		return "", false
	}
	return p.icon, true
}

func (p *fakePanel) Section() string { return p.section }

func (p *fakePanel) Within(id string) bool {
	for _, c := range p.containers {
		if c == id {
			return true
		}
	}
	return false
}

func (p *fakePanel) SetClass(class string, on bool) {
	p.classes[class] = on
	p.changes = append(p.changes, classChange{at: p.clock.Now(), class: class, on: on})
}

func (p *fakePanel) HasClass(class string) bool { return p.classes[class] }

// firstOn returns when class was first switched on.
func (p *fakePanel) firstOn(class string) (time.Duration, bool) {
	for _, c := range p.changes {
		if c.class == class && c.on {
			return c.at, true
		}
	}
	return 0, false
}

type fakeTree struct {
	panels   []Panel
	handlers map[string]map[Panel]func()
}

func newTree(panels ...*fakePanel) *fakeTree {
	t := &fakeTree{handlers: make(map[string]map[Panel]func())}
	for _, p := range panels {
		t.panels = append(t.panels, p)
	}
	return t
}

func (t *fakeTree) Panels() []Panel { return t.panels }

func (t *fakeTree) Controls(role string) []Control {
	controls := make([]Control, 0, len(t.panels))
	for _, p := range t.panels {
		panel := p
		controls = append(controls, Control{
			Role:  role,
			Panel: panel,
			Bind: func(onClick func()) {
				if t.handlers[role] == nil {
					t.handlers[role] = make(map[Panel]func())
				}
				t.handlers[role][panel] = onClick
			},
		})
	}
	return controls
}

func (t *fakeTree) click(role string, p Panel) {
	if h, ok := t.handlers[role][p]; ok {
		h()
	}
}

type taskbarEntry struct {
	title    string
	icon     string
	activate func()
}

type fakeTaskbar struct {
	order   []string
	entries map[string]taskbarEntry
	adds    int
}

func newTaskbar() *fakeTaskbar {
	return &fakeTaskbar{entries: make(map[string]taskbarEntry)}
}

func (tb *fakeTaskbar) Add(id, title, icon string, activate func()) {
	tb.adds++
	tb.order = append(tb.order, id)
	tb.entries[id] = taskbarEntry{title: title, icon: icon, activate: activate}
}

func (tb *fakeTaskbar) Remove(id string) {
	delete(tb.entries, id)
	for i, existing := range tb.order {
		if existing == id {
			tb.order = append(tb.order[:i], tb.order[i+1:]...)
			break
		}
	}
}

type fakeStart struct {
	tooltip string
	classes map[string]bool
	onClick func()
}

func newStart() *fakeStart {
	return &fakeStart{classes: make(map[string]bool)}
}

func (s *fakeStart) SetTooltip(text string)         { s.tooltip = text }
func (s *fakeStart) SetClass(class string, on bool) { s.classes[class] = on }
func (s *fakeStart) OnActivate(fn func())           { s.onClick = fn }

type fakePrompter struct {
	answer   bool
	confirms []string
	informs  []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)
	return p.answer
}

func (p *fakePrompter) Inform(message string) {
	p.informs = append(p.informs, message)
}

type fakeCart struct {
	hidden int
}

func (c *fakeCart) Hide() { c.hidden++ }

type harness struct {
	clock   *schedule.Virtual
	tree    *fakeTree
	taskbar *fakeTaskbar
	start   *fakeStart
	prompt  *fakePrompter
	cart    *fakeCart
	mgr     *Manager
}

func newHarness(panels ...*fakePanel) *harness {
	h := &harness{
		tree:    newTree(panels...),
		taskbar: newTaskbar(),
		start:   newStart(),
		prompt:  &fakePrompter{},
		cart:    &fakeCart{},
	}
	if len(panels) > 0 {
		h.clock = panels[0].clock
	} else {
		h.clock = schedule.NewVirtual()
	}
	h.mgr = NewManager(DefaultManagerConfig(), Deps{
		Tree:      h.tree,
		Scheduler: h.clock,
		Taskbar:   h.taskbar,
		Start:     h.start,
		Prompter:  h.prompt,
		Cart:      h.cart,
	})
	h.mgr.Bind()
	return h
}

func (h *harness) id(p Panel) string {
	w, ok := h.mgr.WindowOf(p)
	if !ok {
		return ""
	}
	return w.ID
}

func (h *harness) state(p Panel) State {
	w, _ := h.mgr.WindowOf(p)
	return w.State
}
