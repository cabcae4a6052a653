package winstate

import (
	"fmt"
	"time"
)

// Presentation classes applied to panels and the start button. Hosts map
// them onto CSS classes (GTK) or window manager commands (sway).
const (
	ClassTransition = "window-state-transition"
	ClassMinimizing = "minimizing"
	ClassMinimized  = "minimized"
	ClassRestoring  = "restoring"
	ClassClosing    = "closing"
	ClassClosed     = "closed"
	ClassOpening    = "opening"
	ClassCollection = "window-collection"
	ClassMaximized  = "maximized"

	ClassStartPulse     = "start-button-pulse"
	ClassStartHighlight = "start-button-highlight"
)

// Control roles found in window title bars.
const (
	RoleMinimize = "minimize"
	RoleMaximize = "maximize"
	RoleClose    = "close"
)

// Panel is the UI node backing one window. Implementations must be
// comparable (pointer types) since the manager keys windows by panel.
type Panel interface {
	// Title returns the title bar text, false when the title element is missing.
	Title() (string, bool)
	// Icon returns the title bar glyph, false when missing.
	Icon() (string, bool)
	// Section returns the id of the enclosing page section, "" if none.
	Section() string
	// Within reports whether the panel sits inside the container with the given id.
	Within(containerID string) bool
	SetClass(class string, on bool)
	HasClass(class string) bool
}

// Control is a title bar button bound to the panel that encloses it.
type Control struct {
	Role  string
	Panel Panel
	// Bind registers the handler invoked when the control is clicked.
	Bind func(onClick func())
}

// Tree is the queryable UI tree the manager is attached to.
type Tree interface {
	Panels() []Panel
	Controls(role string) []Control
}

// Taskbar holds one projection per minimized window.
type Taskbar interface {
	Add(id, title, icon string, activate func())
	Remove(id string)
}

// StartButton is the page-level activation control.
type StartButton interface {
	SetTooltip(text string)
	SetClass(class string, on bool)
	// OnActivate registers the click handler.
	OnActivate(func())
}

// Prompter shows modal messages to the user.
type Prompter interface {
	Confirm(message string) bool
	Inform(message string)
}

// Cart is the cart overlay collaborator.
type Cart interface {
	Hide()
}

// Scheduler runs fn on the UI thread once d has elapsed. It never blocks.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Window is the tracked identity of a panel.
type Window struct {
	ID        string
	Title     string
	Icon      string
	Section   string
	Panel     Panel
	State     State
	Maximized bool
}

// Kind tells which registry an entry lives in.
type Kind int

const (
	KindMinimized Kind = iota
	KindClosed
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	if k == KindClosed {
		return "closed"
	}
	return "minimized"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "minimized":
		*k = KindMinimized
	case "closed":
		*k = KindClosed
	default:
		return fmt.Errorf("unknown window kind %q", text)
	}
	return nil
}

// Entry is a restorable window as listed by the start menu.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Kind  Kind   `json:"kind"`
}

// Snapshot is a read-only view of the window states.
type Snapshot struct {
	Minimized []string `json:"minimized"`
	Closed    []string `json:"closed"`
	Open      []string `json:"open"`
}

// Timings holds the fixed animation durations.
type Timings struct {
	Minimize         time.Duration
	Restore          time.Duration
	Close            time.Duration
	Reopen           time.Duration
	CollectionReopen time.Duration
	Stagger          time.Duration
	Highlight        time.Duration
}

// DefaultTimings returns the stock animation durations.
func DefaultTimings() Timings {
	return Timings{
		Minimize:         500 * time.Millisecond,
		Restore:          500 * time.Millisecond,
		Close:            600 * time.Millisecond,
		Reopen:           600 * time.Millisecond,
		CollectionReopen: 800 * time.Millisecond,
		Stagger:          200 * time.Millisecond,
		Highlight:        1500 * time.Millisecond,
	}
}
