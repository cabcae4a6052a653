package swaywin

import (
	"fmt"

	"github.com/chess10kp/xpdesk/internal/winstate"
)

// Panel is a sway container holding an application window.
type Panel struct {
	backend   *Backend
	id        int64
	title     string
	appID     string
	workspace string
	focused   bool
	classes   map[string]bool
}

func (p *Panel) ID() int64 { return p.id }

func (p *Panel) Title() (string, bool) {
	return p.title, p.title != ""
}

// Icon looks the app id up in the configured icon map.
func (p *Panel) Icon() (string, bool) {
	if icon, ok := p.backend.icons[p.appID]; ok {
		return icon, true
	}
	return p.backend.defaultIcon, p.backend.defaultIcon != ""
}

// Section is the workspace the window lives on.
func (p *Panel) Section() string { return p.workspace }

// Within is always false; sway has no overlay containers.
func (p *Panel) Within(string) bool { return false }

func (p *Panel) HasClass(class string) bool { return p.classes[class] }

// SetClass records the class and issues the matching sway command.
func (p *Panel) SetClass(class string, on bool) {
	if p.classes[class] == on {
		return
	}
	p.classes[class] = on
	if cmd, ok := command(p.id, class, on, p.hidden()); ok {
		p.backend.run(cmd)
	}
}

func (p *Panel) hidden() bool {
	return p.classes[winstate.ClassMinimized] || p.classes[winstate.ClassClosed]
}

// command maps a presentation class change to a sway command. hidden is
// the panel's hidden state after the change.
func command(id int64, class string, on, hidden bool) (string, bool) {
	target := fmt.Sprintf("[con_id=%d]", id)
	switch class {
	case winstate.ClassMinimized, winstate.ClassClosed:
		if on {
			return target + " move scratchpad", true
		}
		if hidden {
			return "", false
		}
		return target + " scratchpad show, floating disable", true
	case winstate.ClassMaximized:
		if on {
			return target + " fullscreen enable", true
		}
		return target + " fullscreen disable", true
	}
	return "", false
}
