package page

import (
	"sort"
	"strings"

	"github.com/chess10kp/xpdesk/internal/winstate"
	"golang.org/x/net/html"
)

// Panel is a `.xp-window` element.
type Panel struct {
	page     *Page
	node     *html.Node
	controls []*Control
}

// Title returns the title bar text without the icon glyph.
func (p *Panel) Title() (string, bool) {
	tb := find(p.node, func(n *html.Node) bool { return hasClass(n, classTitleText) })
	if tb == nil {
		return "", false
	}
	title := collapse(textOf(tb, func(n *html.Node) bool { return hasClass(n, classIcon) }))
	return title, title != ""
}

// Icon returns the glyph inside the title bar.
func (p *Panel) Icon() (string, bool) {
	tb := find(p.node, func(n *html.Node) bool { return hasClass(n, classTitleText) })
	if tb == nil {
		return "", false
	}
	icon := find(tb, func(n *html.Node) bool { return hasClass(n, classIcon) })
	if icon == nil {
		return "", false
	}
	text := strings.TrimSpace(textOf(icon, nil))
	return text, text != ""
}

// Content returns the body text of the window.
func (p *Panel) Content() string {
	body := find(p.node, func(n *html.Node) bool { return hasClass(n, classContent) })
	if body == nil {
		return ""
	}
	return collapse(textOf(body, nil))
}

// Section returns the id of the nearest enclosing section.
func (p *Panel) Section() string {
	s := closest(p.node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == sectionTag
	})
	if s == nil {
		return ""
	}
	return attr(s, attrID)
}

// Within reports whether the panel is inside the element with the given id.
func (p *Panel) Within(id string) bool {
	return closest(p.node, func(n *html.Node) bool { return attr(n, attrID) == id }) != nil
}

// SetClass adds or removes a presentation class and notifies observers.
func (p *Panel) SetClass(class string, on bool) {
	if setClass(p.node, class, on) {
		p.page.notify(p)
	}
}

// HasClass reports whether the panel carries class.
func (p *Panel) HasClass(class string) bool {
	return hasClass(p.node, class)
}

// Classes returns the panel's classes in sorted order.
func (p *Panel) Classes() []string {
	classes := strings.Fields(attr(p.node, attrClass))
	sort.Strings(classes)
	return classes
}

// Visible reports whether the panel should be drawn.
func (p *Panel) Visible() bool {
	if p.HasClass(winstate.ClassMinimized) || p.HasClass(winstate.ClassClosed) {
		return false
	}
	return closest(p.node, func(n *html.Node) bool { return hasClass(n, classHidden) }) == nil
}

// Controls returns the title bar controls of the panel.
func (p *Panel) Controls() []*Control {
	out := make([]*Control, len(p.controls))
	copy(out, p.controls)
	return out
}

// Control is a title bar button.
type Control struct {
	Role    string
	node    *html.Node
	panel   *Panel
	onClick func()
}

// Click runs the handler bound to the control, if any.
func (c *Control) Click() {
	if c.onClick != nil {
		c.onClick()
	}
}
