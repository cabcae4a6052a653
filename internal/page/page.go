// Package page loads the storefront layout and exposes its window panels
// as a queryable UI tree.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chess10kp/xpdesk/internal/winstate"
	"golang.org/x/net/html"
)

//go:embed layouts/storefront.html
var defaultLayout []byte

// Class names used by the layout markup.
const (
	classWindow    = "xp-window"
	classTitleText = "xp-titlebar-text"
	classIcon      = "xp-icon"
	classControl   = "xp-control"
	classContent   = "xp-window-content"
	classHidden    = "hidden"
	defaultCartID  = "cart-modal"
	sectionTag     = "section"
	attrClass      = "class"
	attrID         = "id"
)

// Page is a parsed layout. It is not safe for concurrent use.
type Page struct {
	root      *html.Node
	panels    []*Panel
	byNode    map[*html.Node]*Panel
	controls  []*Control
	cartID    string
	observers []func(*Panel)
}

// Parse reads layout markup.
func Parse(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	p := &Page{
		root:   root,
		byNode: make(map[*html.Node]*Panel),
		cartID: defaultCartID,
	}

	walk(root, func(n *html.Node) {
		if hasClass(n, classWindow) {
			panel := &Panel{page: p, node: n}
			p.panels = append(p.panels, panel)
			p.byNode[n] = panel
		}
	})

	walk(root, func(n *html.Node) {
		if !hasClass(n, classControl) {
			return
		}
		owner := closest(n, func(a *html.Node) bool { return hasClass(a, classWindow) })
		if owner == nil {
			return
		}
		for _, role := range []string{winstate.RoleMinimize, winstate.RoleMaximize, winstate.RoleClose} {
			if hasClass(n, role) {
				c := &Control{Role: role, node: n, panel: p.byNode[owner]}
				p.controls = append(p.controls, c)
				c.panel.controls = append(c.panel.controls, c)
				break
			}
		}
	})

	return p, nil
}

// Load reads the layout at path, or the built-in storefront layout when
// path is empty.
func Load(path string) (*Page, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

// Default returns the built-in storefront layout.
func Default() (*Page, error) {
	return Parse(bytes.NewReader(defaultLayout))
}

// SetCartID changes the id of the cart overlay container.
func (p *Page) SetCartID(id string) {
	if id != "" {
		p.cartID = id
	}
}

// Observe registers fn to be called whenever a panel's presentation changes.
func (p *Page) Observe(fn func(*Panel)) {
	p.observers = append(p.observers, fn)
}

// Panels returns every window panel in document order.
func (p *Page) Panels() []winstate.Panel {
	out := make([]winstate.Panel, len(p.panels))
	for i, panel := range p.panels {
		out[i] = panel
	}
	return out
}

// Windows returns the concrete panels in document order.
func (p *Page) Windows() []*Panel {
	out := make([]*Panel, len(p.panels))
	copy(out, p.panels)
	return out
}

// Controls returns every title bar control with the given role.
func (p *Page) Controls(role string) []winstate.Control {
	var out []winstate.Control
	for _, c := range p.controls {
		if c.Role != role {
			continue
		}
		ctrl := c
		out = append(out, winstate.Control{
			Role:  ctrl.Role,
			Panel: ctrl.panel,
			Bind:  func(onClick func()) { ctrl.onClick = onClick },
		})
	}
	return out
}

// FindByTitle returns the first panel whose title matches, ignoring case.
func (p *Page) FindByTitle(title string) (*Panel, bool) {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, panel := range p.panels {
		if t, ok := panel.Title(); ok && strings.ToLower(t) == want {
			return panel, true
		}
	}
	return nil, false
}

// Cart returns the cart overlay collaborator.
func (p *Page) Cart() *Cart {
	return &Cart{page: p}
}

// Render writes the current markup, including presentation classes.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.root)
}

func (p *Page) notify(panel *Panel) {
	for _, fn := range p.observers {
		fn(panel)
	}
}

func (p *Page) elementByID(id string) *html.Node {
	var found *html.Node
	walk(p.root, func(n *html.Node) {
		if found == nil && attr(n, attrID) == id {
			found = n
		}
	})
	return found
}

// setContainerHidden toggles the hidden class on the element with the
// given id and notifies every panel inside it.
func (p *Page) setContainerHidden(id string, hidden bool) bool {
	n := p.elementByID(id)
	if n == nil {
		return false
	}
	if !setClass(n, classHidden, hidden) {
		return true
	}
	for _, panel := range p.panels {
		if panel.Within(id) {
			p.notify(panel)
		}
	}
	return true
}

// Cart hides and shows the cart overlay.
type Cart struct {
	page *Page
}

// Hide hides the cart overlay.
func (c *Cart) Hide() {
	c.page.setContainerHidden(c.page.cartID, true)
}

// Show shows the cart overlay.
func (c *Cart) Show() {
	c.page.setContainerHidden(c.page.cartID, false)
}

// Visible reports whether the cart overlay is shown.
func (c *Cart) Visible() bool {
	n := c.page.elementByID(c.page.cartID)
	return n != nil && !hasClass(n, classHidden)
}
