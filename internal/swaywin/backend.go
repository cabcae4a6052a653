// Package swaywin exposes sway containers as window panels so the window
// manager can minimize, close and restore real application windows.
package swaywin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joshuarubin/go-sway"

	"github.com/chess10kp/xpdesk/internal/winstate"
)

// scratchWorkspace is sway's name for the scratchpad workspace.
const scratchWorkspace = "__i3_scratch"

// Client is the subset of the sway IPC client the backend needs.
type Client interface {
	GetTree(ctx context.Context) (*sway.Node, error)
	RunCommand(ctx context.Context, cmd string) ([]sway.RunCommandReply, error)
}

type Backend struct {
	client      Client
	icons       map[string]string
	defaultIcon string
	panels      map[int64]*Panel
	order       []*Panel

	// OnGone is called for every window whose container left the tree.
	OnGone func(winstate.Panel)
}

// Connect opens the sway IPC socket named by $SWAYSOCK.
func Connect(ctx context.Context, icons map[string]string, defaultIcon string) (*Backend, error) {
	client, err := sway.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sway: %w", err)
	}
	return New(client, icons, defaultIcon), nil
}

func New(client Client, icons map[string]string, defaultIcon string) *Backend {
	return &Backend{
		client:      client,
		icons:       icons,
		defaultIcon: defaultIcon,
		panels:      make(map[int64]*Panel),
	}
}

// Refresh re-reads the sway tree. Panels keep their identity across
// refreshes; containers that disappeared are dropped.
func (b *Backend) Refresh(ctx context.Context) error {
	tree, err := b.client.GetTree(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sway tree: %w", err)
	}

	seen := make(map[int64]bool)
	var visit func(n *sway.Node, workspace string)
	visit = func(n *sway.Node, workspace string) {
		if n.Type == sway.NodeWorkspace {
			workspace = n.Name
		}
		if isWindow(n) {
			seen[n.ID] = true
			b.update(n, workspace)
			return
		}
		for _, c := range n.Nodes {
			visit(c, workspace)
		}
		for _, c := range n.FloatingNodes {
			visit(c, workspace)
		}
	}
	visit(tree, "")

	var gone []*Panel
	kept := b.order[:0]
	for _, p := range b.order {
		if seen[p.id] {
			kept = append(kept, p)
			continue
		}
		delete(b.panels, p.id)
		gone = append(gone, p)
		log.Printf("[SWAY] container %d (%s) is gone", p.id, p.title)
	}
	b.order = kept

	if b.OnGone != nil {
		for _, p := range gone {
			b.OnGone(p)
		}
	}
	return nil
}

func (b *Backend) update(n *sway.Node, workspace string) {
	p, ok := b.panels[n.ID]
	if !ok {
		p = &Panel{backend: b, id: n.ID, classes: make(map[string]bool)}
		b.panels[n.ID] = p
		b.order = append(b.order, p)
	}
	p.title = n.Name
	p.appID = appID(n)
	p.focused = n.Focused
	// A window parked in the scratchpad keeps the workspace it came from.
	if workspace != scratchWorkspace || p.workspace == "" {
		p.workspace = workspace
	}
}

func isWindow(n *sway.Node) bool {
	if n.Type != sway.NodeCon && n.Type != sway.NodeFloatingCon {
		return false
	}
	return len(n.Nodes) == 0 && len(n.FloatingNodes) == 0 && appID(n) != ""
}

func appID(n *sway.Node) string {
	if n.AppID != nil && *n.AppID != "" {
		return *n.AppID
	}
	if n.WindowProperties != nil {
		return n.WindowProperties.Class
	}
	return ""
}

// Panels returns the known windows in the order they were first seen.
func (b *Backend) Panels() []winstate.Panel {
	out := make([]winstate.Panel, len(b.order))
	for i, p := range b.order {
		out[i] = p
	}
	return out
}

// Controls returns nothing: sway windows have no title bar buttons of ours.
func (b *Backend) Controls(string) []winstate.Control {
	return nil
}

// Focused returns the focused window, if it is one we know.
func (b *Backend) Focused() (*Panel, bool) {
	for _, p := range b.order {
		if p.focused {
			return p, true
		}
	}
	return nil, false
}

// FindByTitle returns the first window whose title matches, ignoring case.
func (b *Backend) FindByTitle(title string) (*Panel, bool) {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, p := range b.order {
		if strings.ToLower(p.title) == want {
			return p, true
		}
	}
	return nil, false
}

func (b *Backend) run(cmd string) {
	replies, err := b.client.RunCommand(context.Background(), cmd)
	if err != nil {
		log.Printf("[SWAY] command %q failed: %v", cmd, err)
		return
	}
	for _, r := range replies {
		if !r.Success {
			log.Printf("[SWAY] command %q rejected: %s", cmd, r.Error)
		}
	}
}
