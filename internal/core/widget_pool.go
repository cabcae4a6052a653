package core

import (
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

// buttonPool recycles taskbar buttons, which come and go with every
// minimize and restore.
type buttonPool struct {
	buttons []*pooledButton
}

type pooledButton struct {
	*gtk.Button
	handler glib.SignalHandle
	bound   bool
}

// get returns a detached button labelled label whose clicked signal runs
// onClick.
func (p *buttonPool) get(label string, onClick func()) (*pooledButton, error) {
	var b *pooledButton
	if n := len(p.buttons); n > 0 {
		b = p.buttons[n-1]
		p.buttons = p.buttons[:n-1]
		b.SetLabel(label)
	} else {
		btn, err := gtk.ButtonNewWithLabel(label)
		if err != nil {
			return nil, err
		}
		b = &pooledButton{Button: btn}
	}
	b.handler = b.Connect("clicked", onClick)
	b.bound = true
	return b, nil
}

// put keeps b for reuse. The caller removes it from its container first.
func (p *buttonPool) put(b *pooledButton) {
	if b == nil {
		return
	}
	if b.bound {
		b.HandlerDisconnect(b.handler)
		b.bound = false
	}
	b.Hide()
	p.buttons = append(p.buttons, b)
}

func (p *buttonPool) size() int {
	return len(p.buttons)
}
