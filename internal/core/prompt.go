package core

import (
	"github.com/gotk3/gotk3/gtk"
)

// dialogPrompter asks questions with modal GTK message dialogs.
type dialogPrompter struct {
	parent *gtk.Window
}

func (p *dialogPrompter) Confirm(message string) bool {
	d := p.dialog(gtk.MESSAGE_QUESTION, gtk.BUTTONS_YES_NO, message)
	defer d.Destroy()
	return d.Run() == gtk.RESPONSE_YES
}

func (p *dialogPrompter) Inform(message string) {
	d := p.dialog(gtk.MESSAGE_INFO, gtk.BUTTONS_OK, message)
	defer d.Destroy()
	d.Run()
}

func (p *dialogPrompter) dialog(kind gtk.MessageType, buttons gtk.ButtonsType, message string) *gtk.MessageDialog {
	var parent gtk.IWindow
	if p.parent != nil {
		parent = p.parent
	}
	d := gtk.MessageDialogNew(parent, gtk.DIALOG_MODAL, kind, buttons, "%s", message)
	d.SetTitle("Start Menu")
	return d
}
