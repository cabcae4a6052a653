// Package layer wraps the parts of gtk-layer-shell the taskbar needs.
package layer

/*
#cgo pkg-config: gtk-layer-shell-0
#include <gtk-layer-shell.h>
*/
import "C"

import (
	"unsafe"

	"github.com/gotk3/gotk3/gtk"
)

type Layer int

const (
	LayerBackground Layer = 0
	LayerBottom     Layer = 1
	LayerTop        Layer = 2
	LayerOverlay    Layer = 3
)

type Edge int

const (
	EdgeLeft   Edge = 0
	EdgeRight  Edge = 1
	EdgeTop    Edge = 2
	EdgeBottom Edge = 3
)

type KeyboardMode int

const (
	KeyboardModeNone      KeyboardMode = 0
	KeyboardModeExclusive KeyboardMode = 1
	KeyboardModeOnDemand  KeyboardMode = 2
)

func native(window *gtk.Window) *C.GtkWindow {
	return (*C.GtkWindow)(unsafe.Pointer(window.GObject))
}

// IsSupported reports whether the compositor speaks the layer shell
// protocol.
func IsSupported() bool {
	return C.gtk_layer_is_supported() != 0
}

// DockBottom turns window into a full-width panel along the bottom edge
// that reserves height pixels from other windows.
func DockBottom(window *gtk.Window, height int) {
	w := native(window)
	C.gtk_layer_init_for_window(w)
	C.gtk_layer_set_layer(w, C.GtkLayerShellLayer(LayerTop))
	for _, edge := range []Edge{EdgeLeft, EdgeRight, EdgeBottom} {
		C.gtk_layer_set_anchor(w, C.GtkLayerShellEdge(edge), 1)
	}
	C.gtk_layer_set_anchor(w, C.GtkLayerShellEdge(EdgeTop), 0)
	C.gtk_layer_set_margin(w, C.GtkLayerShellEdge(EdgeBottom), 0)
	C.gtk_layer_set_exclusive_zone(w, C.int(height))
	C.gtk_layer_set_keyboard_mode(w, C.GtkLayerShellKeyboardMode(KeyboardModeOnDemand))
}
