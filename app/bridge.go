// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"okno.org/io/event"
)

// NativeID identifies a platform window. The environment treats it as
// opaque; bridges choose the representation.
type NativeID string

// Modality of a window.
type Modality uint8

const (
	// ModalNone is an ordinary window.
	ModalNone Modality = iota
	// ModalWindow blocks input to the window's owner chain while the
	// modal is showing.
	ModalWindow
	// ModalSystem blocks input to every other window and evicts any
	// held capture before the modal becomes visible.
	ModalSystem
)

func (m Modality) String() string {
	switch m {
	case ModalNone:
		return "ModalNone"
	case ModalWindow:
		return "ModalWindow"
	case ModalSystem:
		return "ModalSystem"
	default:
		panic("invalid Modality")
	}
}

// WindowDesc describes a native window to a Bridge.
type WindowDesc struct {
	Bounds image.Rectangle
	// Owner is the owning window's native handle, if any.
	Owner NativeID
	// TopLevel windows participate in activation. Child windows never
	// activate on their own.
	TopLevel bool
	// Activatable windows may become the active window. Non
	// activatable windows can still show and receive pointer input.
	Activatable bool
	Modal       Modality
}

// Sink receives native events from a Bridge. Env implements it. All
// methods must be called from the dispatch goroutine.
type Sink interface {
	// NativeFocusChanged reports that keyboard input ownership moved
	// to the given native window, or to none when id is empty. This
	// is the only signal that drives activation.
	NativeFocusChanged(id NativeID)
	// NativeFrameHighlighted reports a caption or frame repaint hint.
	// It carries no input ownership and must not change activation.
	NativeFrameHighlighted(id NativeID)
	// NativeWindowClosed reports that the platform destroyed the
	// window out from under us.
	NativeWindowClosed(id NativeID)
	// Post queues a translated input event for the given window.
	Post(id NativeID, e event.Event)
}

// A Bridge connects the environment to a windowing backend. The
// headless bridge serves tests and probes; the x11 bridge drives a
// real display server.
type Bridge interface {
	// Attach binds the bridge to its sink. It is called exactly once,
	// before any window is created.
	Attach(Sink)
	NewWindow(WindowDesc) (NativeID, error)
	DestroyWindow(NativeID)
	Show(NativeID)
	Hide(NativeID)
	// Activate asks the platform to move keyboard input ownership to
	// the window. The resulting NativeFocusChanged callback, not the
	// request, updates activation state.
	Activate(NativeID)
	SetCapture(NativeID)
	ReleaseCapture(NativeID)
	// GlobalCapture reports whether the platform routes pointer input
	// from every window to the capture holder, or only input on the
	// holder's own window.
	GlobalCapture() bool
}
