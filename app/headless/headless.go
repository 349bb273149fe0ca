// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements an in process windowing backend with no
// display. It serves tests and probes: windows are plain records,
// keyboard input ownership moves synchronously, and the pointer is
// driven by posting events.
package headless

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"okno.org/app"
	"okno.org/f32"
	"okno.org/io/key"
	"okno.org/io/pointer"
)

// ErrNoSink is returned by NewWindow before Attach has been called.
var ErrNoSink = errors.New("headless: bridge not attached")

type nativeWindow struct {
	desc    app.WindowDesc
	showing bool
}

// Bridge is an in process app.Bridge.
type Bridge struct {
	sink    app.Sink
	windows map[app.NativeID]*nativeWindow
	focus   app.NativeID
	capture app.NativeID
	start   time.Time
}

// New returns an unattached bridge.
func New() *Bridge {
	return &Bridge{
		windows: make(map[app.NativeID]*nativeWindow),
		start:   time.Now(),
	}
}

// Attach implements app.Bridge.
func (b *Bridge) Attach(s app.Sink) {
	b.sink = s
}

// NewWindow implements app.Bridge. Handles are random and never
// recycled within a process.
func (b *Bridge) NewWindow(desc app.WindowDesc) (app.NativeID, error) {
	if b.sink == nil {
		return "", ErrNoSink
	}
	id := app.NativeID(uuid.NewString())
	b.windows[id] = &nativeWindow{desc: desc}
	return id, nil
}

// DestroyWindow implements app.Bridge. Destroying the focus owner
// moves keyboard input to its owner chain, like a desktop giving
// focus back when a dialog goes away.
func (b *Bridge) DestroyWindow(id app.NativeID) {
	w, ok := b.windows[id]
	if !ok {
		return
	}
	delete(b.windows, id)
	if b.capture == id {
		b.capture = ""
	}
	if b.focus == id {
		b.setFocus(b.fallbackFocus(w.desc.Owner))
	}
}

// Show implements app.Bridge. Showing an activatable top level window
// moves keyboard input to it, which is how desktops behave when a
// window first appears.
func (b *Bridge) Show(id app.NativeID) {
	w, ok := b.windows[id]
	if !ok {
		return
	}
	w.showing = true
	if w.desc.TopLevel && w.desc.Activatable {
		b.setFocus(id)
	}
}

// Hide implements app.Bridge.
func (b *Bridge) Hide(id app.NativeID) {
	w, ok := b.windows[id]
	if !ok {
		return
	}
	w.showing = false
	if b.focus == id {
		b.setFocus(b.fallbackFocus(w.desc.Owner))
	}
}

// Activate implements app.Bridge. The headless desktop grants every
// request for a showing, activatable window.
func (b *Bridge) Activate(id app.NativeID) {
	w, ok := b.windows[id]
	if !ok || !w.showing || !w.desc.Activatable || !w.desc.TopLevel {
		return
	}
	b.setFocus(id)
}

// SetCapture implements app.Bridge.
func (b *Bridge) SetCapture(id app.NativeID) {
	if _, ok := b.windows[id]; ok {
		b.capture = id
	}
}

// ReleaseCapture implements app.Bridge.
func (b *Bridge) ReleaseCapture(id app.NativeID) {
	if b.capture == id {
		b.capture = ""
	}
}

// GlobalCapture implements app.Bridge. The headless pointer is
// process wide, so capture sees input aimed at any window.
func (b *Bridge) GlobalCapture() bool {
	return true
}

// FlashCaption simulates a platform repainting a window's caption as
// highlighted without moving keyboard input, the way attention
// flashing does. It must not activate the window.
func (b *Bridge) FlashCaption(id app.NativeID) {
	b.sink.NativeFrameHighlighted(id)
}

// FocusForeign simulates keyboard input ownership moving to a window
// this process does not manage.
func (b *Bridge) FocusForeign() {
	b.focus = ""
	b.sink.NativeFocusChanged("")
}

// Focused returns the native focus owner, or the zero NativeID.
func (b *Bridge) Focused() app.NativeID {
	return b.focus
}

func (b *Bridge) setFocus(id app.NativeID) {
	if b.focus == id {
		return
	}
	b.focus = id
	b.sink.NativeFocusChanged(id)
}

// fallbackFocus picks the nearest live ancestor in the owner chain,
// or the zero NativeID when the chain is gone.
func (b *Bridge) fallbackFocus(owner app.NativeID) app.NativeID {
	for owner != "" {
		if w, ok := b.windows[owner]; ok {
			if w.showing && w.desc.TopLevel && w.desc.Activatable {
				return owner
			}
			owner = w.desc.Owner
			continue
		}
		return ""
	}
	return ""
}

// Pointer event injection.

// MoveTo posts a pointer move at p against the window.
func (b *Bridge) MoveTo(id app.NativeID, p f32.Point) {
	b.post(id, pointer.Event{Kind: pointer.Move, Position: p})
}

// PressAt posts a primary button press at p against the window.
func (b *Bridge) PressAt(id app.NativeID, p f32.Point) {
	b.post(id, pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: p})
}

// ReleaseAt posts a primary button release at p against the window.
func (b *Bridge) ReleaseAt(id app.NativeID, p f32.Point) {
	b.post(id, pointer.Event{Kind: pointer.Release, Buttons: pointer.ButtonPrimary, Position: p})
}

// TapDownAt posts the start of a tap gesture at p against the window.
func (b *Bridge) TapDownAt(id app.NativeID, p f32.Point) {
	b.post(id, pointer.Event{Kind: pointer.TapDown, Source: pointer.Touch, Position: p})
}

// GestureEndAt posts the end of the current gesture at p.
func (b *Bridge) GestureEndAt(id app.NativeID, p f32.Point) {
	b.post(id, pointer.Event{Kind: pointer.GestureEnd, Source: pointer.Touch, Position: p})
}

// KeyPress posts a key press followed by its release against the
// window.
func (b *Bridge) KeyPress(id app.NativeID, name key.Name, mods key.Modifiers) {
	b.sink.Post(id, key.Event{Name: name, Modifiers: mods, State: key.Press})
	b.sink.Post(id, key.Event{Name: name, Modifiers: mods, State: key.Release})
}

func (b *Bridge) post(id app.NativeID, ev pointer.Event) {
	ev.Time = time.Since(b.start)
	b.sink.Post(id, ev)
}
