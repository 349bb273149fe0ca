// SPDX-License-Identifier: Unlicense OR MIT

// Package app implements window management: activation, keyboard
// focus, pointer capture and event dispatch over a pluggable native
// bridge.
package app

import (
	"io"
	"log/slog"

	"okno.org/view"
)

// A FocusObserver is notified whenever keyboard input ownership moves
// between native windows, including to or from windows the
// environment does not manage (reported as the zero NativeID).
type FocusObserver func(old, new NativeID)

// Env owns every window of a process and serializes their events.
// All methods must be called from the dispatch goroutine.
type Env struct {
	bridge Bridge
	log    *slog.Logger

	table   view.Table
	windows map[NativeID]*Window

	// active is the active window, or nil when activation is held by
	// no window or by a foreign one.
	active *Window
	// lastNativeFocus deduplicates repeated focus reports.
	lastNativeFocus NativeID
	focusObs        []FocusObserver

	capture captureState
	queue   eventQueue
	depth   int
}

// NewEnv creates an environment over bridge. The logger may be nil,
// in which case logging is discarded.
func NewEnv(bridge Bridge, log *slog.Logger) *Env {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Env{
		bridge:  bridge,
		log:     log,
		windows: make(map[NativeID]*Window),
	}
	bridge.Attach(e)
	return e
}

// AddFocusObserver registers obs for native focus transitions.
func (e *Env) AddFocusObserver(obs FocusObserver) {
	e.focusObs = append(e.focusObs, obs)
}

// Active returns the active window, or nil.
func (e *Env) Active() *Window {
	return e.active
}

// windowFor resolves a native handle to its window, or nil for
// foreign or destroyed windows.
func (e *Env) windowFor(id NativeID) *Window {
	return e.windows[id]
}

// NativeFocusChanged implements Sink. It is the sole activation
// trigger: windows become active only when the platform reports that
// they now own keyboard input.
func (e *Env) NativeFocusChanged(id NativeID) {
	if id == e.lastNativeFocus {
		return
	}
	old := e.lastNativeFocus
	e.lastNativeFocus = id

	var next *Window
	if w := e.windowFor(id); w != nil && w.topLevel && w.activatable {
		next = w
	}
	if prev := e.active; prev != nil && prev != next {
		e.active = nil
		prev.setActive(false)
	}
	if next != nil && next != e.active {
		e.active = next
		next.setActive(true)
	}
	e.log.Debug("native focus changed", "old", string(old), "new", string(id))
	for _, obs := range e.focusObs {
		obs(old, id)
	}
}

// NativeFrameHighlighted implements Sink. Frame and caption repaint
// hints carry no input ownership, so activation state is left alone.
func (e *Env) NativeFrameHighlighted(id NativeID) {
	e.log.Debug("frame highlight ignored", "id", string(id))
}

// NativeWindowClosed implements Sink.
func (e *Env) NativeWindowClosed(id NativeID) {
	if w := e.windowFor(id); w != nil {
		w.close(false)
	}
}
