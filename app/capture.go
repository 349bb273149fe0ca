// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"okno.org/io/pointer"
	"okno.org/view"
)

// captureState is the environment wide pointer capture grant. At most
// one window holds capture at a time; the grant optionally pins a
// specific view that all captured pointer events are routed to.
type captureState struct {
	win  *Window
	view view.Handle
}

// SetCapture grants pointer capture to v's window, routing subsequent
// pointer events to v regardless of position. It reports whether the
// grant was installed: the window must be showing and v must live in
// its tree.
func (w *Window) SetCapture(v *view.View) bool {
	if w.destroyed || !w.showing {
		return false
	}
	if v == nil {
		v = w.root
	}
	if w.env.table.Get(v.Handle()) != v || v.Root() != w.root {
		return false
	}
	w.env.setCapture(w, v.Handle())
	return true
}

// ReleaseCapture drops the window's capture grant. Releasing when the
// window does not hold capture is a no-op. The releasing window is
// notified of the loss like any other transition out of capture.
func (w *Window) ReleaseCapture() {
	if w.env.capture.win != w {
		return
	}
	w.env.releaseCapture(w)
}

// HasCapture reports whether the window holds the capture grant.
func (w *Window) HasCapture() bool {
	return w.env.capture.win == w
}

// setCapture installs the grant. A previous holder in another window
// is torn down and notified before the new grant is installed, so an
// OnCaptureLost callback observes the old grant already cleared but
// never sees the new holder half installed.
func (e *Env) setCapture(w *Window, h view.Handle) {
	prev := e.capture.win
	if prev == w {
		e.capture.view = h
		return
	}
	if prev != nil {
		e.capture = captureState{}
		e.bridge.ReleaseCapture(prev.native)
		prev.notifyCaptureLost()
	}
	e.capture = captureState{win: w, view: h}
	e.bridge.SetCapture(w.native)
	e.synthesizeCaptureLeaves(w)
	e.log.Debug("capture granted", "id", string(w.native))
}

// releaseCapture clears the grant held by w and notifies it.
func (e *Env) releaseCapture(w *Window) {
	if e.capture.win != w {
		return
	}
	e.capture = captureState{}
	e.bridge.ReleaseCapture(w.native)
	w.notifyCaptureLost()
	e.log.Debug("capture released", "id", string(w.native))
}

// evictCaptureFor drops any capture held when a system modal is about
// to show, no matter which window holds it.
func (e *Env) evictCaptureFor(modal *Window) {
	if holder := e.capture.win; holder != nil && holder != modal {
		e.releaseCapture(holder)
	}
}

// synthesizeCaptureLeaves sends Leave to the hover target of every
// other window when a capture grant is installed, since the grant
// holder now shadows them.
func (e *Env) synthesizeCaptureLeaves(holder *Window) {
	for _, w := range e.windows {
		if w == holder {
			continue
		}
		if under := e.table.Get(w.lastUnder); under != nil {
			under.HandlePointer(pointer.Event{Kind: pointer.Leave})
			w.lastUnder = view.Handle{}
		}
	}
}
