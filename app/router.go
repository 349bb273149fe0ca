// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"okno.org/io/key"
	"okno.org/io/pointer"
	"okno.org/view"
)

// dispatchPointer routes a pointer event posted against w. Bridges
// post Press, Release, Move, Cancel, TapDown and GestureEnd; Enter
// and Leave are synthesized here from hover transitions.
func (e *Env) dispatchPointer(w *Window, ev pointer.Event) {
	if w.destroyed || e.modalBlocked(w) {
		return
	}

	target := w
	captured := false
	var tv *view.View
	if holder := e.capture.win; holder != nil && (holder == w || e.bridge.GlobalCapture()) {
		// Captured input bypasses hit testing. A grant whose view has
		// since been removed falls back to the holder's root.
		target = holder
		captured = true
		tv = e.table.Get(e.capture.view)
		if tv == nil {
			tv = holder.root
		}
	} else {
		tv = w.root.HitTest(ev.Position)
		if tv == nil {
			tv = w.root
		}
	}
	if target.destroyed {
		return
	}

	const hoverKinds = pointer.Press | pointer.Move | pointer.Release
	if ev.Kind&hoverKinds != 0 {
		e.trackHover(target, tv)
	}

	tv.HandlePointer(ev)

	if !captured {
		return
	}
	// Re-read the grant: the handler may have moved or released it.
	switch ev.Kind {
	case pointer.Release:
		if holder := e.capture.win; holder != nil && holder.autoRelease {
			e.releaseCapture(holder)
		}
	case pointer.GestureEnd:
		// End of gesture always restores hit test routing, whatever
		// the holder's release policy.
		if holder := e.capture.win; holder != nil {
			e.releaseCapture(holder)
		}
	}
}

// trackHover synthesizes Leave and Enter around hover target changes.
// Each transition fires exactly once, Leave before Enter.
func (e *Env) trackHover(w *Window, tv *view.View) {
	prev := e.table.Get(w.lastUnder)
	if prev == tv {
		return
	}
	if prev != nil {
		prev.HandlePointer(pointer.Event{Kind: pointer.Leave})
	}
	w.lastUnder = tv.Handle()
	tv.HandlePointer(pointer.Event{Kind: pointer.Enter})
}

// dispatchKey routes a key event to the window's focused view.
func (e *Env) dispatchKey(w *Window, ev key.Event) {
	if w.destroyed || e.modalBlocked(w) {
		return
	}
	if v := w.Focused(); v != nil {
		v.HandleKey(ev)
	}
}

// modalBlocked reports whether input to w is blocked by a showing
// modal. A system modal blocks every other window; a window modal
// blocks its owner chain. Blocked events are dropped, not redirected.
func (e *Env) modalBlocked(w *Window) bool {
	for _, m := range e.windows {
		if m == w || !m.showing {
			continue
		}
		switch m.modal {
		case ModalSystem:
			return true
		case ModalWindow:
			for o := m.owner; o != nil; o = o.owner {
				if o == w {
					return true
				}
			}
		}
	}
	return false
}
