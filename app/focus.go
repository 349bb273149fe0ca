// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"okno.org/io/key"
	"okno.org/view"
)

// focusChain tracks a window's keyboard focus. live is the view that
// receives key events right now; memory is the view to restore when
// the window regains activation. While a window is inactive, live is
// empty and memory carries the last focused view.
type focusChain struct {
	w      *Window
	live   view.Handle
	memory view.Handle
}

func (f *focusChain) focused() *view.View {
	return f.w.env.table.Get(f.live)
}

// set moves focus to v, blurring the previous holder first. Focus is
// refused for views that are disabled, not focusable or outside the
// window's tree.
func (f *focusChain) set(v *view.View) bool {
	if v == nil || !v.Enabled() || !v.Focusable() {
		return false
	}
	h := v.Handle()
	if f.w.env.table.Get(h) != v || v.Root() != f.w.root {
		return false
	}
	if prev := f.focused(); prev == v {
		f.memory = h
		return true
	} else if prev != nil {
		prev.HandleFocus(key.FocusEvent{Focus: false})
	}
	f.live = h
	f.memory = h
	v.HandleFocus(key.FocusEvent{Focus: true})
	return true
}

// suspend blurs the live view when the window deactivates. memory is
// kept so activation can bring focus back.
func (f *focusChain) suspend() {
	if v := f.focused(); v != nil {
		v.HandleFocus(key.FocusEvent{Focus: false})
	}
	f.live = view.Handle{}
}

// restore reinstates the remembered view on activation, if it still
// exists and is still eligible.
func (f *focusChain) restore() {
	v := f.w.env.table.Get(f.memory)
	if v == nil || !v.Enabled() || !v.Focusable() {
		f.memory = view.Handle{}
		return
	}
	if f.live == f.memory {
		return
	}
	f.live = f.memory
	v.HandleFocus(key.FocusEvent{Focus: true})
}

// viewDisabled drops focus from a view that was just disabled. The
// view is blurred but stays in memory; restore rechecks eligibility,
// so a still disabled view never gets focus back. Disabling a view
// never activates its window.
func (f *focusChain) viewDisabled(v *view.View) {
	if f.focused() != v {
		return
	}
	v.HandleFocus(key.FocusEvent{Focus: false})
	f.live = view.Handle{}
}
