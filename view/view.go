// SPDX-License-Identifier: Unlicense OR MIT

// Package view implements the retained view tree that windows host.
// Views form a hierarchy, carry bounds in their window's coordinate
// space, and receive pointer, key and focus events from their
// window's dispatcher.
package view

import (
	"image"

	"okno.org/f32"
	"okno.org/io/key"
	"okno.org/io/pointer"
)

// Host is the window side of a view tree. It owns the handle table
// and is told when views leave the tree or become ineligible for
// input, so that focus and capture grants referring to them can be
// cleared.
type Host interface {
	Table() *Table
	// ViewRemoved is called for every view of a removed subtree,
	// after its handle has been dropped.
	ViewRemoved(*View)
	// ViewDisabled is called when a view in the tree is disabled.
	ViewDisabled(*View)
}

// A View is a node in a window's tree. Views are created detached and
// become live when added to a window's root (directly or through an
// attached ancestor).
type View struct {
	parent    *View
	children  []*View
	bounds    image.Rectangle
	enabled   bool
	focusable bool

	host   Host
	handle Handle

	onPointer func(pointer.Event)
	onKey     func(key.Event)
	onFocus   func(key.FocusEvent)
}

// New returns a detached, enabled, non focusable view.
func New() *View {
	return &View{enabled: true}
}

// SetBounds sets the view's bounds in window coordinates.
func (v *View) SetBounds(r image.Rectangle) {
	v.bounds = r
}

// Bounds returns the view's bounds in window coordinates.
func (v *View) Bounds() image.Rectangle {
	return v.bounds
}

// SetFocusable marks v as a valid keyboard focus target.
func (v *View) SetFocusable(focusable bool) {
	v.focusable = focusable
}

// Focusable reports whether v may receive keyboard focus.
func (v *View) Focusable() bool {
	return v.focusable
}

// SetEnabled enables or disables v. A disabled view and its subtree
// are skipped by hit testing and cannot hold focus.
func (v *View) SetEnabled(enabled bool) {
	if v.enabled == enabled {
		return
	}
	v.enabled = enabled
	if !enabled && v.host != nil {
		v.host.ViewDisabled(v)
	}
}

// Enabled reports whether v is enabled.
func (v *View) Enabled() bool {
	return v.enabled
}

// Parent returns v's parent, or nil for a root or detached view.
func (v *View) Parent() *View {
	return v.parent
}

// Root returns the root of the tree containing v.
func (v *View) Root() *View {
	r := v
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// HasAncestor reports whether a is v or an ancestor of v.
func (v *View) HasAncestor(a *View) bool {
	for w := v; w != nil; w = w.parent {
		if w == a {
			return true
		}
	}
	return false
}

// Handle returns v's weak handle. The zero Handle is returned while v
// is detached from any window.
func (v *View) Handle() Handle {
	return v.handle
}

// AddChild appends child to v's children. Children added later sit
// above earlier siblings for hit testing. If v is attached to a
// window, the child subtree is attached too.
func (v *View) AddChild(child *View) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = v
	v.children = append(v.children, child)
	if v.host != nil {
		child.attach(v.host)
	}
}

// Remove detaches child and its subtree from v. All handles into the
// subtree are invalidated and the host is notified per view.
func (v *View) Remove(child *View) {
	idx := -1
	for i, c := range v.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	v.children = append(v.children[:idx], v.children[idx+1:]...)
	child.parent = nil
	child.detach()
}

// Attach binds v and its subtree to host, issuing handles. It is
// called by the window for its root view.
func (v *View) Attach(host Host) {
	v.attach(host)
}

// Detach unbinds v and its subtree from its host, invalidating every
// handle into the subtree. It is called by the window when closing.
func (v *View) Detach() {
	v.detach()
}

func (v *View) attach(host Host) {
	v.host = host
	v.handle = host.Table().Put(v)
	for _, c := range v.children {
		c.attach(host)
	}
}

func (v *View) detach() {
	for _, c := range v.children {
		c.detach()
	}
	if v.host != nil {
		h := v.host
		h.Table().Drop(v.handle)
		v.handle = Handle{}
		v.host = nil
		h.ViewRemoved(v)
	}
}

// HitTest returns the deepest enabled view containing p, preferring
// children added later. It returns nil when p is outside v or v's
// subtree is disabled.
func (v *View) HitTest(p f32.Point) *View {
	if !v.enabled || !p.In(v.bounds) {
		return nil
	}
	for i := len(v.children) - 1; i >= 0; i-- {
		if hit := v.children[i].HitTest(p); hit != nil {
			return hit
		}
	}
	return v
}

// OnPointer registers f to receive pointer events routed to v.
func (v *View) OnPointer(f func(pointer.Event)) {
	v.onPointer = f
}

// OnKey registers f to receive key events while v is focused.
func (v *View) OnKey(f func(key.Event)) {
	v.onKey = f
}

// OnFocus registers f to be told when v gains or loses focus.
func (v *View) OnFocus(f func(key.FocusEvent)) {
	v.onFocus = f
}

// HandlePointer delivers e to v's pointer callback, if any.
func (v *View) HandlePointer(e pointer.Event) {
	if v.onPointer != nil {
		v.onPointer(e)
	}
}

// HandleKey delivers e to v's key callback, if any.
func (v *View) HandleKey(e key.Event) {
	if v.onKey != nil {
		v.onKey(e)
	}
}

// HandleFocus delivers e to v's focus callback, if any.
func (v *View) HandleFocus(e key.FocusEvent) {
	if v.onFocus != nil {
		v.onFocus(e)
	}
}
