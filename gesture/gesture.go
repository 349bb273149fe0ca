// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements pointer gesture recognizers that sit
between raw pointer events and view logic. Recognizers are plain
structs that views feed their pointer events to.
*/
package gesture

import (
	"okno.org/f32"
	"okno.org/io/pointer"
	"okno.org/view"
)

// A Capturer grants and revokes pointer capture for the views it
// hosts. app.Window implements it.
type Capturer interface {
	SetCapture(*view.View) bool
	ReleaseCapture()
	HasCapture() bool
}

// Tap ties a tap gesture to pointer capture: the view capturing on
// TapDown keeps receiving the gesture's events even if the pointer
// wanders off it, until GestureEnd or Cancel.
type Tap struct {
	pressed bool
}

// Update feeds ev to the recognizer on behalf of v hosted by c.
func (t *Tap) Update(ev pointer.Event, v *view.View, c Capturer) {
	switch ev.Kind {
	case pointer.TapDown:
		if c.SetCapture(v) {
			t.pressed = true
		}
	case pointer.GestureEnd, pointer.Cancel:
		if t.pressed {
			t.pressed = false
			c.ReleaseCapture()
		}
	}
}

// Pressed reports whether a tap gesture is in progress.
func (t *Tap) Pressed() bool {
	return t.pressed
}

// ClickKind describes a ClickEvent.
type ClickKind uint8

const (
	// KindPress is reported on the initial press.
	KindPress ClickKind = iota
	// KindClick is reported when the press is released over the view.
	KindClick
	// KindCancel is reported when the gesture is interrupted.
	KindCancel
)

// ClickState is the progress of a click gesture.
type ClickState uint8

const (
	// StateNormal is the default state.
	StateNormal ClickState = iota
	// StateHovered is reported when the pointer is over the view.
	StateHovered
	// StatePressed is reported between a press and its release.
	StatePressed
)

// ClickEvent represents a click action, or a press in progress.
type ClickEvent struct {
	Kind     ClickKind
	Source   pointer.Source
	Buttons  pointer.Buttons
	Position f32.Point
}

// Click detects regular clicks over its view.
type Click struct {
	state   ClickState
	hovered bool
}

// State returns the gesture's current progress.
func (c *Click) State() ClickState {
	return c.state
}

// Hovered reports whether the pointer is over the view.
func (c *Click) Hovered() bool {
	return c.hovered
}

// Update processes ev and returns the click action it completes, if
// any.
func (c *Click) Update(ev pointer.Event) (ClickEvent, bool) {
	switch ev.Kind {
	case pointer.Enter:
		c.hovered = true
		if c.state == StateNormal {
			c.state = StateHovered
		}
	case pointer.Leave:
		c.hovered = false
		if c.state == StateHovered {
			c.state = StateNormal
		}
	case pointer.Press:
		c.state = StatePressed
		return ClickEvent{Kind: KindPress, Source: ev.Source, Buttons: ev.Buttons, Position: ev.Position}, true
	case pointer.Release:
		wasPressed := c.state == StatePressed
		if c.hovered {
			c.state = StateHovered
		} else {
			c.state = StateNormal
		}
		if wasPressed && c.hovered {
			return ClickEvent{Kind: KindClick, Source: ev.Source, Buttons: ev.Buttons, Position: ev.Position}, true
		}
	case pointer.Cancel:
		wasPressed := c.state == StatePressed
		c.state = StateNormal
		c.hovered = false
		if wasPressed {
			return ClickEvent{Kind: KindCancel}, true
		}
	}
	return ClickEvent{}, false
}

func (k ClickKind) String() string {
	switch k {
	case KindPress:
		return "KindPress"
	case KindClick:
		return "KindClick"
	case KindCancel:
		return "KindCancel"
	default:
		panic("invalid ClickKind")
	}
}
