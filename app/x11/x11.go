// SPDX-License-Identifier: Unlicense OR MIT

// Package x11 implements an app.Bridge over an X display. Window
// activation follows FocusIn events from the server; Expose events
// are forwarded as frame highlights and never move activation.
package x11

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"okno.org/app"
	"okno.org/f32"
	"okno.org/io/pointer"
)

// Bridge is an app.Bridge over an X11 connection.
type Bridge struct {
	xu    *xgbutil.XUtil
	sink  app.Sink
	start time.Time

	windows map[xproto.Window]app.WindowDesc
}

// New connects to the X display named by $DISPLAY.
func New() (*Bridge, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	return &Bridge{
		xu:      xu,
		start:   time.Now(),
		windows: make(map[xproto.Window]app.WindowDesc),
	}, nil
}

// Attach implements app.Bridge.
func (b *Bridge) Attach(s app.Sink) {
	b.sink = s
}

const eventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskFocusChange |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify

// NewWindow implements app.Bridge.
func (b *Bridge) NewWindow(desc app.WindowDesc) (app.NativeID, error) {
	win, err := xwindow.Generate(b.xu)
	if err != nil {
		return "", fmt.Errorf("x11: window id: %w", err)
	}
	bounds := desc.Bounds
	err = win.CreateChecked(b.xu.RootWin(),
		bounds.Min.X, bounds.Min.Y, bounds.Dx(), bounds.Dy(),
		xproto.CwEventMask, uint32(eventMask))
	if err != nil {
		return "", fmt.Errorf("x11: create window: %w", err)
	}
	if desc.Owner != "" {
		if owner, err := parseID(desc.Owner); err == nil {
			ewmh.WmStateReq(b.xu, win.Id, ewmh.StateAdd, "_NET_WM_STATE_ABOVE")
			xproto.ChangeProperty(b.xu.Conn(), xproto.PropModeReplace, win.Id,
				xproto.AtomWmTransientFor, xproto.AtomWindow, 32, 1,
				windowBytes(owner))
		}
	}
	if desc.Modal != app.ModalNone {
		ewmh.WmStateReq(b.xu, win.Id, ewmh.StateAdd, "_NET_WM_STATE_MODAL")
	}
	b.windows[win.Id] = desc
	return formatID(win.Id), nil
}

// DestroyWindow implements app.Bridge.
func (b *Bridge) DestroyWindow(id app.NativeID) {
	win, err := parseID(id)
	if err != nil {
		return
	}
	delete(b.windows, win)
	xproto.DestroyWindow(b.xu.Conn(), win)
}

// Show implements app.Bridge.
func (b *Bridge) Show(id app.NativeID) {
	if win, err := parseID(id); err == nil {
		xproto.MapWindow(b.xu.Conn(), win)
	}
}

// Hide implements app.Bridge.
func (b *Bridge) Hide(id app.NativeID) {
	if win, err := parseID(id); err == nil {
		xproto.UnmapWindow(b.xu.Conn(), win)
	}
}

// Activate implements app.Bridge. The request goes through the window
// manager; activation lands when the matching FocusIn arrives.
func (b *Bridge) Activate(id app.NativeID) {
	if win, err := parseID(id); err == nil {
		ewmh.ActiveWindowReq(b.xu, win)
	}
}

// SetCapture implements app.Bridge.
func (b *Bridge) SetCapture(id app.NativeID) {
	win, err := parseID(id)
	if err != nil {
		return
	}
	xproto.GrabPointer(b.xu.Conn(), true, win,
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, xproto.TimeCurrentTime)
}

// ReleaseCapture implements app.Bridge.
func (b *Bridge) ReleaseCapture(app.NativeID) {
	xproto.UngrabPointer(b.xu.Conn(), xproto.TimeCurrentTime)
}

// GlobalCapture implements app.Bridge. An X pointer grab delivers
// events from the whole screen to the grab window.
func (b *Bridge) GlobalCapture() bool {
	return true
}

// Run reads and translates X events until the connection drops. It
// must run on the dispatch goroutine, alternating with Env.Pump.
func (b *Bridge) Run() error {
	for {
		ev, err := b.xu.Conn().WaitForEvent()
		if err != nil {
			continue
		}
		if ev == nil {
			return fmt.Errorf("x11: connection closed")
		}
		b.translate(ev)
	}
}

func (b *Bridge) translate(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		b.postPointer(e.Event, pointer.Press, e.Detail, e.EventX, e.EventY)
	case xproto.ButtonReleaseEvent:
		b.postPointer(e.Event, pointer.Release, e.Detail, e.EventX, e.EventY)
	case xproto.MotionNotifyEvent:
		b.postPointer(e.Event, pointer.Move, 0, e.EventX, e.EventY)
	case xproto.FocusInEvent:
		b.sink.NativeFocusChanged(formatID(e.Event))
	case xproto.FocusOutEvent:
		// A FocusIn for the new owner follows when it is ours;
		// otherwise input left the process.
		b.sink.NativeFocusChanged("")
	case xproto.ExposeEvent:
		b.sink.NativeFrameHighlighted(formatID(e.Window))
	case xproto.DestroyNotifyEvent:
		if _, ok := b.windows[e.Window]; ok {
			delete(b.windows, e.Window)
			b.sink.NativeWindowClosed(formatID(e.Window))
		}
	}
}

func (b *Bridge) postPointer(win xproto.Window, kind pointer.Kind, detail xproto.Button, x, y int16) {
	var buttons pointer.Buttons
	switch detail {
	case 1:
		buttons = pointer.ButtonPrimary
	case 2:
		buttons = pointer.ButtonTertiary
	case 3:
		buttons = pointer.ButtonSecondary
	}
	b.sink.Post(formatID(win), pointer.Event{
		Kind:     kind,
		Source:   pointer.Mouse,
		Buttons:  buttons,
		Position: f32.Pt(float32(x), float32(y)),
		Time:     time.Since(b.start),
	})
}

// Close disconnects from the display.
func (b *Bridge) Close() {
	b.xu.Conn().Close()
}

func formatID(win xproto.Window) app.NativeID {
	return app.NativeID(strconv.FormatUint(uint64(win), 10))
}

func parseID(id app.NativeID) (xproto.Window, error) {
	n, err := strconv.ParseUint(string(id), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("x11: bad window id %q: %w", id, err)
	}
	return xproto.Window(n), nil
}

func windowBytes(win xproto.Window) []byte {
	return []byte{
		byte(win),
		byte(win >> 8),
		byte(win >> 16),
		byte(win >> 24),
	}
}
