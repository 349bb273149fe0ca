// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"okno.org/view"
)

// Option configures a window before its native handle is created.
type Option func(*windowConfig)

type windowConfig struct {
	bounds      image.Rectangle
	owner       *Window
	topLevel    bool
	activatable bool
	autoRelease bool
	modal       Modality
}

// Bounds sets the window bounds.
func Bounds(r image.Rectangle) Option {
	return func(c *windowConfig) {
		c.bounds = r
	}
}

// Owner makes the new window owned by w. Owned windows close with
// their owner and sit above it.
func Owner(w *Window) Option {
	return func(c *windowConfig) {
		c.owner = w
	}
}

// TopLevel controls whether the window participates in activation.
func TopLevel(topLevel bool) Option {
	return func(c *windowConfig) {
		c.topLevel = topLevel
	}
}

// Activatable controls whether the window may become active. A non
// activatable window still shows and receives pointer input, but
// activation requests on it are ignored.
func Activatable(activatable bool) Option {
	return func(c *windowConfig) {
		c.activatable = activatable
	}
}

// AutoReleaseCapture controls whether a pointer release implicitly
// drops the window's capture. It is on by default.
func AutoReleaseCapture(auto bool) Option {
	return func(c *windowConfig) {
		c.autoRelease = auto
	}
}

// Modal sets the window's modality.
func Modal(m Modality) Option {
	return func(c *windowConfig) {
		c.modal = m
	}
}

// A Window owns a native handle, a view tree and a focus chain. It is
// created hidden.
type Window struct {
	env    *Env
	native NativeID
	root   *view.View
	focus  focusChain

	owner       *Window
	topLevel    bool
	activatable bool
	autoRelease bool
	modal       Modality

	showing   bool
	destroyed bool
	active    bool

	// lastUnder tracks the view under the pointer for enter and
	// leave synthesis.
	lastUnder view.Handle

	onCaptureLost []func()
	onActivation  []func(active bool)
}

// NewWindow creates a window in env. The window's root view spans the
// window bounds and is enabled but not focusable.
func (e *Env) NewWindow(opts ...Option) (*Window, error) {
	cfg := windowConfig{
		topLevel:    true,
		activatable: true,
		autoRelease: true,
	}
	for _, o := range opts {
		o(&cfg)
	}
	w := &Window{
		env:         e,
		owner:       cfg.owner,
		topLevel:    cfg.topLevel,
		activatable: cfg.activatable,
		autoRelease: cfg.autoRelease,
		modal:       cfg.modal,
	}
	w.focus.w = w
	desc := WindowDesc{
		Bounds:      cfg.bounds,
		TopLevel:    cfg.topLevel,
		Activatable: cfg.activatable,
		Modal:       cfg.modal,
	}
	if cfg.owner != nil {
		desc.Owner = cfg.owner.native
	}
	id, err := e.bridge.NewWindow(desc)
	if err != nil {
		return nil, err
	}
	w.native = id
	w.root = view.New()
	w.root.SetBounds(image.Rectangle{Max: cfg.bounds.Size()})
	w.root.Attach(w)
	e.windows[id] = w
	e.log.Debug("window created", "id", string(id), "modal", cfg.modal.String())
	return w, nil
}

// NativeID returns the window's native handle.
func (w *Window) NativeID() NativeID {
	return w.native
}

// Root returns the window's root view, or nil after Close.
func (w *Window) Root() *view.View {
	return w.root
}

// Owner returns the owning window, or nil.
func (w *Window) Owner() *Window {
	return w.owner
}

// Showing reports whether the window is visible.
func (w *Window) Showing() bool {
	return w.showing
}

// IsActive reports whether the window is the active window.
func (w *Window) IsActive() bool {
	return w.active
}

// Show makes the window visible. A system modal evicts any held
// capture before it becomes visible.
func (w *Window) Show() {
	if w.destroyed || w.showing {
		return
	}
	if w.modal == ModalSystem {
		w.env.evictCaptureFor(w)
	}
	w.showing = true
	w.env.bridge.Show(w.native)
}

// Hide makes the window invisible. Hiding drops the window's capture.
func (w *Window) Hide() {
	if w.destroyed || !w.showing {
		return
	}
	if w.HasCapture() {
		w.env.releaseCapture(w)
	}
	w.showing = false
	w.env.bridge.Hide(w.native)
}

// Activate requests activation. The request is forwarded to the
// platform; the window becomes active only once the platform reports
// keyboard input ownership. Requests on non activatable or hidden
// windows are ignored.
func (w *Window) Activate() {
	if w.destroyed || !w.showing || !w.topLevel || !w.activatable {
		return
	}
	w.env.bridge.Activate(w.native)
}

// CanActivate reports whether the window may become active.
func (w *Window) CanActivate() bool {
	return w.topLevel && w.activatable
}

// Close destroys the window. Capture and focus grants held by the
// window are dropped, every view handle into its tree is invalidated
// and further operations on the window fail.
func (w *Window) Close() {
	w.close(true)
}

func (w *Window) close(destroyNative bool) {
	if w.destroyed {
		return
	}
	if w.HasCapture() {
		w.env.releaseCapture(w)
	}
	w.destroyed = true
	w.showing = false
	root := w.root
	w.root = nil
	root.Detach()
	delete(w.env.windows, w.native)
	if w.env.active == w {
		w.env.active = nil
	}
	if destroyNative {
		w.env.bridge.DestroyWindow(w.native)
	}
	w.env.log.Debug("window closed", "id", string(w.native))
}

// SetAutoReleaseCapture changes whether a pointer release implicitly
// drops the window's capture.
func (w *Window) SetAutoReleaseCapture(auto bool) {
	w.autoRelease = auto
}

// OnCaptureLost registers f to run whenever the window loses a held
// capture, whether by explicit release, another window's grab, or an
// eviction.
func (w *Window) OnCaptureLost(f func()) {
	w.onCaptureLost = append(w.onCaptureLost, f)
}

// OnActivation registers f to run when the window gains or loses
// activation.
func (w *Window) OnActivation(f func(active bool)) {
	w.onActivation = append(w.onActivation, f)
}

func (w *Window) notifyCaptureLost() {
	for _, f := range w.onCaptureLost {
		f()
	}
}

// setActive flips activation. Losing activation suspends the focus
// chain, keeping the focused view in memory; regaining it restores
// the remembered view if it is still eligible.
func (w *Window) setActive(active bool) {
	if w.active == active {
		return
	}
	w.active = active
	if active {
		w.focus.restore()
	} else {
		w.focus.suspend()
	}
	for _, f := range w.onActivation {
		f(active)
	}
}

// SetFocus moves keyboard focus to v. It reports whether focus was
// granted: the view must be enabled, focusable and live in this
// window's tree.
func (w *Window) SetFocus(v *view.View) bool {
	if w.destroyed {
		return false
	}
	return w.focus.set(v)
}

// Focused returns the view holding live keyboard focus, or nil.
func (w *Window) Focused() *view.View {
	return w.focus.focused()
}

// Table implements view.Host.
func (w *Window) Table() *view.Table {
	return &w.env.table
}

// ViewRemoved implements view.Host. Grants hold generation checked
// handles, so focus, capture and hover references to the removed view
// lapse on their own once its handle is dropped. Capture granted to
// the view falls back to the window root; the window keeps the grant.
func (w *Window) ViewRemoved(v *view.View) {}

// ViewDisabled implements view.Host.
func (w *Window) ViewDisabled(v *view.View) {
	w.focus.viewDisabled(v)
}
