// Package window implements the full-screen window entity and its
// load/unload lifecycle.
package window

import (
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/layer"
	"github.com/jmylchreest/winstack/internal/thread"
)

// LoadState is the lifecycle state of a window.
type LoadState int

const (
	// Unloaded is the state of a new window and of a removed one.
	Unloaded LoadState = iota
	// Loading means the load handler is running.
	Loading
	// Loaded means the window is the visible head of its stack.
	Loaded
	// Unloading means the unload handler is running.
	Unloading
)

// String returns the string representation of LoadState.
func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Unloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// Handlers are the optional lifecycle callbacks of a window. A nil field is
// skipped; the state still advances.
type Handlers struct {
	// Load runs whenever the window becomes the head of its stack, so a
	// window that is covered and later re-exposed loads again. It pairs with
	// Unload.
	Load      func(w *Window)
	Unload    func(w *Window)
	Appear    func(w *Window)
	Disappear func(w *Window)
}

// ClickConfigProvider binds button handlers for a window. context is the
// window's click context, or the window itself when none was set.
type ClickConfigProvider func(sub button.Subscriber, context any)

// Invalidator is told when a window wants to be redrawn.
type Invalidator interface {
	Invalidate(w *Window)
}

// Window is a full-screen UI unit.
type Window struct {
	id         string
	name       string
	root       *layer.Layer
	background gfx.Color
	state      LoadState
	handlers   Handlers

	clickProvider ClickConfigProvider
	clickContext  any

	frameOffset     int
	renderScheduled bool
	visible         bool
	userData        any

	attachedTo  thread.Context
	invalidator Invalidator
	destroyed   bool

	logger *slog.Logger
}

// New creates an unloaded window whose root layer covers the screen.
func New(name string, screen gfx.Size, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Window{
		id:         newID(),
		name:       name,
		root:       layer.New(gfx.R(0, 0, screen.W, screen.H)),
		background: gfx.ColorWhite,
		state:      Unloaded,
		logger:     logger,
	}
	w.root.SetInvalidateFunc(w.MarkDirty)
	w.logger.Debug("window created", "window", w.name, "id", w.id)
	return w
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// ID returns the window's unique identifier.
func (w *Window) ID() string { return w.id }

// Name returns the debugging name given at creation.
func (w *Window) Name() string { return w.name }

// String implements fmt.Stringer for log attributes.
func (w *Window) String() string { return w.name + "/" + w.id }

// RootLayer returns the root drawing surface.
func (w *Window) RootLayer() *layer.Layer { return w.root }

// SetHandlers sets the lifecycle callbacks.
func (w *Window) SetHandlers(h Handlers) { w.handlers = h }

// SetBackgroundColor sets the color painted before the layer tree.
func (w *Window) SetBackgroundColor(c gfx.Color) { w.background = c }

// BackgroundColor returns the background color.
func (w *Window) BackgroundColor() gfx.Color { return w.background }

// State returns the lifecycle state.
func (w *Window) State() LoadState { return w.state }

// IsLoaded reports whether the window is loaded.
func (w *Window) IsLoaded() bool { return w.state == Loaded }

// SetUserData attaches arbitrary data.
func (w *Window) SetUserData(data any) { w.userData = data }

// UserData returns the attached data.
func (w *Window) UserData() any { return w.userData }

// SetClickConfigProvider sets the provider; the click context is the window.
func (w *Window) SetClickConfigProvider(p ClickConfigProvider) {
	w.clickProvider = p
	w.clickContext = nil
}

// SetClickConfigProviderWithContext sets the provider and its context.
func (w *Window) SetClickConfigProviderWithContext(p ClickConfigProvider, context any) {
	w.clickProvider = p
	w.clickContext = context
}

// ClickConfigProvider returns the provider, or nil.
func (w *Window) ClickConfigProvider() ClickConfigProvider { return w.clickProvider }

// ClickConfigContext returns the context handed to the provider.
func (w *Window) ClickConfigContext() any {
	if w.clickContext == nil {
		return w
	}
	return w.clickContext
}

// FrameOffset returns the horizontal offset used during transitions.
func (w *Window) FrameOffset() int { return w.frameOffset }

// SetFrameOffset sets the horizontal offset.
func (w *Window) SetFrameOffset(x int) { w.frameOffset = x }

// RenderScheduled reports whether a redraw is pending.
func (w *Window) RenderScheduled() bool { return w.renderScheduled }

// SetRenderScheduled sets the pending-redraw bit.
func (w *Window) SetRenderScheduled(v bool) { w.renderScheduled = v }

// SetInvalidator installs the receiver of MarkDirty.
func (w *Window) SetInvalidator(inv Invalidator) { w.invalidator = inv }

// MarkDirty asks the window's owner for a redraw.
func (w *Window) MarkDirty() {
	if w.invalidator != nil && !w.destroyed {
		w.invalidator.Invalidate(w)
	}
}

// Attach records the stack the window belongs to.
func (w *Window) Attach(ctx thread.Context) { w.attachedTo = ctx }

// Detach records that the window left its stack.
func (w *Window) Detach() { w.attachedTo = thread.None }

// AttachedTo returns the context of the stack holding the window, or
// thread.None.
func (w *Window) AttachedTo() thread.Context { return w.attachedTo }

// Destroyed reports whether Release has run.
func (w *Window) Destroyed() bool { return w.destroyed }

// Transitioning reports whether a load or unload handler is running.
func (w *Window) Transitioning() bool {
	return w.state == Loading || w.state == Unloading
}

// Load runs the Unloaded -> Loading -> Loaded transition. It reports false
// and does nothing when the window is already loading or loaded.
func (w *Window) Load() bool {
	if w.state == Loaded || w.state == Loading {
		return false
	}
	w.state = Loading
	if w.handlers.Load != nil {
		w.handlers.Load(w)
	}
	w.state = Loaded
	w.logger.Debug("window loaded", "window", w.String())
	return true
}

// Unload runs the Loaded -> Unloading -> Unloaded transition. It is a no-op
// unless the window is loaded.
func (w *Window) Unload() bool {
	if w.state != Loaded {
		return false
	}
	w.state = Unloading
	if w.handlers.Unload != nil {
		w.handlers.Unload(w)
	}
	w.state = Unloaded
	w.logger.Debug("window unloaded", "window", w.String())
	return true
}

// Appear marks the window visible and fires the appear handler. It does
// nothing when the window is already visible.
func (w *Window) Appear() {
	if w.visible {
		return
	}
	w.visible = true
	if w.handlers.Appear != nil {
		w.handlers.Appear(w)
	}
}

// Disappear fires the disappear handler of a visible window.
func (w *Window) Disappear() {
	if !w.visible {
		return
	}
	w.visible = false
	if w.handlers.Disappear != nil {
		w.handlers.Disappear(w)
	}
}

// Visible reports whether the window is between Appear and Disappear.
func (w *Window) Visible() bool { return w.visible }

// ConfigureClicks clears every button on sub and then runs the window's
// click-config provider, if any.
func (w *Window) ConfigureClicks(sub button.Subscriber) {
	ctx := w.ClickConfigContext()
	for _, id := range button.IDs {
		sub.Reset(id, ctx)
	}
	if w.clickProvider != nil {
		w.clickProvider(sub, ctx)
	}
}

// Draw paints the background and the layer tree at the window's frame
// offset.
func (w *Window) Draw(ctx gfx.Context) {
	prev := ctx.Origin()
	ctx.SetOrigin(gfx.Pt(w.frameOffset, 0))
	ctx.FillRect(gfx.Rect{Size: w.root.Frame().Size}, w.background)
	w.root.Draw(ctx)
	ctx.SetOrigin(prev)
}

// Release destroys the root layer and everything it owns.
func (w *Window) Release() {
	if w.destroyed {
		return
	}
	w.root.Destroy()
	w.destroyed = true
	w.invalidator = nil
	w.logger.Debug("window released", "window", w.String())
}
