// Package compositor owns the window stacks of both execution contexts, the
// render scheduler that gates drawing to the shared framebuffer, and the
// slide transitions between stack heads.
package compositor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/winstack/internal/anim"
	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/nodelist"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

// Contract violations. Each is logged at Error and the offending operation
// leaves all state untouched.
var (
	ErrWrongContext         = errors.New("operation called from the wrong execution context")
	ErrWindowTransitioning  = errors.New("window is loading or unloading")
	ErrAlreadyAttached      = errors.New("window is already in a stack")
	ErrNotInStack           = errors.New("window is not in this stack")
	ErrWindowDestroyed      = errors.New("window has been destroyed")
	ErrTransitionInProgress = errors.New("a transition is already running")
)

// DefaultTransitionDuration is the slide duration used when none is set.
const DefaultTransitionDuration = 300 * time.Millisecond

// Redrawer is the surrounding scheduler's draw-request entry point. Calls
// must be coalesced by the implementation.
type Redrawer interface {
	RequestDraw()
}

// RedrawFunc adapts a function to Redrawer.
type RedrawFunc func()

// RequestDraw implements Redrawer.
func (f RedrawFunc) RequestDraw() { f() }

// TransitionOptions configures slide transitions.
type TransitionOptions struct {
	Duration time.Duration
	Curve    anim.Curve
}

// Options configures a Compositor. Zero fields get defaults.
type Options struct {
	// Screen is required unless Framebuffer is set.
	Screen      gfx.Size
	Framebuffer *gfx.Framebuffer
	// Context defaults to a software canvas over Framebuffer.
	Context    gfx.Context
	Buttons    *button.Router
	Animations anim.Scheduler
	Redraw     Redrawer
	Transition TransitionOptions
	Logger     *slog.Logger
}

// Compositor is the window runtime: both stacks, the render scheduler and
// the transition animator.
type Compositor struct {
	screen  gfx.Size
	fb      *gfx.Framebuffer
	gctx    gfx.Context
	buttons *button.Router
	anims   anim.Scheduler
	redraw  Redrawer

	transitionOpts TransitionOptions

	primary *Stack
	overlay *Stack

	owner  thread.Context
	active *transition

	logger *slog.Logger
}

var _ window.Invalidator = (*Compositor)(nil)

// New creates a compositor with two empty stacks.
func New(opts Options) *Compositor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fb := opts.Framebuffer
	if fb == nil {
		fb = gfx.NewFramebuffer(opts.Screen)
	}
	gctx := opts.Context
	if gctx == nil {
		gctx = gfx.NewCanvas(fb)
	}
	buttons := opts.Buttons
	if buttons == nil {
		buttons = button.NewRouter(logger)
	}
	anims := opts.Animations
	if anims == nil {
		anims = anim.NewEngine(logger)
	}
	redraw := opts.Redraw
	if redraw == nil {
		redraw = RedrawFunc(func() {})
	}
	topts := opts.Transition
	if topts.Duration <= 0 {
		topts.Duration = DefaultTransitionDuration
	}
	if topts.Curve == "" {
		topts.Curve = anim.CurveLinear
	}

	c := &Compositor{
		screen:         fb.Size(),
		fb:             fb,
		gctx:           gctx,
		buttons:        buttons,
		anims:          anims,
		redraw:         redraw,
		transitionOpts: topts,
		logger:         logger,
	}
	c.primary = newStack(c, thread.Primary)
	c.overlay = newStack(c, thread.Overlay)
	return c
}

// Screen returns the display size.
func (c *Compositor) Screen() gfx.Size { return c.screen }

// Framebuffer returns the shared framebuffer.
func (c *Compositor) Framebuffer() *gfx.Framebuffer { return c.fb }

// Buttons returns the router holding the active click configuration.
func (c *Compositor) Buttons() *button.Router { return c.buttons }

// Primary returns the primary-context stack.
func (c *Compositor) Primary() *Stack { return c.primary }

// Overlay returns the overlay-context stack.
func (c *Compositor) Overlay() *Stack { return c.overlay }

// SetTransitionOptions changes the duration and curve of future
// transitions.
func (c *Compositor) SetTransitionOptions(opts TransitionOptions) {
	if opts.Duration <= 0 {
		opts.Duration = DefaultTransitionDuration
	}
	if opts.Curve == "" {
		opts.Curve = anim.CurveLinear
	}
	c.transitionOpts = opts
	c.logger.Debug("transition options updated", "duration", opts.Duration, "curve", opts.Curve)
}

// TransitionOptions returns the options used for new transitions.
func (c *Compositor) TransitionOptions() TransitionOptions { return c.transitionOpts }

// FramebufferOwner reports the context drawing to the framebuffer. It is
// thread.None outside a draw tick.
func (c *Compositor) FramebufferOwner() thread.Context { return c.owner }

// Transitioning reports whether a slide is running.
func (c *Compositor) Transitioning() bool { return c.active != nil }

func (c *Compositor) stackFor(ctx thread.Context) *Stack {
	switch ctx {
	case thread.Primary:
		return c.primary
	case thread.Overlay:
		return c.overlay
	default:
		return nil
	}
}

func (c *Compositor) wrongContext(op string, want, got thread.Context) error {
	c.logger.Error("wrong execution context", "op", op, "want", want, "got", got)
	return fmt.Errorf("%s: %s stack used from %s: %w", op, want, got, ErrWrongContext)
}

// InputTarget returns the window receiving button input: the overlay head
// when the overlay stack is non-empty, otherwise the primary head.
func (c *Compositor) InputTarget() *window.Window {
	if w := c.overlay.top(); w != nil {
		return w
	}
	return c.primary.top()
}

// HandleInput delivers ev to the input target's bound handler. It reports
// whether a handler ran.
func (c *Compositor) HandleInput(ev button.Event) bool {
	return c.buttons.Dispatch(ev)
}

// rebindInput points every button at the input target, or clears them all
// when no window is left.
func (c *Compositor) rebindInput() {
	target := c.InputTarget()
	if target == nil {
		c.buttons.ResetAll(nil)
		c.logger.Debug("input unbound")
		return
	}
	target.ConfigureClicks(c.buttons)
	c.logger.Debug("input rebound", "window", target.String())
}

// Invalidate implements window.Invalidator. Only the head of a stack is
// scheduled; invalidations from covered windows are dropped.
func (c *Compositor) Invalidate(w *window.Window) {
	s := c.stackFor(w.AttachedTo())
	if s == nil || s.top() != w {
		return
	}
	if t := c.active; t != nil && t.win == w {
		t.fullRedraw = true
	}
	c.scheduleRender(w)
}

// Dirty sets or clears the render bit of the head of the caller's stack.
// Setting a clear bit posts exactly one draw request; setting it again
// before the next draw tick does nothing.
func (c *Compositor) Dirty(caller thread.Context, dirty bool) error {
	s := c.stackFor(caller)
	if s == nil {
		return c.wrongContext("dirty", thread.Primary, caller)
	}
	w := s.top()
	if w == nil {
		return nil
	}
	if !dirty {
		w.SetRenderScheduled(false)
		return nil
	}
	c.scheduleRender(w)
	return nil
}

func (c *Compositor) scheduleRender(w *window.Window) {
	if w.RenderScheduled() {
		return
	}
	w.SetRenderScheduled(true)
	c.redraw.RequestDraw()
}

// forceRender requests a full repaint of w even if its bit is already set.
func (c *Compositor) forceRender(w *window.Window) {
	w.SetRenderScheduled(true)
	c.redraw.RequestDraw()
}

// DrawTick services one external draw tick. It must be called from the
// primary context. When the overlay stack is non-empty the overlay head
// owns the framebuffer for the tick and the primary head does not draw,
// keeping its render bit pending.
func (c *Compositor) DrawTick(caller thread.Context) error {
	if caller != thread.Primary {
		return c.wrongContext("draw", thread.Primary, caller)
	}

	if ow := c.overlay.top(); ow != nil {
		if !ow.RenderScheduled() {
			return nil
		}
		c.owner = thread.Overlay
		c.drawWindow(ow)
		ow.SetRenderScheduled(false)
		c.owner = thread.None
		return nil
	}

	w := c.primary.top()
	if w == nil || !w.RenderScheduled() {
		return nil
	}
	c.owner = thread.Primary
	c.drawWindow(w)
	w.SetRenderScheduled(false)
	c.owner = thread.None
	return nil
}

// drawWindow paints w. During a slide only the freshly exposed strip is
// repainted; the rest of the framebuffer was moved into place by the shift.
func (c *Compositor) drawWindow(w *window.Window) {
	screen := c.fb.ScreenRect()
	clip := screen
	if t := c.active; t != nil && t.win == w {
		clip = t.flush(c.fb)
	}
	if clip.Empty() {
		return
	}
	c.gctx.SetClip(clip)
	c.gctx.SetOrigin(gfx.Pt(0, 0))
	w.Draw(c.gctx)
	c.gctx.SetClip(screen)
}

// Destroy tears a window down: it is detached from its stack if still
// attached, unloaded, and its layer tree released. The window must be
// loaded or unloaded.
func (c *Compositor) Destroy(caller thread.Context, w *window.Window) error {
	s := c.stackFor(caller)
	if s == nil {
		return c.wrongContext("destroy", thread.Primary, caller)
	}
	if w.Destroyed() {
		c.logger.Error("window already destroyed", "window", w.String())
		return ErrWindowDestroyed
	}
	if attached := w.AttachedTo(); attached != thread.None && attached != caller {
		return c.wrongContext("destroy", attached, caller)
	}
	if w.Transitioning() {
		c.logger.Error("window is either loading or unloading", "window", w.String(), "state", w.State())
		return ErrWindowTransitioning
	}

	if w.AttachedTo() != thread.None {
		s.detach(w, false)
	}
	w.Unload()
	if t := c.active; t != nil && t.win == w {
		c.cancelTransition()
	}
	w.Release()

	if s.list.Len() == 0 {
		c.logger.Info("no more windows", "context", caller)
		return nil
	}
	c.rebindInput()
	c.scheduleRender(s.top())
	return nil
}

// Windows returns the windows of the given stack, head first. It performs
// no context check and is meant for diagnostics.
func (c *Compositor) Windows(ctx thread.Context) []*window.Window {
	s := c.stackFor(ctx)
	if s == nil {
		return nil
	}
	return s.list.Values()
}

func newStackList(logger *slog.Logger) *nodelist.List[*window.Window] {
	return nodelist.New[*window.Window](logger)
}
