package compositor

import (
	"github.com/jmylchreest/winstack/internal/anim"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

// transition slides a new head into place. Progress updates only record how
// far the framebuffer has to move; the move itself and the repaint of the
// exposed strip happen in the next draw tick.
type transition struct {
	c     *Compositor
	stack thread.Context
	win   *window.Window
	dir   Direction
	anim  *anim.Animation

	start  int
	offset int

	// shift is the signed column count not yet applied to the framebuffer.
	shift int
	// fullRedraw is set when the sliding window changed its own content,
	// so the next draw repaints all of its visible columns.
	fullRedraw bool
}

func (c *Compositor) startTransition(ctx thread.Context, w *window.Window, dir Direction) error {
	if c.active != nil {
		return ErrTransitionInProgress
	}

	start := c.screen.W
	if dir == SlideRight {
		start = -start
	}

	a := c.anims.Create()
	a.SetDuration(c.transitionOpts.Duration)
	a.SetCurve(c.transitionOpts.Curve)
	t := &transition{
		c:      c,
		stack:  ctx,
		win:    w,
		dir:    dir,
		anim:   a,
		start:  start,
		offset: start,
	}
	a.Context = t
	a.SetImplementation(anim.Implementation{
		Setup:    t.setup,
		Update:   t.update,
		Teardown: t.teardown,
	})

	w.SetFrameOffset(start)
	c.active = t
	if err := c.anims.Schedule(a); err != nil {
		c.active = nil
		a.Destroy()
		w.SetFrameOffset(0)
		c.logger.Error("failed to schedule transition", "window", w.String(), "error", err)
		return err
	}
	c.logger.Debug("transition scheduled", "window", w.String(), "direction", dir,
		"duration", c.transitionOpts.Duration, "curve", c.transitionOpts.Curve)
	return nil
}

func (t *transition) setup(*anim.Animation) {
	t.c.logger.Debug("transition started", "window", t.win.String())
}

func (t *transition) update(_ *anim.Animation, p anim.Progress) {
	c := t.c
	x := t.start - t.start*int(p)/int(anim.NormalizedMax)
	delta := x - t.offset
	t.offset = x
	t.win.SetFrameOffset(x)
	if delta == 0 {
		return
	}

	if c.stackFor(t.stack).top() != t.win {
		return
	}
	// Nothing to move while the overlay owns the framebuffer.
	if t.stack == thread.Primary && c.overlay.top() != nil {
		return
	}
	t.shift += delta
	c.scheduleRender(t.win)
}

func (t *transition) teardown(a *anim.Animation) {
	c := t.c
	if c.active == t {
		c.active = nil
		t.win.SetFrameOffset(0)
		if t.shift != 0 || t.fullRedraw {
			c.forceRender(t.win)
		}
		c.logger.Debug("transition finished", "window", t.win.String())
	}
	a.Destroy()
}

// flush applies the pending shift and returns the region of the screen the
// window has to repaint.
func (t *transition) flush(fb *gfx.Framebuffer) gfx.Rect {
	w := fb.Width
	d := t.shift
	t.shift = 0
	switch {
	case d < 0:
		fb.ShiftLeft(-d, w+d)
	case d > 0:
		fb.ShiftRight(d, w-d)
	}

	if t.fullRedraw {
		t.fullRedraw = false
		return fb.ScreenRect()
	}
	n := min(max(d, -d), w)
	if d < 0 {
		return gfx.R(w-n, 0, n, fb.Height)
	}
	return gfx.R(0, 0, n, fb.Height)
}

func (c *Compositor) cancelTransition() {
	t := c.active
	if t == nil {
		return
	}
	c.active = nil
	c.anims.Unschedule(t.anim)
	t.anim.Destroy()
	t.win.SetFrameOffset(0)
	c.logger.Debug("transition cancelled", "window", t.win.String())
}
