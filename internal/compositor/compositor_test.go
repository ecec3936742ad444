package compositor

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/winstack/internal/anim"
	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/layer"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

type harness struct {
	c        *Compositor
	engine   *anim.Engine
	requests int
	logger   *slog.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	h.engine = anim.NewEngine(h.logger)
	h.c = New(Options{
		Screen:     gfx.Size{W: 10, H: 2},
		Animations: h.engine,
		Redraw:     RedrawFunc(func() { h.requests++ }),
		Transition: TransitionOptions{Duration: 100 * time.Millisecond},
		Logger:     h.logger,
	})
	return h
}

func (h *harness) window(name string, bg gfx.Color) *window.Window {
	w := window.New(name, h.c.Screen(), h.logger)
	w.SetBackgroundColor(bg)
	return w
}

func (h *harness) column(x int) gfx.Color {
	return h.c.Framebuffer().Pixel(x, 0)
}

func TestStack_Ordering(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)

	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, p.Push(thread.Primary, b, false))

	top, err := p.Top(thread.Primary)
	require.NoError(t, err)
	assert.Same(t, b, top)
	n, _ := p.Count(thread.Primary)
	assert.Equal(t, 2, n)

	popped, err := p.Pop(thread.Primary, false)
	require.NoError(t, err)
	assert.Same(t, b, popped)
	top, _ = p.Top(thread.Primary)
	assert.Same(t, a, top)

	_, err = p.Pop(thread.Primary, false)
	require.NoError(t, err)
	popped, err = p.Pop(thread.Primary, false)
	require.NoError(t, err)
	assert.Nil(t, popped)
	top, err = p.Top(thread.Primary)
	require.NoError(t, err)
	assert.Nil(t, top)
}

func TestStack_OnlyHeadIsLoaded(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	loads := 0
	a.SetHandlers(window.Handlers{Load: func(*window.Window) { loads++ }})

	require.NoError(t, p.Push(thread.Primary, a, false))
	assert.Equal(t, window.Loaded, a.State())

	require.NoError(t, p.Push(thread.Primary, b, false))
	assert.Equal(t, window.Unloaded, a.State())
	assert.Equal(t, window.Loaded, b.State())

	_, err := p.Pop(thread.Primary, false)
	require.NoError(t, err)
	assert.Equal(t, window.Loaded, a.State())
	assert.Equal(t, window.Unloaded, b.State())
	assert.Equal(t, thread.None, b.AttachedTo())
	assert.Equal(t, 2, loads)
}

func TestStack_PushRejections(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)

	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	assert.ErrorIs(t, h.c.Primary().Push(thread.Primary, a, false), ErrAlreadyAttached)
	assert.ErrorIs(t, h.c.Overlay().Push(thread.Overlay, a, false), ErrAlreadyAttached)

	b := h.window("b", gfx.ColorRed)
	b.Release()
	assert.ErrorIs(t, h.c.Primary().Push(thread.Primary, b, false), ErrWindowDestroyed)

	assert.ErrorIs(t, h.c.Primary().Remove(thread.Primary, h.window("c", gfx.ColorRed), false), ErrNotInStack)
}

func TestStack_WrongContext(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)

	assert.ErrorIs(t, h.c.Primary().Push(thread.Overlay, a, false), ErrWrongContext)
	assert.ErrorIs(t, h.c.Overlay().Push(thread.Primary, a, false), ErrWrongContext)
	assert.Equal(t, thread.None, a.AttachedTo())
	assert.Equal(t, window.Unloaded, a.State())

	_, err := h.c.Primary().Top(thread.None)
	assert.ErrorIs(t, err, ErrWrongContext)
	_, err = h.c.Overlay().Pop(thread.Primary, false)
	assert.ErrorIs(t, err, ErrWrongContext)
	assert.ErrorIs(t, h.c.DrawTick(thread.Overlay), ErrWrongContext)
	assert.ErrorIs(t, h.c.Dirty(thread.None, true), ErrWrongContext)
}

func TestDirty_Coalesces(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)
	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.False(t, a.RenderScheduled())
	before := h.requests

	require.NoError(t, h.c.Dirty(thread.Primary, true))
	require.NoError(t, h.c.Dirty(thread.Primary, true))
	a.MarkDirty()
	assert.Equal(t, before+1, h.requests)
	assert.True(t, a.RenderScheduled())

	require.NoError(t, h.c.Dirty(thread.Primary, false))
	assert.False(t, a.RenderScheduled())
	assert.Equal(t, before+1, h.requests)
}

func TestDirty_CoveredWindowIgnored(t *testing.T) {
	h := newHarness(t)
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	require.NoError(t, h.c.Primary().Push(thread.Primary, b, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))
	before := h.requests

	a.RootLayer().MarkDirty()
	assert.Equal(t, before, h.requests)
	assert.False(t, a.RenderScheduled())
}

func TestDrawTick_PaintsDirtyHeadOnce(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)
	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))

	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorBlue, h.column(0))
	assert.Equal(t, gfx.ColorBlue, h.column(9))
	assert.Equal(t, thread.None, h.c.FramebufferOwner())

	h.c.Framebuffer().Fill(gfx.ColorGreen)
	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorGreen, h.column(0))
}

func TestDrawTick_FramebufferOwner(t *testing.T) {
	h := newHarness(t)
	a, o := h.window("a", gfx.ColorBlue), h.window("o", gfx.ColorRed)
	var seen []thread.Context
	record := func(*layer.Layer, gfx.Context) { seen = append(seen, h.c.FramebufferOwner()) }
	a.RootLayer().SetUpdateProc(record)
	o.RootLayer().SetUpdateProc(record)

	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))
	require.NoError(t, h.c.Overlay().Push(thread.Overlay, o, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))

	assert.Equal(t, []thread.Context{thread.Primary, thread.Overlay}, seen)
	assert.Equal(t, thread.None, h.c.FramebufferOwner())
}

func TestClickRebinding(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	var hits []string
	bind := func(w *window.Window) {
		w.SetClickConfigProvider(func(sub button.Subscriber, ctx any) {
			sub.SingleClickSubscribe(button.Select, func(_ button.Recognizer, c any) {
				hits = append(hits, c.(*window.Window).Name())
			})
		})
	}
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	bind(a)
	bind(b)

	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, p.Push(thread.Primary, b, false))
	assert.True(t, h.c.HandleInput(button.Click(button.Select)))
	assert.Equal(t, []string{"b"}, hits)

	_, err := p.Pop(thread.Primary, false)
	require.NoError(t, err)
	assert.True(t, h.c.HandleInput(button.Click(button.Select)))
	assert.Equal(t, []string{"b", "a"}, hits)
}

func TestClickRebinding_NoProviderClearsButtons(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a := h.window("a", gfx.ColorBlue)
	a.SetClickConfigProvider(func(sub button.Subscriber, _ any) {
		sub.SingleClickSubscribe(button.Up, func(button.Recognizer, any) {
			t.Fatal("covered window received input")
		})
	})
	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, p.Push(thread.Primary, h.window("bare", gfx.ColorRed), false))

	assert.False(t, h.c.HandleInput(button.Click(button.Up)))
}

func TestOverlay_TakesInputAndFramebuffer(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)
	o := h.window("o", gfx.ColorRed)
	var got []string
	a.SetClickConfigProvider(func(sub button.Subscriber, _ any) {
		sub.SingleClickSubscribe(button.Select, func(button.Recognizer, any) { got = append(got, "a") })
	})
	o.SetClickConfigProvider(func(sub button.Subscriber, _ any) {
		sub.SingleClickSubscribe(button.Select, func(button.Recognizer, any) { got = append(got, "o") })
	})

	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	require.NoError(t, h.c.Overlay().Push(thread.Overlay, o, false))
	assert.Same(t, o, h.c.InputTarget())

	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorRed, h.column(0))
	assert.True(t, a.RenderScheduled(), "primary render stays pending under the overlay")

	// Overlay clean, primary dirty: nothing may touch the framebuffer.
	h.c.Framebuffer().Fill(gfx.ColorGreen)
	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorGreen, h.column(0))

	h.c.HandleInput(button.Click(button.Select))
	assert.Equal(t, []string{"o"}, got)

	_, err := h.c.Overlay().Pop(thread.Overlay, false)
	require.NoError(t, err)
	assert.Same(t, a, h.c.InputTarget())
	h.c.HandleInput(button.Click(button.Select))
	assert.Equal(t, []string{"o", "a"}, got)

	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorBlue, h.column(0))
	assert.False(t, a.RenderScheduled())
}

func TestOverlay_PrimaryPushDoesNotStealInput(t *testing.T) {
	h := newHarness(t)
	o := h.window("o", gfx.ColorRed)
	hit := false
	o.SetClickConfigProvider(func(sub button.Subscriber, _ any) {
		sub.SingleClickSubscribe(button.Back, func(button.Recognizer, any) { hit = true })
	})
	require.NoError(t, h.c.Overlay().Push(thread.Overlay, o, false))
	require.NoError(t, h.c.Primary().Push(thread.Primary, h.window("a", gfx.ColorBlue), false))

	assert.True(t, h.c.HandleInput(button.Click(button.Back)))
	assert.True(t, hit)
}

func TestDestroy(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	unloads := 0
	b.SetHandlers(window.Handlers{Unload: func(*window.Window) { unloads++ }})

	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, p.Push(thread.Primary, b, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))

	require.NoError(t, h.c.Destroy(thread.Primary, b))
	assert.True(t, b.Destroyed())
	assert.Equal(t, 1, unloads)
	top, _ := p.Top(thread.Primary)
	assert.Same(t, a, top)
	assert.True(t, a.IsLoaded())
	assert.True(t, a.RenderScheduled())

	assert.ErrorIs(t, h.c.Destroy(thread.Primary, b), ErrWindowDestroyed)
	assert.ErrorIs(t, h.c.Destroy(thread.Overlay, a), ErrWrongContext)

	require.NoError(t, h.c.Destroy(thread.Primary, a))
	n, _ := p.Count(thread.Primary)
	assert.Zero(t, n)
}

func TestDestroy_DetachedWindow(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)
	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	popped, err := h.c.Primary().Pop(thread.Primary, false)
	require.NoError(t, err)

	require.NoError(t, h.c.Destroy(thread.Primary, popped))
	assert.True(t, a.RootLayer().Destroyed())
}

func TestDestroy_RejectsTransitioningWindow(t *testing.T) {
	h := newHarness(t)
	a := h.window("a", gfx.ColorBlue)
	var destroyErr error
	a.SetHandlers(window.Handlers{Load: func(w *window.Window) {
		destroyErr = h.c.Destroy(thread.Primary, w)
	}})

	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	assert.ErrorIs(t, destroyErr, ErrWindowTransitioning)
	assert.False(t, a.Destroyed())
	assert.True(t, a.IsLoaded())
}

func TestTransition_SlideLeftShiftsFramebuffer(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))

	require.NoError(t, p.PushSlide(thread.Primary, b, SlideLeft))
	assert.True(t, h.c.Transitioning())
	assert.Equal(t, 10, b.FrameOffset())

	h.engine.Advance(25 * time.Millisecond)
	x := b.FrameOffset()
	require.Greater(t, x, 0)
	require.Less(t, x, 10)
	require.NoError(t, h.c.DrawTick(thread.Primary))
	for i := 0; i < 10; i++ {
		want := gfx.ColorBlue
		if i >= x {
			want = gfx.ColorRed
		}
		assert.Equal(t, want, h.column(i), "column %d at offset %d", i, x)
	}

	h.engine.Advance(200 * time.Millisecond)
	assert.False(t, h.c.Transitioning())
	assert.Zero(t, b.FrameOffset())
	require.NoError(t, h.c.DrawTick(thread.Primary))
	for i := 0; i < 10; i++ {
		assert.Equal(t, gfx.ColorRed, h.column(i))
	}
}

func TestTransition_StripOnlyRepaintsExposedColumns(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))

	// Mark a column the window never paints; a shift must carry it left.
	h.c.Framebuffer().SetPixel(9, 1, gfx.ColorGreen)
	require.NoError(t, p.PushSlide(thread.Primary, b, SlideLeft))
	h.engine.Advance(25 * time.Millisecond)
	x := b.FrameOffset()
	require.NoError(t, h.c.DrawTick(thread.Primary))

	assert.Equal(t, gfx.ColorGreen, h.c.Framebuffer().Pixel(9-(10-x), 1))
}

func TestTransition_AnimatedPopSlidesRight(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, p.Push(thread.Primary, b, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))

	popped, err := p.Pop(thread.Primary, true)
	require.NoError(t, err)
	assert.Same(t, b, popped)
	assert.Equal(t, -10, a.FrameOffset())

	h.engine.Advance(25 * time.Millisecond)
	x := a.FrameOffset()
	require.Less(t, x, 0)
	require.Greater(t, x, -10)
	require.NoError(t, h.c.DrawTick(thread.Primary))
	for i := 0; i < 10; i++ {
		want := gfx.ColorRed
		if i < 10+x {
			want = gfx.ColorBlue
		}
		assert.Equal(t, want, h.column(i), "column %d at offset %d", i, x)
	}
}

func TestTransition_RejectsConcurrent(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	require.NoError(t, p.Push(thread.Primary, h.window("a", gfx.ColorBlue), false))
	require.NoError(t, p.Push(thread.Primary, h.window("b", gfx.ColorRed), true))

	c := h.window("c", gfx.ColorGreen)
	assert.ErrorIs(t, p.Push(thread.Primary, c, true), ErrTransitionInProgress)
	assert.Equal(t, thread.None, c.AttachedTo())
	_, err := p.Pop(thread.Primary, true)
	assert.NoError(t, err, "animated removal of the sliding window replaces its transition")
}

func TestTransition_CoveredWindowCancelsSlide(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	b := h.window("b", gfx.ColorRed)
	require.NoError(t, p.Push(thread.Primary, h.window("a", gfx.ColorBlue), false))
	require.NoError(t, p.Push(thread.Primary, b, true))
	h.engine.Advance(10 * time.Millisecond)

	require.NoError(t, p.Push(thread.Primary, h.window("c", gfx.ColorGreen), false))
	assert.False(t, h.c.Transitioning())
	assert.Zero(t, b.FrameOffset())
	assert.Zero(t, h.engine.Active())
}

func TestTransition_UnderOverlayRepaintsFully(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	o := h.window("o", gfx.ColorGreen)
	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, p.PushSlide(thread.Primary, b, SlideLeft))
	require.NoError(t, h.c.Overlay().Push(thread.Overlay, o, false))

	h.engine.Advance(50 * time.Millisecond)
	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorGreen, h.column(0))

	_, err := h.c.Overlay().Pop(thread.Overlay, false)
	require.NoError(t, err)
	h.engine.Advance(100 * time.Millisecond)
	require.NoError(t, h.c.DrawTick(thread.Primary))
	for i := 0; i < 10; i++ {
		assert.Equal(t, gfx.ColorRed, h.column(i))
	}
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t)
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	require.NoError(t, h.c.Primary().Push(thread.Primary, a, false))
	require.NoError(t, h.c.Primary().PushSlide(thread.Primary, b, SlideLeft))

	snap := h.c.Snapshot()
	assert.Equal(t, 10, snap.Width)
	assert.Equal(t, "none", snap.FramebufferOwner)
	assert.Equal(t, "b", snap.InputTarget)
	require.Len(t, snap.Primary, 2)
	assert.Equal(t, "b", snap.Primary[0].Name)
	assert.Equal(t, "loaded", snap.Primary[0].State)
	assert.Equal(t, "unloaded", snap.Primary[1].State)
	assert.Empty(t, snap.Overlay)
	require.NotNil(t, snap.Transition)
	assert.Equal(t, "slide-left", snap.Transition.Direction)
	assert.Equal(t, 10, snap.Transition.Offset)
}

func TestStack_LoadHandlerPushKeepsSingleLoadedHead(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	a.SetHandlers(window.Handlers{Load: func(*window.Window) {
		require.NoError(t, p.Push(thread.Primary, b, false))
	}})

	require.NoError(t, p.Push(thread.Primary, a, false))

	top, err := p.Top(thread.Primary)
	require.NoError(t, err)
	assert.Same(t, b, top)
	assert.True(t, b.IsLoaded())
	assert.False(t, a.IsLoaded())
	assert.False(t, a.Visible())
	assert.Same(t, b, h.c.InputTarget())

	loaded := 0
	for _, w := range h.c.Windows(thread.Primary) {
		if w.IsLoaded() {
			loaded++
		}
	}
	assert.Equal(t, 1, loaded)

	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorRed, h.column(0))
}

func TestTransition_OverlayClosingMidSlideRepaintsHead(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	a, b := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed)
	o := h.window("o", gfx.ColorGreen)
	require.NoError(t, p.Push(thread.Primary, a, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))
	require.NoError(t, p.PushSlide(thread.Primary, b, SlideLeft))

	h.engine.Advance(30 * time.Millisecond)
	require.NoError(t, h.c.Overlay().Push(thread.Overlay, o, false))
	require.NoError(t, h.c.DrawTick(thread.Primary))
	assert.Equal(t, gfx.ColorGreen, h.column(0))

	h.engine.Advance(20 * time.Millisecond)
	_, err := h.c.Overlay().Pop(thread.Overlay, false)
	require.NoError(t, err)
	assert.False(t, h.c.Transitioning())
	assert.Zero(t, b.FrameOffset())
	assert.Zero(t, h.engine.Active())

	require.NoError(t, h.c.DrawTick(thread.Primary))
	for i := 0; i < 10; i++ {
		assert.Equal(t, gfx.ColorRed, h.column(i), "column %d", i)
	}
}

type lifecycleLog []string

func (l *lifecycleLog) handlers(name string) window.Handlers {
	rec := func(ev string) func(*window.Window) {
		return func(*window.Window) { *l = append(*l, name+":"+ev) }
	}
	return window.Handlers{
		Load:      rec("load"),
		Unload:    rec("unload"),
		Appear:    rec("appear"),
		Disappear: rec("disappear"),
	}
}

func (l *lifecycleLog) take() []string {
	out := *l
	*l = nil
	return out
}

func TestStack_AppearDisappearOrder(t *testing.T) {
	h := newHarness(t)
	p := h.c.Primary()
	var log lifecycleLog
	a, b, c := h.window("a", gfx.ColorBlue), h.window("b", gfx.ColorRed), h.window("c", gfx.ColorGreen)
	a.SetHandlers(log.handlers("a"))
	b.SetHandlers(log.handlers("b"))
	c.SetHandlers(log.handlers("c"))

	require.NoError(t, p.Push(thread.Primary, a, false))
	assert.Equal(t, []string{"a:load", "a:appear"}, log.take())

	require.NoError(t, p.Push(thread.Primary, b, false))
	assert.Equal(t, []string{"a:disappear", "a:unload", "b:load", "b:appear"}, log.take())
	assert.False(t, a.Visible())
	assert.True(t, b.Visible())

	// removing a covered window fires nothing: it is neither visible nor loaded
	require.NoError(t, p.Remove(thread.Primary, a, false))
	assert.Empty(t, log.take())

	require.NoError(t, p.Push(thread.Primary, c, false))
	assert.Equal(t, []string{"b:disappear", "b:unload", "c:load", "c:appear"}, log.take())

	popped, err := p.Pop(thread.Primary, false)
	require.NoError(t, err)
	assert.Same(t, c, popped)
	assert.Equal(t, []string{"c:disappear", "c:unload", "b:load", "b:appear"}, log.take())

	require.NoError(t, h.c.Destroy(thread.Primary, b))
	assert.Equal(t, []string{"b:disappear", "b:unload"}, log.take())
	assert.False(t, b.Visible())

	// destroying a window that already left its stack fires nothing more
	require.NoError(t, h.c.Destroy(thread.Primary, c))
	assert.Empty(t, log.take())
}
