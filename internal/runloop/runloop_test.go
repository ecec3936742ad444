package runloop

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/compositor"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

func newTestLoop(onDraw func(*gfx.Framebuffer)) *Loop {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Options{
		Compositor: compositor.Options{
			Screen:     gfx.Size{W: 8, H: 4},
			Transition: compositor.TransitionOptions{Duration: 50 * time.Millisecond},
		},
		FrameRate: 100,
		OnDraw:    onDraw,
		Logger:    logger,
	})
}

func TestLoop_CoalescesDrawRequests(t *testing.T) {
	l := newTestLoop(nil)
	l.RequestDraw()
	l.RequestDraw()
	l.RequestDraw()

	drew, err := l.Step(0)
	require.NoError(t, err)
	assert.True(t, drew)

	drew, err = l.Step(0)
	require.NoError(t, err)
	assert.False(t, drew)
	assert.Equal(t, 1, l.Draws())
}

func TestLoop_PostedWorkDraws(t *testing.T) {
	var frames int
	l := newTestLoop(func(*gfx.Framebuffer) { frames++ })
	w := window.New("main", l.Compositor().Screen(), nil)
	w.SetBackgroundColor(gfx.ColorBlue)

	var ranIn thread.Context
	require.NoError(t, l.Post(thread.Primary, func(ctx thread.Context) {
		ranIn = ctx
		require.NoError(t, l.Compositor().Primary().Push(ctx, w, false))
	}))

	drew, err := l.Step(0)
	require.NoError(t, err)
	assert.True(t, drew)
	assert.Equal(t, thread.Primary, ranIn)
	assert.Equal(t, 1, frames)
	assert.Equal(t, gfx.ColorBlue, l.Compositor().Framebuffer().Pixel(0, 0))
}

func TestLoop_PostRejectsNone(t *testing.T) {
	l := newTestLoop(nil)
	assert.ErrorIs(t, l.Post(thread.None, func(thread.Context) {}), ErrInvalidContext)
}

func TestLoop_PressDispatchesToTarget(t *testing.T) {
	l := newTestLoop(nil)
	w := window.New("main", l.Compositor().Screen(), nil)
	pressed := 0
	w.SetClickConfigProvider(func(sub button.Subscriber, _ any) {
		sub.SingleClickSubscribe(button.Select, func(button.Recognizer, any) { pressed++ })
	})
	require.NoError(t, l.Compositor().Primary().Push(thread.Primary, w, false))

	l.Press(button.Click(button.Select))
	assert.Zero(t, pressed, "input waits for the loop")
	_, err := l.Step(0)
	require.NoError(t, err)
	assert.Equal(t, 1, pressed)
}

func TestLoop_StepAdvancesTransitions(t *testing.T) {
	l := newTestLoop(nil)
	c := l.Compositor()
	require.NoError(t, c.Primary().Push(thread.Primary, window.New("a", c.Screen(), nil), false))
	_, err := l.Step(0)
	require.NoError(t, err)

	require.NoError(t, c.Primary().Push(thread.Primary, window.New("b", c.Screen(), nil), true))
	assert.True(t, c.Transitioning())
	for i := 0; i < 10 && c.Transitioning(); i++ {
		_, err := l.Step(10 * time.Millisecond)
		require.NoError(t, err)
	}
	assert.False(t, c.Transitioning())
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	l := newTestLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	l.RequestDraw()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run loop did not stop")
	}
}
