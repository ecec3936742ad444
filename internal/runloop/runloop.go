// Package runloop is the scheduler around the compositor: it coalesces draw
// requests, runs work posted for an execution context, advances animations
// and services draw ticks.
package runloop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/winstack/internal/anim"
	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/compositor"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/thread"
)

// ErrInvalidContext is returned when work is posted for thread.None.
var ErrInvalidContext = errors.New("invalid execution context")

// DefaultFrameRate is the tick rate of Run when none is configured.
const DefaultFrameRate = 30

// Task is work run on the loop for an execution context.
type Task func(ctx thread.Context)

type queued struct {
	ctx   thread.Context
	fn    Task
	input *button.Event
}

// Options configures a Loop.
type Options struct {
	Compositor compositor.Options
	FrameRate  int
	// OnDraw is called after every draw tick that may have changed the
	// framebuffer. It runs on the loop goroutine.
	OnDraw func(fb *gfx.Framebuffer)
	Logger *slog.Logger
}

// Loop owns a compositor and drives it.
type Loop struct {
	mu    sync.Mutex
	queue []queued

	comp   *compositor.Compositor
	engine *anim.Engine
	drawCh chan struct{}
	onDraw func(fb *gfx.Framebuffer)

	frameInterval time.Duration
	draws         int

	logger *slog.Logger
}

var _ compositor.Redrawer = (*Loop)(nil)

// New creates a loop and the compositor it drives.
func New(opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rate := opts.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}

	l := &Loop{
		engine:        anim.NewEngine(logger),
		drawCh:        make(chan struct{}, 1),
		onDraw:        opts.OnDraw,
		frameInterval: time.Second / time.Duration(rate),
		logger:        logger,
	}

	copts := opts.Compositor
	copts.Animations = l.engine
	copts.Redraw = l
	if copts.Logger == nil {
		copts.Logger = logger
	}
	l.comp = compositor.New(copts)
	return l
}

// Compositor returns the driven compositor.
func (l *Loop) Compositor() *compositor.Compositor { return l.comp }

// Engine returns the animation engine advanced by Step.
func (l *Loop) Engine() *anim.Engine { return l.engine }

// FrameInterval returns the tick period of Run.
func (l *Loop) FrameInterval() time.Duration { return l.frameInterval }

// Draws returns the number of draw ticks serviced so far.
func (l *Loop) Draws() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draws
}

// RequestDraw asks for a draw tick. Requests made before the tick runs
// collapse into one.
func (l *Loop) RequestDraw() {
	select {
	case l.drawCh <- struct{}{}:
	default:
	}
}

// Post queues fn to run on the loop for ctx. It is safe to call from any
// goroutine.
func (l *Loop) Post(ctx thread.Context, fn Task) error {
	if !ctx.Valid() {
		l.logger.Error("post for invalid context", "context", ctx)
		return ErrInvalidContext
	}
	l.mu.Lock()
	l.queue = append(l.queue, queued{ctx: ctx, fn: fn})
	l.mu.Unlock()
	return nil
}

// Press queues a button event for the current input target. It is safe to
// call from any goroutine.
func (l *Loop) Press(ev button.Event) {
	l.mu.Lock()
	l.queue = append(l.queue, queued{input: &ev})
	l.mu.Unlock()
}

// Step runs queued work, advances animations by dt and services at most one
// pending draw tick. It reports whether a draw tick ran.
func (l *Loop) Step(dt time.Duration) (bool, error) {
	l.mu.Lock()
	work := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, q := range work {
		if q.input != nil {
			if !l.comp.HandleInput(*q.input) {
				l.logger.Debug("input not handled", "button", q.input.Button, "kind", q.input.Kind)
			}
			continue
		}
		q.fn(q.ctx)
	}

	l.engine.Advance(dt)

	select {
	case <-l.drawCh:
	default:
		return false, nil
	}

	if err := l.comp.DrawTick(thread.Primary); err != nil {
		return false, err
	}
	l.mu.Lock()
	l.draws++
	l.mu.Unlock()
	if l.onDraw != nil {
		l.onDraw(l.comp.Framebuffer())
	}
	return true, nil
}

// Run steps the loop every frame until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()

	l.logger.Debug("run loop started", "interval", l.frameInterval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("run loop stopped")
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if _, err := l.Step(dt); err != nil {
				l.logger.Error("draw tick failed", "error", err)
			}
		}
	}
}
