// Package anim is the animation engine: it maps elapsed time to normalised
// progress through an easing curve and calls setup/update/teardown hooks.
package anim

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Progress is normalised animation progress in [0, NormalizedMax].
type Progress uint32

// NormalizedMax is the progress value of a finished animation.
const NormalizedMax Progress = 65535

// Engine errors.
var (
	ErrAnimationDestroyed = errors.New("animation has been destroyed")
	ErrAlreadyScheduled   = errors.New("animation is already scheduled")
	ErrForeignAnimation   = errors.New("animation belongs to another engine")
)

// Curve names an easing curve.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveEaseIn    Curve = "ease-in"
	CurveEaseOut   Curve = "ease-out"
	CurveEaseInOut Curve = "ease-in-out"
)

// ValidCurves returns all valid curve values.
func ValidCurves() []Curve {
	return []Curve{CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut}
}

// ParseCurve validates a curve name.
func ParseCurve(s string) (Curve, error) {
	c := Curve(s)
	if slices.Contains(ValidCurves(), c) {
		return c, nil
	}
	return CurveLinear, fmt.Errorf("invalid curve %q, must be one of: %v", s, ValidCurves())
}

func (c Curve) tweenFunc() ease.TweenFunc {
	switch c {
	case CurveEaseIn:
		return ease.InQuad
	case CurveEaseOut:
		return ease.OutQuad
	case CurveEaseInOut:
		return ease.InOutQuad
	default:
		return ease.Linear
	}
}

// Implementation holds the animation hooks. Every hook is optional.
type Implementation struct {
	Setup    func(a *Animation)
	Update   func(a *Animation, p Progress)
	Teardown func(a *Animation)
}

// Animation is a scheduled timeline.
type Animation struct {
	engine   *Engine
	duration time.Duration
	curve    Curve
	impl     Implementation
	tween    *gween.Tween

	scheduled bool
	started   bool
	destroyed bool

	// Context is free for the owner of the animation.
	Context any
}

// SetDuration sets the duration. Changing a scheduled animation takes effect
// on the next Schedule.
func (a *Animation) SetDuration(d time.Duration) {
	a.duration = d
}

// Duration returns the configured duration.
func (a *Animation) Duration() time.Duration {
	return a.duration
}

// SetCurve sets the easing curve.
func (a *Animation) SetCurve(c Curve) {
	a.curve = c
}

// SetImplementation sets the hooks.
func (a *Animation) SetImplementation(impl Implementation) {
	a.impl = impl
}

// Scheduled reports whether the animation is running.
func (a *Animation) Scheduled() bool {
	return a.scheduled
}

// Destroy unschedules the animation and releases it.
func (a *Animation) Destroy() {
	if a.destroyed {
		return
	}
	if a.scheduled {
		a.engine.Unschedule(a)
	}
	a.destroyed = true
	a.impl = Implementation{}
	a.tween = nil
}

// Scheduler is the animation engine interface the compositor consumes.
type Scheduler interface {
	Create() *Animation
	Schedule(a *Animation) error
	Unschedule(a *Animation)
}

// Engine runs scheduled animations when advanced by the run loop.
type Engine struct {
	active []*Animation
	logger *slog.Logger
}

var _ Scheduler = (*Engine)(nil)

// NewEngine creates an engine with nothing scheduled.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Create returns an unscheduled linear animation.
func (e *Engine) Create() *Animation {
	return &Animation{engine: e, curve: CurveLinear}
}

// Schedule starts a. Setup runs on the next Advance.
func (e *Engine) Schedule(a *Animation) error {
	switch {
	case a.destroyed:
		return ErrAnimationDestroyed
	case a.engine != e:
		return ErrForeignAnimation
	case a.scheduled:
		return ErrAlreadyScheduled
	}
	a.tween = gween.New(0, float32(NormalizedMax), float32(a.duration.Seconds()), a.curve.tweenFunc())
	a.scheduled = true
	a.started = false
	e.active = append(e.active, a)
	e.logger.Debug("animation scheduled", "duration", a.duration, "curve", a.curve)
	return nil
}

// Unschedule stops a. Teardown runs if setup already ran.
func (e *Engine) Unschedule(a *Animation) {
	if !a.scheduled {
		return
	}
	e.remove(a)
	if a.started && a.impl.Teardown != nil {
		a.impl.Teardown(a)
	}
}

func (e *Engine) remove(a *Animation) {
	e.active = slices.DeleteFunc(e.active, func(x *Animation) bool { return x == a })
	a.scheduled = false
}

// Active returns the number of scheduled animations.
func (e *Engine) Active() int {
	return len(e.active)
}

// Advance moves every scheduled animation forward by dt.
func (e *Engine) Advance(dt time.Duration) {
	for _, a := range slices.Clone(e.active) {
		if !a.scheduled {
			continue
		}
		if !a.started {
			a.started = true
			if a.impl.Setup != nil {
				a.impl.Setup(a)
			}
			if !a.scheduled {
				continue
			}
		}

		p, finished := NormalizedMax, true
		if a.duration > 0 {
			v, done := a.tween.Update(float32(dt.Seconds()))
			p, finished = clampProgress(v), done
			if finished {
				p = NormalizedMax
			}
		}

		if a.impl.Update != nil {
			a.impl.Update(a, p)
		}
		if finished && a.scheduled {
			e.remove(a)
			if a.impl.Teardown != nil {
				a.impl.Teardown(a)
			}
		}
	}
}

func clampProgress(v float32) Progress {
	switch {
	case v <= 0:
		return 0
	case v >= float32(NormalizedMax):
		return NormalizedMax
	default:
		return Progress(v)
	}
}
