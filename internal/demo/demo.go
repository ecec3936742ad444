// Package demo provides sample client windows for the simulator: a home
// menu, stackable cards and a notification overlay with its action menus.
package demo

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/winstack/internal/compositor"
	"github.com/jmylchreest/winstack/internal/config"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/notification"
	"github.com/jmylchreest/winstack/internal/runloop"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

// Options configures an App.
type Options struct {
	// Config defaults to config.DefaultConfig().
	Config *config.Config
	// Now stamps sample notifications and drives relative timestamps.
	Now    func() time.Time
	Logger *slog.Logger
}

// App is a small client of the compositor. Its state is only touched on the
// loop goroutine: the exported methods post work to the loop.
type App struct {
	loop   *runloop.Loop
	comp   *compositor.Compositor
	screen gfx.Size
	logger *slog.Logger
	now    func() time.Time

	shape       gfx.Shape
	statusFg    gfx.Color
	notifyColor gfx.Color
	animated    bool

	home          *menu
	cards         int
	overlay       *window.Window
	notifications *notification.Layer
	sent          int
}

// New creates an App driving loop.
func New(loop *runloop.Loop, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &App{
		loop:        loop,
		comp:        loop.Compositor(),
		screen:      loop.Compositor().Screen(),
		logger:      logger,
		now:         now,
		shape:       cfg.Shape(),
		statusFg:    cfg.StatusForeground(),
		notifyColor: cfg.NotificationColor(),
		animated:    cfg.Transition.Animated,
	}
}

// Start pushes the home menu onto the primary stack.
func (a *App) Start() error {
	return a.loop.Post(thread.Primary, func(thread.Context) {
		a.showHome()
	})
}

// PushCard pushes a new card onto the primary stack.
func (a *App) PushCard() error {
	return a.loop.Post(thread.Primary, func(thread.Context) {
		a.pushCard(false)
	})
}

// PopCard pops the top card. The home menu is never popped.
func (a *App) PopCard() error {
	return a.loop.Post(thread.Primary, func(thread.Context) {
		a.popCard()
	})
}

// Notify shows n on the overlay, opening the notification window if needed.
func (a *App) Notify(n *notification.Notification) error {
	return a.loop.Post(thread.Overlay, func(thread.Context) {
		a.notify(n)
	})
}

// NotifySample shows the next canned notification on the overlay.
func (a *App) NotifySample() error {
	return a.loop.Post(thread.Overlay, func(thread.Context) {
		a.notify(a.SampleNotification())
	})
}

// ApplyConfig updates transition settings from a reloaded configuration.
func (a *App) ApplyConfig(cfg *config.Config) error {
	return a.loop.Post(thread.Primary, func(thread.Context) {
		a.animated = cfg.Transition.Animated
		a.comp.SetTransitionOptions(compositor.TransitionOptions{
			Duration: cfg.Transition.Duration.Duration(),
			Curve:    cfg.Curve(),
		})
		a.logger.Debug("transition settings applied",
			"animated", a.animated, "duration", cfg.Transition.Duration.Duration(), "curve", cfg.Curve())
	})
}

// Home returns the home menu window, or nil before Start has run.
func (a *App) Home() *window.Window {
	if a.home == nil {
		return nil
	}
	return a.home.win
}

// Notifications returns the notification layer while the overlay is open.
func (a *App) Notifications() *notification.Layer { return a.notifications }

func (a *App) showHome() {
	if a.home != nil {
		return
	}
	a.home = newMenu("home", "winstack", a.screen, []entry{
		{label: "Open card", run: func() { a.pushCard(false) }},
		{label: "Card from left", run: func() { a.pushCard(true) }},
		{label: "Notification", run: func() {
			if err := a.NotifySample(); err != nil {
				a.logger.Warn("failed to post notification", "error", err)
			}
		}},
	}, a.logger)

	if err := a.comp.Primary().Push(thread.Primary, a.home.win, false); err != nil {
		a.logger.Error("failed to push home window", "error", err)
		a.home = nil
	}
}

func (a *App) pushCard(fromLeft bool) {
	a.cards++
	c := newCard(a, a.cards, a.screen, a.logger)

	stack := a.comp.Primary()
	var err error
	switch {
	case !a.animated:
		err = stack.Push(thread.Primary, c.win, false)
	case fromLeft:
		err = stack.PushSlide(thread.Primary, c.win, compositor.SlideRight)
	default:
		err = stack.PushSlide(thread.Primary, c.win, compositor.SlideLeft)
	}
	if err != nil {
		a.logger.Warn("failed to push card", "window", c.win.String(), "error", err)
		if derr := a.comp.Destroy(thread.Primary, c.win); derr != nil {
			a.logger.Warn("failed to destroy card", "window", c.win.String(), "error", derr)
		}
	}
}

func (a *App) popCard() {
	stack := a.comp.Primary()
	top, err := stack.Top(thread.Primary)
	if err != nil || top == nil || (a.home != nil && top == a.home.win) {
		a.logger.Debug("nothing to pop")
		return
	}
	w, err := stack.Pop(thread.Primary, a.animated)
	if err != nil {
		a.logger.Warn("failed to pop card", "error", err)
		return
	}
	if err := a.comp.Destroy(thread.Primary, w); err != nil {
		a.logger.Warn("failed to destroy card", "window", w.String(), "error", err)
	}
}
