package demo

import (
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/notification"
	"github.com/jmylchreest/winstack/internal/thread"
	"github.com/jmylchreest/winstack/internal/window"
)

const iconSize = 24

var samples = []struct {
	app, title, body string
	color            gfx.Color
	actions          []string
}{
	{"Messages", "Alice", "Are we still on for lunch tomorrow?", gfx.ColorClear, []string{"Like"}},
	{"Calendar", "Stand-up", "Starts in 5 minutes in room 2.", gfx.ColorBlue, nil},
	{"Weather", "Rain expected", "Showers from 3pm, take an umbrella.", gfx.ColorCyan, nil},
	{"Fitness", "Goal reached", "You walked 10,000 steps today.", gfx.ColorGreen, []string{"Share"}},
}

// SampleNotification returns the next canned notification, cycling through
// a fixed set. Samples without a color of their own use the configured
// default color.
func (a *App) SampleNotification() *notification.Notification {
	s := samples[a.sent%len(samples)]
	a.sent++

	color := s.color
	if color == gfx.ColorClear {
		color = a.notifyColor
	}
	n := notification.New(s.app, s.title, s.body, sampleIcon(color), color)
	n.Actions = s.actions
	n.ReceivedAt = a.now()
	return n
}

// sampleIcon draws a ring in c.
func sampleIcon(c gfx.Color) *gfx.Bitmap {
	b := gfx.NewBitmap(iconSize, iconSize)
	r := iconSize / 2
	for y := range iconSize {
		for x := range iconSize {
			dx, dy := x-r, y-r
			d := dx*dx + dy*dy
			if d <= r*r && d >= (r-4)*(r-4) {
				b.Set(x, y, c)
			}
		}
	}
	return b
}

func (a *App) notify(n *notification.Notification) {
	if a.notifications == nil && !a.openNotifications() {
		return
	}
	if err := a.notifications.Push(n); err != nil {
		a.logger.Warn("failed to push notification", "notification", n.String(), "error", err)
	}
}

func (a *App) openNotifications() bool {
	w := window.New("notifications", a.screen, a.logger)

	l := notification.NewLayer(w.RootLayer().Bounds(), notification.Options{
		Shape:            a.shape,
		StatusForeground: a.statusFg,
		Now:              a.now,
		Logger:           a.logger,
	})
	w.RootLayer().AddChild(l.Layer)
	l.ConfigureClicks(w)
	l.SetBackHandler(func(*notification.Layer) { a.closeNotifications() })
	l.SetActionHandler(a.openActions)

	if err := a.comp.Overlay().Push(thread.Overlay, w, false); err != nil {
		a.logger.Error("failed to push notification window", "error", err)
		l.Destroy()
		w.Release()
		return false
	}
	a.overlay = w
	a.notifications = l
	return true
}

// closeNotifications tears down every overlay window, returning the display
// to the primary stack.
func (a *App) closeNotifications() {
	stack := a.comp.Overlay()
	if a.notifications != nil {
		a.notifications.Destroy()
		a.notifications = nil
	}
	for _, w := range a.comp.Windows(thread.Overlay) {
		if err := stack.Remove(thread.Overlay, w, false); err != nil {
			a.logger.Warn("failed to remove overlay window", "window", w.String(), "error", err)
			continue
		}
		if err := a.comp.Destroy(thread.Overlay, w); err != nil {
			a.logger.Warn("failed to destroy overlay window", "window", w.String(), "error", err)
		}
	}
	a.overlay = nil
}

// openActions shows the action menu of n on the overlay stack. Entries with
// a sub-level open a nested menu; leaves are performed on the layer.
func (a *App) openActions(l *notification.Layer, n *notification.Notification, items []notification.MenuItem) {
	a.pushActionMenu(l, n.AppName, items)
}

func (a *App) pushActionMenu(l *notification.Layer, title string, items []notification.MenuItem) {
	entries := make([]entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, entry{label: item.Label, run: func() {
			if len(item.Children) > 0 {
				a.pushActionMenu(l, item.Label, item.Children)
				return
			}
			a.performAction(l, item)
		}})
	}
	m := newMenu("actions", title, a.screen, entries, a.logger)
	m.onBack = func() { a.closeMenu(m.win) }

	if err := a.comp.Overlay().Push(thread.Overlay, m.win, false); err != nil {
		a.logger.Error("failed to push action menu", "error", err)
		m.win.Release()
	}
}

// performAction applies item and closes every open action menu. The overlay
// is closed once no notification is left.
func (a *App) performAction(l *notification.Layer, item notification.MenuItem) {
	l.Perform(item)
	for _, w := range a.comp.Windows(thread.Overlay) {
		if w == a.overlay {
			break
		}
		a.closeMenu(w)
	}
	if l.Len() == 0 {
		a.closeNotifications()
	}
}

func (a *App) closeMenu(w *window.Window) {
	if err := a.comp.Overlay().Remove(thread.Overlay, w, false); err != nil {
		a.logger.Warn("failed to close menu", "window", w.String(), "error", err)
		return
	}
	if err := a.comp.Destroy(thread.Overlay, w); err != nil {
		a.logger.Warn("failed to destroy menu", "window", w.String(), "error", err)
	}
}
