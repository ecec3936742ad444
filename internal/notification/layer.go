package notification

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/layer"
	"github.com/jmylchreest/winstack/internal/nodelist"
	"github.com/jmylchreest/winstack/internal/window"
)

// ActionHandler receives the action menu opened with Select on the active
// notification.
type ActionHandler func(l *Layer, n *Notification, menu []MenuItem)

// BackHandler is called when Back is pressed.
type BackHandler func(l *Layer)

// Options configures a Layer.
type Options struct {
	Shape gfx.Shape
	// StatusForeground is the status bar text color; white when unset.
	StatusForeground gfx.Color
	// Now is the clock used for relative timestamps.
	Now    func() time.Time
	Logger *slog.Logger
}

// Layer stacks notifications, most recent first, and shows the active one.
type Layer struct {
	*layer.Layer

	list   *nodelist.List[*Notification]
	active *nodelist.Node[*Notification]
	status *layer.StatusBar

	shape      gfx.Shape
	foreground gfx.Color
	now        func() time.Time

	onAction ActionHandler
	onBack   BackHandler

	logger *slog.Logger
}

// NewLayer creates an empty notification layer.
func NewLayer(frame gfx.Rect, opts Options) *Layer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Shape == "" {
		opts.Shape = gfx.ShapeRect
	}
	if opts.StatusForeground == gfx.ColorClear {
		opts.StatusForeground = gfx.ColorWhite
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &Layer{
		Layer:      layer.New(frame),
		list:       nodelist.New[*Notification](logger),
		status:     layer.NewStatusBar(frame.Size.W),
		shape:      opts.Shape,
		foreground: opts.StatusForeground,
		now:        opts.Now,
		logger:     logger,
	}
	l.SetUpdateProc(l.draw)
	l.AddChild(l.status.Layer)
	return l
}

// StatusBar returns the status indicator.
func (l *Layer) StatusBar() *layer.StatusBar { return l.status }

// SetActionHandler sets the receiver of the Select action menu.
func (l *Layer) SetActionHandler(h ActionHandler) { l.onAction = h }

// SetBackHandler sets the receiver of Back presses.
func (l *Layer) SetBackHandler(h BackHandler) { l.onBack = h }

// Len returns the number of stacked notifications.
func (l *Layer) Len() int { return l.list.Len() }

// All returns the notifications, most recent first.
func (l *Layer) All() []*Notification { return l.list.Values() }

// Active returns the displayed notification, or nil.
func (l *Layer) Active() *Notification {
	if l.active == nil {
		return nil
	}
	return l.active.Value
}

// Push stacks n on top and makes it active.
func (l *Layer) Push(n *Notification) error {
	node, err := l.list.InsertHead(n)
	if err != nil {
		return err
	}
	l.active = node
	l.setStatus(n.Color, l.foreground)
	l.MarkDirty()
	l.logger.Debug("notification pushed", "notification", n.String(), "count", l.list.Len())
	return nil
}

// ScrollUp activates the next more recent notification. At the top it only
// re-asserts the status colors.
func (l *Layer) ScrollUp() {
	if l.active == nil {
		return
	}
	if prev := l.active.Prev(); prev != nil {
		l.active = prev
		if l.shape == gfx.ShapeRound {
			l.setStatus(gfx.ColorWhite, gfx.ColorBlack)
		} else {
			l.setStatus(prev.Value.Color, l.foreground)
		}
	} else {
		l.setStatus(l.active.Value.Color, l.foreground)
	}
	l.MarkDirty()
}

// ScrollDown activates the next older notification. At the bottom it is a
// no-op apart from the round-display status colors.
func (l *Layer) ScrollDown() {
	if l.active == nil {
		return
	}
	if next := l.active.Next(); next != nil {
		l.active = next
		l.setStatus(next.Value.Color, l.foreground)
	} else if l.shape == gfx.ShapeRound {
		l.setStatus(gfx.ColorWhite, gfx.ColorBlack)
	}
	l.MarkDirty()
}

func (l *Layer) setStatus(background, foreground gfx.Color) {
	l.status.SetColors(background, foreground)
	if n := l.Active(); n != nil {
		l.status.SetText(n.RelativeTime(l.now()))
	}
}

// Dismiss removes n. When n was active the next older notification becomes
// active, or the next more recent one at the bottom of the stack.
func (l *Layer) Dismiss(n *Notification) bool {
	node := l.list.Find(n)
	if node == nil {
		return false
	}
	if node == l.active {
		switch {
		case node.Next() != nil:
			l.active = node.Next()
		case node.Prev() != nil:
			l.active = node.Prev()
		default:
			l.active = nil
		}
	}
	l.list.Remove(n)
	if a := l.Active(); a != nil {
		l.setStatus(a.Color, l.foreground)
	}
	l.MarkDirty()
	l.logger.Debug("notification dismissed", "notification", n.String(), "count", l.list.Len())
	return true
}

// DismissAll empties the stack.
func (l *Layer) DismissAll() {
	l.list.Clear()
	l.active = nil
	l.MarkDirty()
}

// Perform applies a menu item to the active notification. Dismiss and
// Dismiss All act on the stack; other actions are only logged.
func (l *Layer) Perform(item MenuItem) {
	n := l.Active()
	if n == nil {
		return
	}
	switch item.Action {
	case ActionDismiss:
		l.Dismiss(n)
	case ActionDismissAll:
		l.DismissAll()
	default:
		l.logger.Info("notification action", "notification", n.String(), "action", item.Action, "label", item.Label)
	}
}

// ConfigureClicks makes l the click target of w: Up and Down scroll, Select
// opens the action menu and Back calls the back handler.
func (l *Layer) ConfigureClicks(w *window.Window) {
	w.SetClickConfigProviderWithContext(clickConfig, l)
}

func clickConfig(sub button.Subscriber, context any) {
	sub.SingleClickSubscribe(button.Down, func(_ button.Recognizer, ctx any) {
		ctx.(*Layer).ScrollDown()
	})
	sub.SingleClickSubscribe(button.Up, func(_ button.Recognizer, ctx any) {
		ctx.(*Layer).ScrollUp()
	})
	sub.SingleClickSubscribe(button.Select, func(_ button.Recognizer, ctx any) {
		ctx.(*Layer).openMenu()
	})
	sub.SingleClickSubscribe(button.Back, func(_ button.Recognizer, ctx any) {
		l := ctx.(*Layer)
		if l.onBack != nil {
			l.onBack(l)
		}
	})
	for _, id := range button.IDs {
		sub.SetClickContext(id, context)
	}
}

func (l *Layer) openMenu() {
	n := l.Active()
	if n == nil || l.onAction == nil {
		return
	}
	l.onAction(l, n, Menu(n))
}

// Destroy frees every stacked notification and then the layer itself.
func (l *Layer) Destroy() {
	freed := 0
	for l.list.Len() > 0 {
		l.list.Remove(l.list.Front().Value)
		freed++
	}
	l.active = nil
	l.logger.Debug("deleted all notifications", "count", freed)
	l.Layer.Destroy()
}
