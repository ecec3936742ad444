// Package button is the click subsystem: it binds physical button events to
// handlers and dispatches recognised clicks.
package button

import (
	"log/slog"
	"time"
)

// ID identifies a physical button.
type ID int

const (
	Back ID = iota
	Up
	Select
	Down
)

// Count is the number of physical buttons.
const Count = 4

// IDs lists every button in slot order.
var IDs = [Count]ID{Back, Up, Select, Down}

// String returns the string representation of ID.
func (id ID) String() string {
	switch id {
	case Back:
		return "back"
	case Up:
		return "up"
	case Select:
		return "select"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

func (id ID) valid() bool {
	return id >= Back && id <= Down
}

// Recognizer describes the click that fired a handler.
type Recognizer struct {
	Button      ID
	Kind        Kind
	ClickCount  int
	IsRepeating bool
}

// Handler is called for a recognised click with the bound context.
type Handler func(rec Recognizer, context any)

// Subscriber is the binding surface click-config providers use.
type Subscriber interface {
	SingleClickSubscribe(id ID, h Handler)
	SingleRepeatingClickSubscribe(id ID, repeatInterval time.Duration, h Handler)
	MultiClickSubscribe(id ID, minClicks, maxClicks int, timeout time.Duration, lastClickOnly bool, h Handler)
	LongClickSubscribe(id ID, delay time.Duration, down, up Handler)
	RawClickSubscribe(id ID, down, up Handler, context any)
	SetClickContext(id ID, context any)

	// Reset clears every handler bound to id and sets its context.
	Reset(id ID, context any)
}

// Kind is the recognised click type of an Event.
type Kind int

const (
	KindSingle Kind = iota
	KindMulti
	KindLong
	KindLongRelease
	KindRawDown
	KindRawUp
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMulti:
		return "multi"
	case KindLong:
		return "long"
	case KindLongRelease:
		return "long-release"
	case KindRawDown:
		return "raw-down"
	case KindRawUp:
		return "raw-up"
	default:
		return "unknown"
	}
}

// Event is a recognised input event.
type Event struct {
	Button ID
	Kind   Kind
	Clicks int // for KindMulti
}

// Click is shorthand for a single click event.
func Click(id ID) Event {
	return Event{Button: id, Kind: KindSingle, Clicks: 1}
}

type config struct {
	context any

	single         Handler
	repeatInterval time.Duration

	multi         Handler
	minClicks     int
	maxClicks     int
	multiTimeout  time.Duration
	lastClickOnly bool

	longDown  Handler
	longUp    Handler
	longDelay time.Duration

	rawDown    Handler
	rawUp      Handler
	rawContext any
}

// Router holds the active click configuration for every button.
type Router struct {
	configs [Count]config
	logger  *slog.Logger
}

var _ Subscriber = (*Router)(nil)

// NewRouter creates a router with nothing bound.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger}
}

func (r *Router) slot(id ID) *config {
	if !id.valid() {
		r.logger.Error("invalid button", "button", int(id))
		return nil
	}
	return &r.configs[id]
}

// SingleClickSubscribe binds a single-click handler.
func (r *Router) SingleClickSubscribe(id ID, h Handler) {
	if c := r.slot(id); c != nil {
		c.single = h
		c.repeatInterval = 0
	}
}

// SingleRepeatingClickSubscribe binds a single-click handler that repeats
// while the button is held.
func (r *Router) SingleRepeatingClickSubscribe(id ID, repeatInterval time.Duration, h Handler) {
	if c := r.slot(id); c != nil {
		c.single = h
		c.repeatInterval = repeatInterval
	}
}

// MultiClickSubscribe binds a multi-click handler.
func (r *Router) MultiClickSubscribe(id ID, minClicks, maxClicks int, timeout time.Duration, lastClickOnly bool, h Handler) {
	if c := r.slot(id); c != nil {
		c.multi = h
		c.minClicks = minClicks
		c.maxClicks = maxClicks
		c.multiTimeout = timeout
		c.lastClickOnly = lastClickOnly
	}
}

// LongClickSubscribe binds long-press handlers.
func (r *Router) LongClickSubscribe(id ID, delay time.Duration, down, up Handler) {
	if c := r.slot(id); c != nil {
		c.longDown = down
		c.longUp = up
		c.longDelay = delay
	}
}

// RawClickSubscribe binds raw down/up handlers with their own context.
func (r *Router) RawClickSubscribe(id ID, down, up Handler, context any) {
	if c := r.slot(id); c != nil {
		c.rawDown = down
		c.rawUp = up
		c.rawContext = context
	}
}

// SetClickContext sets the context passed to the button's handlers.
func (r *Router) SetClickContext(id ID, context any) {
	if c := r.slot(id); c != nil {
		c.context = context
	}
}

// Reset clears every handler bound to id and sets its context.
func (r *Router) Reset(id ID, context any) {
	if c := r.slot(id); c != nil {
		*c = config{context: context, rawContext: context}
	}
}

// ResetAll clears every button.
func (r *Router) ResetAll(context any) {
	for _, id := range IDs {
		r.Reset(id, context)
	}
}

// Bound reports whether any handler is bound to id.
func (r *Router) Bound(id ID) bool {
	c := r.slot(id)
	if c == nil {
		return false
	}
	return c.single != nil || c.multi != nil || c.longDown != nil || c.longUp != nil || c.rawDown != nil || c.rawUp != nil
}

// Dispatch delivers ev to the bound handler. It reports whether a handler ran.
func (r *Router) Dispatch(ev Event) bool {
	c := r.slot(ev.Button)
	if c == nil {
		return false
	}
	rec := Recognizer{Button: ev.Button, Kind: ev.Kind, ClickCount: max(ev.Clicks, 1)}

	var h Handler
	ctx := c.context
	switch ev.Kind {
	case KindSingle:
		h = c.single
		rec.IsRepeating = c.repeatInterval > 0
		if h == nil && c.multi != nil && c.minClicks <= 1 {
			h = c.multi
		}
	case KindMulti:
		h = c.multi
		if h == nil || ev.Clicks < c.minClicks || (c.maxClicks > 0 && ev.Clicks > c.maxClicks) {
			h = nil
		}
		if h == nil && c.single != nil {
			h = c.single
		}
	case KindLong:
		h = c.longDown
		if h == nil {
			h = c.single
		}
	case KindLongRelease:
		h = c.longUp
	case KindRawDown:
		h, ctx = c.rawDown, c.rawContext
	case KindRawUp:
		h, ctx = c.rawUp, c.rawContext
	}

	if h == nil {
		r.logger.Debug("no handler bound", "button", ev.Button, "kind", ev.Kind)
		return false
	}
	h(rec, ctx)
	return true
}
