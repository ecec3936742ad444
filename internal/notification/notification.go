// Package notification implements the notification stack layer: a scrollable
// stack of transient notification records drawn inside a host window.
package notification

import (
	"crypto/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/winstack/internal/gfx"
)

// Notification is a single notification record.
type Notification struct {
	ID         string
	AppName    string
	Title      string
	Body       string
	Icon       *gfx.Bitmap
	Color      gfx.Color
	Actions    []string
	ReceivedAt time.Time
}

// New creates a notification received now.
func New(appName, title, body string, icon *gfx.Bitmap, color gfx.Color) *Notification {
	now := time.Now()
	return &Notification{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		AppName:    appName,
		Title:      title,
		Body:       body,
		Icon:       icon,
		Color:      color,
		ReceivedAt: now,
	}
}

// String implements fmt.Stringer for log attributes.
func (n *Notification) String() string {
	return n.AppName + "/" + n.ID
}

// RelativeTime returns how long before now the notification arrived, e.g.
// "3 minutes ago".
func (n *Notification) RelativeTime(now time.Time) string {
	if n.ReceivedAt.IsZero() {
		return ""
	}
	return humanize.RelTime(n.ReceivedAt, now, "ago", "from now")
}

// Action identifies an entry of the notification action menu.
type Action int

const (
	ActionDismiss Action = iota
	ActionDismissAll
	ActionReply
	ActionCustom
)

// String returns the string representation of Action.
func (a Action) String() string {
	switch a {
	case ActionDismiss:
		return "dismiss"
	case ActionDismissAll:
		return "dismiss-all"
	case ActionReply:
		return "reply"
	case ActionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// MenuItem is one entry of the action menu. Reply carries its sub-level.
type MenuItem struct {
	Action   Action
	Label    string
	Children []MenuItem
}

// Menu builds the action menu for n: Reply with its sub-level, Dismiss,
// Dismiss All, then n's custom actions.
func Menu(n *Notification) []MenuItem {
	items := []MenuItem{
		{Action: ActionReply, Label: "Reply", Children: []MenuItem{
			{Action: ActionReply, Label: "Dictate"},
			{Action: ActionReply, Label: "Canned Response"},
			{Action: ActionReply, Label: "Emoji"},
		}},
		{Action: ActionDismiss, Label: "Dismiss"},
		{Action: ActionDismissAll, Label: "Dismiss All"},
	}
	for _, label := range n.Actions {
		items = append(items, MenuItem{Action: ActionCustom, Label: label})
	}
	return items
}
