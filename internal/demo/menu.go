package demo

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/layer"
	"github.com/jmylchreest/winstack/internal/window"
)

const (
	menuRowHeight      = 22
	menuRepeatInterval = 120 * time.Millisecond
)

type entry struct {
	label string
	run   func()
}

// menu is a window showing a title bar and a scrollable list of entries.
// Its layers only exist while the window is loaded.
type menu struct {
	win      *window.Window
	title    string
	entries  []entry
	selected int
	onBack   func()

	titleBar *layer.StatusBar
	rows     *layer.Layer
}

func newMenu(name, title string, screen gfx.Size, entries []entry, logger *slog.Logger) *menu {
	m := &menu{
		win:     window.New(name, screen, logger),
		title:   title,
		entries: entries,
	}
	m.win.SetHandlers(window.Handlers{
		Load:   m.load,
		Unload: m.unload,
	})
	m.win.SetClickConfigProviderWithContext(menuClickConfig, m)
	return m
}

func (m *menu) load(w *window.Window) {
	root := w.RootLayer()
	bounds := root.Bounds()

	m.titleBar = layer.NewStatusBar(bounds.Size.W)
	m.titleBar.SetText(m.title)

	m.rows = layer.New(gfx.R(0, layer.StatusBarHeight, bounds.Size.W, bounds.Size.H-layer.StatusBarHeight))
	m.rows.SetUpdateProc(m.drawRows)

	root.AddChild(m.rows)
	root.AddChild(m.titleBar.Layer)
}

func (m *menu) unload(*window.Window) {
	m.titleBar.Destroy()
	m.rows.Destroy()
	m.titleBar, m.rows = nil, nil
}

func (m *menu) visibleRows() int {
	if m.rows == nil {
		return 1
	}
	return max(1, m.rows.Frame().Size.H/menuRowHeight)
}

func (m *menu) drawRows(l *layer.Layer, ctx gfx.Context) {
	b := l.Bounds()
	first := max(0, m.selected-m.visibleRows()+1)
	font := gfx.SystemFont(gfx.FontKeyGothic18)

	for i := first; i < len(m.entries); i++ {
		row := gfx.R(0, (i-first)*menuRowHeight, b.Size.W, menuRowHeight)
		if row.Origin.Y >= b.Size.H {
			break
		}
		fg := gfx.ColorBlack
		if i == m.selected {
			ctx.FillRect(row, gfx.ColorBlack)
			fg = gfx.ColorWhite
		}
		text := gfx.R(row.Origin.X+4, row.Origin.Y+4, row.Size.W-8, row.Size.H-4)
		ctx.DrawText(m.entries[i].label, font, text, gfx.OverflowTrailingEllipsis, gfx.AlignLeft, fg)
	}
}

func (m *menu) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	next := min(max(m.selected+delta, 0), len(m.entries)-1)
	if next == m.selected {
		return
	}
	m.selected = next
	if m.rows != nil {
		m.rows.MarkDirty()
	}
}

func (m *menu) activate() {
	if m.selected < len(m.entries) && m.entries[m.selected].run != nil {
		m.entries[m.selected].run()
	}
}

func menuClickConfig(sub button.Subscriber, context any) {
	sub.SingleRepeatingClickSubscribe(button.Up, menuRepeatInterval, func(_ button.Recognizer, ctx any) {
		ctx.(*menu).move(-1)
	})
	sub.SingleRepeatingClickSubscribe(button.Down, menuRepeatInterval, func(_ button.Recognizer, ctx any) {
		ctx.(*menu).move(1)
	})
	sub.SingleClickSubscribe(button.Select, func(_ button.Recognizer, ctx any) {
		ctx.(*menu).activate()
	})
	sub.SingleClickSubscribe(button.Back, func(_ button.Recognizer, ctx any) {
		if m := ctx.(*menu); m.onBack != nil {
			m.onBack()
		}
	})
}
