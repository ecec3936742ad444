package demo

import (
	"fmt"
	"log/slog"

	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/layer"
	"github.com/jmylchreest/winstack/internal/window"
)

var cardColors = []gfx.Color{
	gfx.ColorBlue,
	gfx.ColorGreen,
	gfx.ColorRed,
	gfx.ColorMagenta,
	gfx.ColorCyan,
	gfx.ColorYellow,
}

// card is a plain colored window. Select pushes another card on top of it,
// Back pops it, Up and Down cycle its color.
type card struct {
	app   *App
	win   *window.Window
	depth int
	color int

	label *layer.Layer
}

func newCard(app *App, depth int, screen gfx.Size, logger *slog.Logger) *card {
	c := &card{
		app:   app,
		win:   window.New(fmt.Sprintf("card-%d", depth), screen, logger),
		depth: depth,
		color: depth % len(cardColors),
	}
	c.win.SetBackgroundColor(cardColors[c.color])
	c.win.SetHandlers(window.Handlers{
		Load:   c.load,
		Unload: c.unload,
	})
	c.win.SetClickConfigProviderWithContext(cardClickConfig, c)
	return c
}

func (c *card) load(w *window.Window) {
	root := w.RootLayer()
	c.label = layer.New(root.Bounds())
	c.label.SetUpdateProc(c.draw)
	root.AddChild(c.label)
}

func (c *card) unload(*window.Window) {
	c.label.Destroy()
	c.label = nil
}

func (c *card) draw(l *layer.Layer, ctx gfx.Context) {
	b := l.Bounds()
	title := gfx.R(0, b.Size.H/2-30, b.Size.W, 30)
	ctx.DrawText(fmt.Sprintf("Card %d", c.depth), gfx.SystemFont(gfx.FontKeyGothic24Bold), title, gfx.OverflowTrailingEllipsis, gfx.AlignCenter, gfx.ColorWhite)

	hint := gfx.R(8, b.Size.H/2+4, b.Size.W-16, b.Size.H/2-8)
	ctx.DrawText("select: push, back: pop", gfx.SystemFont(gfx.FontKeyGothic14), hint, gfx.OverflowWordWrap, gfx.AlignCenter, gfx.ColorWhite)
}

func (c *card) cycle(delta int) {
	n := len(cardColors)
	c.color = ((c.color+delta)%n + n) % n
	c.win.SetBackgroundColor(cardColors[c.color])
	c.win.RootLayer().MarkDirty()
}

func cardClickConfig(sub button.Subscriber, context any) {
	sub.SingleClickSubscribe(button.Select, func(_ button.Recognizer, ctx any) {
		c := ctx.(*card)
		c.app.pushCard(false)
	})
	sub.SingleClickSubscribe(button.Back, func(_ button.Recognizer, ctx any) {
		ctx.(*card).app.popCard()
	})
	sub.SingleClickSubscribe(button.Up, func(_ button.Recognizer, ctx any) {
		ctx.(*card).cycle(-1)
	})
	sub.SingleClickSubscribe(button.Down, func(_ button.Recognizer, ctx any) {
		ctx.(*card).cycle(1)
	})
}
