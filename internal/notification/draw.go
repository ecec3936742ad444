package notification

import (
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/layer"
)

const (
	headerHeight = 35
	iconCenterY  = 17
	appY         = 35
	titleY       = 52
	bodyY        = 67
	indicatorR   = 10
)

func (l *Layer) draw(ly *layer.Layer, ctx gfx.Context) {
	n := l.Active()
	if n == nil {
		return
	}
	b := ly.Bounds()
	w, h := b.Size.W, b.Size.H
	bold := gfx.SystemFont(gfx.FontKeyGothic18Bold)

	if l.shape == gfx.ShapeRound {
		ctx.FillCircle(gfx.Pt(w/2, -w+headerHeight), w, n.Color)
	} else {
		ctx.FillRect(gfx.R(0, 0, w, headerHeight), n.Color)
	}

	if n.Icon != nil {
		is := n.Icon.Size
		ctx.DrawBitmap(n.Icon, gfx.R(w/2-is.W/2, iconCenterY-is.H/2, is.W, is.H))
	}

	appRect := gfx.R(10, appY, w-20, 20)
	titleRect := gfx.R(10, titleY, w-20, 30)
	bodyRect := gfx.R(10, bodyY, w-20, h*2-bodyY)
	align := gfx.AlignLeft
	if l.shape == gfx.ShapeRound {
		appRect = gfx.R(0, appY, w, 20)
		titleRect = gfx.R(0, titleY, w, 20)
		bodyRect = gfx.R(0, bodyY, w, h*2-50)
		align = gfx.AlignCenter
	}

	ctx.DrawText(n.AppName, bold, appRect, gfx.OverflowTrailingEllipsis, align, n.Color)
	ctx.DrawText(n.Title, bold, titleRect, gfx.OverflowTrailingEllipsis, align, gfx.ColorBlack)
	ctx.DrawText(n.Body, bold, bodyRect, gfx.OverflowTrailingEllipsis, gfx.AlignLeft, gfx.ColorBlack)

	ctx.FillCircle(gfx.Pt(w+2, h/2), indicatorR, gfx.ColorBlack)

	// Round screens hint at an older notification with a dot in its color.
	if l.shape == gfx.ShapeRound {
		if next := l.active.Next(); next != nil {
			ctx.FillCircle(gfx.Pt(w/2, h-2), indicatorR, next.Value.Color)
		}
	}
}
