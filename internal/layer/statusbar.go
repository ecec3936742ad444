package layer

import (
	"github.com/jmylchreest/winstack/internal/gfx"
)

// StatusBarHeight is the height of the status bar in pixels.
const StatusBarHeight = 16

// StatusBar is a thin colored strip with an optional centered label.
type StatusBar struct {
	*Layer
	background gfx.Color
	foreground gfx.Color
	text       string
}

// NewStatusBar creates a status bar spanning width pixels.
func NewStatusBar(width int) *StatusBar {
	s := &StatusBar{
		Layer:      New(gfx.R(0, 0, width, StatusBarHeight)),
		background: gfx.ColorBlack,
		foreground: gfx.ColorWhite,
	}
	s.SetUpdateProc(s.draw)
	return s
}

// SetColors sets the background and foreground colors.
func (s *StatusBar) SetColors(background, foreground gfx.Color) {
	s.background = background
	s.foreground = foreground
	s.MarkDirty()
}

// Colors returns the background and foreground colors.
func (s *StatusBar) Colors() (background, foreground gfx.Color) {
	return s.background, s.foreground
}

// SetText sets the centered label.
func (s *StatusBar) SetText(text string) {
	s.text = text
	s.MarkDirty()
}

func (s *StatusBar) draw(l *Layer, ctx gfx.Context) {
	b := l.Bounds()
	ctx.FillRect(b, s.background)
	if s.text != "" {
		ctx.DrawText(s.text, gfx.SystemFont(gfx.FontKeyGothic14), b, gfx.OverflowTrailingEllipsis, gfx.AlignCenter, s.foreground)
	}
}
