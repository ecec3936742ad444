package gfx

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// System font keys.
const (
	FontKeyGothic14     = "gothic-14"
	FontKeyGothic18     = "gothic-18"
	FontKeyGothic18Bold = "gothic-18-bold"
	FontKeyGothic24Bold = "gothic-24-bold"
)

const ellipsis = "..."

// Font is a named font face.
type Font struct {
	Name string
	Face font.Face
}

// SystemFont returns the built-in font for key. Every key currently maps to
// the 7x13 bitmap face.
func SystemFont(key string) Font {
	return Font{Name: key, Face: basicfont.Face7x13}
}

func (f Font) face() font.Face {
	if f.Face == nil {
		return basicfont.Face7x13
	}
	return f.Face
}

// LineHeight returns the line advance in pixels.
func (f Font) LineHeight() int {
	return f.face().Metrics().Height.Ceil()
}

// DrawText lays text out inside r and draws it in col.
func (c *Canvas) DrawText(text string, f Font, r Rect, overflow OverflowMode, align TextAlignment, col Color) {
	if text == "" || col.Transparent() {
		return
	}
	face := f.face()
	abs := r.Offset(c.origin)
	clip := abs.Intersect(c.clip)
	if clip.Empty() {
		return
	}

	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()
	maxLines := max(1, r.Size.H/lineH)
	lines := LayoutText(text, face, r.Size.W, maxLines, overflow)

	d := &font.Drawer{
		Dst:  clippedImage{fb: c.fb, clip: clip.Image()},
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range lines {
		w := font.MeasureString(face, line).Ceil()
		x := abs.Origin.X
		switch align {
		case AlignCenter:
			x += (r.Size.W - w) / 2
		case AlignRight:
			x += r.Size.W - w
		}
		y := abs.Origin.Y + i*lineH + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
}

// LayoutText breaks text into at most maxLines lines no wider than width.
func LayoutText(text string, face font.Face, width, maxLines int, overflow OverflowMode) []string {
	fits := func(s string) bool {
		return font.MeasureString(face, s).Ceil() <= width
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if fits(candidate) {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			if overflow == OverflowFill && !fits(word) {
				parts := breakRunes(word, fits)
				lines = append(lines, parts[:len(parts)-1]...)
				cur = parts[len(parts)-1]
				continue
			}
			cur = word
		}
		lines = append(lines, cur)
	}

	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	if overflow == OverflowTrailingEllipsis {
		last := lines[maxLines-1]
		for last != "" && !fits(last+ellipsis) {
			rs := []rune(last)
			last = string(rs[:len(rs)-1])
		}
		lines[maxLines-1] = strings.TrimRight(last, " ") + ellipsis
	}
	return lines
}

// breakRunes splits word into pieces that each fit.
func breakRunes(word string, fits func(string) bool) []string {
	var parts []string
	cur := ""
	for _, r := range word {
		if cur != "" && !fits(cur+string(r)) {
			parts = append(parts, cur)
			cur = ""
		}
		cur += string(r)
	}
	return append(parts, cur)
}

// clippedImage restricts a framebuffer to a clip rectangle for font.Drawer.
type clippedImage struct {
	fb   *Framebuffer
	clip image.Rectangle
}

func (c clippedImage) ColorModel() color.Model { return ColorModel }

func (c clippedImage) Bounds() image.Rectangle { return c.clip }

func (c clippedImage) At(x, y int) color.Color { return c.fb.Pixel(x, y) }

func (c clippedImage) Set(x, y int, col color.Color) {
	if !(image.Point{X: x, Y: y}).In(c.clip) {
		return
	}
	c.fb.Set(x, y, col)
}
