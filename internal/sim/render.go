package sim

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/winstack/internal/gfx"
)

const halfBlock = "▀"

// Renderer turns framebuffers into terminal text. Each cell shows two
// vertically stacked pixels: the upper half block is drawn in the top
// pixel's color over a background of the bottom pixel's color.
type Renderer struct {
	shape  gfx.Shape
	styles map[[2]gfx.Color]lipgloss.Style
}

// NewRenderer creates a renderer for a display of the given shape. Round
// displays leave the cells outside the inscribed circle blank.
func NewRenderer(shape gfx.Shape) *Renderer {
	return &Renderer{
		shape:  shape,
		styles: make(map[[2]gfx.Color]lipgloss.Style),
	}
}

func (r *Renderer) style(top, bottom gfx.Color) lipgloss.Style {
	k := [2]gfx.Color{top, bottom}
	if s, ok := r.styles[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(top.Hex())).
		Background(lipgloss.Color(bottom.Hex()))
	r.styles[k] = s
	return s
}

// visible reports whether pixel (x, y) is part of the display face.
func (r *Renderer) visible(fb *gfx.Framebuffer, x, y int) bool {
	if r.shape != gfx.ShapeRound {
		return true
	}
	// compare doubled coordinates to stay on integers
	dx := 2*x + 1 - fb.Width
	dy := 2*y + 1 - fb.Height
	d := min(fb.Width, fb.Height)
	return dx*dx+dy*dy <= d*d
}

// Render returns fb as (Height+1)/2 lines of Width cells each.
func (r *Renderer) Render(fb *gfx.Framebuffer) string {
	var b strings.Builder
	for y := 0; y < fb.Height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < fb.Width; x++ {
			if !r.visible(fb, x, y) && !r.visible(fb, x, y+1) {
				b.WriteByte(' ')
				continue
			}
			top := fb.Pixel(x, y)
			bottom := top
			if y+1 < fb.Height {
				bottom = fb.Pixel(x, y+1)
			}
			b.WriteString(r.style(top, bottom).Render(halfBlock))
		}
	}
	return b.String()
}
