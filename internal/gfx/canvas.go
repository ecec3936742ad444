package gfx

// Canvas is a software Context drawing straight into a Framebuffer.
type Canvas struct {
	fb     *Framebuffer
	origin Point
	clip   Rect
}

var _ Context = (*Canvas)(nil)

// NewCanvas creates a canvas covering the whole framebuffer.
func NewCanvas(fb *Framebuffer) *Canvas {
	return &Canvas{fb: fb, clip: fb.ScreenRect()}
}

// Framebuffer returns the target framebuffer.
func (c *Canvas) Framebuffer() *Framebuffer {
	return c.fb
}

// Origin returns the current drawing origin.
func (c *Canvas) Origin() Point {
	return c.origin
}

// SetOrigin moves the drawing origin.
func (c *Canvas) SetOrigin(p Point) {
	c.origin = p
}

// Clip returns the clip rectangle in screen coordinates.
func (c *Canvas) Clip() Rect {
	return c.clip
}

// SetClip restricts drawing to r, bounded to the screen.
func (c *Canvas) SetClip(r Rect) {
	c.clip = r.Intersect(c.fb.ScreenRect())
}

// FillRect fills r with col.
func (c *Canvas) FillRect(r Rect, col Color) {
	if col.Transparent() {
		return
	}
	abs := r.Offset(c.origin).Intersect(c.clip)
	for y := abs.Origin.Y; y < abs.MaxY(); y++ {
		row := c.fb.Row(y)
		for x := abs.Origin.X; x < abs.MaxX(); x++ {
			row[x] = col
		}
	}
}

// FillCircle fills a disc of the given radius.
func (c *Canvas) FillCircle(center Point, radius int, col Color) {
	if col.Transparent() || radius < 0 {
		return
	}
	ctr := center.Add(c.origin)
	for dy := -radius; dy <= radius; dy++ {
		y := ctr.Y + dy
		if y < c.clip.Origin.Y || y >= c.clip.MaxY() {
			continue
		}
		dx := isqrt(radius*radius - dy*dy)
		x0 := max(ctr.X-dx, c.clip.Origin.X)
		x1 := min(ctr.X+dx+1, c.clip.MaxX())
		row := c.fb.Row(y)
		for x := x0; x < x1; x++ {
			row[x] = col
		}
	}
}

// DrawBitmap blits b at the origin of r, clipped to r. Transparent pixels
// are skipped.
func (c *Canvas) DrawBitmap(b *Bitmap, r Rect) {
	if b == nil {
		return
	}
	abs := r.Offset(c.origin)
	vis := abs.Intersect(c.clip)
	for y := vis.Origin.Y; y < vis.MaxY(); y++ {
		for x := vis.Origin.X; x < vis.MaxX(); x++ {
			px := b.At(x-abs.Origin.X, y-abs.Origin.Y)
			if !px.Transparent() {
				c.fb.Pix[y*c.fb.Width+x] = px
			}
		}
	}
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
