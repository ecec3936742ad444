package gfx

import "image"

// Point is a pixel position.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a pixel extent.
type Size struct {
	W, H int
}

// Rect is an origin and size, the way the drawing primitives take bounds.
type Rect struct {
	Origin Point
	Size   Size
}

// R is shorthand for a Rect at (x, y) with size w x h.
func R(x, y, w, h int) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.Origin.X + r.Size.W }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.H }

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Size.W <= 0 || r.Size.H <= 0
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	r.Origin = r.Origin.Add(p)
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.MaxX() && p.Y >= r.Origin.Y && p.Y < r.MaxY()
}

// Intersect returns the overlap of r and s, or the zero Rect.
func (r Rect) Intersect(s Rect) Rect {
	x0 := max(r.Origin.X, s.Origin.X)
	y0 := max(r.Origin.Y, s.Origin.Y)
	x1 := min(r.MaxX(), s.MaxX())
	y1 := min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Origin.X, r.Origin.Y, r.MaxX(), r.MaxY())
}
