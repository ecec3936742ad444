package gfx

// OverflowMode controls how text that does not fit its box is laid out.
type OverflowMode int

const (
	// OverflowWordWrap wraps on word boundaries and clips extra lines.
	OverflowWordWrap OverflowMode = iota
	// OverflowTrailingEllipsis wraps and ends the last visible line with "...".
	OverflowTrailingEllipsis
	// OverflowFill wraps anywhere, breaking words if needed.
	OverflowFill
)

// TextAlignment is the horizontal alignment of each text line.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
)

// Context is the graphics-context interface the compositor draws through.
//
// Coordinates passed to the drawing calls are relative to Origin. Clip is in
// absolute screen coordinates; nothing outside it is touched.
type Context interface {
	FillRect(r Rect, c Color)
	FillCircle(center Point, radius int, c Color)
	DrawBitmap(b *Bitmap, r Rect)
	DrawText(text string, font Font, r Rect, overflow OverflowMode, align TextAlignment, c Color)

	Origin() Point
	SetOrigin(p Point)
	Clip() Rect
	SetClip(r Rect)
}
