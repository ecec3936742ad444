package gfx

import (
	"image"
	"image/color"
)

// Framebuffer is the display memory: one Color per pixel, row-major.
// It implements draw.Image.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []Color
}

// NewFramebuffer allocates a cleared framebuffer.
func NewFramebuffer(size Size) *Framebuffer {
	return &Framebuffer{
		Width:  size.W,
		Height: size.H,
		Pix:    make([]Color, size.W*size.H),
	}
}

// Size returns the screen size.
func (f *Framebuffer) Size() Size {
	return Size{W: f.Width, H: f.Height}
}

// ScreenRect returns the full-screen rectangle.
func (f *Framebuffer) ScreenRect() Rect {
	return R(0, 0, f.Width, f.Height)
}

// Row returns the pixels of row y. The slice aliases the framebuffer.
func (f *Framebuffer) Row(y int) []Color {
	return f.Pix[y*f.Width : (y+1)*f.Width]
}

// Pixel returns the color at (x, y), or ColorClear outside the screen.
func (f *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return ColorClear
	}
	return f.Pix[y*f.Width+x]
}

// SetPixel writes c at (x, y). Writes outside the screen are dropped.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Pix[y*f.Width+x] = c
}

// Fill sets every pixel to c.
func (f *Framebuffer) Fill(c Color) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// Clone returns an independent copy.
func (f *Framebuffer) Clone() *Framebuffer {
	pix := make([]Color, len(f.Pix))
	copy(pix, f.Pix)
	return &Framebuffer{Width: f.Width, Height: f.Height, Pix: pix}
}

// clampShift bounds a shift of d pixels over w columns to the row width.
func (f *Framebuffer) clampShift(d, w int) (int, int) {
	d = max(0, min(d, f.Width))
	w = max(0, min(w, f.Width-d))
	return d, w
}

// ShiftLeft moves row contents d pixels towards the left edge, touching the
// w leftmost columns of each row: row[i] = before[i+d] for i in [0, w).
func (f *Framebuffer) ShiftLeft(d, w int) {
	d, w = f.clampShift(d, w)
	if d == 0 || w == 0 {
		return
	}
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		copy(row[:w], row[d:d+w])
	}
}

// ShiftRight is the mirror of ShiftLeft: for i in [0, w),
// row[W-1-i] = before[W-1-i-d].
func (f *Framebuffer) ShiftRight(d, w int) {
	d, w = f.clampShift(d, w)
	if d == 0 || w == 0 {
		return
	}
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		copy(row[f.Width-w:], row[f.Width-w-d:f.Width-d])
	}
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At implements image.Image.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.Pixel(x, y)
}

// Set implements draw.Image.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, ColorModel.Convert(c).(Color))
}

// Bitmap is a decoded image in the device palette.
type Bitmap struct {
	Size Size
	Pix  []Color
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{Size: Size{W: w, H: h}, Pix: make([]Color, w*h)}
}

// At returns the pixel at (x, y).
func (b *Bitmap) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.Size.W || y >= b.Size.H {
		return ColorClear
	}
	return b.Pix[y*b.Size.W+x]
}

// Set writes the pixel at (x, y).
func (b *Bitmap) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= b.Size.W || y >= b.Size.H {
		return
	}
	b.Pix[y*b.Size.W+x] = c
}
