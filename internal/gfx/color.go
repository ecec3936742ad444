// Package gfx holds the drawing primitives the compositor sequences: colors,
// geometry, the framebuffer and a software graphics context.
package gfx

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit ARGB2222 device color: two bits each of alpha, red,
// green and blue, most significant first.
type Color uint8

// Named device colors.
const (
	ColorClear     Color = 0x00
	ColorBlack     Color = 0xC0
	ColorWhite     Color = 0xFF
	ColorLightGray Color = 0xEA
	ColorDarkGray  Color = 0xD5
	ColorRed       Color = 0xF0
	ColorGreen     Color = 0xCC
	ColorBlue      Color = 0xC3
	ColorYellow    Color = 0xFC
	ColorOrange    Color = 0xF4
	ColorCyan      Color = 0xCF
	ColorMagenta   Color = 0xF3
)

// ColorModel converts any color.Color to the device palette.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if dc, ok := c.(Color); ok {
		return dc
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return ColorClear
	}
	// un-premultiply before quantising
	r = r * 0xffff / a
	g = g * 0xffff / a
	b = b * 0xffff / a
	return FromRGBA(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
})

// FromRGBA quantises 8-bit channels to the device palette.
func FromRGBA(r, g, b, a uint8) Color {
	return Color(quantise(a)<<6 | quantise(r)<<4 | quantise(g)<<2 | quantise(b))
}

// FromRGB returns an opaque device color.
func FromRGB(r, g, b uint8) Color {
	return FromRGBA(r, g, b, 0xff)
}

func quantise(v uint8) uint8 {
	q := (uint16(v) + 0x2a) / 0x55
	if q > 3 {
		q = 3
	}
	return uint8(q)
}

// ParseColor parses a hex color such as "#FF5500" into the device palette.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorClear, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return FromRGB(r, g, b), nil
}

// Alpha returns the two alpha bits.
func (c Color) Alpha() uint8 { return uint8(c) >> 6 }

// Red returns the two red bits.
func (c Color) Red() uint8 { return uint8(c) >> 4 & 0x3 }

// Green returns the two green bits.
func (c Color) Green() uint8 { return uint8(c) >> 2 & 0x3 }

// Blue returns the two blue bits.
func (c Color) Blue() uint8 { return uint8(c) & 0x3 }

// Transparent reports whether drawing c has no effect.
func (c Color) Transparent() bool { return c.Alpha() == 0 }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.Alpha()) * 0x5555
	r = uint32(c.Red()) * 0x5555 * a / 0xffff
	g = uint32(c.Green()) * 0x5555 * a / 0xffff
	b = uint32(c.Blue()) * 0x5555 * a / 0xffff
	return r, g, b, a
}

// Hex returns the opaque color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.Red()*0x55, c.Green()*0x55, c.Blue()*0x55)
}
