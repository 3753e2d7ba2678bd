package colors

import (
	"image/color"
	"math"
)

// Color is a linear RGB color. Channels are not clamped while light is being
// accumulated; Clamp01 brings them into [0,1] for output.
type Color struct {
	R, G, B float64
}

func New(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with all three channels set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// RGBA implements color.Color. The color is clamped and fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	cc := c.Clamp01()
	return uint32(cc.R * 65535),
		uint32(cc.G * 65535),
		uint32(cc.B * 65535),
		0xffff
}

func FromStandardColor(c color.Color) Color {
	// Fast path: already a Color
	if cc, ok := c.(Color); ok {
		return cc
	}

	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return Color{}
	}

	// De-premultiply and normalize to [0,1]
	invA := float64(0xFFFF) / float64(a16)
	return Color{
		R: float64(r16) * invA / 65535.0,
		G: float64(g16) * invA / 65535.0,
		B: float64(b16) * invA / 65535.0,
	}
}

func From8BitRgb(r, g, b byte) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

func Red() Color {
	return Color{R: 1, G: 0, B: 0}
}

func Blue() Color {
	return Color{R: 0, G: 0, B: 1}
}

func White() Color {
	return Color{R: 1, G: 1, B: 1}
}

func Black() Color {
	return Color{}
}

// Add returns c + o (component-wise).
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns c * o (component-wise).
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c * s (scalar).
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Max returns the largest channel.
func (c Color) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func (c Color) Mix(o Color, t float64) Color {
	return Color{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
	}
}

// Clamp01 clamps each component into [0,1].
func (c Color) Clamp01() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
	}
}

// To8bit returns the clamped channels as 0..255 integers, truncating.
func (c Color) To8bit() (r, g, b uint8) {
	return to8bit(c.R), to8bit(c.G), to8bit(c.B)
}

func (c Color) ToNRGBA() color.NRGBA {
	r, g, b := c.To8bit()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// --- helpers ---

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8bit(x float64) uint8 {
	return uint8(255.0 * clamp01(x))
}

// Model converts any color to a Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromStandardColor(c)
})
