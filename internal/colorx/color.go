// Package colorx implements the linear RGBA color model shared by the
// raster image, heightmap, and texture synthesizer: float channels in
// [0,1], HSV conversion per the standard hexagonal model, and the
// HSV-double-cone distance metric used by palette generation.
// HSV<->RGB conversion itself is delegated to
// github.com/lucasb-eyer/go-colorful rather than reimplemented by
// hand.
package colorx

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGBA quadruple, channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// RGB returns a fully-opaque color with the given channels.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 1} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// FromHSV builds a color from hue in [0,1) (0 == red, 1/3 == green,
// 2/3 == blue), saturation in [0,1], and value in [0,1].
func FromHSV(hue, saturation, value float64) Color {
	cf := colorful.Hsv(hue*360.0, saturation, value)
	return Color{R: cf.R, G: cf.G, B: cf.B, A: 1}
}

// H returns this color's hue in [0,1).
func (c Color) H() float64 {
	h, _, _ := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return h / 360.0
}

// S returns this color's saturation in [0,1].
func (c Color) S() float64 {
	_, s, _ := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return s
}

// V returns this color's value in [0,1].
func (c Color) V() float64 {
	_, _, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return v
}

// HSV returns this color's hue/saturation/value together, avoiding a
// triple round-trip through colorful when a caller needs all three.
func (c Color) HSV() (h, s, v float64) {
	hDeg, s, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return hDeg / 360.0, s, v
}

// Lerp linearly interpolates between a and b by t in [0,1].
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// RByte, GByte, BByte return the 0-255 quantization of each channel.
func (c Color) RByte() uint8 { return floatToByte(c.R) }
func (c Color) GByte() uint8 { return floatToByte(c.G) }
func (c Color) BByte() uint8 { return floatToByte(c.B) }

func floatToByte(v float64) uint8 {
	v = v * 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// String renders c as an rgba(...) literal for diagnostics and CLI
// echo; the form parses back through ParseColor, up to the 0-255
// quantization of the color channels.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.RByte(), c.GByte(), c.BByte(), c.A)
}

// HSVConeCoords embeds a color in the HSV double cone: radius is
// half of saturation*value, placed at angle hue around the cone axis,
// with z equal to value.
func (c Color) HSVConeCoords() (x, y, z float64) {
	h, s, v := c.HSV()
	radius := 0.5 * s * v
	angle := h * 2 * math.Pi
	return radius * math.Cos(angle), radius * math.Sin(angle), v
}

// HSVConeDistance is the Euclidean distance between two colors embedded
// via HSVConeCoords, used by palette generation to reject colors that
// are perceptually too similar.
func HSVConeDistance(a, b Color) float64 {
	ax, ay, az := a.HSVConeCoords()
	bx, by, bz := b.HSVConeCoords()
	dx, dy, dz := ax-bx, ay-by, az-bz
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// RGBToHue returns the hue, in [0,1), of the given RGB triple. Used by
// the heightmap in rainbow mode to turn a pixel's color into a depth
// sample.
func RGBToHue(r, g, b float64) float64 {
	h, _, _ := colorful.Color{R: r, G: g, B: b}.Hsv()
	h /= 360.0
	if h < 0 {
		h += 1
	}
	if h >= 1 {
		h -= 1
	}
	return h
}
