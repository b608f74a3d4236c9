package colorx

import "github.com/wb4/sgcreate/internal/mathutil"

// JitterHSV perturbs c's hue (with wraparound), saturation, and value
// (each capped to [0,1]) by up to maxJitter. It's the single-radius
// case of FromJitteredHSV.
func JitterHSV(r mathutil.Rand, c Color, maxJitter float64) Color {
	return FromJitteredHSV(r, c, maxJitter, maxJitter, maxJitter)
}

// FromJitteredHSV builds a new color from source's hue/saturation/value,
// each channel independently jittered by its own radius: the hue
// radius perturbs the hue, the saturation radius the saturation, the
// value radius the value.
func FromJitteredHSV(r mathutil.Rand, source Color, hueRadius, saturationRadius, valueRadius float64) Color {
	h, s, v := source.HSV()
	h = mathutil.JitterWithWrap(r, h, hueRadius, 0, 1)
	s = mathutil.JitterWithCap(r, s, saturationRadius, 0, 1)
	v = mathutil.JitterWithCap(r, v, valueRadius, 0, 1)
	out := FromHSV(h, s, v)
	out.A = source.A
	return out
}
