package colorx

import "github.com/wb4/sgcreate/internal/mathutil"

const (
	paletteMaxColors        = 8
	paletteMaxJitter        = 0.02
	paletteMinColorDist     = 0.15
	paletteHueSpan          = 0.17
	paletteMinSaturation    = 0.2
	paletteMaxColorTryCount = 50
)

// Palette is a small set of colors clustered around one hue wedge,
// used to seed texture synthesis.
type Palette struct {
	Colors []Color
}

func randomColorInWedge(r mathutil.Rand, minHue float64) Color {
	hue := mathutil.Wrap(minHue+r.Float64()*paletteHueSpan, 0, 1)
	sat := paletteMinSaturation + (1.0-paletteMinSaturation)*r.Float64()
	val := r.Float64()
	return FromHSV(hue, sat, val)
}

func colorTooClose(existing []Color, c Color) bool {
	for _, e := range existing {
		if HSVConeDistance(c, e) < paletteMinColorDist {
			return true
		}
	}
	return false
}

func newPalette(r mathutil.Rand, minHue float64) Palette {
	var colors []Color
	for i := 0; i < paletteMaxColors; i++ {
		var candidate Color
		for try := 0; ; try++ {
			candidate = randomColorInWedge(r, minHue)
			if try+1 > paletteMaxColorTryCount || !colorTooClose(colors, candidate) {
				break
			}
		}
		colors = append(colors, candidate)
	}
	return Palette{Colors: colors}
}

// NewRandomPalette builds a palette of up to paletteMaxColors colors,
// all drawn from a hue wedge anchored at a random hue, rejecting
// candidates that fall too close (in HSV-cone distance) to one already
// picked.
func NewRandomPalette(r mathutil.Rand) Palette {
	return newPalette(r, r.Float64())
}

// NewPaletteAroundColor builds a palette whose wedge is anchored at
// seed's own hue, so the synthesized texture reads as a variation on
// the requested seed color rather than a fully independent random hue.
func NewPaletteAroundColor(r mathutil.Rand, seed Color) Palette {
	return newPalette(r, seed.H())
}

// RandomColor returns a random palette color, lightly jittered so
// repeated draws of the same entry don't produce flat color runs.
func (p Palette) RandomColor(r mathutil.Rand) Color {
	idx := r.Intn(len(p.Colors))
	return JitterHSV(r, p.Colors[idx], paletteMaxJitter)
}
