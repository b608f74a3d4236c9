package texture

import (
	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/raster"
	"github.com/wb4/sgcreate/internal/units"
)

const (
	perlinInnerLengthMM = 1.5
	perlinOuterLengthMM = 6.0

	perlinInnerOpacity = 0.6
	perlinOuterOpacity = 0.8

	perlinInnerThreshold = 0.15
)

// colorMapFunc maps a noise sample to a (possibly transparent)
// overlay color.
type colorMapFunc func(noise float64) colorx.Color

func innerPerlinColorMap(noise float64) colorx.Color {
	if noise > -perlinInnerThreshold && noise < perlinInnerThreshold {
		if noise > 0 {
			return colorx.RGBA(1, 1, 1, 1)
		}
		return colorx.RGBA(0, 0, 0, 1)
	}
	return colorx.Color{}
}

func outerPerlinColorMap(noise float64) colorx.Color {
	const innerThreshold = 0.0
	const outerThreshold = 0.1
	abs := noise
	if abs < 0 {
		abs = -abs
	}
	if abs > innerThreshold && abs < outerThreshold {
		if noise > 0 {
			return colorx.RGBA(1, 1, 1, 1)
		}
		return colorx.RGBA(0, 0, 0, 1)
	}
	return colorx.Color{}
}

// renderPerlinNoise fills every pixel of img by sampling a cylindrical
// Perlin field and mapping it through colorMap.
func renderPerlinNoise(img *raster.Image, scale float64, colorMap colorMapFunc, seed int64) {
	p := newPerlin3D(scale, seed)
	circumference := float64(img.Width)
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			noise := p.cylinderSample(float64(col), float64(row), circumference)
			img.Set(col, row, colorMap(noise))
		}
	}
}

// generatePerlin builds a flat-colored base overlaid with two
// Perlin-derived layers (a fine "inner" texture and a coarser "outer"
// one) blended at fixed opacities.
func generatePerlin(width, height int, seed colorx.Color, pixelDensity units.Density, r mathutil.Rand) (*raster.Image, error) {
	result := raster.New(width, height)
	result.Fill(seed)

	innerScale := pixelDensity.PixelsFor(units.FromMillimeters(perlinInnerLengthMM))
	outerScale := pixelDensity.PixelsFor(units.FromMillimeters(perlinOuterLengthMM))

	noiseSeed := int64(r.Intn(1 << 30))

	overlay := raster.New(width, height)
	renderPerlinNoise(overlay, innerScale, innerPerlinColorMap, noiseSeed)
	result.BlendOverlay(overlay, perlinInnerOpacity)

	renderPerlinNoise(overlay, outerScale, outerPerlinColorMap, noiseSeed+1)
	result.BlendOverlay(overlay, perlinOuterOpacity)

	return result, nil
}
