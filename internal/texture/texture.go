// Package texture supplies the pattern images the stereogram tiles
// across each row: either a user-supplied image, or one synthesized
// from a seed color via Perlin noise, scattered polygons/ellipses, or
// a dot grid.
package texture

import (
	"fmt"
	"io"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/raster"
	"github.com/wb4/sgcreate/internal/sgerrors"
	"github.com/wb4/sgcreate/internal/units"
)

// Pattern names a synthetic texture kind.
type Pattern int

const (
	Perlin Pattern = iota
	Polygons
	Ellipses
	Dots
	Random
)

// patternCount excludes Random, which resolves to one of the concrete
// four.
const patternCount = 4

// PatternFromName parses a -P flag value.
func PatternFromName(name string) (Pattern, error) {
	switch name {
	case "perlin":
		return Perlin, nil
	case "polygons":
		return Polygons, nil
	case "ellipses":
		return Ellipses, nil
	case "dots":
		return Dots, nil
	case "random":
		return Random, nil
	default:
		return 0, sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("texture: unknown pattern %q", name))
	}
}

// Load decodes an explicit texture file, bypassing synthesis entirely
// (the -t flag's code path).
func Load(r io.Reader, ext string) (*raster.Image, error) {
	return raster.Decode(r, ext)
}

// objectRadiusMinMM and objectRadiusMaxMM bound the scattered shapes'
// radii; dotWidthMM is the dot grid pitch.
const (
	objectRadiusMinMM = 1.0
	objectRadiusMaxMM = 3.5
	dotWidthMM        = 0.5
)

// paletteFor anchors the synthesis palette at seed's hue. A seed with
// no saturation (the default gray) carries no hue preference, so a
// fully random palette is used instead.
func paletteFor(r mathutil.Rand, seed colorx.Color) colorx.Palette {
	if seed.S() < 0.01 {
		return colorx.NewRandomPalette(r)
	}
	return colorx.NewPaletteAroundColor(r, seed)
}

// Generate dispatches to the concrete provider for p, resolving Random
// to one of the other four. pixelDensity converts the millimeter-scaled
// shape dimensions (object radius, dot pitch) to pixels for the
// requested output size.
func Generate(p Pattern, width, height int, seed colorx.Color, pixelDensity units.Density, r mathutil.Rand) (*raster.Image, error) {
	if p == Random {
		p = Pattern(r.Intn(patternCount))
	}

	switch p {
	case Perlin:
		return generatePerlin(width, height, seed, pixelDensity, r)
	case Dots:
		return generateDots(width, height, seed, pixelDensity, r)
	case Polygons:
		return generateObjects(width, height, seed, pixelDensity, r, drawRandomPolygon)
	case Ellipses:
		return generateObjects(width, height, seed, pixelDensity, r, drawRandomEllipse)
	default:
		return nil, sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("texture: unsupported pattern %v", p))
	}
}
