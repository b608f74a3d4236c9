package texture

import (
	"math"
	"sort"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/raster"
	"github.com/wb4/sgcreate/internal/units"
)

const (
	opacityMin = 0.5
	opacityMax = 1.0
)

// drawObjectFunc draws one random shape centered at (x, y) onto img,
// with fill color drawn from palette and radius in [minRadius,
// maxRadius], wrapping around the image's horizontal edge so the
// texture tiles seamlessly.
type drawObjectFunc func(img *raster.Image, x, y, minRadius, maxRadius float64, width int, palette colorx.Palette, r mathutil.Rand)

// generateObjects scatters width*height/20 random shapes over an
// opaque gray canvas.
func generateObjects(width, height int, seed colorx.Color, pixelDensity units.Density, r mathutil.Rand, draw drawObjectFunc) (*raster.Image, error) {
	img := raster.New(width, height)
	img.Fill(colorx.RGB(0.5, 0.5, 0.5))

	palette := paletteFor(r, seed)

	objectCount := width * height / 20

	minLen := units.FromMillimeters(objectRadiusMinMM)
	maxLen := units.FromMillimeters(objectRadiusMaxMM)
	minRadius := pixelDensity.PixelsFor(minLen)
	maxRadius := pixelDensity.PixelsFor(maxLen)

	for i := 0; i < objectCount; i++ {
		x := r.Float64() * float64(width)
		y := r.Float64() * float64(height)
		draw(img, x, y, minRadius, maxRadius, width, palette, r)
	}

	return img, nil
}

func randomOpacity(r mathutil.Rand, min, max float64) float64 {
	return min + (max-min)*r.Float64()
}

func blendFillColor(img *raster.Image, px, py int, fill colorx.Color, opacity float64) {
	if px < 0 || px >= img.Width || py < 0 || py >= img.Height {
		return
	}
	base := img.Get(px, py)
	alpha := opacity
	img.Set(px, py, colorx.Color{
		R: base.R*(1-alpha) + fill.R*alpha,
		G: base.G*(1-alpha) + fill.G*alpha,
		B: base.B*(1-alpha) + fill.B*alpha,
		A: base.A*(1-alpha) + 1*alpha,
	})
}

// drawRandomEllipse fills an ellipse at (x, y) with
// independently-random horizontal/vertical radii, wrapped around the
// left/right image edge if it would otherwise run off.
func drawRandomEllipse(img *raster.Image, x, y, minRadius, maxRadius float64, width int, palette colorx.Palette, r mathutil.Rand) {
	fill := palette.RandomColor(r)
	opacity := randomOpacity(r, opacityMin, opacityMax)

	rx := minRadius + r.Float64()*(maxRadius-minRadius)
	ry := minRadius + r.Float64()*(maxRadius-minRadius)

	fillEllipse(img, x, y, rx, ry, fill, opacity)
	if x-rx < 0.0 {
		fillEllipse(img, x+float64(width), y, rx, ry, fill, opacity)
	}
	if x+rx >= float64(width) {
		fillEllipse(img, x-float64(width), y, rx, ry, fill, opacity)
	}
}

func fillEllipse(img *raster.Image, cx, cy, rx, ry float64, fill colorx.Color, opacity float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	minX := int(math.Floor(cx - rx))
	maxX := int(math.Ceil(cx + rx))
	minY := int(math.Floor(cy - ry))
	maxY := int(math.Ceil(cy + ry))
	for py := minY; py <= maxY; py++ {
		dy := (float64(py) - cy) / ry
		for px := minX; px <= maxX; px++ {
			dx := (float64(px) - cx) / rx
			if dx*dx+dy*dy <= 1.0 {
				blendFillColor(img, px, py, fill, opacity)
			}
		}
	}
}

type point2 struct{ x, y float64 }

// drawRandomPolygon fills a 3-8 sided polygon whose vertices are
// placed at random angles/radii around (x, y), again wrapped around
// the horizontal edges.
func drawRandomPolygon(img *raster.Image, x, y, minRadius, maxRadius float64, width int, palette colorx.Palette, r mathutil.Rand) {
	fill := palette.RandomColor(r)
	opacity := randomOpacity(r, opacityMin, opacityMax)

	pointCount := 3 + r.Intn(6) // 3..8
	points := make([]point2, pointCount)
	fallsLeft := false
	fallsRight := false
	for i := range points {
		angle := r.Float64() * 2 * math.Pi
		radius := minRadius + r.Float64()*(maxRadius-minRadius)
		px := x + radius*math.Cos(angle)
		py := y + radius*math.Sin(angle)
		points[i] = point2{px, py}
		if px < 0 {
			fallsLeft = true
		}
		if px >= float64(width) {
			fallsRight = true
		}
	}

	fillPolygon(img, points, fill, opacity)
	if fallsLeft {
		fillPolygon(img, shiftPolygon(points, float64(width)), fill, opacity)
	}
	if fallsRight {
		fillPolygon(img, shiftPolygon(points, -float64(width)), fill, opacity)
	}
}

func shiftPolygon(points []point2, offset float64) []point2 {
	out := make([]point2, len(points))
	for i, p := range points {
		out[i] = point2{p.x + offset, p.y}
	}
	return out
}

// fillPolygon rasterizes points as a filled polygon with an even-odd
// scanline fill at pixel-center sampling.
func fillPolygon(img *raster.Image, points []point2, fill colorx.Color, opacity float64) {
	if len(points) < 3 {
		return
	}
	minY, maxY := points[0].y, points[0].y
	for _, p := range points {
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	for py := int(math.Floor(minY)); py <= int(math.Ceil(maxY)); py++ {
		yc := float64(py) + 0.5
		var xs []float64
		n := len(points)
		for i := 0; i < n; i++ {
			a, b := points[i], points[(i+1)%n]
			if (a.y <= yc && b.y > yc) || (b.y <= yc && a.y > yc) {
				t := (yc - a.y) / (b.y - a.y)
				xs = append(xs, a.x+t*(b.x-a.x))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Floor(xs[i+1] - 0.5))
			for px := x0; px <= x1; px++ {
				blendFillColor(img, px, py, fill, opacity)
			}
		}
	}
}

// generateDots fills a grid of palette-drawn filled squares with a
// millimeter-denominated pitch.
func generateDots(width, height int, seed colorx.Color, pixelDensity units.Density, r mathutil.Rand) (*raster.Image, error) {
	img := raster.New(width, height)
	palette := paletteFor(r, seed)

	dotWidth := pixelDensity.PixelsFor(units.FromMillimeters(dotWidthMM))
	if dotWidth <= 0 {
		dotWidth = 1
	}

	for x := 0.0; x < float64(width); x += dotWidth {
		for y := 0.0; y < float64(height); y += dotWidth {
			fill := palette.RandomColor(r)
			x0, x1 := int(x), int(x+dotWidth)
			y0, y1 := int(y), int(y+dotWidth)
			for py := y0; py < y1 && py < height; py++ {
				for px := x0; px < x1 && px < width; px++ {
					if px >= 0 && py >= 0 {
						img.Set(px, py, fill)
					}
				}
			}
		}
	}

	return img, nil
}
