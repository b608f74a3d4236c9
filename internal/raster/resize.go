package raster

import (
	"math"

	"github.com/wb4/sgcreate/internal/colorx"
)

func (img *Image) sampleClamped(x, y int) colorx.Color {
	if x < 0 {
		x = 0
	}
	if x >= img.Width {
		x = img.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= img.Height {
		y = img.Height - 1
	}
	return img.Get(x, y)
}

// sampleBilinear samples img at floating coordinates, clamping at the
// edges.
func (img *Image) sampleBilinear(x, y float64) colorx.Color {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1, y1 := x0+1, y0+1

	c00 := img.sampleClamped(x0, y0)
	c10 := img.sampleClamped(x1, y0)
	c01 := img.sampleClamped(x0, y1)
	c11 := img.sampleClamped(x1, y1)

	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	top := colorx.Lerp(c00, c10, xFrac)
	bottom := colorx.Lerp(c01, c11, xFrac)
	return colorx.Lerp(top, bottom, yFrac)
}

// Resize returns a new image of size (width, height) resampled from
// img with bilinear interpolation. Bilinear is enough here: the
// caller resizes source depth art and textures, not output
// photography, so ringing-free high-frequency preservation doesn't
// matter.
func (img *Image) Resize(width, height int) *Image {
	out := New(width, height)
	if width == 0 || height == 0 {
		return out
	}
	xScale := float64(img.Width) / float64(width)
	yScale := float64(img.Height) / float64(height)
	for y := 0; y < height; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		for x := 0; x < width; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			out.Set(x, y, img.sampleBilinear(sx, sy))
		}
	}
	return out
}
