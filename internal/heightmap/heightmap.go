// Package heightmap wraps a raster.Image as a depth source for the
// stereogram row solver.
package heightmap

import (
	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/raster"
)

// Heightmap reads depth samples from an underlying image. If the image
// is grayscale, depth is the red channel; if it carries distinct RGB
// channels, depth is read from the hue instead ("rainbow mode"),
// auto-detected from pixel (0,0).
type Heightmap struct {
	image     *raster.Image
	reflected bool
	rainbow   bool
}

// New builds a Heightmap over img, auto-detecting rainbow mode from
// the pixel at (0, 0).
func New(img *raster.Image) *Heightmap {
	p := img.Get(0, 0)
	return &Heightmap{
		image:   img,
		rainbow: p.R != p.G || p.R != p.B,
	}
}

// Width and Height report the underlying image's dimensions.
func (h *Heightmap) Width() int  { return h.image.Width }
func (h *Heightmap) Height() int { return h.image.Height }

// Rainbow reports whether this heightmap reads depth from hue rather
// than the red channel.
func (h *Heightmap) Rainbow() bool { return h.rainbow }

// SetReflected flips whether Get reads columns mirrored about the
// image's horizontal center. The row solver runs each row twice, once
// normally and once with Reflected toggled, and reconciles the two
// passes.
func (h *Heightmap) SetReflected(reflected bool) { h.reflected = reflected }

// Get samples depth at fractional column x, row y. x is truncated to
// an integer column after mirroring.
func (h *Heightmap) Get(x float64, y int) float64 {
	if h.reflected {
		x = float64(h.image.Width) - x
	}
	col := int(x)
	if col < 0 {
		col = 0
	}
	if col >= h.image.Width {
		col = h.image.Width - 1
	}
	p := h.image.Get(col, y)
	if h.rainbow {
		return colorx.RGBToHue(p.R, p.G, p.B)
	}
	return p.R
}
