// Package raster implements the 2D RGBA-float pixel buffer the whole
// pipeline works in: get/set, resizing, alpha blending, caption
// overlay, and the bridge to Go's standard image codecs (plus WebP).
package raster

import (
	"fmt"

	"github.com/wb4/sgcreate/internal/colorx"
)

// Image is a row-major RGBA-float pixel buffer. The owner is
// responsible for its lifetime; there is no separate Destroy in Go.
type Image struct {
	Width, Height int
	Pix           []colorx.Color
}

// New allocates a black, fully-opaque image of the given size.
func New(width, height int) *Image {
	pix := make([]colorx.Color, width*height)
	for i := range pix {
		pix[i] = colorx.Color{A: 1}
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

func (img *Image) offset(x, y int) int { return y*img.Width + x }

// Get returns the pixel at (x, y). It panics if the coordinates are
// out of range.
func (img *Image) Get(x, y int) colorx.Color {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		panic(fmt.Sprintf("raster: Get(%d, %d) out of bounds for %dx%d image", x, y, img.Width, img.Height))
	}
	return img.Pix[img.offset(x, y)]
}

// Set writes the pixel at (x, y) without bounds checking. Callers
// passing out-of-range coordinates corrupt unrelated rows or panic on
// a slice-index error; both are the caller's bug to fix, not this
// method's to guard against.
func (img *Image) Set(x, y int, c colorx.Color) {
	img.Pix[img.offset(x, y)] = c
}

// Fill sets every pixel to c.
func (img *Image) Fill(c colorx.Color) {
	for i := range img.Pix {
		img.Pix[i] = c
	}
}

// Clone returns an independent copy of img.
func (img *Image) Clone() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Pix: make([]colorx.Color, len(img.Pix))}
	copy(out.Pix, img.Pix)
	return out
}

// BlendOverlay alpha-composites overlay on top of dest in place, each
// overlay pixel's own alpha further scaled by overlayOpacity.
func (dest *Image) BlendOverlay(overlay *Image, overlayOpacity float64) {
	for y := 0; y < dest.Height && y < overlay.Height; y++ {
		for x := 0; x < dest.Width && x < overlay.Width; x++ {
			base := dest.Get(x, y)
			over := overlay.Get(x, y)
			alpha := over.A * overlayOpacity
			dest.Set(x, y, colorx.Color{
				R: base.R*(1-alpha) + over.R*alpha,
				G: base.G*(1-alpha) + over.G*alpha,
				B: base.B*(1-alpha) + over.B*alpha,
				A: base.A*(1-alpha) + 1*alpha,
			})
		}
	}
}
