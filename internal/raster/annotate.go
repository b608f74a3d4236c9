package raster

import (
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/sgerrors"
)

// Annotate burns text onto a clone of img at pixel position (x, y),
// returning the annotated copy; img itself is untouched. fontPath may
// be empty to fall back to the built-in basicfont face. The text is
// rendered against a standard image.NRGBA view of img and converted
// back, since font.Drawer only knows how to target draw.Image.
func (img *Image) Annotate(text string, fontPath string, size float64, x, y int, col colorx.Color) (*Image, error) {
	std := img.ToStdImage()

	face, err := loadFace(fontPath, size)
	if err != nil {
		return nil, err
	}

	d := &font.Drawer{
		Dst:  std,
		Src:  image.NewUniform(stdColor{col}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)

	return FromStdImage(std), nil
}

// stdColor adapts colorx.Color to image/color.Color for font.Drawer's
// image.NewUniform source.
type stdColor struct{ c colorx.Color }

func (s stdColor) RGBA() (r, g, b, a uint32) {
	return uint32(s.c.R * 65535), uint32(s.c.G * 65535), uint32(s.c.B * 65535), uint32(s.c.A * 65535)
}

func loadFace(fontPath string, size float64) (font.Face, error) {
	if fontPath == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, sgerrors.Wrap(sgerrors.IOFailure, "raster: read font file", err)
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, sgerrors.Wrap(sgerrors.InvalidArgument, "raster: parse font", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, sgerrors.Wrap(sgerrors.InvalidArgument, "raster: build font face", err)
	}
	return face, nil
}
