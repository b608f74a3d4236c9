package raster

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/deepteams/webp"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/sgerrors"
)

// FromStdImage converts a standard library image.Image into an Image,
// the inverse of ToStdImage.
func FromStdImage(src image.Image) *Image {
	bounds := src.Bounds()
	out := New(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			out.Set(x-bounds.Min.X, y-bounds.Min.Y, colorx.Color{
				R: float64(r) / 65535.0,
				G: float64(g) / 65535.0,
				B: float64(b) / 65535.0,
				A: float64(a) / 65535.0,
			})
		}
	}
	return out
}

// ToStdImage converts img to a standard library image.NRGBA for
// encoding with the stdlib or third-party codecs.
func (img *Image) ToStdImage() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Get(x, y)
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = c.RByte()
			dst.Pix[i+1] = c.GByte()
			dst.Pix[i+2] = c.BByte()
			dst.Pix[i+3] = uint8(clamp255(c.A * 255))
		}
	}
	return dst
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Decode reads an image from r, dispatching on ext (a file extension,
// with or without the leading dot). Supported: png, jpg/jpeg, gif, webp.
func Decode(r io.Reader, ext string) (*Image, error) {
	switch normalizeExt(ext) {
	case "png":
		im, err := png.Decode(r)
		if err != nil {
			return nil, sgerrors.Wrap(sgerrors.IOFailure, "raster: decode png", err)
		}
		return FromStdImage(im), nil
	case "jpg", "jpeg":
		im, err := jpeg.Decode(r)
		if err != nil {
			return nil, sgerrors.Wrap(sgerrors.IOFailure, "raster: decode jpeg", err)
		}
		return FromStdImage(im), nil
	case "gif":
		im, err := gif.Decode(r)
		if err != nil {
			return nil, sgerrors.Wrap(sgerrors.IOFailure, "raster: decode gif", err)
		}
		return FromStdImage(im), nil
	case "webp":
		im, err := webp.Decode(r)
		if err != nil {
			return nil, sgerrors.Wrap(sgerrors.IOFailure, "raster: decode webp", err)
		}
		return FromStdImage(im), nil
	default:
		return nil, sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("raster: unsupported image format %q", ext))
	}
}

// Encode writes img to w in the format selected by ext.
func (img *Image) Encode(w io.Writer, ext string) error {
	std := img.ToStdImage()
	switch normalizeExt(ext) {
	case "png":
		if err := png.Encode(w, std); err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "raster: encode png", err)
		}
		return nil
	case "jpg", "jpeg":
		if err := jpeg.Encode(w, std, &jpeg.Options{Quality: 92}); err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "raster: encode jpeg", err)
		}
		return nil
	case "gif":
		if err := gif.Encode(w, std, nil); err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "raster: encode gif", err)
		}
		return nil
	case "webp":
		if err := webp.Encode(w, std, webp.DefaultOptions()); err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "raster: encode webp", err)
		}
		return nil
	default:
		return sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("raster: unsupported image format %q", ext))
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return ext
}

// ExtOf returns the lowercase extension (without leading dot) of path,
// used to pick a codec from an -i/-o/-t filename.
func ExtOf(path string) string {
	return normalizeExt(filepath.Ext(path))
}
