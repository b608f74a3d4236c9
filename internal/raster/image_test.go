package raster

import (
	"bytes"
	"testing"

	"github.com/wb4/sgcreate/internal/colorx"
)

func TestNewFillsOpaqueBlack(t *testing.T) {
	img := New(4, 3)
	if img.Width != 4 || img.Height != 3 {
		t.Fatalf("unexpected dimensions: %dx%d", img.Width, img.Height)
	}
	c := img.Get(2, 1)
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 1 {
		t.Errorf("new image pixel = %+v, want opaque black", c)
	}
}

func TestGetOutOfBoundsPanics(t *testing.T) {
	img := New(2, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-bounds Get")
		}
	}()
	img.Get(5, 5)
}

func TestSetThenGetRoundTrips(t *testing.T) {
	img := New(3, 3)
	want := colorx.RGBA(0.25, 0.5, 0.75, 0.9)
	img.Set(1, 1, want)
	got := img.Get(1, 1)
	if got != want {
		t.Errorf("Set/Get round trip = %+v, want %+v", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img := New(2, 2)
	clone := img.Clone()
	clone.Set(0, 0, colorx.RGB(1, 1, 1))
	if img.Get(0, 0) == clone.Get(0, 0) {
		t.Error("mutating clone should not affect original")
	}
}

func TestBlendOverlayFullOpacityReplacesColor(t *testing.T) {
	dest := New(1, 1)
	dest.Set(0, 0, colorx.RGB(0, 0, 0))
	overlay := New(1, 1)
	overlay.Set(0, 0, colorx.RGB(1, 0, 0))
	dest.BlendOverlay(overlay, 1.0)
	got := dest.Get(0, 0)
	if got.R < 0.99 || got.G > 0.01 || got.B > 0.01 {
		t.Errorf("full-opacity blend = %+v, want pure red", got)
	}
}

func TestResizeUpscalePreservesSolidColor(t *testing.T) {
	img := New(2, 2)
	img.Fill(colorx.RGB(0.2, 0.4, 0.6))
	out := img.Resize(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := out.Get(x, y)
			if absf(c.R-0.2) > 1e-6 || absf(c.G-0.4) > 1e-6 || absf(c.B-0.6) > 1e-6 {
				t.Fatalf("resize(%d,%d) = %+v, want solid 0.2/0.4/0.6", x, y, c)
			}
		}
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestEncodeDecodePNGRoundTrips(t *testing.T) {
	img := New(3, 2)
	img.Set(1, 0, colorx.RGB(1, 0, 0))
	var buf bytes.Buffer
	if err := img.Encode(&buf, "png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, "png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Width != 3 || decoded.Height != 2 {
		t.Fatalf("decoded dims = %dx%d, want 3x2", decoded.Width, decoded.Height)
	}
	got := decoded.Get(1, 0)
	if got.RByte() != 255 || got.GByte() != 0 || got.BByte() != 0 {
		t.Errorf("round-tripped pixel = %+v, want pure red", got)
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Decode(&buf, "bmp"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExtOf(t *testing.T) {
	cases := map[string]string{
		"out.PNG":  "png",
		"a/b.jpeg": "jpeg",
		"noext":    "",
	}
	for in, want := range cases {
		if got := ExtOf(in); got != want {
			t.Errorf("ExtOf(%q) = %q, want %q", in, got, want)
		}
	}
}
