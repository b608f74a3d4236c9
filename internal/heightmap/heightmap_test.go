package heightmap

import (
	"testing"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/raster"
)

func TestNewDetectsGrayscaleNotRainbow(t *testing.T) {
	img := raster.New(4, 4)
	img.Fill(colorx.RGB(0.5, 0.5, 0.5))
	hm := New(img)
	if hm.Rainbow() {
		t.Error("equal RGB channels should not be detected as rainbow")
	}
}

func TestNewDetectsRainbowFromUnequalChannels(t *testing.T) {
	img := raster.New(4, 4)
	img.Set(0, 0, colorx.RGB(1, 0, 0))
	hm := New(img)
	if !hm.Rainbow() {
		t.Error("unequal RGB channels at (0,0) should be detected as rainbow")
	}
}

func TestGetFlatGrayscaleReturnsRedChannel(t *testing.T) {
	img := raster.New(3, 3)
	img.Fill(colorx.RGB(0.25, 0.25, 0.25))
	hm := New(img)
	if got := hm.Get(1, 1); got != 0.25 {
		t.Errorf("Get = %v, want 0.25", got)
	}
}

func TestGetReflectedMirrorsColumn(t *testing.T) {
	img := raster.New(4, 1)
	img.Set(0, 0, colorx.RGB(0.1, 0.1, 0.1))
	img.Set(3, 0, colorx.RGB(0.9, 0.9, 0.9))
	hm := New(img)
	hm.SetReflected(true)
	got := hm.Get(0, 0)
	if got != 0.9 {
		t.Errorf("reflected Get(0) = %v, want the far column's value 0.9", got)
	}
}

func TestGetRainbowUsesHue(t *testing.T) {
	img := raster.New(2, 1)
	img.Set(0, 0, colorx.RGB(1, 0, 0))
	hm := New(img)
	if !hm.Rainbow() {
		t.Fatal("expected rainbow mode")
	}
	if got := hm.Get(0, 0); got != 0 {
		t.Errorf("pure red hue = %v, want 0", got)
	}
}
