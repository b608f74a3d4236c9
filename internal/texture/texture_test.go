package texture

import (
	"testing"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/units"
)

func TestPatternFromName(t *testing.T) {
	cases := map[string]Pattern{
		"perlin":   Perlin,
		"polygons": Polygons,
		"ellipses": Ellipses,
		"dots":     Dots,
		"random":   Random,
	}
	for name, want := range cases {
		got, err := PatternFromName(name)
		if err != nil {
			t.Fatalf("PatternFromName(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("PatternFromName(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := PatternFromName("bogus"); err == nil {
		t.Error("expected error for unknown pattern name")
	}
}

func defaultDensity() units.Density {
	return units.FromWidth(1400, units.FromInches(14))
}

func TestGeneratePerlinFillsEntireImage(t *testing.T) {
	r := mathutil.NewSeededRand(7)
	img, err := Generate(Perlin, 16, 16, colorx.RGB(0.5, 0.2, 0.8), defaultDensity(), r)
	if err != nil {
		t.Fatalf("Generate(Perlin): %v", err)
	}
	if img.Width != 16 || img.Height != 16 {
		t.Fatalf("unexpected dims %dx%d", img.Width, img.Height)
	}
	for i, p := range img.Pix {
		if p.A < 1-1e-9 {
			t.Fatalf("pixel %d is not filled opaque: %+v", i, p)
		}
	}
}

func TestGenerateDotsProducesNonUniformImage(t *testing.T) {
	r := mathutil.NewSeededRand(11)
	img, err := Generate(Dots, 32, 32, colorx.RGB(0.1, 0.1, 0.9), defaultDensity(), r)
	if err != nil {
		t.Fatalf("Generate(Dots): %v", err)
	}
	first := img.Get(0, 0)
	varied := false
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.Get(x, y) != first {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("expected dot grid to produce more than one color")
	}
}

func TestGenerateRandomPicksAConcretePattern(t *testing.T) {
	r := mathutil.NewSeededRand(99)
	img, err := Generate(Random, 16, 16, colorx.RGB(0.3, 0.3, 0.3), defaultDensity(), r)
	if err != nil {
		t.Fatalf("Generate(Random): %v", err)
	}
	if img == nil || img.Width != 16 {
		t.Fatal("expected a generated image")
	}
}

func TestAddPoissonNoiseChangesPixels(t *testing.T) {
	r := mathutil.NewSeededRand(5)
	img, err := Generate(Dots, 8, 8, colorx.RGB(0.5, 0.5, 0.5), defaultDensity(), r)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	before := img.Clone()
	AddPoissonNoise(img, 40, 1)
	changed := false
	for i := range img.Pix {
		if img.Pix[i] != before.Pix[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("expected AddPoissonNoise to alter at least one pixel")
	}
}
