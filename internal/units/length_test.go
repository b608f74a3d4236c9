package units

import "testing"

func TestParseLengthEquivalentForms(t *testing.T) {
	inputs := []string{
		"43.8 meters",
		"43.8meters",
		"43.8m",
		"4380cm",
		"43800 mm",
		`1724.409"`,
	}

	for _, in := range inputs {
		l, err := ParseLength(in)
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", in, err)
		}
		diff := l.Meters - 43.8
		if diff < -1e-3 || diff > 1e-3 {
			t.Errorf("ParseLength(%q) = %v meters, want ~43.8", in, l.Meters)
		}
	}
}

func TestParseLengthInches(t *testing.T) {
	l, err := ParseLength("1 in")
	if err != nil {
		t.Fatal(err)
	}
	if diff := l.Meters - 0.0254; diff < -1e-6 || diff > 1e-6 {
		t.Errorf("1 inch = %v meters, want 0.0254", l.Meters)
	}
}

func TestParseLengthRejectsUnknownUnit(t *testing.T) {
	if _, err := ParseLength("5 furlongs"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestParseLengthRejectsGarbage(t *testing.T) {
	if _, err := ParseLength("not a length"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}

func TestLengthUnitGettersRoundTrip(t *testing.T) {
	l := FromMeters(0.5)
	if got := FromCentimeters(l.Centimeters()); got != l {
		t.Errorf("centimeter round trip = %v, want %v", got, l)
	}
	if got := FromInches(l.Inches()); absf(got.Meters-l.Meters) > 1e-12 {
		t.Errorf("inch round trip = %v, want %v", got, l)
	}
	if got := FromMillimeters(l.Millimeters()); got != l {
		t.Errorf("millimeter round trip = %v, want %v", got, l)
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestDensityPixelsFor(t *testing.T) {
	d := FromWidth(1400, FromInches(14))
	px := d.PixelsFor(FromMillimeters(62))
	// 62mm against a 14in (355.6mm) display at 1400px: ~244px
	if px < 240 || px > 248 {
		t.Errorf("PixelsFor(62mm) = %v, want ~244", px)
	}
}
