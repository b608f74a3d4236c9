package config

import (
	"os"
	"testing"

	"github.com/wb4/sgcreate/internal/texture"
	"github.com/wb4/sgcreate/internal/units"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envEyeSeparation, envPattern, envDisplayWidth, envWidthPixels} {
		os.Unsetenv(k)
	}
}

func TestLoadWithNoEnvFileKeepsFallback(t *testing.T) {
	clearEnv(t)
	fallback := Defaults{
		EyeSeparation: units.FromMillimeters(62),
		Pattern:       texture.Perlin,
		DisplayWidth:  units.FromInches(14),
		WidthPixels:   1400,
	}
	got, err := Load("/nonexistent/path/to/.env", fallback)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != fallback {
		t.Errorf("got %+v, want fallback %+v", got, fallback)
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	clearEnv(t)
	os.Setenv(envEyeSeparation, "70mm")
	os.Setenv(envPattern, "dots")
	defer clearEnv(t)

	fallback := Defaults{
		EyeSeparation: units.FromMillimeters(62),
		Pattern:       texture.Perlin,
	}
	got, err := Load("/nonexistent/path/to/.env", fallback)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.EyeSeparation.Millimeters() != 70 {
		t.Errorf("EyeSeparation = %v, want 70mm", got.EyeSeparation)
	}
	if got.Pattern != texture.Dots {
		t.Errorf("Pattern = %v, want Dots", got.Pattern)
	}
}

func TestLoadIgnoresMalformedOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv(envEyeSeparation, "not-a-length")
	defer clearEnv(t)

	fallback := Defaults{EyeSeparation: units.FromMillimeters(62)}
	got, err := Load("/nonexistent/path/to/.env", fallback)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.EyeSeparation != fallback.EyeSeparation {
		t.Errorf("expected malformed override to be ignored, got %v", got.EyeSeparation)
	}
}
