// Package config loads default command-line overrides from a .env
// file, so a deployment can pin defaults (eye separation, pattern,
// display width) without editing a wrapper script.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/wb4/sgcreate/internal/texture"
	"github.com/wb4/sgcreate/internal/units"
)

// Defaults holds the flag defaults sgcreate falls back to when the
// corresponding command-line flag is omitted.
type Defaults struct {
	EyeSeparation units.Length
	Pattern       texture.Pattern
	DisplayWidth  units.Length
	WidthPixels   float64
}

const (
	envEyeSeparation = "SGCREATE_EYE_SEPARATION"
	envPattern       = "SGCREATE_PATTERN"
	envDisplayWidth  = "SGCREATE_DISPLAY_WIDTH"
	envWidthPixels   = "SGCREATE_WIDTH_PIXELS"
)

// Load reads envPath (if it exists) into the process environment via
// godotenv, then builds Defaults from whatever SGCREATE_* variables
// are set, falling back to fallback for anything absent or malformed.
// A missing .env file is not an error; the file is optional.
func Load(envPath string, fallback Defaults) (Defaults, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return fallback, err
		}
	} else {
		_ = godotenv.Load()
	}

	result := fallback

	if s := os.Getenv(envEyeSeparation); s != "" {
		if l, err := units.ParseLength(s); err == nil {
			result.EyeSeparation = l
		}
	}

	if s := os.Getenv(envPattern); s != "" {
		if p, err := texture.PatternFromName(s); err == nil {
			result.Pattern = p
		}
	}

	if s := os.Getenv(envDisplayWidth); s != "" {
		if l, err := units.ParseLength(s); err == nil {
			result.DisplayWidth = l
		}
	}

	if s := os.Getenv(envWidthPixels); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			result.WidthPixels = v
		}
	}

	return result, nil
}
