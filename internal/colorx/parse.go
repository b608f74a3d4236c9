package colorx

import (
	"fmt"
	"strconv"
	"strings"
)

// namedColors covers the common W3C/X11 names the CLI is expected to
// accept for -c; anything else must be hex or rgb(...).
var namedColors = map[string]Color{
	"black":   RGB(0, 0, 0),
	"white":   RGB(1, 1, 1),
	"red":     RGB(1, 0, 0),
	"green":   RGB(0, 0.5, 0),
	"lime":    RGB(0, 1, 0),
	"blue":    RGB(0, 0, 1),
	"yellow":  RGB(1, 1, 0),
	"cyan":    RGB(0, 1, 1),
	"magenta": RGB(1, 0, 1),
	"orange":  RGB(1, 0.647, 0),
	"purple":  RGB(0.5, 0, 0.5),
	"pink":    RGB(1, 0.753, 0.796),
	"gray":    RGB(0.5, 0.5, 0.5),
	"grey":    RGB(0.5, 0.5, 0.5),
	"brown":   RGB(0.647, 0.165, 0.165),
}

// ParseColor parses a CLI color argument: a named color, a hex triple
// (#rgb or #rrggbb), or an rgb(r,g,b) / rgba(r,g,b,a) literal with
// 0-255 channel values.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if c, ok := namedColors[lower]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		return parseRGBFunc(s)
	}
	return Color{}, fmt.Errorf("colorx: unrecognized color %q", s)
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	expand := func(c byte) (byte, byte) { return c, c }
	var r, g, b [2]byte
	switch len(hex) {
	case 3:
		r[0], r[1] = expand(hex[0])
		g[0], g[1] = expand(hex[1])
		b[0], b[1] = expand(hex[2])
	case 6:
		r[0], r[1] = hex[0], hex[1]
		g[0], g[1] = hex[2], hex[3]
		b[0], b[1] = hex[4], hex[5]
	default:
		return Color{}, fmt.Errorf("colorx: hex color %q must have 3 or 6 digits", s)
	}
	rv, err := strconv.ParseUint(string(r[:]), 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("colorx: invalid hex color %q: %w", s, err)
	}
	gv, err := strconv.ParseUint(string(g[:]), 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("colorx: invalid hex color %q: %w", s, err)
	}
	bv, err := strconv.ParseUint(string(b[:]), 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("colorx: invalid hex color %q: %w", s, err)
	}
	return RGB(float64(rv)/255.0, float64(gv)/255.0, float64(bv)/255.0), nil
}

func parseRGBFunc(s string) (Color, error) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < 0 || close < open {
		return Color{}, fmt.Errorf("colorx: malformed color function %q", s)
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("colorx: %q needs 3 or 4 components", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("colorx: invalid component in %q: %w", s, err)
		}
		vals[i] = v
	}
	a := 1.0
	if len(vals) == 4 {
		a = vals[3]
	}
	return RGBA(vals[0]/255.0, vals[1]/255.0, vals[2]/255.0, a), nil
}
