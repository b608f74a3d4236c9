package colorx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RampPoint is one control point of a color ramp: at position X, the
// ramp passes exactly through Color.
type RampPoint struct {
	X     float64
	Color Color
}

// Ramp is a sorted set of color control points, linearly interpolated
// between neighbors.
type Ramp struct {
	points []RampPoint
}

// AddPoint inserts a control point, keeping Ramp sorted by X.
// Re-adding the same X with a different color is an error; re-adding
// with the same color is a no-op.
func (r *Ramp) AddPoint(p RampPoint) error {
	idx := sort.Search(len(r.points), func(i int) bool { return r.points[i].X >= p.X })
	if idx < len(r.points) && r.points[idx].X == p.X {
		if r.points[idx].Color == p.Color {
			return nil
		}
		return fmt.Errorf("colorx: ramp already has a different color at x=%v", p.X)
	}
	r.points = append(r.points, RampPoint{})
	copy(r.points[idx+1:], r.points[idx:])
	r.points[idx] = p
	return nil
}

// Get returns the ramp's color at x: exact at a control point, linearly
// interpolated between the two bracketing points, and clamped to the
// nearest endpoint outside the ramp's range.
func (r Ramp) Get(x float64) Color {
	if len(r.points) == 0 {
		return Color{}
	}
	if x <= r.points[0].X {
		return r.points[0].Color
	}
	last := r.points[len(r.points)-1]
	if x >= last.X {
		return last.Color
	}
	idx := sort.Search(len(r.points), func(i int) bool { return r.points[i].X > x }) - 1
	a, b := r.points[idx], r.points[idx+1]
	if x == a.X {
		return a.Color
	}
	t := (x - a.X) / (b.X - a.X)
	return Lerp(a.Color, b.Color, t)
}

// ParseRamp parses either a single color string (a one-point ramp) or
// a comma-separated "x:color,x:color,..." ramp specification, as
// accepted by the -c flag. The single-color form is tried first so
// that rgb(...) literals, whose commas are not ramp separators, parse
// as plain colors.
func ParseRamp(s string) (Ramp, error) {
	var ramp Ramp
	if c, err := ParseColor(s); err == nil {
		if err := ramp.AddPoint(RampPoint{X: 0, Color: c}); err != nil {
			return Ramp{}, err
		}
		return ramp, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, ":")
		if idx < 0 {
			return Ramp{}, fmt.Errorf("colorx: ramp point %q missing ':'", part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(part[:idx]), 64)
		if err != nil {
			return Ramp{}, fmt.Errorf("colorx: ramp point %q has an invalid position: %w", part, err)
		}
		c, err := ParseColor(strings.TrimSpace(part[idx+1:]))
		if err != nil {
			return Ramp{}, err
		}
		if err := ramp.AddPoint(RampPoint{X: x, Color: c}); err != nil {
			return Ramp{}, err
		}
	}
	return ramp, nil
}
