package stereogram

import (
	"fmt"

	"github.com/wb4/sgcreate/internal/controlpoint"
	"github.com/wb4/sgcreate/internal/heightmap"
	"github.com/wb4/sgcreate/internal/sgerrors"
)

// genState threads the loop-carried variables the sweep and its three
// occlusion-case helpers share.
type genState struct {
	points         *controlpoint.List
	greatestOtherX float64
	start          int
	lastInvalid    bool
}

// insertWraparoundControlPoint splices in an auxiliary point when the
// left-eye-cannot-see case's inserted range straddles the texture tile
// boundary, splitting the range at the wrap.
func insertWraparoundControlPoint(s *genState, point *controlpoint.Point) {
	last := s.points.Point(s.points.Last())
	other := controlpoint.Point{
		X:      last.X + (point.X-last.X)*(1.0-last.RightX)/(1.0+point.LeftX-last.RightX),
		OtherX: -1.0,
		LeftX:  1.0,
		LeftY:  point.LeftY,
		RightX: 0.0,
		RightY: point.LeftY,
	}
	s.points.Add(other, s.points.Last())
}

// generateLeftEyeCannotSeeControlPoints handles the case where this
// point links to a place left of where a previous point linked to, so
// the left eye cannot see what the right eye sees here; the range to
// the left needs to map to a different texture row to avoid edge echo.
func generateLeftEyeCannotSeeControlPoints(s *genState, sepMax, center float64, point *controlpoint.Point) {
	last := s.points.Point(s.points.Last())
	last.RightX = xToTexture(last.X, sepMax)
	last.RightY = last.LeftY

	if !s.lastInvalid {
		last.RightY = findInsertedTextureShift(sepMax, point.X-center)
	}

	point.LeftX = xToTexture(point.X, sepMax)
	point.LeftY = last.RightY

	if point.LeftX == 0.0 {
		point.LeftX = 1.0
	}
	if point.RightX == 1.0 {
		point.RightX = 0.0
	}

	if last.RightX >= point.LeftX {
		insertWraparoundControlPoint(s, point)
	}

	s.lastInvalid = true
}

// generateRightEyeCannotSeeControlPoints handles the case where this
// point passes through the screen left of a previous point, so the
// right eye cannot see what the left eye sees for those now-occluded
// points; they are dropped and this point's left range is
// reinterpolated.
func generateRightEyeCannotSeeControlPoints(s *genState, point *controlpoint.Point) {
	var other controlpoint.Point

	for point.X <= s.points.Point(s.points.Last()).X {
		other = *s.points.Point(s.points.Last())
		if s.start == s.points.Last() {
			s.start = s.points.Prev(s.start)
		}
		s.points.RemoveLast()
	}

	last := s.points.Point(s.points.Last())
	point.LeftX = last.RightX + (other.LeftX-last.RightX)*(point.X-last.X)/(other.X-last.X)
	point.LeftY = last.RightY

	s.greatestOtherX = point.OtherX
	s.lastInvalid = false
}

// generateBothEyesCanSeeControlPoints handles the well-behaved case,
// where this point and its link both fall to the right of every
// previous point and link.
func generateBothEyesCanSeeControlPoints(s *genState, sepMax float64, point *controlpoint.Point) error {
	var boundX float64
	if s.lastInvalid {
		boundX = point.OtherX
	} else {
		boundX = s.points.Point(s.points.Last()).OtherX
	}

	start, end := s.points.FindRange(boundX, point.OtherX, s.start)
	s.start = start
	if start == controlpoint.None() || end == controlpoint.None() {
		return sgerrors.New(sgerrors.InternalInvariantViolation,
			fmt.Sprintf("list range is empty after FindRange(%v, %v)", boundX, point.OtherX))
	}

	if start == end {
		startPoint := s.points.Point(start)
		point.LeftX, point.LeftY = startPoint.LeftX, startPoint.LeftY
		point.RightX, point.RightY = startPoint.RightX, startPoint.RightY
	} else {
		endPrevIdx := s.points.Prev(end)
		endPrev := s.points.Point(endPrevIdx)
		endPoint := s.points.Point(end)

		point.RightX = endPrev.RightX + (point.OtherX-endPrev.X)*(endPoint.LeftX-endPrev.RightX)/(endPoint.X-endPrev.X)
		point.RightY = endPrev.RightY

		point.LeftX = point.RightX
		point.LeftY = point.RightY

		if point.OtherX == endPoint.X {
			point.RightX = endPoint.RightX
			point.RightY = endPoint.RightY
		}
	}

	if s.lastInvalid {
		last := s.points.Point(s.points.Last())
		last.RightX = xToTexture(last.X, sepMax)
		last.RightY = last.LeftY

		point.LeftX = xToTexture(point.X, sepMax)
		point.LeftY = last.RightY
	} else if start != end {
		lastX := s.points.Point(s.points.Last()).X
		lastOtherX := s.points.Point(s.points.Last()).OtherX
		for n := s.points.Next(start); n != end; n = s.points.Next(n) {
			src := *s.points.Point(n)
			other := src
			other.OtherX = other.X
			other.X = lastX + (other.OtherX-lastOtherX)*(point.X-lastX)/(point.OtherX-lastOtherX)
			if other.X != point.X {
				s.points.Add(other, s.points.Last())
			}
		}
	}

	s.greatestOtherX = point.OtherX
	s.lastInvalid = false
	return nil
}

// generateHPlaceControlPoints computes one output control point at
// horizontal heightmap position hPlace, dispatches to the appropriate
// occlusion case, and appends it.
func generateHPlaceControlPoints(s *genState, hm *heightmap.Heightmap, row int, p Params, hPlace float64) error {
	sep := p.Separation(hm.Get(hPlace, row))
	halfSep := 0.5 * sep
	center := 0.5 * float64(hm.Width())

	point := controlpoint.Point{
		X:      hPlace + halfSep,
		OtherX: hPlace - halfSep,
		LeftX:  -1,
		RightX: 0,
		LeftY:  0,
		RightY: 0,
	}

	switch {
	case point.OtherX <= s.greatestOtherX:
		generateLeftEyeCannotSeeControlPoints(s, p.SeparationMaxPx, center, &point)
	case point.X <= s.points.Point(s.points.Last()).X:
		generateRightEyeCannotSeeControlPoints(s, &point)
	default:
		if err := generateBothEyesCanSeeControlPoints(s, p.SeparationMaxPx, &point); err != nil {
			return err
		}
	}

	s.points.Add(point, s.points.Last())
	return nil
}

// generateRightHalfControlPoints sweeps from just past the center out
// to the edge of the row (the heightmap may be reflected, so "right
// half" here means "the half away from center in the current
// orientation").
func generateRightHalfControlPoints(s *genState, hm *heightmap.Heightmap, row int, p Params) error {
	width := float64(hm.Width())
	s.start = s.points.Prev(s.points.Last())
	s.greatestOtherX = s.points.Point(s.points.Last()).OtherX
	s.lastInvalid = false

	for hPlace := 0.5*width + 1.0; hPlace < width; hPlace += 1.0 {
		if err := generateHPlaceControlPoints(s, hm, row, p, hPlace); err != nil {
			return err
		}
	}
	return nil
}

// generateMiddleControlPoints seeds the list with the two initial
// control points straddling the heightmap's horizontal center, which
// assume both eyes see the same texel there.
func generateMiddleControlPoints(points *controlpoint.List, hm *heightmap.Heightmap, row int, p Params, width float64) {
	hPlace := 0.5 * width
	sep := p.Separation(hm.Get(hPlace, row))
	halfSep := 0.5 * sep

	point := controlpoint.Point{
		X:      hPlace - halfSep,
		OtherX: hPlace + halfSep,
		LeftX:  1.0,
		LeftY:  0,
		RightX: 0.0,
		RightY: 0,
	}
	points.Add(point, controlpoint.None())

	point.OtherX = point.X
	point.X = hPlace + halfSep
	points.Add(point, controlpoint.None())
}

// GenerateControlPoints builds the full, x-sorted control-point list
// for one output row: seed the middle, solve the left half as a right
// half against the reflected heightmap, mirror the list back, then
// sweep the true right half.
func GenerateControlPoints(points *controlpoint.List, hm *heightmap.Heightmap, row int, p Params) error {
	width := float64(hm.Width())

	hm.SetReflected(true)

	generateMiddleControlPoints(points, hm, row, p, width)

	s := &genState{points: points}
	if err := generateRightHalfControlPoints(s, hm, row, p); err != nil {
		return err
	}

	hm.SetReflected(false)
	points.Reflect(0.5 * width)

	s2 := &genState{points: points}
	if err := generateRightHalfControlPoints(s2, hm, row, p); err != nil {
		return err
	}

	return nil
}
