package stereogram

import (
	"fmt"
	"math"
	"os"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/controlpoint"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/raster"
)

// warnf prints a non-fatal painter diagnostic to stderr. These
// conditions never abort the run; the caller always continues after a
// warning fires.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "sgcreate: warning: "+format+"\n", args...)
}

// addColorForRange accumulates texture's coverage-weighted color over
// the texel span [left, right] (both fractions of the texture's width)
// on texture row, scaled by weight and added into accum: an exact box
// filter over the texels the span covers. An out-of-[0,1] u
// coordinate, an out-of-(0,1] weight, or a zero-length span is a
// non-fatal warning, not an aborting error: a u coordinate is clamped,
// a zero-length span is skipped, a weight is used as given, and
// painting continues.
func addColorForRange(texture *raster.Image, left, right float64, row int, weight float64, accum *colorx.Color) {
	if weight <= 0.0 || weight > 1.0 {
		warnf("addColorForRange: scale is %v", weight)
	}
	if left < 0.0 || left > 1.0 {
		warnf("addColorForRange: left (%v) is outside the range [0,1]; clamping", left)
		left = mathutil.Clamp(left, 0.0, 1.0)
	}
	if right < 0.0 || right > 1.0 {
		warnf("addColorForRange: right (%v) is outside the range [0,1]; clamping", right)
		right = mathutil.Clamp(right, 0.0, 1.0)
	}

	width := float64(texture.Width)
	left *= width
	right *= width
	length := right - left

	var sum colorx.Color
	for right-math.Floor(left) > 1.0 {
		tmpRight := math.Floor(left) + 1.0
		p := texture.Get(clampCol(int(math.Floor(left)), texture.Width), row)
		frac := tmpRight - left
		sum.R += p.R * frac
		sum.G += p.G * frac
		sum.B += p.B * frac
		sum.A += p.A * frac
		left = tmpRight
	}

	p := texture.Get(clampCol(int(math.Floor(left)), texture.Width), row)
	frac := right - left
	sum.R += p.R * frac
	sum.G += p.G * frac
	sum.B += p.B * frac
	sum.A += p.A * frac

	if length == 0 {
		warnf("addColorForRange: zero-length texture sampling range at texture row %d; skipping", row)
		return
	}
	scale := weight / length
	accum.R += sum.R * scale
	accum.G += sum.G * scale
	accum.B += sum.B * scale
	accum.A += sum.A * scale
}

func clampCol(col, width int) int {
	if col < 0 {
		return 0
	}
	if col >= width {
		return width - 1
	}
	return col
}

// colorRow paints one output row of sg by walking adjacent
// control-point pairs left to right, box-sampling the texture span
// each pair maps to. The accumulator deliberately survives across
// pairs that end mid-pixel, so an output pixel straddling a seam
// averages contributions from both texture spans.
func colorRow(sg *raster.Image, row int, texture *raster.Image, points *controlpoint.List, edgeEchoOffset int) {
	width := float64(sg.Width)
	textureHeight := texture.Height
	textureRow := row % textureHeight

	var accum colorx.Color

	for n := points.First(); points.Next(n) != controlpoint.None(); n = points.Next(n) {
		cur := points.Point(n)
		next := points.Point(points.Next(n))

		left := cur.X
		right := next.X

		leftX := cur.RightX
		leftY := cur.RightY

		rightX := next.LeftX

		if right <= 0.0 {
			continue
		}
		if left >= width {
			break
		}

		textureRowUsed := textureRow
		for i := 0; i < leftY; i++ {
			textureRowUsed = mod(textureRowUsed+edgeEchoOffset, textureHeight)
			if textureRowUsed == textureRow {
				i--
			}
		}
		for i := 0; i > leftY; i-- {
			textureRowUsed -= edgeEchoOffset
			for textureRowUsed < 0 {
				textureRowUsed += textureHeight
			}
			if textureRowUsed == textureRow {
				i++
			}
		}

		for right-math.Floor(left) > 1.0 {
			tmpRight := math.Floor(left) + 1.0
			tmpRightX := leftX + (rightX-leftX)*(tmpRight-left)/(right-left)

			if left >= 0.0 {
				addColorForRange(texture, leftX, tmpRightX, textureRowUsed, tmpRight-left, &accum)
				sg.Set(int(left), row, accum)
				accum = colorx.Color{}
			}

			left = tmpRight
			leftX = tmpRightX
		}

		if left != right {
			addColorForRange(texture, leftX, rightX, textureRowUsed, right-left, &accum)
			if math.Floor(right) == right {
				sg.Set(int(left), row, accum)
				accum = colorx.Color{}
			}
		}
	}
}

// mod returns a%b adjusted into [0, b), needed because Go's % can be
// negative for a negative dividend.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
