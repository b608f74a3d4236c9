// Package controlpoint implements the per-row doubly-linked list of
// control points the stereogram solver builds while resolving
// occlusion along a scanline.
//
// A pointer-cycle-heavy linked list fights the garbage collector for
// no benefit here, so the list is arena-backed: a single growable
// slice of nodes addressed by integer index, with -1 standing in for
// no-node. The arena is never reallocated mid-row, so indices stay
// stable across inserts and removals.
package controlpoint

// Point marks a seam in the output row across which the texture
// mapping changes: the pixel position X, the mirrored position OtherX
// where the other eye sees the same surface patch, texture
// u-coordinates for the ranges this point bounds on each side, and
// per-side texture-row shifts used for echo avoidance.
type Point struct {
	X      float64
	OtherX float64

	LeftX float64
	LeftY int

	RightX float64
	RightY int
}

// Reflect mirrors p about axis in place: positions flip around the
// axis, the left and right sides trade places, u coordinates become
// 1-u, and y shifts negate. A left u landing exactly on 0 snaps to 1
// (and a right u on 1 snaps to 0) so the flipped coordinate still
// addresses the same texel.
func (p *Point) Reflect(axis float64) {
	p.X = axis + (axis - p.X)
	p.OtherX = axis + (axis - p.OtherX)

	p.LeftX = 1.0 - p.LeftX
	p.RightX = 1.0 - p.RightX

	p.LeftX, p.RightX = p.RightX, p.LeftX

	if p.LeftX == 0.0 {
		p.LeftX = 1.0
	}
	if p.RightX == 1.0 {
		p.RightX = 0.0
	}

	p.LeftY = -p.LeftY
	p.RightY = -p.RightY

	p.LeftY, p.RightY = p.RightY, p.LeftY
}
