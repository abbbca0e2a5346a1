package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AxisAlignedBoundingBox is a box aligned with the coordinate axes, described by its minimum and maximum corners.
// The zero value is not empty; use EmptyAABB for a box that contains nothing.
type AxisAlignedBoundingBox struct {
	min   mgl32.Vec3
	max   mgl32.Vec3
	empty bool
}

// EmptyAABB returns a bounding box that contains nothing. Expanding it with a point yields a box around that point.
func EmptyAABB() AxisAlignedBoundingBox {
	inf := math32.Inf(1)
	return AxisAlignedBoundingBox{
		min:   mgl32.Vec3{inf, inf, inf},
		max:   mgl32.Vec3{-inf, -inf, -inf},
		empty: true,
	}
}

// NewAABB returns the bounding box spanned by the two corners. The corners are sorted per axis.
//
// Parameters:
//   - a: the first corner
//   - b: the second corner
//
// Returns:
//   - AxisAlignedBoundingBox: the box containing both corners
func NewAABB(a, b mgl32.Vec3) AxisAlignedBoundingBox {
	box := EmptyAABB()
	box.Expand(a, b)
	return box
}

// ComputeAABB returns the smallest box containing all the given positions, or an empty box for no positions.
//
// Parameters:
//   - positions: the points to enclose
//
// Returns:
//   - AxisAlignedBoundingBox: the enclosing box
func ComputeAABB(positions []mgl32.Vec3) AxisAlignedBoundingBox {
	box := EmptyAABB()
	box.Expand(positions...)
	return box
}

// Min returns the minimum corner.
func (b AxisAlignedBoundingBox) Min() mgl32.Vec3 {
	return b.min
}

// Max returns the maximum corner.
func (b AxisAlignedBoundingBox) Max() mgl32.Vec3 {
	return b.max
}

// IsEmpty reports whether the box contains no points.
func (b AxisAlignedBoundingBox) IsEmpty() bool {
	return b.empty
}

// Center returns the midpoint of the box. The center of an empty box is the origin.
func (b AxisAlignedBoundingBox) Center() mgl32.Vec3 {
	if b.empty {
		return mgl32.Vec3{}
	}
	return b.min.Add(b.max).Mul(0.5)
}

// Size returns the extent of the box along each axis. An empty box has zero size.
func (b AxisAlignedBoundingBox) Size() mgl32.Vec3 {
	if b.empty {
		return mgl32.Vec3{}
	}
	return b.max.Sub(b.min)
}

// Contains reports whether the point lies inside or on the boundary of the box.
func (b AxisAlignedBoundingBox) Contains(p mgl32.Vec3) bool {
	if b.empty {
		return false
	}
	for i := range 3 {
		if p[i] < b.min[i] || p[i] > b.max[i] {
			return false
		}
	}
	return true
}

// Expand grows the box so it contains every given point.
//
// Parameters:
//   - points: the points to include
func (b *AxisAlignedBoundingBox) Expand(points ...mgl32.Vec3) {
	for _, p := range points {
		for i := range 3 {
			b.min[i] = math32.Min(b.min[i], p[i])
			b.max[i] = math32.Max(b.max[i], p[i])
		}
		b.empty = false
	}
}

// ExpandWithAABB grows the box so it contains the other box. Empty boxes are ignored.
func (b *AxisAlignedBoundingBox) ExpandWithAABB(other AxisAlignedBoundingBox) {
	if other.empty {
		return
	}
	b.Expand(other.min, other.max)
}

// Transform replaces the box with the axis aligned box around its eight corners transformed by m.
// An empty box stays empty.
//
// Parameters:
//   - m: the affine transformation to apply
func (b *AxisAlignedBoundingBox) Transform(m mgl32.Mat4) {
	if b.empty {
		return
	}
	lo, hi := b.min, b.max
	corners := [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{lo[0], lo[1], hi[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], hi[1], hi[2]},
		{hi[0], hi[1], hi[2]},
	}
	*b = EmptyAABB()
	for _, c := range corners {
		b.Expand(TransformPoint(m, c))
	}
}

// Transformed returns a copy of the box transformed by m.
func (b AxisAlignedBoundingBox) Transformed(m mgl32.Mat4) AxisAlignedBoundingBox {
	b.Transform(m)
	return b
}
