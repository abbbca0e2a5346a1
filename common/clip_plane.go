package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ClipPlane is a plane that removes everything on its negative side when attached to a geometry.
// The plane holds every point p where dot(Normal, p) + Distance == 0.
type ClipPlane struct {
	normal   mgl32.Vec3
	distance float32
}

// NewClipPlane creates a clip plane through the given point with the given normal.
// Fragments on the side the normal points away from are discarded.
//
// Parameters:
//   - point: any point on the plane
//   - normal: the plane normal
//
// Returns:
//   - ClipPlane: the plane with distance -dot(normal, point)
func NewClipPlane(point, normal mgl32.Vec3) ClipPlane {
	return ClipPlane{
		normal:   normal,
		distance: -normal.Dot(point),
	}
}

// NewClipPlaneFromDistance creates a clip plane from a normal and a signed distance.
func NewClipPlaneFromDistance(normal mgl32.Vec3, distance float32) ClipPlane {
	return ClipPlane{normal: normal, distance: distance}
}

// Normal returns the plane normal.
func (c ClipPlane) Normal() mgl32.Vec3 {
	return c.normal
}

// Distance returns the signed plane distance.
func (c ClipPlane) Distance() float32 {
	return c.distance
}

// Set moves the plane so it passes through point with the given normal.
func (c *ClipPlane) Set(point, normal mgl32.Vec3) {
	*c = NewClipPlane(point, normal)
}

// SignedDistance returns how far p lies from the plane along the normal, scaled by the normal's length.
func (c ClipPlane) SignedDistance(p mgl32.Vec3) float32 {
	return c.normal.Dot(p) + c.distance
}

// AsVec4 packs the plane as (normal.x, normal.y, normal.z, distance), the layout used by the clipPlane uniform.
func (c ClipPlane) AsVec4() mgl32.Vec4 {
	return c.normal.Vec4(c.distance)
}
