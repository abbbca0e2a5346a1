package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControl moves a camera on a sphere around a target using spherical coordinates:
// radius, azimuth around the Y axis and elevation above the horizontal plane.
// Panning moves the target and the camera together along the camera's local axes.
type OrbitControl struct {
	mu *sync.Mutex

	target    mgl32.Vec3
	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	zoomSpeed float32
}

// NewOrbitControl creates an orbit control. Without options it orbits the origin at radius 10,
// 30 degrees above the horizon.
//
// Parameters:
//   - options: functional options to configure the control
//
// Returns:
//   - *OrbitControl: the control
func NewOrbitControl(options ...OrbitControlOption) *OrbitControl {
	oc := &OrbitControl{
		mu:           &sync.Mutex{},
		radius:       10,
		elevation:    math32.Pi / 6,
		minRadius:    0.1,
		maxRadius:    1000,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,
		zoomSpeed:    1,
	}
	for _, opt := range options {
		opt(oc)
	}
	oc.radius = clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	return oc
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// position must be called with mu held.
func (oc *OrbitControl) position() mgl32.Vec3 {
	cosElev, sinElev := math32.Cos(oc.elevation), math32.Sin(oc.elevation)
	return oc.target.Add(mgl32.Vec3{
		oc.radius * cosElev * math32.Sin(oc.azimuth),
		oc.radius * sinElev,
		oc.radius * cosElev * math32.Cos(oc.azimuth),
	})
}

// Position returns the world-space eye position.
func (oc *OrbitControl) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position()
}

// Target returns the pivot point.
func (oc *OrbitControl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

// SetTarget moves the pivot point, keeping the spherical offset.
func (oc *OrbitControl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

// Radius returns the distance between eye and target.
func (oc *OrbitControl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

// Elevation returns the angle above the horizontal plane in radians.
func (oc *OrbitControl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

// Rotate orbits the eye around the target. The elevation is clamped so the eye never crosses a pole.
//
// Parameters:
//   - dAzimuth: radians around the Y axis
//   - dElevation: radians towards the top pole
func (oc *OrbitControl) Rotate(dAzimuth, dElevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += dAzimuth
	oc.elevation = clamp(oc.elevation+dElevation, oc.minElevation, oc.maxElevation)
}

// Zoom moves the eye towards the target for positive delta, scaled by the zoom speed and
// clamped to the radius limits.
func (oc *OrbitControl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
}

// Pan translates target and eye along the camera's right and up axes.
func (oc *OrbitControl) Pan(right, up float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	backward := oc.position().Sub(oc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()
	rightAxis := mgl32.Vec3{0, 1, 0}.Cross(backward)
	if rightAxis.Len() < 1e-8 {
		return
	}
	rightAxis = rightAxis.Normalize()
	upAxis := backward.Cross(rightAxis)
	oc.target = oc.target.Add(rightAxis.Mul(right)).Add(upAxis.Mul(up))
}

// Apply points cam from the control's eye position at its target with +Y up.
func (oc *OrbitControl) Apply(cam Camera) {
	oc.mu.Lock()
	position, target := oc.position(), oc.target
	oc.mu.Unlock()
	cam.SetView(position, target, mgl32.Vec3{0, 1, 0})
}
