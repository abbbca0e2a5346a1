package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControlOption is a functional option applied to an OrbitControl during construction.
type OrbitControlOption func(*OrbitControl)

// WithOrbitTarget sets the pivot point.
//
// Parameters:
//   - target: the world-space point the camera looks at
//
// Returns:
//   - OrbitControlOption: a function that applies the target option to a control
func WithOrbitTarget(target mgl32.Vec3) OrbitControlOption {
	return func(oc *OrbitControl) {
		oc.target = target
	}
}

// WithOrbitRadius sets the initial distance between eye and target.
func WithOrbitRadius(radius float32) OrbitControlOption {
	return func(oc *OrbitControl) {
		oc.radius = radius
	}
}

// WithOrbitAngles sets the initial azimuth and elevation in radians.
func WithOrbitAngles(azimuth, elevation float32) OrbitControlOption {
	return func(oc *OrbitControl) {
		oc.azimuth = azimuth
		oc.elevation = elevation
	}
}

// WithRadiusLimits bounds the zoom distance.
//
// Parameters:
//   - minRadius: the closest distance to the target
//   - maxRadius: the farthest distance from the target
//
// Returns:
//   - OrbitControlOption: a function that applies the limits to a control
func WithRadiusLimits(minRadius, maxRadius float32) OrbitControlOption {
	return func(oc *OrbitControl) {
		oc.minRadius = minRadius
		oc.maxRadius = maxRadius
	}
}

// WithElevationLimits bounds the elevation in radians.
func WithElevationLimits(minElevation, maxElevation float32) OrbitControlOption {
	return func(oc *OrbitControl) {
		oc.minElevation = minElevation
		oc.maxElevation = maxElevation
	}
}

// WithZoomSpeed scales the delta passed to Zoom.
func WithZoomSpeed(speed float32) OrbitControlOption {
	return func(oc *OrbitControl) {
		oc.zoomSpeed = speed
	}
}
