package camera

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption configures a camera created with NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the eye position.
//
// Parameters:
//   - position: the world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithTarget sets the point the camera looks at.
//
// Parameters:
//   - target: the world-space target
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the camera's up vector.
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the vertical field of view in radians and selects a perspective projection.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projectionType = ProjectionPerspective
		c.fov = fov
	}
}

// WithOrthographic selects an orthographic projection showing height world units vertically.
func WithOrthographic(height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projectionType = ProjectionOrthographic
		c.height = height
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithViewport sets the drawn rectangle, which also fixes the aspect ratio.
//
// Parameters:
//   - viewport: the viewport in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(viewport common.Viewport) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = viewport
	}
}

// WithToneMapping sets the tone mapping applied by materials and effects.
func WithToneMapping(toneMapping ToneMapping) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.toneMapping = toneMapping
	}
}

// WithColorMapping sets the color space conversion applied by materials and effects.
func WithColorMapping(colorMapping ColorMapping) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.colorMapping = colorMapping
	}
}
