package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionType selects how the camera projects view space onto the viewport.
type ProjectionType int

const (
	// ProjectionPerspective uses a vertical field of view.
	ProjectionPerspective ProjectionType = iota

	// ProjectionOrthographic uses a fixed view height in world units.
	ProjectionOrthographic
)

// depthRemap maps the [-1, 1] clip depth produced by mgl32 projections to the [0, 1] range WebGPU expects.
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Viewer is the read-only view of a camera the draw core consumes.
type Viewer interface {
	// Position returns the world-space eye position.
	Position() mgl32.Vec3

	// View returns the world-to-view matrix.
	View() mgl32.Mat4

	// Projection returns the view-to-clip matrix.
	Projection() mgl32.Mat4

	// ViewProjection returns Projection * View.
	ViewProjection() mgl32.Mat4

	// Viewport returns the rectangle of the render target drawn to.
	Viewport() common.Viewport

	ToneMapping() ToneMapping
	ColorMapping() ColorMapping
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	projectionType ProjectionType
	fov            float32
	height         float32
	near           float32
	far            float32
	viewport       common.Viewport

	toneMapping  ToneMapping
	colorMapping ColorMapping

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is a Viewer whose placement and projection can be changed. Matrices are recomputed
// on every change, so reads never observe stale values.
type Camera interface {
	Viewer

	// Target returns the world-space point the camera looks at.
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ProjectionType returns the projection kind.
	ProjectionType() ProjectionType

	// SetView places the camera.
	//
	// Parameters:
	//   - position: the eye position
	//   - target: the point looked at
	//   - up: the up direction
	SetView(position, target, up mgl32.Vec3)

	// SetPerspective switches to a perspective projection.
	//
	// Parameters:
	//   - fov: vertical field of view in radians
	//   - near: near plane distance
	//   - far: far plane distance
	SetPerspective(fov, near, far float32)

	// SetOrthographic switches to an orthographic projection.
	//
	// Parameters:
	//   - height: visible height in world units, the width follows the viewport aspect
	//   - near: near plane distance
	//   - far: far plane distance
	SetOrthographic(height, near, far float32)

	// SetViewport sets the drawn rectangle. The aspect ratio of the projection follows it.
	SetViewport(viewport common.Viewport)

	SetToneMapping(toneMapping ToneMapping)
	SetColorMapping(colorMapping ColorMapping)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera at (0, 0, 1) looking at the origin with a 45 degree
// field of view and a 1x1 viewport, then applies the options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:             &sync.Mutex{},
		position:       mgl32.Vec3{0, 0, 1},
		target:         mgl32.Vec3{0, 0, 0},
		up:             mgl32.Vec3{0, 1, 0},
		projectionType: ProjectionPerspective,
		fov:            45 * math32.Pi / 180,
		height:         2,
		near:           0.1,
		far:            100,
		viewport:       common.NewViewportAtOrigin(1, 1),
		colorMapping:   ColorMappingComputeToSrgb,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ProjectionType() ProjectionType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionType
}

func (c *cameraImpl) View() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) Projection() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjection() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Viewport() common.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *cameraImpl) ToneMapping() ToneMapping {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toneMapping
}

func (c *cameraImpl) ColorMapping() ColorMapping {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colorMapping
}

func (c *cameraImpl) SetView(position, target, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.target = target
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetPerspective(fov, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectionType = ProjectionPerspective
	c.fov = fov
	c.near = near
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetOrthographic(height, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectionType = ProjectionOrthographic
	c.height = height
	c.near = near
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(viewport common.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = viewport
	c.updateMatrices()
}

func (c *cameraImpl) SetToneMapping(toneMapping ToneMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toneMapping = toneMapping
}

func (c *cameraImpl) SetColorMapping(colorMapping ColorMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colorMapping = colorMapping
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)

	aspect := c.viewport.Aspect()
	switch c.projectionType {
	case ProjectionOrthographic:
		halfHeight := c.height / 2
		halfWidth := halfHeight * aspect
		c.projectionMatrix = depthRemap.Mul4(mgl32.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, c.near, c.far))
	default:
		c.projectionMatrix = depthRemap.Mul4(mgl32.Perspective(c.fov, aspect, c.near, c.far))
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
