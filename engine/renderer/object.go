package renderer

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
)

// Object is a drawable a scene renders once per frame.
type Object interface {
	// Render draws the object.
	//
	// Parameters:
	//   - viewer: the camera
	//   - lights: the light list
	//
	// Returns:
	//   - error: the error of the draw
	Render(viewer camera.Viewer, lights []light.Light) error

	// MaterialType tells whether the object belongs to the opaque or the transparent pass.
	MaterialType() material.MaterialType
}

// Gm pairs a geometry with the material it is drawn with.
type Gm[G geometry.Geometry, M material.Material] struct {
	Geometry G
	Material M

	r Renderer
}

var _ Object = &Gm[*geometry.Mesh, *material.ColorMaterial]{}

// NewGm creates an object drawing geom with mat through r.
//
// Parameters:
//   - r: the renderer that draws the object
//   - geom: the geometry
//   - mat: the material
//
// Returns:
//   - *Gm[G, M]: the object
func NewGm[G geometry.Geometry, M material.Material](r Renderer, geom G, mat M) *Gm[G, M] {
	return &Gm[G, M]{Geometry: geom, Material: mat, r: r}
}

func (gm *Gm[G, M]) Render(viewer camera.Viewer, lights []light.Light) error {
	return gm.r.RenderWithMaterial(viewer, gm.Geometry, gm.Material, lights)
}

func (gm *Gm[G, M]) MaterialType() material.MaterialType {
	return gm.Material.MaterialType()
}

// Animate forwards to the geometry.
func (gm *Gm[G, M]) Animate(time float32) {
	gm.Geometry.Animate(time)
}

// AABB returns the bounds of the geometry.
func (gm *Gm[G, M]) AABB() common.AxisAlignedBoundingBox {
	return gm.Geometry.AABB()
}
