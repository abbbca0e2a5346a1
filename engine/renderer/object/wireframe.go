// Package object holds ready-made drawables built from the geometry and material primitives.
package object

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Wireframe draws the triangle edges of a mesh as lines of one color.
// It composes a Lines geometry with a ColorMaterial and forwards the geometry operations below.
type Wireframe struct {
	gm *renderer.Gm[*geometry.Lines, *material.ColorMaterial]
}

var _ renderer.Object = &Wireframe{}

// NewWireframe creates a wireframe of the edges of mesh.
// The color defaults to black and the line width to 1.
//
// Parameters:
//   - r: the renderer that draws the wireframe and owns its buffers
//   - mesh: the triangle mesh
//   - options: variadic list of WireframeBuilderOption functions
//
// Returns:
//   - *Wireframe: the wireframe
//   - error: an error if the mesh is invalid or the line buffers cannot be created
func NewWireframe(r renderer.Renderer, mesh *geometry.CpuMesh, options ...WireframeBuilderOption) (*Wireframe, error) {
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("wireframe: %w", err)
	}
	cfg := wireframeConfig{color: common.Black, lineWidth: 1}
	for _, opt := range options {
		opt(&cfg)
	}

	lines, err := geometry.NewLines(r.Context(), WireframeLines(mesh), geometry.WithLinesLabel("wireframe"))
	if err != nil {
		return nil, fmt.Errorf("wireframe: %w", err)
	}
	return NewWireframeFromLines(r, lines, cfg.color, cfg.lineWidth), nil
}

// NewWireframeFromLines wraps existing lines in a wireframe drawn with color and lineWidth.
// The depth test passes on equal depth so the lines win over the surface they outline.
//
// Parameters:
//   - r: the renderer that draws the wireframe
//   - lines: the lines to draw
//   - color: the line color
//   - lineWidth: the line width in pixels
//
// Returns:
//   - *Wireframe: the wireframe
func NewWireframeFromLines(r renderer.Renderer, lines *geometry.Lines, color common.Srgba, lineWidth float32) *Wireframe {
	states := gpu.DefaultRenderStates()
	states.DepthTest = wgpu.CompareFunctionLessEqual
	states.LineWidth = lineWidth

	mat := material.NewColorMaterial(material.WithColor(color), material.WithRenderStates(states))
	return &Wireframe{gm: renderer.NewGm(r, lines, mat)}
}

// WireframeLines returns the edges of the triangles of mesh as consecutive position pairs.
//
// An edge a->b is kept when a < b, which drops the second copy of every edge shared by two
// triangles of opposite winding. A boundary edge whose reverse never occurs is kept regardless
// of its index order. No undirected edge is returned twice. Unindexed meshes are read as
// consecutive triangles.
//
// Parameters:
//   - mesh: the triangle mesh
//
// Returns:
//   - []mgl32.Vec3: two positions per edge
func WireframeLines(mesh *geometry.CpuMesh) []mgl32.Vec3 {
	indices := mesh.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(mesh.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	triangles := len(indices) / 3

	directed := make(map[[2]uint32]struct{}, 3*triangles)
	for f := 0; f < triangles; f++ {
		i1, i2, i3 := indices[3*f], indices[3*f+1], indices[3*f+2]
		directed[[2]uint32{i1, i2}] = struct{}{}
		directed[[2]uint32{i2, i3}] = struct{}{}
		directed[[2]uint32{i3, i1}] = struct{}{}
	}

	emitted := make(map[[2]uint32]struct{}, 3*triangles/2)
	lines := make([]mgl32.Vec3, 0, 3*triangles)
	add := func(a, b uint32) {
		if a > b {
			if _, shared := directed[[2]uint32{b, a}]; shared {
				return
			}
		}
		edge := [2]uint32{min(a, b), max(a, b)}
		if _, ok := emitted[edge]; ok {
			return
		}
		emitted[edge] = struct{}{}
		lines = append(lines, mesh.Positions[a], mesh.Positions[b])
	}
	for f := 0; f < triangles; f++ {
		i1, i2, i3 := indices[3*f], indices[3*f+1], indices[3*f+2]
		add(i1, i2)
		add(i2, i3)
		add(i3, i1)
	}
	return lines
}

// Lines returns the wrapped geometry.
func (w *Wireframe) Lines() *geometry.Lines {
	return w.gm.Geometry
}

// Material returns the material the lines are drawn with.
func (w *Wireframe) Material() *material.ColorMaterial {
	return w.gm.Material
}

// Color returns the line color.
func (w *Wireframe) Color() common.Srgba {
	return w.gm.Material.Color()
}

// SetColor sets the line color.
func (w *Wireframe) SetColor(color common.Srgba) {
	w.gm.Material.SetColor(color)
}

// LineWidth returns the line width.
func (w *Wireframe) LineWidth() float32 {
	return w.gm.Material.RenderStates().LineWidth
}

// SetLineWidth sets the line width.
func (w *Wireframe) SetLineWidth(width float32) {
	w.gm.Material.SetLineWidth(width)
}

func (w *Wireframe) Render(viewer camera.Viewer, lights []light.Light) error {
	return w.gm.Render(viewer, lights)
}

func (w *Wireframe) MaterialType() material.MaterialType {
	return w.gm.MaterialType()
}

func (w *Wireframe) AABB() common.AxisAlignedBoundingBox {
	return w.gm.Geometry.AABB()
}

func (w *Wireframe) Animate(time float32) {
	w.gm.Geometry.Animate(time)
}

func (w *Wireframe) Transformation() mgl32.Mat4 {
	return w.gm.Geometry.Transformation()
}

func (w *Wireframe) SetTransformation(transformation mgl32.Mat4) {
	w.gm.Geometry.SetTransformation(transformation)
}

func (w *Wireframe) SetAnimation(animation func(time float32) mgl32.Mat4) {
	w.gm.Geometry.SetAnimation(animation)
}

func (w *Wireframe) ClipPlane() *common.ClipPlane {
	return w.gm.Geometry.ClipPlane()
}

func (w *Wireframe) SetClipPlane(plane *common.ClipPlane) {
	w.gm.Geometry.SetClipPlane(plane)
}

// Release releases the line buffers.
func (w *Wireframe) Release() {
	w.gm.Geometry.Release()
}
