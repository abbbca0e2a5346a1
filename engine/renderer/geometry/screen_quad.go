package geometry

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// ScreenQuad is two triangles covering clip space, used to run screen effects. Its positions are
// already in clip space, so the transformation only moves the bounding box.
type ScreenQuad struct {
	transformState

	positions gpu.VertexBuffer
	uvs       gpu.VertexBuffer
}

// NewScreenQuad uploads the quad. Texture coordinates have their origin at the top left.
//
// Parameters:
//   - ctx: the GPU context the buffers are created in
//
// Returns:
//   - *ScreenQuad: the quad
//   - error: an allocation error from the GPU layer
func NewScreenQuad(ctx gpu.Context) (*ScreenQuad, error) {
	positions := []mgl32.Vec3{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0},
		{-1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	}
	uvs := make([]mgl32.Vec2, len(positions))
	for i, p := range positions {
		uvs[i] = mgl32.Vec2{(p.X() + 1) / 2, (1 - p.Y()) / 2}
	}

	q := &ScreenQuad{transformState: newTransformState(common.ComputeAABB(positions))}
	var err error
	if q.positions, err = gpu.NewVec3Buffer(ctx, "screen_quad_positions", positions); err != nil {
		return nil, err
	}
	if q.uvs, err = gpu.NewVec2Buffer(ctx, "screen_quad_uvs", uvs); err != nil {
		q.Release()
		return nil, err
	}
	return q, nil
}

func (q *ScreenQuad) VertexShaderSource(required shader.FragmentAttributes) string {
	return shader.ScreenQuadSource
}

func (q *ScreenQuad) VertexType() gpu.VertexType {
	return gpu.Triangles
}

func (q *ScreenQuad) ID(required shader.FragmentAttributes) ID {
	return ID{Kind: KindScreenQuad, Required: required, Provided: required.Intersect(shader.FragmentAttributes{UV: true})}
}

func (q *ScreenQuad) Draw(viewer camera.Viewer, program gpu.Program, states gpu.RenderStates, attributes shader.FragmentAttributes) error {
	if err := program.UseUniform("clipPlane", q.clipPlaneVec4()); err != nil {
		return err
	}
	if err := program.UseVertexAttribute("position", q.positions); err != nil {
		return err
	}
	if err := program.UseVertexAttribute("uv", q.uvs); err != nil {
		return err
	}
	return program.DrawArrays(states, viewer.Viewport(), gpu.Triangles, q.positions.Count())
}

func (q *ScreenQuad) Release() {
	if q.positions != nil {
		q.positions.Release()
		q.positions = nil
	}
	if q.uvs != nil {
		q.uvs.Release()
		q.uvs = nil
	}
}
