package geometry

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// Mesh is a triangle mesh.
type Mesh struct {
	transformState
	base *baseMesh
}

// NewMesh validates the CPU mesh and uploads it.
//
// Parameters:
//   - ctx: the GPU context the buffers are created in
//   - cpu: the mesh data, which can be dropped afterwards
//
// Returns:
//   - *Mesh: the uploaded mesh with an identity transformation
//   - error: a validation error or an allocation error from the GPU layer
func NewMesh(ctx gpu.Context, cpu *CpuMesh) (*Mesh, error) {
	if err := cpu.Validate(); err != nil {
		return nil, err
	}
	base, err := newBaseMesh(ctx, "mesh", cpu)
	if err != nil {
		return nil, err
	}
	return &Mesh{transformState: newTransformState(cpu.ComputeAABB()), base: base}, nil
}

func (m *Mesh) VertexShaderSource(required shader.FragmentAttributes) string {
	return required.Intersect(m.base.provides()).Defines() + shader.MeshSource
}

func (m *Mesh) VertexType() gpu.VertexType {
	return gpu.Triangles
}

func (m *Mesh) ID(required shader.FragmentAttributes) ID {
	return ID{Kind: KindMesh, Required: required, Provided: required.Intersect(m.base.provides())}
}

func (m *Mesh) Draw(viewer camera.Viewer, program gpu.Program, states gpu.RenderStates, attributes shader.FragmentAttributes) error {
	provided := attributes.Intersect(m.base.provides())
	model, err := m.useTransformUniforms(program, viewer.ViewProjection())
	if err != nil {
		return err
	}
	if provided.Normal || provided.Tangents {
		if err := program.UseUniform("normalMatrix", common.NormalMatrix(model)); err != nil {
			return err
		}
	}
	if err := m.base.useAttributes(program, provided); err != nil {
		return err
	}
	return m.base.draw(program, states, viewer.Viewport(), 0)
}

func (m *Mesh) Release() {
	m.base.release()
}
