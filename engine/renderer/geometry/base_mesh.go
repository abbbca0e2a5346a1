package geometry

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// baseMesh holds the vertex and index buffers shared by the triangle mesh variants.
// Optional buffers are nil when the source mesh has no data for them.
type baseMesh struct {
	positions gpu.VertexBuffer
	normals   gpu.VertexBuffer
	tangents  gpu.VertexBuffer
	uvs       gpu.VertexBuffer
	colors    gpu.VertexBuffer
	indices   gpu.ElementBuffer
}

// newBaseMesh uploads the mesh. Buffers created before a failure are released.
func newBaseMesh(ctx gpu.Context, label string, cpu *CpuMesh) (*baseMesh, error) {
	b := &baseMesh{}
	var err error
	if b.positions, err = gpu.NewVec3Buffer(ctx, label+"_positions", cpu.Positions); err != nil {
		return nil, err
	}
	if len(cpu.Normals) > 0 {
		if b.normals, err = gpu.NewVec3Buffer(ctx, label+"_normals", cpu.Normals); err != nil {
			b.release()
			return nil, err
		}
	}
	if len(cpu.Tangents) > 0 {
		if b.tangents, err = gpu.NewVec4Buffer(ctx, label+"_tangents", cpu.Tangents); err != nil {
			b.release()
			return nil, err
		}
	}
	if len(cpu.UVs) > 0 {
		if b.uvs, err = gpu.NewVec2Buffer(ctx, label+"_uvs", cpu.UVs); err != nil {
			b.release()
			return nil, err
		}
	}
	if len(cpu.Colors) > 0 {
		if b.colors, err = gpu.NewVec4Buffer(ctx, label+"_colors", common.SrgbaSliceToLinear(cpu.Colors)); err != nil {
			b.release()
			return nil, err
		}
	}
	if cpu.Indices != nil {
		if b.indices, err = ctx.NewElementBuffer(label+"_indices", cpu.Indices); err != nil {
			b.release()
			return nil, err
		}
	}
	return b, nil
}

// provides returns the attributes the buffers can supply. Tangents need normals for the bitangent.
func (b *baseMesh) provides() shader.FragmentAttributes {
	return shader.FragmentAttributes{
		Normal:   b.normals != nil,
		Tangents: b.tangents != nil && b.normals != nil,
		UV:       b.uvs != nil,
		Color:    b.colors != nil,
	}
}

// useAttributes binds the buffers switched on by provided, which must come from provides.
func (b *baseMesh) useAttributes(program gpu.Program, provided shader.FragmentAttributes) error {
	if err := program.UseVertexAttribute("position", b.positions); err != nil {
		return err
	}
	if provided.Normal || provided.Tangents {
		if err := program.UseVertexAttribute("normal", b.normals); err != nil {
			return err
		}
	}
	if provided.Tangents {
		if err := program.UseVertexAttribute("tangent", b.tangents); err != nil {
			return err
		}
	}
	if provided.UV {
		if err := program.UseVertexAttribute("uv", b.uvs); err != nil {
			return err
		}
	}
	if provided.Color {
		if err := program.UseVertexAttribute("color", b.colors); err != nil {
			return err
		}
	}
	return nil
}

// draw issues an indexed draw when the mesh has indices and an array draw otherwise.
func (b *baseMesh) draw(program gpu.Program, states gpu.RenderStates, viewport common.Viewport, instances uint32) error {
	if instances == 0 {
		if b.indices != nil {
			return program.DrawElements(states, viewport, gpu.Triangles, b.indices)
		}
		return program.DrawArrays(states, viewport, gpu.Triangles, b.positions.Count())
	}
	if b.indices != nil {
		return program.DrawElementsInstanced(states, viewport, gpu.Triangles, b.indices, instances)
	}
	return program.DrawArraysInstanced(states, viewport, gpu.Triangles, b.positions.Count(), instances)
}

func (b *baseMesh) release() {
	for _, buf := range []*gpu.VertexBuffer{&b.positions, &b.normals, &b.tangents, &b.uvs, &b.colors} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	if b.indices != nil {
		b.indices.Release()
		b.indices = nil
	}
}
