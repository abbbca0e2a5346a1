package gpu

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// NewVec2Buffer uploads two component float data.
func NewVec2Buffer(ctx Context, label string, data []mgl32.Vec2) (VertexBuffer, error) {
	return newTypedBuffer(ctx, label, wgpu.VertexFormatFloat32x2, data)
}

// NewVec3Buffer uploads three component float data such as positions and normals.
func NewVec3Buffer(ctx Context, label string, data []mgl32.Vec3) (VertexBuffer, error) {
	return newTypedBuffer(ctx, label, wgpu.VertexFormatFloat32x3, data)
}

// NewVec4Buffer uploads four component float data such as colors, tangents and weights.
func NewVec4Buffer(ctx Context, label string, data []mgl32.Vec4) (VertexBuffer, error) {
	return newTypedBuffer(ctx, label, wgpu.VertexFormatFloat32x4, data)
}

// NewUVec4Buffer uploads four component unsigned data such as joint indices.
func NewUVec4Buffer(ctx Context, label string, data [][4]uint32) (VertexBuffer, error) {
	return newTypedBuffer(ctx, label, wgpu.VertexFormatUint32x4, data)
}

// NewMat4ColumnBuffers splits per-instance matrices into four column buffers, the layout
// instance transformations are read with.
//
// Parameters:
//   - ctx: the owning context
//   - label: label prefix, suffixed with the column index
//   - data: one matrix per instance
//
// Returns:
//   - [4]VertexBuffer: one buffer per column
//   - error: the first allocation failure; buffers created before it are released
func NewMat4ColumnBuffers(ctx Context, label string, data []mgl32.Mat4) ([4]VertexBuffer, error) {
	var out [4]VertexBuffer
	for c := 0; c < 4; c++ {
		column := make([]mgl32.Vec4, len(data))
		for i, m := range data {
			column[i] = m.Col(c)
		}
		buf, err := NewVec4Buffer(ctx, label+"_column"+string(rune('0'+c)), column)
		if err != nil {
			for _, b := range out[:c] {
				b.Release()
			}
			return [4]VertexBuffer{}, err
		}
		out[c] = buf
	}
	return out, nil
}

func newTypedBuffer[T any](ctx Context, label string, format wgpu.VertexFormat, data []T) (VertexBuffer, error) {
	return ctx.NewVertexBuffer(label, format, common.SliceToBytes(data), uint32(len(data)))
}
