package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRenderStates(t *testing.T) {
	s := DefaultRenderStates()
	assert.Equal(t, WriteMaskColorAndDepth, s.WriteMask)
	assert.Equal(t, wgpu.CompareFunctionLess, s.DepthTest)
	assert.False(t, s.Blend.Enabled)
	assert.Equal(t, wgpu.CullModeNone, s.Cull)
	assert.Equal(t, float32(1), s.LineWidth)
}

func TestBlendState(t *testing.T) {
	assert.Nil(t, BlendDisabled.State())

	state := BlendTransparency.State()
	if assert.NotNil(t, state) {
		assert.Equal(t, wgpu.BlendFactorSrcAlpha, state.Color.SrcFactor)
		assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, state.Color.DstFactor)
		assert.Equal(t, wgpu.BlendOperationAdd, state.Color.Operation)
		assert.Equal(t, wgpu.BlendFactorZero, state.Alpha.SrcFactor)
		assert.Equal(t, wgpu.BlendFactorOne, state.Alpha.DstFactor)
		assert.Equal(t, wgpu.BlendOperationAdd, state.Alpha.Operation)
	}
}

func TestColorWriteMask(t *testing.T) {
	assert.Equal(t, wgpu.ColorWriteMaskAll, WriteMaskColor.ColorWriteMask())
	assert.Equal(t, wgpu.ColorWriteMaskNone, WriteMaskDepth.ColorWriteMask())
	assert.Equal(t, wgpu.ColorWriteMaskRed|wgpu.ColorWriteMaskAlpha, WriteMask{Red: true, Alpha: true}.ColorWriteMask())
}

func TestRenderStatesComparable(t *testing.T) {
	a := DefaultRenderStates()
	b := DefaultRenderStates()
	assert.True(t, a == b)

	b.LineWidth = 2
	assert.False(t, a == b)
}

func TestVertexTypeTopology(t *testing.T) {
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, Triangles.Topology())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, Lines.Topology())
	assert.Equal(t, wgpu.PrimitiveTopologyPointList, Points.Topology())
	assert.Equal(t, "lines", Lines.String())
}
