package effect

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// CopyEffect copies the color input, tone and color mapped, and the depth input to the target.
type CopyEffect struct {
	// Blend is how the copied color is written to the target.
	Blend gpu.Blend

	// WriteMask selects the channels written; depth is written only with a depth input.
	WriteMask gpu.WriteMask
}

// NewCopyEffect creates an effect that overwrites color and depth.
func NewCopyEffect() *CopyEffect {
	return &CopyEffect{Blend: gpu.BlendDisabled, WriteMask: gpu.WriteMaskColorAndDepth}
}

func (e *CopyEffect) FragmentShaderSource(lights []light.Light, color *ColorTexture, depth *DepthTexture) string {
	return composeFragmentSource(color, depth, shader.CopyEffectSource)
}

func (e *CopyEffect) FragmentAttributes() shader.FragmentAttributes {
	return shader.FragmentAttributes{UV: true}
}

func (e *CopyEffect) ID(color *ColorTexture, depth *DepthTexture) ID {
	return ID{Kind: KindCopy, Color: colorKind(color), Depth: depthKind(depth)}
}

func (e *CopyEffect) UseUniforms(program gpu.Program, viewer camera.Viewer, lights []light.Light, color *ColorTexture, depth *DepthTexture) error {
	return useInputUniforms(program, viewer, color, depth)
}

func (e *CopyEffect) RenderStates() gpu.RenderStates {
	return gpu.RenderStates{
		WriteMask: e.WriteMask,
		DepthTest: wgpu.CompareFunctionAlways,
		Blend:     e.Blend,
		Cull:      wgpu.CullModeNone,
		LineWidth: 1,
	}
}
