package effect

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// OitBlend composites the resolved color over the target weighted by the revealage in alpha.
var OitBlend = gpu.Blend{
	Enabled:                    true,
	SourceRGBMultiplier:        wgpu.BlendFactorOneMinusSrcAlpha,
	SourceAlphaMultiplier:      wgpu.BlendFactorOneMinusSrcAlpha,
	DestinationRGBMultiplier:   wgpu.BlendFactorSrcAlpha,
	DestinationAlphaMultiplier: wgpu.BlendFactorSrcAlpha,
	RGBEquation:                wgpu.BlendOperationAdd,
	AlphaEquation:              wgpu.BlendOperationAdd,
}

// OitResolveEffect resolves weighted blended order-independent transparency. The color input holds
// the accumulated premultiplied color, and for array inputs the revealage in the second layer.
type OitResolveEffect struct {
	// Blend is how the resolved color is written to the target.
	Blend gpu.Blend
}

// NewOitResolveEffect creates the effect with OitBlend.
func NewOitResolveEffect() *OitResolveEffect {
	return &OitResolveEffect{Blend: OitBlend}
}

func (e *OitResolveEffect) FragmentShaderSource(lights []light.Light, color *ColorTexture, depth *DepthTexture) string {
	return composeFragmentSource(color, depth, shader.OitResolveSource)
}

func (e *OitResolveEffect) FragmentAttributes() shader.FragmentAttributes {
	return shader.FragmentAttributes{UV: true}
}

func (e *OitResolveEffect) ID(color *ColorTexture, depth *DepthTexture) ID {
	return ID{Kind: KindOitResolve, Color: colorKind(color), Depth: depthKind(depth)}
}

func (e *OitResolveEffect) UseUniforms(program gpu.Program, viewer camera.Viewer, lights []light.Light, color *ColorTexture, depth *DepthTexture) error {
	return useInputUniforms(program, viewer, color, depth)
}

// RenderStates always passes the depth test, culls nothing and leaves depth untouched.
func (e *OitResolveEffect) RenderStates() gpu.RenderStates {
	return gpu.RenderStates{
		WriteMask: gpu.WriteMaskColor,
		DepthTest: wgpu.CompareFunctionAlways,
		Blend:     e.Blend,
		Cull:      wgpu.CullModeNone,
		LineWidth: 1,
	}
}
