package gpu

import "github.com/cogentcore/webgpu/wgpu"

// WriteMask selects which channels of the color and depth attachments a draw writes.
type WriteMask struct {
	Red   bool
	Green bool
	Blue  bool
	Alpha bool
	Depth bool
}

var (
	// WriteMaskColorAndDepth writes every color channel and depth.
	WriteMaskColorAndDepth = WriteMask{Red: true, Green: true, Blue: true, Alpha: true, Depth: true}

	// WriteMaskColor writes every color channel and leaves depth untouched.
	WriteMaskColor = WriteMask{Red: true, Green: true, Blue: true, Alpha: true}

	// WriteMaskDepth writes depth only.
	WriteMaskDepth = WriteMask{Depth: true}

	// WriteMaskNone writes nothing.
	WriteMaskNone = WriteMask{}
)

// ColorWriteMask converts the color channels to the WebGPU mask.
func (m WriteMask) ColorWriteMask() wgpu.ColorWriteMask {
	mask := wgpu.ColorWriteMaskNone
	if m.Red {
		mask |= wgpu.ColorWriteMaskRed
	}
	if m.Green {
		mask |= wgpu.ColorWriteMaskGreen
	}
	if m.Blue {
		mask |= wgpu.ColorWriteMaskBlue
	}
	if m.Alpha {
		mask |= wgpu.ColorWriteMaskAlpha
	}
	return mask
}

// Blend is the fixed-function blend configuration. A disabled blend replaces the target.
type Blend struct {
	Enabled bool

	SourceRGBMultiplier        wgpu.BlendFactor
	SourceAlphaMultiplier      wgpu.BlendFactor
	DestinationRGBMultiplier   wgpu.BlendFactor
	DestinationAlphaMultiplier wgpu.BlendFactor

	RGBEquation   wgpu.BlendOperation
	AlphaEquation wgpu.BlendOperation
}

var (
	// BlendDisabled replaces the target color.
	BlendDisabled = Blend{}

	// BlendTransparency is standard non-premultiplied alpha blending.
	BlendTransparency = Blend{
		Enabled:                    true,
		SourceRGBMultiplier:        wgpu.BlendFactorSrcAlpha,
		SourceAlphaMultiplier:      wgpu.BlendFactorZero,
		DestinationRGBMultiplier:   wgpu.BlendFactorOneMinusSrcAlpha,
		DestinationAlphaMultiplier: wgpu.BlendFactorOne,
		RGBEquation:                wgpu.BlendOperationAdd,
		AlphaEquation:              wgpu.BlendOperationAdd,
	}
)

// State converts the blend to a WebGPU blend state, nil when blending is disabled.
func (b Blend) State() *wgpu.BlendState {
	if !b.Enabled {
		return nil
	}
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: b.RGBEquation,
			SrcFactor: b.SourceRGBMultiplier,
			DstFactor: b.DestinationRGBMultiplier,
		},
		Alpha: wgpu.BlendComponent{
			Operation: b.AlphaEquation,
			SrcFactor: b.SourceAlphaMultiplier,
			DstFactor: b.DestinationAlphaMultiplier,
		},
	}
}

// RenderStates is the fixed-function configuration accompanying a draw. The struct is
// comparable and is used as part of pipeline cache keys.
type RenderStates struct {
	WriteMask WriteMask
	DepthTest wgpu.CompareFunction
	Blend     Blend
	Cull      wgpu.CullMode

	// LineWidth applies to line topologies. WebGPU only rasterizes 1 pixel wide lines.
	LineWidth float32
}

// DefaultRenderStates writes color and depth, passes fragments closer than the stored depth,
// does not blend, and does not cull.
//
// Returns:
//   - RenderStates: the default states
func DefaultRenderStates() RenderStates {
	return RenderStates{
		WriteMask: WriteMaskColorAndDepth,
		DepthTest: wgpu.CompareFunctionLess,
		Blend:     BlendDisabled,
		Cull:      wgpu.CullModeNone,
		LineWidth: 1,
	}
}
