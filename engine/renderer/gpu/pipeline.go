package gpu

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// ColorTargetFormat is the color attachment format of every render target.
	ColorTargetFormat = wgpu.TextureFormatRGBA8Unorm

	// DepthTargetFormat is the depth attachment format of every render target.
	DepthTargetFormat = wgpu.TextureFormatDepth32Float
)

// pipelineKey identifies one render pipeline of a program. RenderStates and the topology are
// baked into WebGPU pipelines, so a program owns one pipeline per combination it was drawn with.
type pipelineKey struct {
	states   RenderStates
	topology wgpu.PrimitiveTopology
}

// vertexBufferLayouts gives every attribute its own vertex buffer slot, in reflection order.
func vertexBufferLayouts(attributes []shader.VertexAttribute) []wgpu.VertexBufferLayout {
	layouts := make([]wgpu.VertexBufferLayout, len(attributes))
	for i, attr := range attributes {
		stepMode := wgpu.VertexStepModeVertex
		if attr.Instance {
			stepMode = wgpu.VertexStepModeInstance
		}
		layouts[i] = wgpu.VertexBufferLayout{
			ArrayStride: attr.Size,
			StepMode:    stepMode,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         attr.Format,
					Offset:         0,
					ShaderLocation: attr.Location,
				},
			},
		}
	}
	return layouts
}

// pipeline returns the render pipeline for the given states and topology, creating it on first use.
// The caller holds the context lock.
func (p *wgpuProgram) pipeline(states RenderStates, topology wgpu.PrimitiveTopology) (*wgpu.RenderPipeline, error) {
	key := pipelineKey{states: states, topology: topology}
	if rp, ok := p.pipelines[key]; ok {
		return rp, nil
	}

	if topology == wgpu.PrimitiveTopologyLineList && states.LineWidth != 1 {
		p.ctx.logger.Debugf("%s: line width %.2f is rasterized as 1", p.Label(), states.LineWidth)
	}

	r := p.Reflection()
	created, err := p.ctx.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Label() + " Render Pipeline",
		Layout: p.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.module,
			EntryPoint: r.VertexEntry,
			Buffers:    vertexBufferLayouts(r.Attributes),
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.module,
			EntryPoint: r.FragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    ColorTargetFormat,
					WriteMask: states.WriteMask.ColorWriteMask(),
					Blend:     states.Blend.State(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  common.Coalesce(states.Cull, wgpu.CullModeNone),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthTargetFormat,
			DepthWriteEnabled: states.WriteMask.Depth,
			DepthCompare:      common.Coalesce(states.DepthTest, wgpu.CompareFunctionAlways),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: pipeline for %s: %v", ErrResourceAllocation, p.Label(), err)
	}

	p.pipelines[key] = created
	return created, nil
}
