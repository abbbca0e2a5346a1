package gpu

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuProgram is a WebGPU shader module with its bindings and the pipelines created for it.
type wgpuProgram struct {
	*ProgramState

	ctx            *wgpuContext
	module         *wgpu.ShaderModule
	bindings       *bindGroupProvider
	pipelineLayout *wgpu.PipelineLayout
	pipelines      map[pipelineKey]*wgpu.RenderPipeline
}

var _ Program = &wgpuProgram{}

func (p *wgpuProgram) UseUniform(name string, value any) error {
	return p.SetUniform(name, value)
}

func (p *wgpuProgram) UseTexture(name string, texture Texture) error {
	return p.SetTexture(name, texture)
}

func (p *wgpuProgram) UseVertexAttribute(name string, buffer VertexBuffer) error {
	return p.SetAttribute(name, buffer, false)
}

func (p *wgpuProgram) UseInstanceAttribute(name string, buffer VertexBuffer) error {
	return p.SetAttribute(name, buffer, true)
}

func (p *wgpuProgram) DrawArrays(states RenderStates, viewport common.Viewport, vertexType VertexType, count uint32) error {
	return p.draw(states, viewport, vertexType, nil, count, 1)
}

func (p *wgpuProgram) DrawElements(states RenderStates, viewport common.Viewport, vertexType VertexType, elements ElementBuffer) error {
	return p.draw(states, viewport, vertexType, elements, 0, 1)
}

func (p *wgpuProgram) DrawArraysInstanced(states RenderStates, viewport common.Viewport, vertexType VertexType, count, instances uint32) error {
	return p.draw(states, viewport, vertexType, nil, count, instances)
}

func (p *wgpuProgram) DrawElementsInstanced(states RenderStates, viewport common.Viewport, vertexType VertexType, elements ElementBuffer, instances uint32) error {
	return p.draw(states, viewport, vertexType, elements, 0, instances)
}

// draw encodes and submits one render pass holding a single draw. Each draw is its own
// submission so the uniform block written for it is the one it reads.
func (p *wgpuProgram) draw(states RenderStates, viewport common.Viewport, vertexType VertexType, elements ElementBuffer, count, instances uint32) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c := p.ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frame == nil {
		return fmt.Errorf("%w: %s", ErrNoActiveFrame, p.Label())
	}

	var indexBuffer *wgpuElementBuffer
	if elements != nil {
		eb, ok := elements.(*wgpuElementBuffer)
		if !ok {
			return fmt.Errorf("%w: element buffer in %s", ErrForeignResource, p.Label())
		}
		indexBuffer = eb
	}

	attributes := p.Reflection().Attributes
	vertexBuffers := make([]*wgpu.Buffer, len(attributes))
	for slot, attr := range attributes {
		vb, ok := p.Attribute(attr.Name).(*wgpuVertexBuffer)
		if !ok {
			return fmt.Errorf("%w: attribute %q in %s", ErrForeignResource, attr.Name, p.Label())
		}
		vertexBuffers[slot] = vb.buffer
	}

	renderPipeline, err := p.pipeline(states, vertexType.Topology())
	if err != nil {
		return err
	}

	bindGroups, err := p.bindings.BindGroups(c.device, p.ProgramState)
	if err != nil {
		return err
	}
	defer releaseBindGroups(bindGroups)

	if buf := p.bindings.UniformBuffer(); buf != nil {
		c.queue.WriteBuffer(buf, 0, p.UniformBlock())
	}

	encoder, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("%w: command encoder: %v", ErrResourceAllocation, err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(c.frame.passDescriptor(nil, nil))
	pass.SetPipeline(renderPipeline)
	for i, bg := range bindGroups {
		pass.SetBindGroup(uint32(i), bg, nil)
	}
	pass.SetViewport(float32(viewport.X), float32(viewport.Y), float32(viewport.Width), float32(viewport.Height), 0, 1)
	for slot, buf := range vertexBuffers {
		pass.SetVertexBuffer(uint32(slot), buf, 0, wgpu.WholeSize)
	}
	if indexBuffer != nil {
		pass.SetIndexBuffer(indexBuffer.buffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(indexBuffer.count, instances, 0, 0, 0)
	} else {
		pass.Draw(count, instances, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("%w: finishing draw of %s: %v", ErrResourceAllocation, p.Label(), err)
	}
	c.queue.Submit(commandBuffer)
	commandBuffer.Release()

	return nil
}

func (p *wgpuProgram) Release() {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.release()
}

// release frees the program's GPU objects. The caller holds the context lock.
func (p *wgpuProgram) release() {
	for key, rp := range p.pipelines {
		rp.Release()
		delete(p.pipelines, key)
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
		p.pipelineLayout = nil
	}
	if p.bindings != nil {
		p.bindings.Release()
		p.bindings = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
	delete(p.ctx.programs, p)
}
