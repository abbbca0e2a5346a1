package gputest

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Program is a recorded program. Its ProgramState holds the uniform block and bindings.
type Program struct {
	*gpu.ProgramState

	ctx      *Context
	Source   string
	released bool
}

var _ gpu.Program = &Program{}

// Released reports whether the program was released, directly or through its context.
func (p *Program) Released() bool {
	return p.released
}

// Uniform returns a copy of the bytes of the named uniform in the block.
func (p *Program) Uniform(name string) ([]byte, bool) {
	field, ok := p.Reflection().Uniform(name)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), p.UniformBlock()[field.Offset:field.Offset+field.Size]...), true
}

func (p *Program) UseUniform(name string, value any) error {
	return p.SetUniform(name, value)
}

func (p *Program) UseTexture(name string, texture gpu.Texture) error {
	return p.SetTexture(name, texture)
}

func (p *Program) UseVertexAttribute(name string, buffer gpu.VertexBuffer) error {
	return p.SetAttribute(name, buffer, false)
}

func (p *Program) UseInstanceAttribute(name string, buffer gpu.VertexBuffer) error {
	return p.SetAttribute(name, buffer, true)
}

func (p *Program) DrawArrays(states gpu.RenderStates, viewport common.Viewport, vertexType gpu.VertexType, count uint32) error {
	return p.record(states, viewport, vertexType, count, 1, false)
}

func (p *Program) DrawElements(states gpu.RenderStates, viewport common.Viewport, vertexType gpu.VertexType, elements gpu.ElementBuffer) error {
	return p.record(states, viewport, vertexType, elements.Count(), 1, true)
}

func (p *Program) DrawArraysInstanced(states gpu.RenderStates, viewport common.Viewport, vertexType gpu.VertexType, count, instances uint32) error {
	return p.record(states, viewport, vertexType, count, instances, false)
}

func (p *Program) DrawElementsInstanced(states gpu.RenderStates, viewport common.Viewport, vertexType gpu.VertexType, elements gpu.ElementBuffer, instances uint32) error {
	return p.record(states, viewport, vertexType, elements.Count(), instances, true)
}

func (p *Program) record(states gpu.RenderStates, viewport common.Viewport, vertexType gpu.VertexType, count, instances uint32, indexed bool) error {
	if p.released {
		return fmt.Errorf("gputest: draw with released program %s", p.Label())
	}
	if err := p.Validate(); err != nil {
		return err
	}

	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if p.ctx.frame == nil {
		return fmt.Errorf("%w: %s", gpu.ErrNoActiveFrame, p.Label())
	}
	p.ctx.draws = append(p.ctx.draws, Draw{
		Program:    p,
		States:     states,
		Viewport:   viewport,
		VertexType: vertexType,
		Count:      count,
		Instances:  instances,
		Indexed:    indexed,
		Uniforms:   append([]byte(nil), p.UniformBlock()...),
	})
	return nil
}

func (p *Program) Release() {
	p.released = true
}

// VertexBuffer is an in-memory vertex buffer.
type VertexBuffer struct {
	ctx    *Context
	Label  string
	Data   []byte
	format wgpu.VertexFormat
	count  uint32
}

func (b *VertexBuffer) Format() wgpu.VertexFormat {
	return b.format
}

func (b *VertexBuffer) Count() uint32 {
	return b.count
}

func (b *VertexBuffer) Release() {
	b.ctx.track(-1)
}

// ElementBuffer is an in-memory index buffer.
type ElementBuffer struct {
	ctx     *Context
	Label   string
	Indices []uint32
}

func (b *ElementBuffer) Count() uint32 {
	return uint32(len(b.Indices))
}

func (b *ElementBuffer) Release() {
	b.ctx.track(-1)
}

// Texture is an in-memory texture without texel storage.
type Texture struct {
	ctx  *Context
	desc gpu.TextureDescriptor
}

func (t *Texture) Width() uint32 {
	return t.desc.Width
}

func (t *Texture) Height() uint32 {
	return t.desc.Height
}

func (t *Texture) Layers() uint32 {
	return t.desc.Layers
}

func (t *Texture) Format() gpu.TextureFormat {
	return t.desc.Format
}

func (t *Texture) Release() {
	t.ctx.track(-1)
}

// RenderTarget is an in-memory color and depth target.
type RenderTarget struct {
	color *Texture
	depth *Texture
}

func (r *RenderTarget) Width() uint32 {
	return r.color.Width()
}

func (r *RenderTarget) Height() uint32 {
	return r.color.Height()
}

func (r *RenderTarget) Viewport() common.Viewport {
	return common.NewViewportAtOrigin(r.Width(), r.Height())
}

func (r *RenderTarget) ColorTexture() gpu.Texture {
	return r.color
}

func (r *RenderTarget) DepthTexture() gpu.Texture {
	return r.depth
}

func (r *RenderTarget) Release() {
	r.color.Release()
	r.depth.Release()
}
