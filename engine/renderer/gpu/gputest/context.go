// Package gputest provides an in-memory gpu.Context that records compilations and draws.
// Programs are reflected from their source the same way the WebGPU context does it, so name
// and type contracts fail the same way without a device.
package gputest

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Draw is one recorded draw call.
type Draw struct {
	Program    *Program
	States     gpu.RenderStates
	Viewport   common.Viewport
	VertexType gpu.VertexType

	// Count is the vertex count of array draws and the index count of indexed draws.
	Count     uint32
	Instances uint32
	Indexed   bool

	// Uniforms is a copy of the uniform block at draw time.
	Uniforms []byte
}

// Context is a recording gpu.Context.
type Context struct {
	mu *sync.Mutex

	compiles  int
	sources   map[string]string
	failures  map[string]string
	programs  []*Program
	draws     []Draw
	frame     gpu.RenderTarget
	frames    int
	released  bool
	resources int
}

var _ gpu.Context = &Context{}

// NewContext creates an empty recording context.
func NewContext() *Context {
	return &Context{
		mu:       &sync.Mutex{},
		sources:  make(map[string]string),
		failures: make(map[string]string),
	}
}

// FailCompile makes every later compilation of the given label fail with diagnostic.
func (c *Context) FailCompile(label, diagnostic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[label] = diagnostic
}

// Compiles returns how many times CompileProgram was called, including failed calls.
func (c *Context) Compiles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}

// Source returns the source last compiled under label.
func (c *Context) Source(label string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sources[label]
	return s, ok
}

// Programs returns every program compiled so far.
func (c *Context) Programs() []*Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Program(nil), c.programs...)
}

// Draws returns the recorded draws in submission order.
func (c *Context) Draws() []Draw {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Draw(nil), c.draws...)
}

// Frames returns how many frames were begun.
func (c *Context) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Released reports whether Release was called.
func (c *Context) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// LiveResources returns the number of buffers and textures not yet released.
func (c *Context) LiveResources() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resources
}

func (c *Context) NewVertexBuffer(label string, format wgpu.VertexFormat, data []byte, count uint32) (gpu.VertexBuffer, error) {
	c.track(1)
	return &VertexBuffer{ctx: c, Label: label, format: format, count: count, Data: append([]byte(nil), data...)}, nil
}

func (c *Context) NewElementBuffer(label string, indices []uint32) (gpu.ElementBuffer, error) {
	c.track(1)
	return &ElementBuffer{ctx: c, Label: label, Indices: append([]uint32(nil), indices...)}, nil
}

func (c *Context) NewTexture2D(desc gpu.TextureDescriptor, data []byte) (gpu.Texture, error) {
	c.track(1)
	desc.Layers = common.Coalesce(desc.Layers, 1)
	return &Texture{ctx: c, desc: desc}, nil
}

func (c *Context) NewRenderTarget(width, height uint32) (gpu.RenderTarget, error) {
	c.track(2)
	return &RenderTarget{
		color: &Texture{ctx: c, desc: gpu.TextureDescriptor{Label: "color", Width: width, Height: height, Layers: 1, Format: gpu.TextureFormatRGBA8}},
		depth: &Texture{ctx: c, desc: gpu.TextureDescriptor{Label: "depth", Width: width, Height: height, Layers: 1, Format: gpu.TextureFormatDepth32}},
	}, nil
}

func (c *Context) CompileProgram(label, source string) (gpu.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.compiles++
	c.sources[label] = source
	if diagnostic, ok := c.failures[label]; ok {
		return nil, &gpu.CompileError{Label: label, Diagnostic: diagnostic}
	}
	reflection, err := shader.Reflect(source)
	if err != nil {
		return nil, &gpu.CompileError{Label: label, Diagnostic: err.Error()}
	}
	p := &Program{ProgramState: gpu.NewProgramState(label, reflection), ctx: c, Source: source}
	c.programs = append(c.programs, p)
	return p, nil
}

func (c *Context) BeginFrame(target gpu.RenderTarget, clear common.ClearState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame != nil {
		return gpu.ErrFrameActive
	}
	c.frame = target
	c.frames++
	return nil
}

func (c *Context) EndFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return gpu.ErrNoActiveFrame
	}
	c.frame = nil
	return nil
}

func (c *Context) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.programs {
		p.released = true
	}
	c.released = true
}

func (c *Context) track(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources += delta
}
