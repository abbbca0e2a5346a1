package gpu

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Context is the GPU resource API the draw core consumes: buffer upload, program compilation,
// frame management. One context owns every resource it creates.
type Context interface {
	// NewVertexBuffer uploads per-vertex or per-instance data.
	//
	// Parameters:
	//   - label: debug label
	//   - format: the element format of the data
	//   - data: raw element bytes, tightly packed
	//   - count: number of elements in data
	//
	// Returns:
	//   - VertexBuffer: the uploaded buffer
	//   - error: ErrResourceAllocation when the buffer cannot be created
	NewVertexBuffer(label string, format wgpu.VertexFormat, data []byte, count uint32) (VertexBuffer, error)

	// NewElementBuffer uploads 32 bit indices.
	NewElementBuffer(label string, indices []uint32) (ElementBuffer, error)

	// NewTexture2D creates a 2D texture, or a layered one when desc.Layers > 1, and uploads data
	// when it is not nil. Data holds tightly packed rows of every layer in order.
	NewTexture2D(desc TextureDescriptor, data []byte) (Texture, error)

	// NewRenderTarget creates an offscreen color and depth target.
	NewRenderTarget(width, height uint32) (RenderTarget, error)

	// CompileProgram compiles processed WGSL holding both a vertex and a fragment entry point.
	//
	// Parameters:
	//   - label: program label used in diagnostics
	//   - source: the complete shader source
	//
	// Returns:
	//   - Program: the compiled program
	//   - error: a *CompileError on compilation failure
	CompileProgram(label, source string) (Program, error)

	// BeginFrame makes target the destination of subsequent draws and applies clear.
	BeginFrame(target RenderTarget, clear common.ClearState) error

	// EndFrame finishes the frame started by BeginFrame.
	EndFrame() error

	// Release frees every resource owned by the context.
	Release()
}

// Program is a compiled vertex and fragment stage pair with named resources.
// Uniform values persist on the program between draws.
type Program interface {
	Label() string

	// RequiresUniform reports whether the program declares the named uniform.
	RequiresUniform(name string) bool

	// RequiresAttribute reports whether the program declares the named vertex or instance attribute.
	RequiresAttribute(name string) bool

	// RequiresTexture reports whether the program declares the named texture.
	RequiresTexture(name string) bool

	// UseUniform sets a uniform value. The value must match the declared WGSL type, see EncodeUniform.
	UseUniform(name string, value any) error

	// UseTexture binds a texture to the named texture slot.
	UseTexture(name string, texture Texture) error

	// UseVertexAttribute binds a per-vertex buffer to the named attribute.
	UseVertexAttribute(name string, buffer VertexBuffer) error

	// UseInstanceAttribute binds a per-instance buffer to the named attribute.
	UseInstanceAttribute(name string, buffer VertexBuffer) error

	// DrawArrays draws count vertices.
	DrawArrays(states RenderStates, viewport common.Viewport, vertexType VertexType, count uint32) error

	// DrawElements draws the indices of elements.
	DrawElements(states RenderStates, viewport common.Viewport, vertexType VertexType, elements ElementBuffer) error

	// DrawArraysInstanced draws count vertices for each of instances instances.
	DrawArraysInstanced(states RenderStates, viewport common.Viewport, vertexType VertexType, count, instances uint32) error

	// DrawElementsInstanced draws the indices of elements for each of instances instances.
	DrawElementsInstanced(states RenderStates, viewport common.Viewport, vertexType VertexType, elements ElementBuffer, instances uint32) error

	Release()
}

// VertexBuffer is per-vertex or per-instance data on the GPU.
type VertexBuffer interface {
	Format() wgpu.VertexFormat
	Count() uint32
	Release()
}

// ElementBuffer holds 32 bit indices on the GPU.
type ElementBuffer interface {
	Count() uint32
	Release()
}

// TextureFormat selects the texel format of a texture.
type TextureFormat int

const (
	// TextureFormatRGBA8 is 8 bit linear RGBA.
	TextureFormatRGBA8 TextureFormat = iota

	// TextureFormatRGBA16Float is half-float RGBA, used for accumulation targets.
	TextureFormatRGBA16Float

	// TextureFormatDepth32 is 32 bit float depth.
	TextureFormatDepth32
)

// TextureDescriptor describes a texture created with NewTexture2D.
type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32

	// Layers greater than one creates an array texture.
	Layers uint32
	Format TextureFormat
}

// Texture is a sampleable GPU texture.
type Texture interface {
	Width() uint32
	Height() uint32
	Layers() uint32
	Format() TextureFormat
	Release()
}

// RenderTarget is an offscreen color and depth attachment pair.
type RenderTarget interface {
	Width() uint32
	Height() uint32

	// Viewport covers the whole target.
	Viewport() common.Viewport

	ColorTexture() Texture
	DepthTexture() Texture
	Release()
}

// IsDepth reports whether the format stores depth.
func (f TextureFormat) IsDepth() bool {
	return f == TextureFormatDepth32
}

// BytesPerTexel returns the size of one texel.
func (f TextureFormat) BytesPerTexel() uint32 {
	switch f {
	case TextureFormatRGBA16Float:
		return 8
	default:
		return 4
	}
}

// WGPU maps the format to the WebGPU texture format.
func (f TextureFormat) WGPU() wgpu.TextureFormat {
	switch f {
	case TextureFormatRGBA16Float:
		return wgpu.TextureFormatRGBA16Float
	case TextureFormatDepth32:
		return wgpu.TextureFormatDepth32Float
	default:
		return wgpu.TextureFormatRGBA8Unorm
	}
}
