package effect

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// ErrTextureFormat is returned when a texture of the wrong format is wrapped as an effect input.
var ErrTextureFormat = errors.New("effect: wrong texture format")

// Shader names of the effect inputs.
const (
	ColorMapTexture = "colorMap"
	DepthMapTexture = "depthMap"
)

// ColorTextureKind distinguishes the color input variants.
type ColorTextureKind uint8

const (
	ColorTextureNone ColorTextureKind = iota
	ColorTextureSingle
	ColorTextureArray
)

func (k ColorTextureKind) String() string {
	switch k {
	case ColorTextureSingle:
		return "single"
	case ColorTextureArray:
		return "array"
	}
	return "none"
}

// DepthTextureKind distinguishes the depth input variants.
type DepthTextureKind uint8

const (
	DepthTextureNone DepthTextureKind = iota
	DepthTextureSingle
)

func (k DepthTextureKind) String() string {
	if k == DepthTextureSingle {
		return "single"
	}
	return "none"
}

// ColorTexture is a color input of an effect. Layered textures are sampled as arrays.
type ColorTexture struct {
	kind    ColorTextureKind
	texture gpu.Texture
}

// NewColorTexture wraps a color texture.
//
// Parameters:
//   - texture: a non-depth texture, with more than one layer for array sampling
//
// Returns:
//   - *ColorTexture: the input
//   - error: ErrTextureFormat for depth textures
func NewColorTexture(texture gpu.Texture) (*ColorTexture, error) {
	if texture.Format().IsDepth() {
		return nil, fmt.Errorf("%w: color input cannot be a depth texture", ErrTextureFormat)
	}
	kind := ColorTextureSingle
	if texture.Layers() > 1 {
		kind = ColorTextureArray
	}
	return &ColorTexture{kind: kind, texture: texture}, nil
}

// Kind returns the input variant.
func (c *ColorTexture) Kind() ColorTextureKind {
	return c.kind
}

// Texture returns the wrapped texture.
func (c *ColorTexture) Texture() gpu.Texture {
	return c.texture
}

// FragmentShaderSource returns the include of the sampling helper for the variant.
func (c *ColorTexture) FragmentShaderSource() string {
	if c.kind == ColorTextureArray {
		return shader.IncludeLine(shader.SnippetColorTextureArray)
	}
	return shader.IncludeLine(shader.SnippetColorTextureSingle)
}

// UseUniforms binds the texture.
func (c *ColorTexture) UseUniforms(program gpu.Program) error {
	return program.UseTexture(ColorMapTexture, c.texture)
}

// DepthTexture is a depth input of an effect.
type DepthTexture struct {
	texture gpu.Texture
}

// NewDepthTexture wraps a depth texture.
//
// Parameters:
//   - texture: a depth texture
//
// Returns:
//   - *DepthTexture: the input
//   - error: ErrTextureFormat for color textures
func NewDepthTexture(texture gpu.Texture) (*DepthTexture, error) {
	if !texture.Format().IsDepth() {
		return nil, fmt.Errorf("%w: depth input must be a depth texture", ErrTextureFormat)
	}
	return &DepthTexture{texture: texture}, nil
}

// Texture returns the wrapped texture.
func (d *DepthTexture) Texture() gpu.Texture {
	return d.texture
}

// FragmentShaderSource returns the include of the depth helper.
func (d *DepthTexture) FragmentShaderSource() string {
	return shader.IncludeLine(shader.SnippetDepthTexture)
}

// UseUniforms binds the texture.
func (d *DepthTexture) UseUniforms(program gpu.Program) error {
	return program.UseTexture(DepthMapTexture, d.texture)
}
