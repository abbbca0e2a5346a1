package material

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
)

// ColorMaterialOption is a function that configures a ColorMaterial during construction.
type ColorMaterialOption func(*ColorMaterial)

// WithColor is an option builder that sets the surface color.
//
// Parameters:
//   - color: the sRGB surface color
//
// Returns:
//   - ColorMaterialOption: a function that applies the color option to a ColorMaterial
func WithColor(color common.Srgba) ColorMaterialOption {
	return func(m *ColorMaterial) {
		m.color = color
	}
}

// WithColorTexture is an option builder that multiplies the color with a texture.
func WithColorTexture(texture gpu.Texture) ColorMaterialOption {
	return func(m *ColorMaterial) {
		m.texture = texture
	}
}

// WithTransparency is an option builder that puts the material in the transparent pass.
// It switches the render states to blending without depth writes; later render state
// options still apply on top.
//
// Parameters:
//   - transparent: whether the material blends over the target
//
// Returns:
//   - ColorMaterialOption: a function that applies the transparency option to a ColorMaterial
func WithTransparency(transparent bool) ColorMaterialOption {
	return func(m *ColorMaterial) {
		m.transparent = transparent
		if transparent {
			m.states = transparentRenderStates()
		} else {
			m.states = gpu.DefaultRenderStates()
		}
	}
}

// WithRenderStates is an option builder that replaces the render states.
func WithRenderStates(states gpu.RenderStates) ColorMaterialOption {
	return func(m *ColorMaterial) {
		m.states = states
	}
}
