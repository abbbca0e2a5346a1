package material

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
)

// PhysicalMaterialOption is a function that configures a PhysicalMaterial during construction.
type PhysicalMaterialOption func(*PhysicalMaterial)

// WithAlbedo is an option builder that sets the base color. A translucent albedo makes the
// material transparent.
//
// Parameters:
//   - albedo: the sRGB base color
//
// Returns:
//   - PhysicalMaterialOption: a function that applies the albedo option to a PhysicalMaterial
func WithAlbedo(albedo common.Srgba) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.albedo = albedo
	}
}

// WithMetallic is an option builder that sets the metallic factor.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - PhysicalMaterialOption: a function that applies the metallic option to a PhysicalMaterial
func WithMetallic(metallic float32) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.metallic = metallic
	}
}

// WithRoughness is an option builder that sets the roughness factor.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = fully rough)
//
// Returns:
//   - PhysicalMaterialOption: a function that applies the roughness option to a PhysicalMaterial
func WithRoughness(roughness float32) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.roughness = roughness
	}
}

// WithOcclusionStrength is an option builder that sets how strongly the occlusion texture darkens.
func WithOcclusionStrength(strength float32) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.occlusionStrength = strength
	}
}

// WithNormalScale is an option builder that scales the tangent space xy of the normal texture.
func WithNormalScale(scale float32) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.normalScale = scale
	}
}

// WithEmissive is an option builder that sets the emitted color.
func WithEmissive(emissive common.Srgba) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.emissive = emissive
	}
}

// WithTexture is an option builder that sets the texture of a slot.
//
// Parameters:
//   - slot: the texture slot
//   - texture: the texture, nil leaves the slot empty
//
// Returns:
//   - PhysicalMaterialOption: a function that applies the texture option to a PhysicalMaterial
func WithTexture(slot TextureSlot, texture gpu.Texture) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		if slot >= 0 && slot < textureSlotCount {
			m.textures[slot] = texture
		}
	}
}

// WithLightingModel is an option builder that selects the reflectance model.
func WithLightingModel(model LightingModel) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.lighting = model
	}
}

// WithPhysicalTransparency is an option builder that puts the material in the transparent pass.
func WithPhysicalTransparency(transparent bool) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.transparent = transparent
	}
}

// WithPhysicalRenderStates is an option builder that replaces the render states.
func WithPhysicalRenderStates(states gpu.RenderStates) PhysicalMaterialOption {
	return func(m *PhysicalMaterial) {
		m.states = states
		m.statesSet = true
	}
}
