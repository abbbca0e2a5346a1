package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// TextureSlot names one of the optional textures of a PhysicalMaterial.
type TextureSlot int

const (
	AlbedoTexture TextureSlot = iota
	MetallicRoughnessTexture
	OcclusionTexture
	NormalTexture
	EmissiveTexture
	textureSlotCount
)

// textureSlots maps each slot to its shader texture name and the define that declares it.
var textureSlots = [textureSlotCount]struct {
	name   string
	define string
}{
	AlbedoTexture:            {"albedoTexture", "USE_ALBEDO_TEXTURE"},
	MetallicRoughnessTexture: {"metallicRoughnessTexture", "USE_METALLIC_ROUGHNESS_TEXTURE"},
	OcclusionTexture:         {"occlusionTexture", "USE_OCCLUSION_TEXTURE"},
	NormalTexture:            {"normalTexture", "USE_NORMAL_TEXTURE"},
	EmissiveTexture:          {"emissiveTexture", "USE_EMISSIVE_TEXTURE"},
}

const defineBlinnPhong = "USE_BLINN_PHONG"

// PhysicalMaterial is a metallic-roughness material lit by the light list.
// The metallic and roughness factors are multiplied with the blue and green channels of the
// metallic-roughness texture.
type PhysicalMaterial struct {
	mu *sync.Mutex

	albedo            common.Srgba
	metallic          float32
	roughness         float32
	occlusionStrength float32
	normalScale       float32
	emissive          common.Srgba
	textures          [textureSlotCount]gpu.Texture
	lighting          LightingModel

	transparent bool
	states      gpu.RenderStates
	statesSet   bool
}

// NewPhysicalMaterial creates a white dielectric, fully rough material with the options applied.
// Unless render states are given, a material with a translucent albedo or explicit transparency
// gets blending states and everything else the default states.
//
// Parameters:
//   - opts: variadic list of PhysicalMaterialOption functions
//
// Returns:
//   - *PhysicalMaterial: the material
func NewPhysicalMaterial(opts ...PhysicalMaterialOption) *PhysicalMaterial {
	m := &PhysicalMaterial{
		mu:                &sync.Mutex{},
		albedo:            common.White,
		metallic:          0,
		roughness:         1,
		occlusionStrength: 1,
		normalScale:       1,
		emissive:          common.Black,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.albedo.IsTransparent() {
		m.transparent = true
	}
	if !m.statesSet {
		if m.transparent {
			m.states = transparentRenderStates()
		} else {
			m.states = gpu.DefaultRenderStates()
		}
	}
	return m
}

// Albedo returns the base color.
func (m *PhysicalMaterial) Albedo() common.Srgba {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.albedo
}

// SetAlbedo sets the base color.
func (m *PhysicalMaterial) SetAlbedo(albedo common.Srgba) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.albedo = albedo
}

// SetMetallicRoughness sets the metallic and roughness factors.
func (m *PhysicalMaterial) SetMetallicRoughness(metallic, roughness float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metallic = metallic
	m.roughness = roughness
}

// SetEmissive sets the emitted color.
func (m *PhysicalMaterial) SetEmissive(emissive common.Srgba) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emissive = emissive
}

// Texture returns the texture in a slot, or nil.
func (m *PhysicalMaterial) Texture(slot TextureSlot) gpu.Texture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textures[slot]
}

// SetTexture sets the texture in a slot; nil removes it. Changing texture presence changes the ID.
func (m *PhysicalMaterial) SetTexture(slot TextureSlot, texture gpu.Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textures[slot] = texture
}

// LightingModel returns the reflectance model.
func (m *PhysicalMaterial) LightingModel() LightingModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lighting
}

func (m *PhysicalMaterial) features() Features {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Features{
		AlbedoTexture:            m.textures[AlbedoTexture] != nil,
		MetallicRoughnessTexture: m.textures[MetallicRoughnessTexture] != nil,
		OcclusionTexture:         m.textures[OcclusionTexture] != nil,
		NormalTexture:            m.textures[NormalTexture] != nil,
		EmissiveTexture:          m.textures[EmissiveTexture] != nil,
		Lighting:                 m.lighting,
	}
}

func (m *PhysicalMaterial) FragmentShaderSource(lights []light.Light) string {
	f := m.features()
	present := [textureSlotCount]bool{
		f.AlbedoTexture, f.MetallicRoughnessTexture, f.OcclusionTexture, f.NormalTexture, f.EmissiveTexture,
	}

	src := ""
	for slot, on := range present {
		if on {
			src += shader.DefineLine(textureSlots[slot].define)
		}
	}
	if f.Lighting == LightingBlinnPhong {
		src += shader.DefineLine(defineBlinnPhong)
	}
	return src + shader.PhysicalMaterialSource + "\n" + light.FragmentSource(lights)
}

func (m *PhysicalMaterial) FragmentAttributes() shader.FragmentAttributes {
	f := m.features()
	textured := f.AlbedoTexture || f.MetallicRoughnessTexture || f.OcclusionTexture || f.NormalTexture || f.EmissiveTexture
	return shader.FragmentAttributes{
		Normal:   true,
		Tangents: f.NormalTexture,
		UV:       textured,
		Color:    true,
	}
}

func (m *PhysicalMaterial) ID() ID {
	return ID{Kind: KindPhysical, Features: m.features()}
}

func (m *PhysicalMaterial) UseUniforms(program gpu.Program, viewer camera.Viewer, lights []light.Light) error {
	if err := useViewerUniforms(program, viewer); err != nil {
		return err
	}

	m.mu.Lock()
	values := []struct {
		name  string
		value any
	}{
		{"cameraPosition", viewer.Position()},
		{"albedo", m.albedo.ToLinear()},
		{"emissive", m.emissive.ToLinear().Vec3()},
		{"metallic", m.metallic},
		{"roughness", m.roughness},
		{"occlusionStrength", m.occlusionStrength},
		{"normalScale", m.normalScale},
	}
	textures := m.textures
	m.mu.Unlock()

	for _, v := range values {
		if err := program.UseUniform(v.name, v.value); err != nil {
			return err
		}
	}
	for slot, tex := range textures {
		if tex == nil {
			continue
		}
		if err := program.UseTexture(textureSlots[slot].name, tex); err != nil {
			return err
		}
	}
	return light.UseUniforms(program, lights)
}

func (m *PhysicalMaterial) RenderStates() gpu.RenderStates {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states
}

func (m *PhysicalMaterial) MaterialType() MaterialType {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transparent {
		return Transparent
	}
	return Opaque
}
