package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// defineColorTexture switches on the texture lookup of the color material.
const defineColorTexture = "USE_COLOR_TEXTURE"

// ColorMaterial draws a surface with a single color, multiplied with the vertex colors and an
// optional texture. It ignores lights.
type ColorMaterial struct {
	mu *sync.Mutex

	color       common.Srgba
	texture     gpu.Texture
	transparent bool
	states      gpu.RenderStates
}

// NewColorMaterial creates an opaque white color material with the options applied.
//
// Parameters:
//   - opts: variadic list of ColorMaterialOption functions
//
// Returns:
//   - *ColorMaterial: the material
func NewColorMaterial(opts ...ColorMaterialOption) *ColorMaterial {
	m := &ColorMaterial{
		mu:     &sync.Mutex{},
		color:  common.White,
		states: gpu.DefaultRenderStates(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Color returns the surface color.
func (m *ColorMaterial) Color() common.Srgba {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

// SetColor sets the surface color.
func (m *ColorMaterial) SetColor(color common.Srgba) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = color
}

// Texture returns the color texture, or nil.
func (m *ColorMaterial) Texture() gpu.Texture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texture
}

// SetTexture sets the color texture. Adding or removing a texture changes the ID.
func (m *ColorMaterial) SetTexture(texture gpu.Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texture = texture
}

// SetRenderStates replaces the render states.
func (m *ColorMaterial) SetRenderStates(states gpu.RenderStates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = states
}

// SetLineWidth sets the width lines are rasterized with.
func (m *ColorMaterial) SetLineWidth(width float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states.LineWidth = width
}

func (m *ColorMaterial) FragmentShaderSource(lights []light.Light) string {
	if m.Texture() != nil {
		return shader.DefineLine(defineColorTexture) + shader.ColorMaterialSource
	}
	return shader.ColorMaterialSource
}

func (m *ColorMaterial) FragmentAttributes() shader.FragmentAttributes {
	return shader.FragmentAttributes{Color: true, UV: m.Texture() != nil}
}

func (m *ColorMaterial) ID() ID {
	return ID{Kind: KindColor, Features: Features{ColorTexture: m.Texture() != nil}}
}

func (m *ColorMaterial) UseUniforms(program gpu.Program, viewer camera.Viewer, lights []light.Light) error {
	if err := useViewerUniforms(program, viewer); err != nil {
		return err
	}
	m.mu.Lock()
	color, texture := m.color, m.texture
	m.mu.Unlock()

	if err := program.UseUniform("surfaceColor", color.ToLinear()); err != nil {
		return err
	}
	if texture != nil {
		return program.UseTexture("colorTexture", texture)
	}
	return nil
}

func (m *ColorMaterial) RenderStates() gpu.RenderStates {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states
}

func (m *ColorMaterial) MaterialType() MaterialType {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transparent {
		return Transparent
	}
	return Opaque
}
