// Package material holds the surface shading strategies drawn onto geometries: a flat color and
// a physically based material lit by the light list. A material contributes the fragment stage of
// a program, the uniforms it reads, and the render states it is drawn with.
package material

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// MaterialType tells a scene whether a material is drawn in the opaque or the transparent pass.
type MaterialType uint8

const (
	Opaque MaterialType = iota
	Transparent
)

func (t MaterialType) String() string {
	if t == Transparent {
		return "transparent"
	}
	return "opaque"
}

// Kind identifies a material variant.
type Kind uint8

const (
	KindColor Kind = iota + 1
	KindPhysical
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindPhysical:
		return "physical"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Lit reports whether the fragment source of the kind depends on the light list.
func (k Kind) Lit() bool {
	return k == KindPhysical
}

// LightingModel selects the reflectance model of lit materials.
type LightingModel uint8

const (
	LightingCookTorrance LightingModel = iota
	LightingBlinnPhong
)

func (m LightingModel) String() string {
	if m == LightingBlinnPhong {
		return "blinn_phong"
	}
	return "cook_torrance"
}

// Features are the switches that change a material's fragment source.
type Features struct {
	ColorTexture             bool
	AlbedoTexture            bool
	MetallicRoughnessTexture bool
	OcclusionTexture         bool
	NormalTexture            bool
	EmissiveTexture          bool
	Lighting                 LightingModel
}

// ID identifies the fragment stage of a material. Equal IDs mean identical fragment source for
// the same light kinds.
type ID struct {
	Kind     Kind
	Features Features
}

func (id ID) String() string {
	parts := []string{}
	f := id.Features
	flags := []struct {
		on   bool
		name string
	}{
		{f.ColorTexture, "color_texture"},
		{f.AlbedoTexture, "albedo_texture"},
		{f.MetallicRoughnessTexture, "metallic_roughness_texture"},
		{f.OcclusionTexture, "occlusion_texture"},
		{f.NormalTexture, "normal_texture"},
		{f.EmissiveTexture, "emissive_texture"},
	}
	for _, flag := range flags {
		if flag.on {
			parts = append(parts, flag.name)
		}
	}
	if id.Kind.Lit() {
		parts = append(parts, f.Lighting.String())
	}
	return fmt.Sprintf("%s[%s]", id.Kind, strings.Join(parts, ","))
}

// Material shades the surface of a geometry.
type Material interface {
	// FragmentShaderSource returns the annotated WGSL of the fragment stage.
	//
	// Parameters:
	//   - lights: the light list, read only by lit materials
	//
	// Returns:
	//   - string: annotated WGSL with an fs_main entry point
	FragmentShaderSource(lights []light.Light) string

	// FragmentAttributes returns the vertex attributes the fragment stage reads.
	FragmentAttributes() shader.FragmentAttributes

	// ID returns the identity of the fragment stage.
	ID() ID

	// UseUniforms pushes every uniform and texture the fragment stage declares.
	//
	// Parameters:
	//   - program: a program compiled with FragmentShaderSource(lights)
	//   - viewer: supplies the camera position and the tone and color mapping
	//   - lights: the same light list the program was compiled for
	//
	// Returns:
	//   - error: the first contract error returned by the program
	UseUniforms(program gpu.Program, viewer camera.Viewer, lights []light.Light) error

	// RenderStates returns the fixed-function states the material is drawn with.
	RenderStates() gpu.RenderStates

	// MaterialType returns the pass the material belongs to.
	MaterialType() MaterialType
}

var (
	_ Material = &ColorMaterial{}
	_ Material = &PhysicalMaterial{}
)

// transparentRenderStates are the states of materials that blend over the target.
func transparentRenderStates() gpu.RenderStates {
	states := gpu.DefaultRenderStates()
	states.WriteMask = gpu.WriteMaskColor
	states.Blend = gpu.BlendTransparency
	return states
}

// useViewerUniforms pushes the tone and color mapping of the viewer.
func useViewerUniforms(program gpu.Program, viewer camera.Viewer) error {
	if err := viewer.ToneMapping().UseUniforms(program); err != nil {
		return err
	}
	return viewer.ColorMapping().UseUniforms(program)
}
