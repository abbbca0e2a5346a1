// Package effect holds screen effects: fragment stages that read the color and depth produced by
// earlier passes, drawn over a full-screen quad or any other geometry.
package effect

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// Kind identifies an effect variant.
type Kind uint8

const (
	KindOitResolve Kind = iota + 1
	KindCopy
)

func (k Kind) String() string {
	switch k {
	case KindOitResolve:
		return "oit_resolve"
	case KindCopy:
		return "copy"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ID identifies the fragment stage of an effect for a combination of input textures.
type ID struct {
	Kind  Kind
	Color ColorTextureKind
	Depth DepthTextureKind
}

func (id ID) String() string {
	return fmt.Sprintf("%s[color=%s,depth=%s]", id.Kind, id.Color, id.Depth)
}

// Effect is a fragment stage that samples optional color and depth inputs.
type Effect interface {
	// FragmentShaderSource returns the annotated WGSL of the fragment stage: the color texture
	// helper, the depth texture helper, tone mapping, color mapping and the effect body, in that order.
	//
	// Parameters:
	//   - lights: the light list
	//   - color: the color input, or nil
	//   - depth: the depth input, or nil
	//
	// Returns:
	//   - string: annotated WGSL with an fs_main entry point
	FragmentShaderSource(lights []light.Light, color *ColorTexture, depth *DepthTexture) string

	// FragmentAttributes returns the vertex attributes the fragment stage reads.
	FragmentAttributes() shader.FragmentAttributes

	// ID returns the identity of the fragment stage for the given inputs.
	ID(color *ColorTexture, depth *DepthTexture) ID

	// UseUniforms binds the inputs and pushes every uniform the fragment stage declares.
	//
	// Parameters:
	//   - program: a program compiled with FragmentShaderSource for the same inputs
	//   - viewer: supplies the tone and color mapping
	//   - lights: the light list
	//   - color: the color input, or nil
	//   - depth: the depth input, or nil
	//
	// Returns:
	//   - error: the first contract error returned by the program
	UseUniforms(program gpu.Program, viewer camera.Viewer, lights []light.Light, color *ColorTexture, depth *DepthTexture) error

	// RenderStates returns the fixed-function states the effect is drawn with.
	RenderStates() gpu.RenderStates
}

var (
	_ Effect = &OitResolveEffect{}
	_ Effect = &CopyEffect{}
)

// composeFragmentSource concatenates the helpers and body in the order the body depends on them.
func composeFragmentSource(color *ColorTexture, depth *DepthTexture, body string) string {
	src := ""
	if color != nil {
		src += color.FragmentShaderSource() + "\n"
	}
	if depth != nil {
		src += depth.FragmentShaderSource() + "\n"
	}
	return src + shader.IncludeLine(shader.SnippetToneMapping) + shader.IncludeLine(shader.SnippetColorMapping) + body
}

// useInputUniforms binds the inputs and the viewer's tone and color mapping.
func useInputUniforms(program gpu.Program, viewer camera.Viewer, color *ColorTexture, depth *DepthTexture) error {
	if color != nil {
		if err := color.UseUniforms(program); err != nil {
			return err
		}
	}
	if depth != nil {
		if err := depth.UseUniforms(program); err != nil {
			return err
		}
	}
	if err := viewer.ToneMapping().UseUniforms(program); err != nil {
		return err
	}
	return viewer.ColorMapping().UseUniforms(program)
}

func colorKind(color *ColorTexture) ColorTextureKind {
	if color == nil {
		return ColorTextureNone
	}
	return color.Kind()
}

func depthKind(depth *DepthTexture) DepthTextureKind {
	if depth == nil {
		return DepthTextureNone
	}
	return DepthTextureSingle
}
