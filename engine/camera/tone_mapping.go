package camera

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names read by the tone_mapping and color_mapping shader snippets.
const (
	ToneMappingUniform  = "toneMappingType"
	ColorMappingUniform = "colorMappingType"
)

// ToneMapping maps high dynamic range colors into [0, 1]. The value is pushed as a uniform,
// so switching it never recompiles a program.
type ToneMapping uint32

const (
	// ToneMappingNone clamps nothing and passes colors through.
	ToneMappingNone ToneMapping = iota
	ToneMappingReinhard
	ToneMappingAces
	ToneMappingFilmic
)

var toneMappingNames = map[ToneMapping]string{
	ToneMappingNone:     "none",
	ToneMappingReinhard: "reinhard",
	ToneMappingAces:     "aces",
	ToneMappingFilmic:   "filmic",
}

func (t ToneMapping) String() string {
	if name, ok := toneMappingNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ToneMapping(%d)", uint32(t))
}

// ParseToneMapping maps a name as returned by String back to a ToneMapping.
func ParseToneMapping(name string) (ToneMapping, error) {
	for t, n := range toneMappingNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return ToneMappingNone, fmt.Errorf("camera: unknown tone mapping %q", name)
}

// UseUniforms pushes the tone mapping selector into the program.
func (t ToneMapping) UseUniforms(program gpu.Program) error {
	return program.UseUniform(ToneMappingUniform, uint32(t))
}

// Apply runs the tone mapping on the CPU, with the same curves as the shader snippet.
//
// Parameters:
//   - color: a linear HDR color
//
// Returns:
//   - mgl32.Vec3: the mapped color
func (t ToneMapping) Apply(color mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i, c := range color {
		switch t {
		case ToneMappingReinhard:
			out[i] = c / (1 + c)
		case ToneMappingAces:
			out[i] = clamp01((c * (2.51*c + 0.03)) / (c*(2.43*c+0.59) + 0.14))
		case ToneMappingFilmic:
			x := math32.Max(0, c-0.004)
			out[i] = math32.Pow((x*(6.2*x+0.5))/(x*(6.2*x+1.7)+0.06), 2.2)
		default:
			out[i] = c
		}
	}
	return out
}

// ColorMapping converts the linear shading result into the color space of the target.
type ColorMapping uint32

const (
	// ColorMappingNone writes linear values.
	ColorMappingNone ColorMapping = iota

	// ColorMappingComputeToSrgb encodes linear values as sRGB.
	ColorMappingComputeToSrgb
)

func (c ColorMapping) String() string {
	switch c {
	case ColorMappingNone:
		return "none"
	case ColorMappingComputeToSrgb:
		return "srgb"
	}
	return fmt.Sprintf("ColorMapping(%d)", uint32(c))
}

// ParseColorMapping maps "none" or "srgb" to a ColorMapping.
func ParseColorMapping(name string) (ColorMapping, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return ColorMappingNone, nil
	case "srgb", "":
		return ColorMappingComputeToSrgb, nil
	}
	return ColorMappingNone, fmt.Errorf("camera: unknown color mapping %q", name)
}

// UseUniforms pushes the color mapping selector into the program.
func (c ColorMapping) UseUniforms(program gpu.Program) error {
	return program.UseUniform(ColorMappingUniform, uint32(c))
}

// Apply runs the color mapping on the CPU.
func (c ColorMapping) Apply(color mgl32.Vec3) mgl32.Vec3 {
	if c != ColorMappingComputeToSrgb {
		return color
	}
	var out mgl32.Vec3
	for i, v := range color {
		if v <= 0.0031308 {
			out[i] = v * 12.92
		} else {
			out[i] = 1.055*math32.Pow(v, 1/2.4) - 0.055
		}
	}
	return out
}

func clamp01(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}
