package light

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// uniformName returns the per-light uniform name, e.g. light2Color.
func uniformName(index int, field string) string {
	return fmt.Sprintf("light%d%s", index, field)
}

func uniformLine(index int, field, wgslType string) string {
	return fmt.Sprintf("//@oxy:uniform %s %s\n", uniformName(index, field), wgslType)
}

func (l *lightImpl) ShaderSource(index int) string {
	var sb strings.Builder
	sb.WriteString(shader.IncludeLine(shader.SnippetLighting))
	sb.WriteString(uniformLine(index, "Color", "vec3<f32>"))
	switch l.lightType {
	case LightTypeDirectional:
		sb.WriteString(uniformLine(index, "Direction", "vec3<f32>"))
	case LightTypePoint:
		sb.WriteString(uniformLine(index, "Position", "vec3<f32>"))
		sb.WriteString(uniformLine(index, "Range", "f32"))
	case LightTypeSpot:
		sb.WriteString(uniformLine(index, "Position", "vec3<f32>"))
		sb.WriteString(uniformLine(index, "Direction", "vec3<f32>"))
		sb.WriteString(uniformLine(index, "Range", "f32"))
		sb.WriteString(uniformLine(index, "InnerCone", "f32"))
		sb.WriteString(uniformLine(index, "OuterCone", "f32"))
	}

	u := func(field string) string {
		return shader.UniformBlockName + "." + uniformName(index, field)
	}
	fmt.Fprintf(&sb, "\nfn calculate_lighting%d(surface: Surface) -> vec3<f32> {\n", index)
	switch l.lightType {
	case LightTypeAmbient:
		fmt.Fprintf(&sb, "    return %s * surface.albedo * surface.occlusion;\n", u("Color"))
	case LightTypeDirectional:
		fmt.Fprintf(&sb, "    return brdf(surface, -normalize(%s), %s);\n", u("Direction"), u("Color"))
	case LightTypePoint:
		fmt.Fprintf(&sb, "    let to_light = %s - surface.position;\n", u("Position"))
		sb.WriteString("    let distance = length(to_light);\n")
		fmt.Fprintf(&sb, "    let radiance = %s * range_attenuation(distance, %s);\n", u("Color"), u("Range"))
		sb.WriteString("    return brdf(surface, to_light / max(distance, 0.0001), radiance);\n")
	case LightTypeSpot:
		fmt.Fprintf(&sb, "    let to_light = %s - surface.position;\n", u("Position"))
		sb.WriteString("    let distance = length(to_light);\n")
		sb.WriteString("    let l = to_light / max(distance, 0.0001);\n")
		fmt.Fprintf(&sb, "    let cos_angle = dot(-l, normalize(%s));\n", u("Direction"))
		fmt.Fprintf(&sb, "    let cone = smoothstep(%s, %s, cos_angle);\n", u("OuterCone"), u("InnerCone"))
		fmt.Fprintf(&sb, "    let radiance = %s * range_attenuation(distance, %s) * cone;\n", u("Color"), u("Range"))
		sb.WriteString("    return brdf(surface, l, radiance);\n")
	default:
		sb.WriteString("    return vec3<f32>(0.0);\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func (l *lightImpl) UseUniforms(program gpu.Program, index int) error {
	if err := program.UseUniform(uniformName(index, "Color"), l.radiance()); err != nil {
		return err
	}
	switch l.lightType {
	case LightTypeDirectional:
		return program.UseUniform(uniformName(index, "Direction"), l.direction)
	case LightTypePoint:
		if err := program.UseUniform(uniformName(index, "Position"), l.position); err != nil {
			return err
		}
		return program.UseUniform(uniformName(index, "Range"), l.lightRange)
	case LightTypeSpot:
		values := []struct {
			field string
			value any
		}{
			{"Position", l.position},
			{"Direction", l.direction},
			{"Range", l.lightRange},
			{"InnerCone", l.innerCone},
			{"OuterCone", l.outerCone},
		}
		for _, v := range values {
			if err := program.UseUniform(uniformName(index, v.field), v.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// FragmentSource returns the WGSL of every light followed by total_lighting, which sums
// their contributions. With no lights total_lighting returns black.
//
// Parameters:
//   - lights: the light list
//
// Returns:
//   - string: annotated WGSL defining total_lighting(surface: Surface) -> vec3<f32>
func FragmentSource(lights []Light) string {
	var sb strings.Builder
	sb.WriteString(shader.IncludeLine(shader.SnippetLighting))
	for i, l := range lights {
		sb.WriteString(l.ShaderSource(i))
	}
	sb.WriteString("\nfn total_lighting(surface: Surface) -> vec3<f32> {\n")
	sb.WriteString("    var color = vec3<f32>(0.0);\n")
	for i := range lights {
		fmt.Fprintf(&sb, "    color = color + calculate_lighting%d(surface);\n", i)
	}
	sb.WriteString("    return color;\n}\n")
	return sb.String()
}

// UseUniforms pushes the uniforms of every light into the program, in list order.
//
// Parameters:
//   - program: a program compiled from FragmentSource(lights)
//   - lights: the light list
//
// Returns:
//   - error: the first error returned by the program
func UseUniforms(program gpu.Program, lights []Light) error {
	for i, l := range lights {
		if err := l.UseUniforms(program, i); err != nil {
			return fmt.Errorf("light %d (%s): %w", i, l.Type(), err)
		}
	}
	return nil
}
