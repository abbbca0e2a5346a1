package shader

import (
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// roundUpAlign rounds value up to the next multiple of alignment, a power of two.
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a WGSL type to its uniform-space size and alignment using the
// primitive table and already-computed struct layouts. Fixed-size arrays are resolved with
// their element stride; runtime-sized arrays and unknown types are not.
//
// Parameters:
//   - typeName: the WGSL type, e.g. "f32", "Uniforms", "array<mat4x4<f32>, 64>"
//   - knownTypes: struct layouts resolved so far
//
// Returns:
//   - wgslTypeLayout: the resolved layout
//   - bool: true if the type could be resolved
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	typeName = CanonicalType(typeName)
	if layout, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := knownTypes[typeName]; ok {
		return layout, true
	}

	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok {
		return wgslTypeLayout{}, false
	}
	parts := splitAtTopLevelCommas(strings.TrimSuffix(inner, ">"))
	if len(parts) != 2 {
		return wgslTypeLayout{}, false
	}
	elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]), knownTypes)
	if !ok {
		return wgslTypeLayout{}, false
	}
	count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	// uniform arrays use a 16 byte aligned stride
	align := roundUpAlign(16, elem.align)
	stride := roundUpAlign(align, elem.size)
	return wgslTypeLayout{count * stride, align}, true
}

// structFieldOffsets places each non-builtin field at its aligned offset and returns the
// offsets with the struct's total layout.
//
// Returns:
//   - []uint64: one offset per field, builtin fields get 0
//   - wgslTypeLayout: the struct's size rounded to its alignment
//   - bool: false if a field type could not be resolved
func structFieldOffsets(ps parsedStruct, knownTypes map[string]wgslTypeLayout) ([]uint64, wgslTypeLayout, bool) {
	offsets := make([]uint64, len(ps.fields))
	offset := uint64(0)
	maxAlign := uint64(1)

	for i, field := range ps.fields {
		if field.isBuiltin {
			continue
		}
		fl, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			return nil, wgslTypeLayout{}, false
		}
		offset = roundUpAlign(fl.align, offset)
		offsets[i] = offset
		offset += fl.size
		maxAlign = max(maxAlign, fl.align)
	}
	// structs in the uniform address space are 16 byte aligned
	maxAlign = roundUpAlign(16, maxAlign)
	return offsets, wgslTypeLayout{roundUpAlign(maxAlign, offset), maxAlign}, true
}

// computeStructSizes resolves the layout of every parsed struct, iterating until structs
// that depend on other structs settle.
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := append([]parsedStruct(nil), structs...)

	for len(remaining) > 0 {
		next := remaining[:0]
		for _, ps := range remaining {
			if _, layout, ok := structFieldOffsets(ps, resolved); ok {
				resolved[ps.name] = layout
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(remaining) {
			break
		}
		remaining = next
	}
	return resolved
}

// classifyResource creates a bind group layout entry for a parsed resource declaration.
// The address space decides buffers, the type name decides textures and samplers.
//
// Parameters:
//   - binding: the binding index from @binding(N)
//   - visibility: the shader stages the entry is visible to
//   - addressSpace: the var<> qualifier, empty for handle types
//   - typeName: the WGSL type of the variable
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated layout entry
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	if addressSpace != "" {
		switch {
		case addressSpace == "uniform":
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case strings.Contains(addressSpace, "read_write"):
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		case strings.HasPrefix(addressSpace, "storage"):
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
		return entry
	}

	base, param := splitTypeParams(typeName)
	switch {
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_depth_"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		if info, ok := wgslSampledTextureMap[base]; ok {
			entry.Texture.ViewDimension = info.viewDimension
			entry.Texture.Multisampled = info.multisampled
		}
	case strings.HasPrefix(typeName, "texture_"):
		if info, ok := wgslSampledTextureMap[base]; ok {
			entry.Texture.ViewDimension = info.viewDimension
			entry.Texture.Multisampled = info.multisampled
		}
		if st, ok := wgslSampleTypeMap[param]; ok {
			entry.Texture.SampleType = st
		}
	}
	return entry
}

// splitTypeParams splits "texture_2d<f32>" into ("texture_2d", "f32").
func splitTypeParams(typeName string) (base string, params string) {
	before, after, ok := strings.Cut(typeName, "<")
	if !ok {
		return typeName, ""
	}
	return before, strings.TrimSpace(strings.TrimSuffix(after, ">"))
}

// stripComments removes line comments and nested block comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

func stripLineComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// splitAtTopLevelCommas splits at commas outside angle brackets, so array<T, N> stays whole.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
