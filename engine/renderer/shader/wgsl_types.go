package shader

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormatInfo holds the wgpu vertex format and its byte size.
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// sampledTextureInfo holds the view dimension and multisampled flag for a sampled texture type.
type sampledTextureInfo struct {
	viewDimension wgpu.TextureViewDimension
	multisampled  bool
}

// wgslTypeLayout holds the byte size and alignment of a WGSL type in the uniform address space.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField is a single struct member extracted from WGSL source.
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct is a WGSL struct block extracted from source.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// wgslVertexFormatMap maps canonical WGSL vertex input types to wgpu vertex formats.
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
	"vec2<i32>": {wgpu.VertexFormatSint32x2, 8},
	"vec3<i32>": {wgpu.VertexFormatSint32x3, 12},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec2<u32>": {wgpu.VertexFormatUint32x2, 8},
	"vec3<u32>": {wgpu.VertexFormatUint32x3, 12},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
}

// wgslSampledTextureMap maps WGSL texture base names to their view dimension and multisampled flag.
var wgslSampledTextureMap = map[string]sampledTextureInfo{
	"texture_2d":              {wgpu.TextureViewDimension2D, false},
	"texture_2d_array":        {wgpu.TextureViewDimension2DArray, false},
	"texture_3d":              {wgpu.TextureViewDimension3D, false},
	"texture_cube":            {wgpu.TextureViewDimensionCube, false},
	"texture_multisampled_2d": {wgpu.TextureViewDimension2D, true},
	"texture_depth_2d":        {wgpu.TextureViewDimension2D, false},
	"texture_depth_2d_array":  {wgpu.TextureViewDimension2DArray, false},
	"texture_depth_cube":      {wgpu.TextureViewDimensionCube, false},
}

// wgslSampleTypeMap maps WGSL texel scalar types to wgpu texture sample types.
var wgslSampleTypeMap = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

// wgslPrimitiveLayoutMap maps canonical WGSL scalar, vector, and matrix types to their
// size and alignment.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"bool": {4, 4},

	"vec2<f32>": {8, 8},
	"vec3<f32>": {12, 16},
	"vec4<f32>": {16, 16},
	"vec2<i32>": {8, 8},
	"vec3<i32>": {12, 16},
	"vec4<i32>": {16, 16},
	"vec2<u32>": {8, 8},
	"vec3<u32>": {12, 16},
	"vec4<u32>": {16, 16},

	"mat2x2<f32>": {16, 8},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
}

// shorthandTypes maps the predeclared WGSL aliases to their long form.
var shorthandTypes = map[string]string{
	"vec2f": "vec2<f32>", "vec3f": "vec3<f32>", "vec4f": "vec4<f32>",
	"vec2i": "vec2<i32>", "vec3i": "vec3<i32>", "vec4i": "vec4<i32>",
	"vec2u": "vec2<u32>", "vec3u": "vec3<u32>", "vec4u": "vec4<u32>",
	"mat2x2f": "mat2x2<f32>", "mat3x3f": "mat3x3<f32>", "mat4x4f": "mat4x4<f32>",
}

// CanonicalType rewrites WGSL type aliases and spacing into one form, so "array<mat4x4f,64>"
// and "array<mat4x4<f32>, 64>" compare equal.
//
// Parameters:
//   - typeName: a WGSL type as written in source
//
// Returns:
//   - string: the canonical spelling
func CanonicalType(typeName string) string {
	t := strings.Join(strings.Fields(typeName), "")
	if long, ok := shorthandTypes[t]; ok {
		return long
	}
	if inner, ok := strings.CutPrefix(t, "array<"); ok {
		inner = strings.TrimSuffix(inner, ">")
		parts := splitAtTopLevelCommas(inner)
		if len(parts) == 2 {
			return "array<" + CanonicalType(parts[0]) + ", " + strings.TrimSpace(parts[1]) + ">"
		}
		return "array<" + CanonicalType(inner) + ">"
	}
	return t
}
