package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func process(t *testing.T, source string) string {
	t.Helper()
	out, err := NewPreProcessor().Process(source)
	require.NoError(t, err)
	return out
}

func TestReflectLinesWithColorMaterial(t *testing.T) {
	src := process(t, DefineLine(DefineVertexColors)+LinesSource+"\n"+ColorMaterialSource)

	r, err := Reflect(src)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", r.VertexEntry)
	assert.Equal(t, "fs_main", r.FragmentEntry)

	want := []UniformField{
		{Name: "clipPlane", Type: "vec4<f32>", Offset: 0, Size: 16},
		{Name: "viewProjection", Type: "mat4x4<f32>", Offset: 16, Size: 64},
		{Name: "modelMatrix", Type: "mat4x4<f32>", Offset: 80, Size: 64},
		{Name: "toneMappingType", Type: "u32", Offset: 144, Size: 4},
		{Name: "colorMappingType", Type: "u32", Offset: 148, Size: 4},
		{Name: "surfaceColor", Type: "vec4<f32>", Offset: 160, Size: 16},
	}
	assert.Equal(t, want, r.Uniforms)
	assert.Equal(t, uint64(176), r.UniformBlockSize)

	require.Len(t, r.Attributes, 2)
	assert.Equal(t, VertexAttribute{Name: "position", Type: "vec3<f32>", Location: 0, Format: wgpu.VertexFormatFloat32x3, Size: 12}, r.Attributes[0])
	assert.Equal(t, VertexAttribute{Name: "color", Type: "vec4<f32>", Location: 4, Format: wgpu.VertexFormatFloat32x4, Size: 16}, r.Attributes[1])
	assert.Empty(t, r.Textures)

	require.Contains(t, r.Layouts, uint32(0))
	entries := r.Layouts[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
	assert.Equal(t, uint64(176), entries[0].Buffer.MinBindingSize)
}

func TestReflectWithoutVertexColors(t *testing.T) {
	r, err := Reflect(process(t, LinesSource+"\n"+ColorMaterialSource))
	require.NoError(t, err)

	_, ok := r.Attribute("color")
	assert.False(t, ok)
	pos, ok := r.Attribute("position")
	require.True(t, ok)
	assert.False(t, pos.Instance)
}

func TestReflectInstanceAttributes(t *testing.T) {
	src := process(t, DefineLine("USE_INSTANCE_COLORS")+InstancedMeshSource+"\n"+ColorMaterialSource)
	r, err := Reflect(src)
	require.NoError(t, err)

	col, ok := r.Attribute("instance_column0")
	require.True(t, ok)
	assert.True(t, col.Instance)
	assert.Equal(t, uint32(8), col.Location)

	color, ok := r.Attribute("instance_color")
	require.True(t, ok)
	assert.Equal(t, uint32(12), color.Location)
}

func TestReflectSkinnedJointArray(t *testing.T) {
	src := process(t, FragmentAttributes{Normal: true}.Defines()+SkinnedMeshSource+"\n"+ColorMaterialSource)
	r, err := Reflect(src)
	require.NoError(t, err)

	joints, ok := r.Uniform("jointTransforms")
	require.True(t, ok)
	assert.Equal(t, "array<mat4x4<f32>, 64>", joints.Type)
	assert.Equal(t, uint64(64*64), joints.Size)

	_, ok = r.Uniform("normalMatrix")
	assert.True(t, ok)

	j, ok := r.Attribute("joints")
	require.True(t, ok)
	assert.Equal(t, wgpu.VertexFormatUint32x4, j.Format)
}

func TestReflectTextures(t *testing.T) {
	src := process(t, DefineLine("USE_COLOR_TEXTURE")+FragmentAttributes{UV: true}.Defines()+MeshSource+"\n"+ColorMaterialSource)
	r, err := Reflect(src)
	require.NoError(t, err)

	tex, ok := r.Texture("colorTexture")
	require.True(t, ok)
	assert.Equal(t, uint32(1), tex.Group)
	assert.Equal(t, uint32(0), tex.Binding)
	assert.Equal(t, "colorTextureSampler", tex.Sampler)
	assert.Equal(t, uint32(1), tex.SamplerBinding)
	assert.False(t, tex.Depth)

	require.Contains(t, r.Layouts, uint32(1))
	assert.Len(t, r.Layouts[1].Entries, 2)
}

func TestReflectMissingEntryPoint(t *testing.T) {
	_, err := Reflect("fn helper() {}")
	assert.ErrorIs(t, err, ErrNoEntryPoint)

	_, err = Reflect("@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }")
	assert.ErrorIs(t, err, ErrNoEntryPoint)
}

func TestCanonicalType(t *testing.T) {
	tests := map[string]string{
		"vec4f":                  "vec4<f32>",
		"mat4x4f":                "mat4x4<f32>",
		"vec3< f32 >":            "vec3<f32>",
		"array<mat4x4f,64>":      "array<mat4x4<f32>, 64>",
		"array<mat4x4<f32>, 64>": "array<mat4x4<f32>, 64>",
		"u32":                    "u32",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalType(in), in)
	}
}
