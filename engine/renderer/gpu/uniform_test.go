package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32At(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func TestEncodeUniformScalars(t *testing.T) {
	b, err := EncodeUniform(float32(1.5), "f32")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), float32At(b, 0))

	b, err = EncodeUniform(int(-3), "i32")
	require.NoError(t, err)
	assert.Equal(t, int32(-3), int32(binary.LittleEndian.Uint32(b)))

	b, err = EncodeUniform(true, "u32")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(b))

	b, err = EncodeUniform(uint8(3), "u32")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(b))
}

func TestEncodeUniformVectors(t *testing.T) {
	b, err := EncodeUniform(mgl32.Vec3{1, 2, 3}, "vec3<f32>")
	require.NoError(t, err)
	assert.Len(t, b, 12)
	assert.Equal(t, float32(3), float32At(b, 2))

	b, err = EncodeUniform(mgl32.Vec4{1, 2, 3, 4}, "vec4<f32>")
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestEncodeUniformMat3Padding(t *testing.T) {
	m := mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	b, err := EncodeUniform(m, "mat3x3<f32>")
	require.NoError(t, err)
	require.Len(t, b, 48)

	want := []float32{1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0}
	for i, w := range want {
		assert.Equal(t, w, float32At(b, i), "float %d", i)
	}
}

func TestEncodeUniformMat4Array(t *testing.T) {
	joints := []mgl32.Mat4{mgl32.Ident4(), mgl32.Translate3D(1, 2, 3)}
	b, err := EncodeUniform(joints, "array<mat4x4<f32>, 4>")
	require.NoError(t, err)
	require.Len(t, b, 4*64)

	assert.Equal(t, float32(1), float32At(b, 0))
	assert.Equal(t, float32(1), float32At(b, 16+12))
	assert.Equal(t, float32(0), float32At(b, 32))

	_, err = EncodeUniform(make([]mgl32.Mat4, 5), "array<mat4x4<f32>, 4>")
	assert.ErrorIs(t, err, ErrUniformType)
}

func TestEncodeUniformTypeMismatch(t *testing.T) {
	cases := []struct {
		name     string
		value    any
		wgslType string
	}{
		{"float64 for f32", 1.0, "f32"},
		{"vec3 for vec4", mgl32.Vec3{}, "vec4<f32>"},
		{"mat4 for mat3", mgl32.Ident4(), "mat3x3<f32>"},
		{"float for u32", float32(1), "u32"},
		{"unsupported type", float32(1), "vec2<i32>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeUniform(tc.value, tc.wgslType)
			assert.ErrorIs(t, err, ErrUniformType)
		})
	}
}
