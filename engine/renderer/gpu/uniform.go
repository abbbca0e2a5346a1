package gpu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/go-gl/mathgl/mgl32"
)

// EncodeUniform converts a Go value into the uniform-address-space bytes of the given WGSL type.
//
// Supported pairs:
//   - f32: float32
//   - i32: int32, int
//   - u32: uint32, uint8, uint16, bool
//   - vec2<f32>, vec3<f32>, vec4<f32>: mgl32.Vec2, mgl32.Vec3, mgl32.Vec4
//   - mat3x3<f32>: mgl32.Mat3, padded to three 16 byte columns
//   - mat4x4<f32>: mgl32.Mat4
//   - array<mat4x4<f32>, N>: []mgl32.Mat4 with at most N elements, zero padded
//
// Parameters:
//   - value: the Go value
//   - wgslType: the declared WGSL type, in any spelling accepted by shader.CanonicalType
//
// Returns:
//   - []byte: the encoded bytes
//   - error: ErrUniformType when the value does not match the type
func EncodeUniform(value any, wgslType string) ([]byte, error) {
	switch wgslType {
	case "f32":
		if v, ok := value.(float32); ok {
			return common.ValueToBytes(&v), nil
		}
	case "i32":
		switch v := value.(type) {
		case int32:
			return common.ValueToBytes(&v), nil
		case int:
			i := int32(v)
			return common.ValueToBytes(&i), nil
		}
	case "u32":
		var u uint32
		switch v := value.(type) {
		case uint32:
			u = v
		case uint16:
			u = uint32(v)
		case uint8:
			u = uint32(v)
		case bool:
			if v {
				u = 1
			}
		default:
			return nil, typeMismatch(value, wgslType)
		}
		return common.ValueToBytes(&u), nil
	case "vec2<f32>":
		if v, ok := value.(mgl32.Vec2); ok {
			return common.ValueToBytes(&v), nil
		}
	case "vec3<f32>":
		if v, ok := value.(mgl32.Vec3); ok {
			return common.ValueToBytes(&v), nil
		}
	case "vec4<f32>":
		if v, ok := value.(mgl32.Vec4); ok {
			return common.ValueToBytes(&v), nil
		}
	case "mat3x3<f32>":
		if m, ok := value.(mgl32.Mat3); ok {
			padded := [12]float32{
				m[0], m[1], m[2], 0,
				m[3], m[4], m[5], 0,
				m[6], m[7], m[8], 0,
			}
			return common.ValueToBytes(&padded), nil
		}
	case "mat4x4<f32>":
		if m, ok := value.(mgl32.Mat4); ok {
			return common.ValueToBytes(&m), nil
		}
	default:
		if n, ok := mat4ArrayLength(wgslType); ok {
			ms, ok := value.([]mgl32.Mat4)
			if !ok || len(ms) > n {
				break
			}
			out := make([]byte, n*64)
			copy(out, common.SliceToBytes(ms))
			return out, nil
		}
	}
	return nil, typeMismatch(value, wgslType)
}

func typeMismatch(value any, wgslType string) error {
	return fmt.Errorf("%w: %T cannot be written to %s", ErrUniformType, value, wgslType)
}

func mat4ArrayLength(wgslType string) (int, bool) {
	inner, ok := strings.CutPrefix(wgslType, "array<mat4x4<f32>, ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(inner, ">"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
