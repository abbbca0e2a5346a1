package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NormalMatrix returns the inverse transpose of the given model matrix, used to bring
// normals and tangents into world space under non-uniform scale.
// A singular matrix yields the zero matrix, matching mgl32.Mat4.Inv.
//
// Parameters:
//   - model: the local-to-world transformation
//
// Returns:
//   - mgl32.Mat4: the normal matrix
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Inv().Transpose()
}

// TransformPoint applies an affine transformation to a point (w = 1).
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
