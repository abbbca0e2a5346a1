package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestComputeAABB(t *testing.T) {
	box := ComputeAABB([]mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})

	assert.False(t, box.IsEmpty())
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, box.Min())
	assert.Equal(t, mgl32.Vec3{1, 4, 5}, box.Max())
	assert.Equal(t, mgl32.Vec3{0, 1, 2.5}, box.Center())
	assert.Equal(t, mgl32.Vec3{2, 6, 5}, box.Size())
	assert.True(t, box.Contains(mgl32.Vec3{0, 0, 1}))
	assert.False(t, box.Contains(mgl32.Vec3{0, 0, 6}))
}

func TestEmptyAABB(t *testing.T) {
	box := ComputeAABB(nil)
	assert.True(t, box.IsEmpty())
	assert.Equal(t, mgl32.Vec3{}, box.Size())

	box.Transform(mgl32.Translate3D(1, 2, 3))
	assert.True(t, box.IsEmpty())

	box.ExpandWithAABB(NewAABB(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 0}))
	assert.False(t, box.IsEmpty())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, box.Min())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, box.Max())
}

func TestAABBTransform(t *testing.T) {
	local := NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 2, 3})

	tests := []struct {
		name    string
		m       mgl32.Mat4
		wantMin mgl32.Vec3
		wantMax mgl32.Vec3
	}{
		{"identity", mgl32.Ident4(), mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 2, 3}},
		{"translation", mgl32.Translate3D(1, 2, 3), mgl32.Vec3{0, 1, 2}, mgl32.Vec3{2, 4, 6}},
		{"non uniform scale", mgl32.Scale3D(2, 1, 0.5), mgl32.Vec3{-2, -1, -0.5}, mgl32.Vec3{2, 2, 1.5}},
		{"rotation about z", mgl32.HomogRotate3DZ(mgl32.DegToRad(90)), mgl32.Vec3{-2, -1, -1}, mgl32.Vec3{1, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := local.Transformed(tt.m)
			assertVec3InDelta(t, tt.wantMin, got.Min())
			assertVec3InDelta(t, tt.wantMax, got.Max())
		})
	}

	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, local.Min(), "Transformed must not modify the receiver")
}
