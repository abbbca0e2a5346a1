package object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p0 = mgl32.Vec3{0, 0, 0}
	p1 = mgl32.Vec3{1, 0, 0}
	p2 = mgl32.Vec3{1, 1, 0}
	p3 = mgl32.Vec3{0, 1, 0}
)

func TestWireframeLines(t *testing.T) {
	tests := []struct {
		name string
		mesh *geometry.CpuMesh
		want []mgl32.Vec3
	}{
		{
			name: "single triangle",
			mesh: &geometry.CpuMesh{Positions: []mgl32.Vec3{p0, p1, p2}, Indices: []uint32{0, 1, 2}},
			want: []mgl32.Vec3{p0, p1, p1, p2, p2, p0},
		},
		{
			name: "unindexed triangle",
			mesh: &geometry.CpuMesh{Positions: []mgl32.Vec3{p0, p1, p2}},
			want: []mgl32.Vec3{p0, p1, p1, p2, p2, p0},
		},
		{
			name: "quad shares its diagonal once",
			mesh: &geometry.CpuMesh{Positions: []mgl32.Vec3{p0, p1, p2, p3}, Indices: []uint32{0, 1, 2, 0, 2, 3}},
			want: []mgl32.Vec3{p0, p1, p1, p2, p0, p2, p2, p3, p3, p0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WireframeLines(tt.mesh))
		})
	}

	// Six faces of four outer edges and one diagonal.
	assert.Len(t, WireframeLines(geometry.NewCubeMesh()), 60)
}

func TestWireframeRender(t *testing.T) {
	ctx := gputest.NewContext()
	r := renderer.NewRenderer(ctx)
	target, err := ctx.NewRenderTarget(8, 8)
	require.NoError(t, err)
	viewer := camera.NewCamera(camera.WithPosition(mgl32.Vec3{2, 2, 2}), camera.WithViewport(target.Viewport()))

	w, err := NewWireframe(r, geometry.NewCubeMesh(), WithColor(common.Red), WithLineWidth(1.5))
	require.NoError(t, err)
	plain, err := NewWireframe(r, &geometry.CpuMesh{Positions: []mgl32.Vec3{p0, p1, p2}})
	require.NoError(t, err)
	assert.Equal(t, common.Black, plain.Color())
	assert.Equal(t, float32(1), plain.LineWidth())
	assert.Equal(t, material.Opaque, w.MaterialType())

	w.SetLineWidth(2)
	w.SetColor(common.Green)
	require.NoError(t, r.Render(target, common.ClearColorAndDepth(1, 1, 1, 1, 1), viewer, nil, w, plain))

	draws := ctx.Draws()
	require.Len(t, draws, 2)
	assert.Equal(t, gpu.Lines, draws[0].VertexType)
	assert.Equal(t, uint32(60), draws[0].Count)
	assert.Equal(t, uint32(6), draws[1].Count)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, draws[0].States.DepthTest)
	assert.Equal(t, float32(2), draws[0].States.LineWidth)
	assert.Same(t, draws[0].Program, draws[1].Program)
	assert.Equal(t, 1, ctx.Compiles())
}

func TestWireframeForwardsGeometry(t *testing.T) {
	ctx := gputest.NewContext()
	r := renderer.NewRenderer(ctx, renderer.WithAnimationWorkers(1))
	w, err := NewWireframe(r, geometry.NewCubeMesh())
	require.NoError(t, err)

	w.SetTransformation(mgl32.Translate3D(1, 0, 0))
	assert.InDelta(t, 0.5, w.AABB().Min().X(), 1e-5)

	w.SetAnimation(func(t float32) mgl32.Mat4 { return mgl32.Translate3D(0, t, 0) })
	r.Animate(2, w)
	assert.InDelta(t, 1.5, w.AABB().Min().Y(), 1e-5)

	plane := common.NewClipPlane(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	w.SetClipPlane(&plane)
	require.NotNil(t, w.ClipPlane())

	_, err = NewWireframe(r, &geometry.CpuMesh{})
	assert.ErrorIs(t, err, geometry.ErrNoPositions)
}
