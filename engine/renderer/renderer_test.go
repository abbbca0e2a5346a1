package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/effect"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx    *gputest.Context
	r      Renderer
	target gpu.RenderTarget
	viewer camera.Viewer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := gputest.NewContext()
	target, err := ctx.NewRenderTarget(8, 8)
	require.NoError(t, err)
	return &fixture{
		ctx:    ctx,
		r:      NewRenderer(ctx, WithAnimationWorkers(1)),
		target: target,
		viewer: camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 5}), camera.WithViewport(target.Viewport())),
	}
}

func (f *fixture) lines(t *testing.T, n int) *geometry.Lines {
	t.Helper()
	positions := make([]mgl32.Vec3, n)
	for i := range positions {
		positions[i] = mgl32.Vec3{float32(i), 0, 0}
	}
	l, err := geometry.NewLines(f.ctx, positions)
	require.NoError(t, err)
	return l
}

func (f *fixture) frame(t *testing.T, draw func()) {
	t.Helper()
	require.NoError(t, f.ctx.BeginFrame(f.target, common.ClearColorAndDepth(0, 0, 0, 1, 1)))
	draw()
	require.NoError(t, f.ctx.EndFrame())
}

func TestProgramCompiledOncePerKey(t *testing.T) {
	f := newFixture(t)
	short, long := f.lines(t, 2), f.lines(t, 4)
	mat := material.NewColorMaterial(material.WithColor(common.Red))

	for i := 0; i < 3; i++ {
		f.frame(t, func() {
			require.NoError(t, f.r.RenderWithMaterial(f.viewer, short, mat, nil))
			require.NoError(t, f.r.RenderWithMaterial(f.viewer, long, mat, nil))
		})
	}

	assert.Equal(t, 1, f.ctx.Compiles())
	draws := f.ctx.Draws()
	require.Len(t, draws, 6)
	assert.Equal(t, uint32(2), draws[0].Count)
	assert.Equal(t, uint32(4), draws[1].Count)
	for _, d := range draws {
		assert.Same(t, draws[0].Program, d.Program)
	}
	assert.Equal(t, CacheStats{Programs: 1, Hits: 5, Misses: 1}, f.r.Cache().Stats())
}

func TestLightsInKeyOnlyForLitMaterials(t *testing.T) {
	f := newFixture(t)
	mesh, err := geometry.NewMesh(f.ctx, geometry.NewCubeMesh())
	require.NoError(t, err)

	ambient := []light.Light{light.NewAmbientLight(0.2)}
	two := []light.Light{light.NewAmbientLight(0.2), light.NewDirectionalLight(1, mgl32.Vec3{0, -1, 0})}
	other := []light.Light{light.NewAmbientLight(0.5)}

	color := material.NewColorMaterial()
	physical := material.NewPhysicalMaterial()

	f.frame(t, func() {
		require.NoError(t, f.r.RenderWithMaterial(f.viewer, mesh, color, ambient))
		require.NoError(t, f.r.RenderWithMaterial(f.viewer, mesh, color, two))
		require.NoError(t, f.r.RenderWithMaterial(f.viewer, mesh, physical, ambient))
		require.NoError(t, f.r.RenderWithMaterial(f.viewer, mesh, physical, two))
		require.NoError(t, f.r.RenderWithMaterial(f.viewer, mesh, physical, other))
	})

	assert.Equal(t, 3, f.ctx.Compiles())
	assert.Equal(t, 3, f.r.Cache().Len())
	assert.Len(t, f.ctx.Draws(), 5)
}

func TestCompileFailureIsCached(t *testing.T) {
	f := newFixture(t)
	l := f.lines(t, 2)
	mat := material.NewColorMaterial()
	key := ProgramKey{Geometry: l.ID(mat.FragmentAttributes()), Material: mat.ID()}
	f.ctx.FailCompile(key.String(), "unresolved identifier")

	var first error
	f.frame(t, func() {
		first = f.r.RenderWithMaterial(f.viewer, l, mat, nil)
		second := f.r.RenderWithMaterial(f.viewer, l, mat, nil)
		assert.Same(t, first, second)
	})

	var pe *ProgramError
	require.True(t, errors.As(first, &pe))
	assert.Equal(t, key, pe.Key)
	assert.ErrorIs(t, first, gpu.ErrCompile)
	assert.Contains(t, first.Error(), "unresolved identifier")
	assert.Equal(t, 1, f.ctx.Compiles())
	assert.Empty(t, f.ctx.Draws())
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Failures: 1}, f.r.Cache().Stats())
}

func TestRenderDrawsInOrder(t *testing.T) {
	f := newFixture(t)
	mat := material.NewColorMaterial()
	a := NewGm(f.r, f.lines(t, 4), mat)
	b := NewGm(f.r, f.lines(t, 2), mat)

	cs := common.ClearColorAndDepth(0, 0, 0, 1, 1)
	require.NoError(t, f.r.Render(f.target, cs, f.viewer, nil, a, b))
	require.NoError(t, f.r.Render(f.target, cs, f.viewer, nil, b))

	assert.Equal(t, 2, f.ctx.Frames())
	draws := f.ctx.Draws()
	require.Len(t, draws, 3)
	assert.Equal(t, []uint32{4, 2, 2}, []uint32{draws[0].Count, draws[1].Count, draws[2].Count})
	assert.Equal(t, material.Opaque, a.MaterialType())
}

func TestRenderEndsFrameOnError(t *testing.T) {
	f := newFixture(t)
	mat := material.NewColorMaterial()
	obj := NewGm(f.r, f.lines(t, 2), mat)
	f.ctx.FailCompile(ProgramKey{Geometry: obj.Geometry.ID(mat.FragmentAttributes()), Material: mat.ID()}.String(), "bad")

	err := f.r.Render(f.target, common.ClearColorAndDepth(0, 0, 0, 1, 1), f.viewer, nil, obj)
	assert.ErrorIs(t, err, gpu.ErrCompile)

	// The frame was ended, so a new one can begin.
	require.NoError(t, f.ctx.BeginFrame(f.target, common.ClearState{}))
	require.NoError(t, f.ctx.EndFrame())
}

func TestApplyScreenEffect(t *testing.T) {
	f := newFixture(t)
	tex, err := f.ctx.NewTexture2D(gpu.TextureDescriptor{Label: "accum", Width: 8, Height: 8, Format: gpu.TextureFormatRGBA16Float}, nil)
	require.NoError(t, err)
	color, err := effect.NewColorTexture(tex)
	require.NoError(t, err)

	resolve := effect.NewOitResolveEffect()
	f.frame(t, func() {
		require.NoError(t, f.r.ApplyScreenEffect(f.viewer, resolve, nil, color, nil))
		require.NoError(t, f.r.ApplyScreenEffect(f.viewer, resolve, nil, color, nil))
	})

	assert.Equal(t, 1, f.ctx.Compiles())
	draws := f.ctx.Draws()
	require.Len(t, draws, 2)
	assert.Equal(t, uint32(6), draws[0].Count)
	assert.Equal(t, resolve.RenderStates(), draws[0].States)
}

func TestGmAnimate(t *testing.T) {
	f := newFixture(t)
	gm := NewGm(f.r, f.lines(t, 2), material.NewColorMaterial())
	gm.Geometry.SetAnimation(func(t float32) mgl32.Mat4 {
		return mgl32.Translate3D(0, t, 0)
	})

	f.r.Animate(3, gm)
	assert.InDelta(t, 3, gm.AABB().Min().Y(), 1e-5)
}

func TestRelease(t *testing.T) {
	f := newFixture(t)
	l := f.lines(t, 2)
	mat := material.NewColorMaterial()
	f.frame(t, func() {
		require.NoError(t, f.r.RenderWithMaterial(f.viewer, l, mat, nil))
	})

	f.r.Release()
	programs := f.ctx.Programs()
	require.Len(t, programs, 1)
	assert.True(t, programs[0].Released())
	assert.True(t, f.ctx.Released())
	assert.Equal(t, 0, f.r.Cache().Len())
	assert.ErrorIs(t, f.r.RenderWithMaterial(f.viewer, l, mat, nil), ErrReleased)
	f.r.Release()
}

func TestProgramKeyString(t *testing.T) {
	key := ProgramKey{
		Geometry: geometry.ID{Kind: geometry.KindMesh},
		Material: material.ID{Kind: material.KindPhysical},
		Lights:   "ad",
	}
	s := key.String()
	assert.Contains(t, s, "physical")
	assert.Contains(t, s, "lights[ad]")
	assert.NotContains(t, s, "copy")
}
