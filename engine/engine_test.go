package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/config"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (Engine, *gputest.Context) {
	t.Helper()
	ctx := gputest.NewContext()
	cfg := config.Default()
	cfg.AnimationWorkers = 1
	e, err := NewEngine(append([]EngineBuilderOption{WithContext(ctx), WithConfig(cfg)}, options...)...)
	require.NoError(t, err)
	return e, ctx
}

func TestRunAdvancesTime(t *testing.T) {
	e, ctx := newTestEngine(t, WithTickRate(10))
	defer e.Release()

	target, err := ctx.NewRenderTarget(4, 4)
	require.NoError(t, err)
	cam := e.NewCamera(camera.WithViewport(target.Viewport()))

	lines, err := geometry.NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}})
	require.NoError(t, err)
	lines.SetAnimation(func(t float32) mgl32.Mat4 { return mgl32.Translate3D(t, 0, 0) })
	obj := renderer.NewGm(e.Renderer(), lines, material.NewColorMaterial())
	e.Renderer().Animator().Add(obj)

	var times []float32
	err = e.Run(3, func(i int, now float32) error {
		times = append(times, now)
		return e.Renderer().Render(target, common.ClearColorAndDepth(0, 0, 0, 1, 1), cam, nil, obj)
	})
	require.NoError(t, err)

	require.Len(t, times, 3)
	assert.InDeltaSlice(t, []float32{0, 0.1, 0.2}, times, 1e-6)
	assert.InDelta(t, 0.2, lines.AABB().Min().X(), 1e-5)
	assert.Equal(t, 3, ctx.Frames())
	assert.Equal(t, 1, ctx.Compiles())
}

func TestRunStopsOnQuitAndError(t *testing.T) {
	e, _ := newTestEngine(t)

	calls := 0
	require.NoError(t, e.Run(0, func(i int, _ float32) error {
		calls++
		if i == 4 {
			e.Quit()
		}
		return nil
	}))
	assert.Equal(t, 5, calls)
	e.Quit()

	other, _ := newTestEngine(t)
	boom := errors.New("boom")
	err := other.Run(10, func(i int, _ float32) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestRenderFrameLimitSleeps(t *testing.T) {
	var slept []time.Duration
	e, _ := newTestEngine(t, WithRenderFrameLimit(1), withSleep(func(d time.Duration) { slept = append(slept, d) }))
	require.NoError(t, e.Run(2, func(int, float32) error { return nil }))
	require.Len(t, slept, 2)
	assert.Greater(t, slept[0], 900*time.Millisecond)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ToneMapping = "hable"
	_, err := NewEngine(WithContext(gputest.NewContext()), WithConfig(cfg))
	assert.Error(t, err)
}

func TestNewCameraUsesConfiguredMapping(t *testing.T) {
	cfg := config.Default()
	cfg.ToneMapping = "aces"
	e, err := NewEngine(WithContext(gputest.NewContext()), WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, camera.ToneMappingAces, e.NewCamera().ToneMapping())
}
