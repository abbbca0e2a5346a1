package animator

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	times []float32
}

func (r *recorder) Animate(t float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, t)
}

func (r *recorder) calls() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float32(nil), r.times...)
}

func TestAnimateRegisteredAndExtra(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{"inline", 1},
		{"pool", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := make([]*recorder, 8)
			a := NewAnimator(WithWorkers(tt.workers))
			for i := range targets {
				targets[i] = &recorder{}
				a.Add(targets[i])
			}
			a.Add(targets[0])
			assert.Equal(t, 8, a.Len())

			extra := &recorder{}
			a.Animate(1.5, extra)
			a.Animate(2)

			for _, r := range targets {
				assert.Equal(t, []float32{1.5, 2}, r.calls())
			}
			assert.Equal(t, []float32{1.5}, extra.calls())
			assert.Equal(t, float32(2), a.Time())
		})
	}
}

func TestRemove(t *testing.T) {
	r := &recorder{}
	a := NewAnimator(WithTargets(r))
	assert.True(t, a.Remove(r))
	assert.False(t, a.Remove(r))

	a.Animate(1)
	assert.Empty(t, r.calls())
}

func TestAnimateGeometry(t *testing.T) {
	ctx := gputest.NewContext()
	lines, err := geometry.NewLines(ctx, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}})
	require.NoError(t, err)
	lines.SetAnimation(func(t float32) mgl32.Mat4 {
		return mgl32.Translate3D(t, 0, 0)
	})

	a := NewAnimator(WithWorkers(2))
	a.Animate(2, lines)

	aabb := lines.AABB()
	assert.InDelta(t, 2, aabb.Min().X(), 1e-5)
	assert.InDelta(t, 3, aabb.Max().X(), 1e-5)
}
