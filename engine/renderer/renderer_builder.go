package renderer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/profiler"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/animator"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithAnimator replaces the default animator.
//
// Parameters:
//   - a: the Animator that drives Renderer.Animate
//
// Returns:
//   - RendererBuilderOption: a function that applies the animator option to a renderer
func WithAnimator(a animator.Animator) RendererBuilderOption {
	return func(r *renderer) {
		r.animator = a
	}
}

// WithAnimationWorkers sets the worker count of the default animator.
// Values below 2 animate on the calling goroutine. Ignored when WithAnimator is used.
//
// Parameters:
//   - workers: the maximum number of animation workers
//
// Returns:
//   - RendererBuilderOption: a function that applies the animation workers option to a renderer
func WithAnimationWorkers(workers int) RendererBuilderOption {
	return func(r *renderer) {
		r.animationWorkers = workers
	}
}

// WithProfilerInterval enables frame profiling, logging frame, memory and program cache
// statistics at the given interval. Zero disables profiling.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - RendererBuilderOption: a function that applies the profiler option to a renderer
func WithProfilerInterval(interval time.Duration) RendererBuilderOption {
	return func(r *renderer) {
		r.profilerInterval = interval
	}
}

// WithProfiler installs a preconfigured profiler.
func WithProfiler(p *profiler.Profiler) RendererBuilderOption {
	return func(r *renderer) {
		r.profiler = p
	}
}
