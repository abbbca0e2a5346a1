package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/config"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig sets the engine settings. Defaults to config.Default().
//
// Parameters:
//   - cfg: the settings
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithContext makes the engine draw with an existing context instead of opening a WebGPU one.
// The engine takes ownership of ctx.
//
// Parameters:
//   - ctx: the GPU context
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContext(ctx gpu.Context) EngineBuilderOption {
	return func(e *engine) {
		e.ctx = ctx
	}
}

// WithProfiling enables performance profiling output at one report per second when the
// settings do not set an interval.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Animation time advances by one tick per frame. Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetTickRate(fps)
	}
}

// WithRenderFrameLimit caps the frame rate. Values <= 0 leave the loop uncapped.
//
// Parameters:
//   - fps: maximum frames per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}

// withSleep replaces time.Sleep in tests.
func withSleep(sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		e.sleep = sleep
	}
}
