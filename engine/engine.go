// Package engine bootstraps a GPU context, a renderer and cameras from the engine settings and
// drives a fixed-rate frame loop on the calling goroutine.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/config"
	"github.com/Carmen-Shannon/oxy-draw/engine/log"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
)

// ErrAlreadyRunning is returned by Run when another Run call has not returned yet.
var ErrAlreadyRunning = errors.New("engine: already running")

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	cfg      config.Config
	ctx      gpu.Context
	renderer renderer.Renderer

	profilingEnabled bool
	engineTickRate   time.Duration
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	sleep            func(time.Duration)

	running     bool
	quitChannel chan struct{}
	quitOnce    sync.Once

	logger log.Logger
}

// Engine is the main entry point for applications drawing with the renderer.
//
// Frames are issued on the goroutine that calls Run, the goroutine owning the GPU context.
// Animation time advances by one tick per frame, so a run is reproducible regardless of
// how long each frame takes to draw.
type Engine interface {
	// Config returns the settings the engine was built from.
	Config() config.Config

	// Context returns the GPU context.
	Context() gpu.Context

	// Renderer returns the renderer drawing with the context.
	Renderer() renderer.Renderer

	// NewCamera creates a camera using the configured tone and color mapping.
	//
	// Parameters:
	//   - options: extra camera options, applied after the configured ones
	//
	// Returns:
	//   - camera.Camera: the camera
	NewCamera(options ...camera.CameraBuilderOption) camera.Camera

	// SetTickRate sets the number of animation ticks per second. Values <= 0 reset it to 60.
	SetTickRate(fps float64)

	// SetRenderFrameLimit caps the frame rate. Pass 0 to uncap the loop.
	SetRenderFrameLimit(fps float64)

	// Run animates and renders frames until the frame count is reached, Quit is called or
	// the frame callback fails.
	//
	// Parameters:
	//   - frames: the number of frames to run, 0 runs until Quit
	//   - frame: called once per frame after the renderer's animator advanced to now
	//
	// Returns:
	//   - error: the first error returned by frame, or ErrAlreadyRunning
	Run(frames int, frame func(index int, now float32) error) error

	// Quit stops Run after the current frame. Safe to call multiple times.
	Quit()

	// Release releases the renderer and the context.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates an engine. Without WithContext it opens a WebGPU context configured from the
// settings.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the engine
//   - error: an error if the settings are invalid or the context cannot be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:             &sync.Mutex{},
		cfg:            config.Default(),
		engineTickRate: time.Second / 60,
		sleep:          time.Sleep,
		quitChannel:    make(chan struct{}),
		logger:         log.New("engine"),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.profilingEnabled && e.cfg.ProfilerInterval == 0 {
		e.cfg.ProfilerInterval = time.Second
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := e.cfg.ApplyLogLevel(); err != nil {
		return nil, err
	}

	if e.ctx == nil {
		ctx, err := gpu.NewWGPUContext(e.cfg.ContextOptions()...)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.ctx = ctx
	}
	e.renderer = renderer.NewRenderer(e.ctx, e.cfg.RendererOptions()...)
	return e, nil
}

func (e *engine) Config() config.Config {
	return e.cfg
}

func (e *engine) Context() gpu.Context {
	return e.ctx
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) NewCamera(options ...camera.CameraBuilderOption) camera.Camera {
	// The settings were validated in NewEngine.
	mapping, _ := e.cfg.CameraOptions()
	return camera.NewCamera(append(mapping, options...)...)
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run(frames int, frame func(index int, now float32) error) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	var elapsed time.Duration
	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-e.quitChannel:
			e.logger.Infof("quit after %d frames", i)
			return nil
		default:
		}

		e.mu.Lock()
		tick, limit := e.engineTickRate, e.renderFrameLimit
		e.mu.Unlock()

		start := time.Now()
		t := float32(elapsed.Seconds())
		e.renderer.Animate(t)
		if err := frame(i, t); err != nil {
			return fmt.Errorf("engine: frame %d: %w", i, err)
		}
		elapsed += tick

		if limit > 0 {
			if rest := limit - time.Since(start); rest > 0 {
				e.sleep(rest)
			}
		}
	}
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Release() {
	e.renderer.Release()
}
