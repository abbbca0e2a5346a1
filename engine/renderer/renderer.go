// Package renderer ties geometries, materials and effects together: it resolves the program of a
// draw from their identities, compiles it once per context, pushes uniforms and issues the draw.
package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/light"
	"github.com/Carmen-Shannon/oxy-draw/engine/log"
	"github.com/Carmen-Shannon/oxy-draw/engine/profiler"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/effect"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/material"
)

// ErrReleased is returned by draws on a released renderer.
var ErrReleased = errors.New("renderer: released")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	ctx        gpu.Context
	cache      *ProgramCache
	screenQuad *geometry.ScreenQuad
	released   bool

	animator         animator.Animator
	animationWorkers int

	profiler         *profiler.Profiler
	profilerInterval time.Duration

	logger log.Logger
}

// Renderer defines the interface for the draw dispatch core.
//
// A Renderer owns one gpu.Context and the cache of programs compiled on it. Every draw resolves a
// ProgramKey from the geometry, the material or effect and, for lit materials, the kinds of the
// lights. The program of a key is compiled on first use and reused for every later draw.
// Draws are issued on the caller's goroutine in the order they are requested.
type Renderer interface {
	// Context returns the GPU context the renderer draws with.
	Context() gpu.Context

	// Cache returns the program cache.
	Cache() *ProgramCache

	// Animator returns the animator driving Animate.
	Animator() animator.Animator

	// RenderWithMaterial draws a geometry shaded by a material.
	//
	// Parameters:
	//   - viewer: the camera the geometry is seen through
	//   - geom: the geometry to draw
	//   - mat: the material supplying the fragment stage and render states
	//   - lights: the light list, read only by lit materials
	//
	// Returns:
	//   - error: a *ProgramError when the program cannot be built, its uniforms cannot be pushed, or the draw fails
	RenderWithMaterial(viewer camera.Viewer, geom geometry.Geometry, mat material.Material, lights []light.Light) error

	// RenderWithEffect draws a geometry with an effect sampling the optional color and depth inputs.
	//
	// Parameters:
	//   - viewer: the camera the geometry is seen through
	//   - geom: the geometry to draw
	//   - eff: the effect supplying the fragment stage and render states
	//   - lights: the light list
	//   - color: the color input, or nil
	//   - depth: the depth input, or nil
	//
	// Returns:
	//   - error: a *ProgramError when the program cannot be built, its uniforms cannot be pushed, or the draw fails
	RenderWithEffect(viewer camera.Viewer, geom geometry.Geometry, eff effect.Effect, lights []light.Light, color *effect.ColorTexture, depth *effect.DepthTexture) error

	// ApplyScreenEffect draws an effect over a full-screen quad owned by the renderer.
	ApplyScreenEffect(viewer camera.Viewer, eff effect.Effect, lights []light.Light, color *effect.ColorTexture, depth *effect.DepthTexture) error

	// Render draws a frame: clears the target, renders the objects in the given order and ends the frame.
	// The first object that fails stops the frame; the frame is still ended.
	//
	// Parameters:
	//   - target: the render target to draw into
	//   - clear: what to clear before drawing
	//   - viewer: the camera
	//   - lights: the light list
	//   - objects: the objects to draw
	//
	// Returns:
	//   - error: the first error of the frame
	Render(target gpu.RenderTarget, clear common.ClearState, viewer camera.Viewer, lights []light.Light, objects ...Object) error

	// Animate advances the animator's targets and the given targets to the given time.
	//
	// Parameters:
	//   - time: the animation time in seconds
	//   - targets: targets animated for this call only
	Animate(time float32, targets ...animator.Animatable)

	// Release releases every cached program, the screen quad and the context.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing with ctx.
//
// Parameters:
//   - ctx: the GPU context; the renderer takes ownership of it
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(ctx gpu.Context, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:               &sync.Mutex{},
		ctx:              ctx,
		cache:            NewProgramCache(ctx),
		animationWorkers: 4,
		logger:           log.New("renderer"),
	}
	for _, opt := range options {
		opt(r)
	}

	if r.animator == nil {
		r.animator = animator.NewAnimator(animator.WithWorkers(r.animationWorkers))
	}
	if r.profilerInterval > 0 && r.profiler == nil {
		r.profiler = profiler.NewProfiler(profiler.WithInterval(r.profilerInterval))
	}
	return r
}

func (r *renderer) Context() gpu.Context {
	return r.ctx
}

func (r *renderer) Cache() *ProgramCache {
	return r.cache
}

func (r *renderer) Animator() animator.Animator {
	return r.animator
}

func (r *renderer) isReleased() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

func (r *renderer) RenderWithMaterial(viewer camera.Viewer, geom geometry.Geometry, mat material.Material, lights []light.Light) error {
	if r.isReleased() {
		return ErrReleased
	}

	attributes := mat.FragmentAttributes()
	id := mat.ID()
	key := ProgramKey{Geometry: geom.ID(attributes), Material: id}
	if id.Kind.Lit() {
		key.Lights = light.ID(lights)
	}

	program, err := r.cache.Program(key, func() string {
		return geom.VertexShaderSource(attributes) + "\n" + mat.FragmentShaderSource(lights)
	})
	if err != nil {
		return err
	}
	if err := mat.UseUniforms(program, viewer, lights); err != nil {
		return &ProgramError{Key: key, Err: err}
	}
	if err := geom.Draw(viewer, program, mat.RenderStates(), attributes); err != nil {
		return &ProgramError{Key: key, Err: err}
	}
	return nil
}

func (r *renderer) RenderWithEffect(viewer camera.Viewer, geom geometry.Geometry, eff effect.Effect, lights []light.Light, color *effect.ColorTexture, depth *effect.DepthTexture) error {
	if r.isReleased() {
		return ErrReleased
	}

	attributes := eff.FragmentAttributes()
	key := ProgramKey{Geometry: geom.ID(attributes), Effect: eff.ID(color, depth)}

	program, err := r.cache.Program(key, func() string {
		return geom.VertexShaderSource(attributes) + "\n" + eff.FragmentShaderSource(lights, color, depth)
	})
	if err != nil {
		return err
	}
	if err := eff.UseUniforms(program, viewer, lights, color, depth); err != nil {
		return &ProgramError{Key: key, Err: err}
	}
	if err := geom.Draw(viewer, program, eff.RenderStates(), attributes); err != nil {
		return &ProgramError{Key: key, Err: err}
	}
	return nil
}

func (r *renderer) ApplyScreenEffect(viewer camera.Viewer, eff effect.Effect, lights []light.Light, color *effect.ColorTexture, depth *effect.DepthTexture) error {
	quad, err := r.quad()
	if err != nil {
		return err
	}
	return r.RenderWithEffect(viewer, quad, eff, lights, color, depth)
}

// quad creates the screen quad on first use.
func (r *renderer) quad() (*geometry.ScreenQuad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil, ErrReleased
	}
	if r.screenQuad == nil {
		q, err := geometry.NewScreenQuad(r.ctx)
		if err != nil {
			return nil, fmt.Errorf("renderer: creating screen quad: %w", err)
		}
		r.screenQuad = q
	}
	return r.screenQuad, nil
}

func (r *renderer) Render(target gpu.RenderTarget, clear common.ClearState, viewer camera.Viewer, lights []light.Light, objects ...Object) error {
	if r.isReleased() {
		return ErrReleased
	}
	if err := r.ctx.BeginFrame(target, clear); err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}

	var frameErr error
	for i, obj := range objects {
		if err := obj.Render(viewer, lights); err != nil {
			frameErr = fmt.Errorf("renderer: object %d: %w", i, err)
			break
		}
	}
	if err := r.ctx.EndFrame(); err != nil && frameErr == nil {
		frameErr = fmt.Errorf("renderer: end frame: %w", err)
	}

	if r.profiler != nil {
		r.profiler.Tick(r.cache.Stats())
	}
	return frameErr
}

func (r *renderer) Animate(t float32, targets ...animator.Animatable) {
	r.animator.Animate(t, targets...)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true

	r.cache.Release()
	if r.screenQuad != nil {
		r.screenQuad.Release()
		r.screenQuad = nil
	}
	r.ctx.Release()
	r.logger.Debug("renderer released")
}
