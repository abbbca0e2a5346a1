package gpu

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/log"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

type wgpuContext struct {
	mu     *sync.Mutex
	logger log.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	label                string
	forceFallbackAdapter bool
	validateShaders      bool
	samplerOptions       SamplerOptions

	// frame is the target of the current frame, nil outside BeginFrame/EndFrame.
	frame *wgpuRenderTarget

	programs map[*wgpuProgram]struct{}
}

var _ Context = &wgpuContext{}

// NewWGPUContext creates a headless WebGPU context rendering into offscreen targets.
// The calling goroutine is locked to its OS thread, which the native backend requires.
//
// Parameters:
//   - options: the WGPUContextOption values to apply
//
// Returns:
//   - Context: the context
//   - error: ErrResourceAllocation when no adapter or device is available
func NewWGPUContext(options ...WGPUContextOption) (Context, error) {
	runtime.LockOSThread()
	c := &wgpuContext{
		mu:       &sync.Mutex{},
		logger:   log.New("gpu"),
		label:    "oxy-draw",
		programs: make(map[*wgpuProgram]struct{}),
	}
	for _, option := range options {
		option(c)
	}

	c.instance = wgpu.CreateInstance(nil)

	a, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: c.forceFallbackAdapter,
	})
	if err != nil {
		c.instance.Release()
		return nil, fmt.Errorf("%w: requesting adapter: %v", ErrResourceAllocation, err)
	}
	c.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: c.label + " Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		c.adapter.Release()
		c.instance.Release()
		return nil, fmt.Errorf("%w: requesting device: %v", ErrResourceAllocation, err)
	}
	c.device = d
	c.queue = d.GetQueue()

	c.logger.Infof("device ready (fallback adapter: %t, shader validation: %t)", c.forceFallbackAdapter, c.validateShaders)
	return c, nil
}

func (c *wgpuContext) CompileProgram(label, source string) (Program, error) {
	reflection, err := shader.Reflect(source)
	if err != nil {
		return nil, &CompileError{Label: label, Diagnostic: err.Error()}
	}
	if c.validateShaders {
		if _, err := naga.Compile(source); err != nil {
			return nil, &CompileError{Label: label, Diagnostic: err.Error()}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	module, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, &CompileError{Label: label, Diagnostic: err.Error()}
	}

	p := &wgpuProgram{
		ProgramState: NewProgramState(label, reflection),
		ctx:          c,
		module:       module,
		pipelines:    make(map[pipelineKey]*wgpu.RenderPipeline),
	}
	c.programs[p] = struct{}{}

	p.bindings, err = newBindGroupProvider(c.device, label, reflection.Layouts, reflection.UniformBlockSize, c.samplerOptions)
	if err != nil {
		p.release()
		return nil, err
	}

	p.pipelineLayout, err = c.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: p.bindings.Layouts(),
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("%w: pipeline layout of %s: %v", ErrResourceAllocation, label, err)
	}

	return p, nil
}

func (c *wgpuContext) BeginFrame(target RenderTarget, clear common.ClearState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frame != nil {
		return ErrFrameActive
	}
	rt, ok := target.(*wgpuRenderTarget)
	if !ok {
		return fmt.Errorf("%w: render target", ErrForeignResource)
	}

	encoder, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("%w: command encoder: %v", ErrResourceAllocation, err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(rt.passDescriptor(clear.Color, clear.Depth))
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("%w: finishing clear pass: %v", ErrResourceAllocation, err)
	}
	c.queue.Submit(commandBuffer)
	commandBuffer.Release()

	c.frame = rt
	return nil
}

func (c *wgpuContext) EndFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frame == nil {
		return ErrNoActiveFrame
	}
	c.frame = nil
	return nil
}

func (c *wgpuContext) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for p := range c.programs {
		p.release()
	}
	c.frame = nil
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

// passDescriptor describes a render pass over the target. Nil clear values load the
// existing contents.
func (r *wgpuRenderTarget) passDescriptor(color *[4]float64, depth *float64) *wgpu.RenderPassDescriptor {
	colorAttachment := wgpu.RenderPassColorAttachment{
		View:    r.color.view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if color != nil {
		colorAttachment.LoadOp = wgpu.LoadOpClear
		colorAttachment.ClearValue = wgpu.Color{R: color[0], G: color[1], B: color[2], A: color[3]}
	}

	depthAttachment := &wgpu.RenderPassDepthStencilAttachment{
		View:         r.depth.view,
		DepthLoadOp:  wgpu.LoadOpLoad,
		DepthStoreOp: wgpu.StoreOpStore,
	}
	if depth != nil {
		depthAttachment.DepthLoadOp = wgpu.LoadOpClear
		depthAttachment.DepthClearValue = float32(*depth)
	}

	return &wgpu.RenderPassDescriptor{
		ColorAttachments:       []wgpu.RenderPassColorAttachment{colorAttachment},
		DepthStencilAttachment: depthAttachment,
	}
}

// IsCompileError reports whether err came from a failed program compilation.
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}
