package gpu

// WGPUContextOption configures a context created with NewWGPUContext.
type WGPUContextOption func(c *wgpuContext)

// WithLabel sets the label used for the device and in log lines.
func WithLabel(label string) WGPUContextOption {
	return func(c *wgpuContext) {
		c.label = label
	}
}

// WithForceFallbackAdapter requests the software adapter, useful on machines without a GPU.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - WGPUContextOption: a function that applies the option
func WithForceFallbackAdapter(force bool) WGPUContextOption {
	return func(c *wgpuContext) {
		c.forceFallbackAdapter = force
	}
}

// WithShaderValidation compiles every program through naga before handing it to the device,
// so WGSL errors come back as a *CompileError with the compiler's diagnostic.
//
// Parameters:
//   - validate: whether to validate shader sources on the CPU
//
// Returns:
//   - WGPUContextOption: a function that applies the option
func WithShaderValidation(validate bool) WGPUContextOption {
	return func(c *wgpuContext) {
		c.validateShaders = validate
	}
}

// WithSamplerOptions sets the sampler configuration used by every program's textures.
func WithSamplerOptions(options SamplerOptions) WGPUContextOption {
	return func(c *wgpuContext) {
		c.samplerOptions = options
	}
}
