// Package config loads the engine settings from YAML and turns them into construction options for
// the GPU context, the renderer and the camera.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/log"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"gopkg.in/yaml.v3"
)

// Config holds the engine settings.
type Config struct {
	// LogLevel is one of debug, info, notice, warning, error.
	LogLevel string `yaml:"log_level"`

	// ToneMapping is one of none, reinhard, aces, filmic.
	ToneMapping string `yaml:"tone_mapping"`

	// ColorMapping is none or srgb.
	ColorMapping string `yaml:"color_mapping"`

	// ValidateShaders runs every program through the CPU-side WGSL compiler before the device sees it.
	ValidateShaders bool `yaml:"validate_shaders"`

	// ForceFallbackAdapter requests the software adapter.
	ForceFallbackAdapter bool `yaml:"force_fallback_adapter"`

	// AnimationWorkers below 2 animate on the rendering goroutine.
	AnimationWorkers int `yaml:"animation_workers"`

	// ProfilerInterval enables frame statistics at this interval when positive, e.g. "2s".
	ProfilerInterval time.Duration `yaml:"profiler_interval"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		LogLevel:         "notice",
		ToneMapping:      "none",
		ColorMapping:     "srgb",
		AnimationWorkers: 4,
	}
}

// Load reads and parses a YAML settings file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the defaults overridden by the file
//   - error: an error if the file cannot be read or is invalid
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings on top of Default. Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the defaults overridden by data
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated value.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := camera.ParseToneMapping(c.ToneMapping); err != nil {
		return err
	}
	if _, err := camera.ParseColorMapping(c.ColorMapping); err != nil {
		return err
	}
	if c.AnimationWorkers < 0 {
		return fmt.Errorf("config: animation_workers must not be negative, got %d", c.AnimationWorkers)
	}
	if c.ProfilerInterval < 0 {
		return fmt.Errorf("config: profiler_interval must not be negative, got %s", c.ProfilerInterval)
	}
	return nil
}

// ApplyLogLevel sets the level of every module logger.
func (c Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// ContextOptions returns the options of gpu.NewWGPUContext.
func (c Config) ContextOptions() []gpu.WGPUContextOption {
	return []gpu.WGPUContextOption{
		gpu.WithForceFallbackAdapter(c.ForceFallbackAdapter),
		gpu.WithShaderValidation(c.ValidateShaders),
	}
}

// RendererOptions returns the options of renderer.NewRenderer.
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	return []renderer.RendererBuilderOption{
		renderer.WithAnimationWorkers(c.AnimationWorkers),
		renderer.WithProfilerInterval(c.ProfilerInterval),
	}
}

// CameraOptions returns the tone and color mapping options of camera.NewCamera.
//
// Returns:
//   - []camera.CameraBuilderOption: the mapping options
//   - error: an error for unknown mapping names
func (c Config) CameraOptions() ([]camera.CameraBuilderOption, error) {
	tone, err := camera.ParseToneMapping(c.ToneMapping)
	if err != nil {
		return nil, err
	}
	color, err := camera.ParseColorMapping(c.ColorMapping)
	if err != nil {
		return nil, err
	}
	return []camera.CameraBuilderOption{camera.WithToneMapping(tone), camera.WithColorMapping(color)}, nil
}
