package gpu

import (
	"errors"
	"fmt"
)

// Contract errors returned by Program implementations. They identify programmer errors:
// a name the program does not declare, or a declared resource never bound before a draw.
var (
	ErrUnknownUniform   = errors.New("gpu: unknown uniform")
	ErrUnknownAttribute = errors.New("gpu: unknown attribute")
	ErrUnknownTexture   = errors.New("gpu: unknown texture")
	ErrMissingUniform   = errors.New("gpu: uniform not set")
	ErrMissingAttribute = errors.New("gpu: attribute not bound")
	ErrMissingTexture   = errors.New("gpu: texture not bound")
	ErrUniformType      = errors.New("gpu: uniform value does not match declared type")
	ErrAttributeFormat  = errors.New("gpu: attribute buffer format does not match declared type")
	ErrTextureKind      = errors.New("gpu: texture does not match declared type")
	ErrNoActiveFrame    = errors.New("gpu: draw outside BeginFrame/EndFrame")
	ErrFrameActive      = errors.New("gpu: frame already active")
	ErrForeignResource  = errors.New("gpu: resource was created by another context")
)

// ErrResourceAllocation wraps failures to create buffers, textures, or pipelines.
var ErrResourceAllocation = errors.New("gpu: resource allocation failed")

// ErrCompile is matched by every *CompileError.
var ErrCompile = errors.New("gpu: program compilation failed")

// CompileError carries the compiler diagnostic of a failed program compilation.
type CompileError struct {
	// Label is the program label passed to CompileProgram.
	Label string

	// Diagnostic is the compiler output.
	Diagnostic string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: compiling %s: %s", e.Label, e.Diagnostic)
}

// Unwrap lets errors.Is match ErrCompile.
func (e *CompileError) Unwrap() error {
	return ErrCompile
}
