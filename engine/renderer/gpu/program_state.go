package gpu

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// ProgramState holds the CPU side of a compiled program: the packed uniform block and the
// textures and buffers bound by name. It enforces the name and type contracts shared by every
// Program implementation.
type ProgramState struct {
	label      string
	reflection *shader.Reflection

	block      []byte
	uniformSet map[string]bool
	textures   map[string]Texture
	attributes map[string]VertexBuffer
}

// NewProgramState creates the state for a program with the given reflection.
//
// Parameters:
//   - label: the program label
//   - reflection: the resources declared by the program source
//
// Returns:
//   - *ProgramState: empty state with a zeroed uniform block
func NewProgramState(label string, reflection *shader.Reflection) *ProgramState {
	return &ProgramState{
		label:      label,
		reflection: reflection,
		block:      make([]byte, reflection.UniformBlockSize),
		uniformSet: make(map[string]bool),
		textures:   make(map[string]Texture),
		attributes: make(map[string]VertexBuffer),
	}
}

// Label returns the program label.
func (s *ProgramState) Label() string {
	return s.label
}

// Reflection returns the reflected resources.
func (s *ProgramState) Reflection() *shader.Reflection {
	return s.reflection
}

// RequiresUniform reports whether the uniform block has the named member.
func (s *ProgramState) RequiresUniform(name string) bool {
	_, ok := s.reflection.Uniform(name)
	return ok
}

// RequiresAttribute reports whether a vertex or instance attribute has the given name.
func (s *ProgramState) RequiresAttribute(name string) bool {
	_, ok := s.reflection.Attribute(name)
	return ok
}

// RequiresTexture reports whether a texture has the given name.
func (s *ProgramState) RequiresTexture(name string) bool {
	_, ok := s.reflection.Texture(name)
	return ok
}

// SetUniform encodes value into the uniform block at the offset of the named member.
func (s *ProgramState) SetUniform(name string, value any) error {
	field, ok := s.reflection.Uniform(name)
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownUniform, name, s.label)
	}
	data, err := EncodeUniform(value, field.Type)
	if err != nil {
		return fmt.Errorf("uniform %q in %s: %w", name, s.label, err)
	}
	copy(s.block[field.Offset:field.Offset+field.Size], data)
	s.uniformSet[name] = true
	return nil
}

// SetTexture binds a texture by name. Depth textures only fit depth slots and the other way round.
func (s *ProgramState) SetTexture(name string, texture Texture) error {
	binding, ok := s.reflection.Texture(name)
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownTexture, name, s.label)
	}
	if texture == nil {
		return fmt.Errorf("%w: %q in %s is nil", ErrMissingTexture, name, s.label)
	}
	if binding.Depth != texture.Format().IsDepth() {
		return fmt.Errorf("%w: %q in %s is %s", ErrTextureKind, name, s.label, binding.Type)
	}
	s.textures[name] = texture
	return nil
}

// SetAttribute binds a buffer to a vertex attribute, or to an instance attribute when instance is set.
func (s *ProgramState) SetAttribute(name string, buffer VertexBuffer, instance bool) error {
	attr, ok := s.reflection.Attribute(name)
	if !ok || attr.Instance != instance {
		return fmt.Errorf("%w: %q in %s", ErrUnknownAttribute, name, s.label)
	}
	if buffer == nil {
		return fmt.Errorf("%w: %q in %s is nil", ErrMissingAttribute, name, s.label)
	}
	if buffer.Format() != attr.Format {
		return fmt.Errorf("%w: %q in %s expects %s", ErrAttributeFormat, name, s.label, attr.Type)
	}
	s.attributes[name] = buffer
	return nil
}

// Validate checks that every declared uniform was set and every attribute and texture is bound.
//
// Returns:
//   - error: the first missing resource wrapped in ErrMissingUniform, ErrMissingAttribute or ErrMissingTexture
func (s *ProgramState) Validate() error {
	for _, u := range s.reflection.Uniforms {
		if !s.uniformSet[u.Name] {
			return fmt.Errorf("%w: %q in %s", ErrMissingUniform, u.Name, s.label)
		}
	}
	for _, a := range s.reflection.Attributes {
		if _, ok := s.attributes[a.Name]; !ok {
			return fmt.Errorf("%w: %q in %s", ErrMissingAttribute, a.Name, s.label)
		}
	}
	for _, t := range s.reflection.Textures {
		if _, ok := s.textures[t.Name]; !ok {
			return fmt.Errorf("%w: %q in %s", ErrMissingTexture, t.Name, s.label)
		}
	}
	return nil
}

// UniformBlock returns the packed uniform block. The slice aliases the state.
func (s *ProgramState) UniformBlock() []byte {
	return s.block
}

// Texture returns the texture bound to name.
func (s *ProgramState) Texture(name string) Texture {
	return s.textures[name]
}

// Attribute returns the buffer bound to name.
func (s *ProgramState) Attribute(name string) VertexBuffer {
	return s.attributes[name]
}
