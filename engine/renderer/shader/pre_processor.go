// pre_processor.go implements the Oxy WGSL shader pre-processor. It expands snippet
// includes, evaluates feature blocks, and turns uniform and texture annotations into
// a uniform block and texture bindings emitted at the top of the program.
//
// The processed text is a pure function of the input text and the snippet registry:
// bindings are assigned in declaration order, so the same composition always yields
// the same program.
package shader

import (
	"fmt"
	"strings"
)

// UniformBlockName is the WGSL variable holding every uniform of a program.
// Shader code reads a uniform declared as "//@oxy:uniform modelMatrix ..." as uniforms.modelMatrix.
const UniformBlockName = "uniforms"

// UniformBlockType is the WGSL struct type of the uniform block.
const UniformBlockType = "Uniforms"

// UniformGroup and TextureGroup are the bind groups uniforms and textures are assigned to.
const (
	UniformGroup uint32 = 0
	TextureGroup uint32 = 1
)

// SamplerSuffix is appended to a texture name to form its companion sampler name.
const SamplerSuffix = "Sampler"

// Feature flags understood by the built-in snippets.
const (
	DefineNormals      = "USE_NORMALS"
	DefineTangents     = "USE_TANGENTS"
	DefineUVs          = "USE_UVS"
	DefineVertexColors = "USE_VERTEX_COLORS"
)

// condFrame tracks one open if block.
type condFrame struct {
	parentActive bool
	taken        bool
	seenElse     bool
	line         int
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// snippets maps include names to their WGSL source.
	snippets map[string]string

	// declarations accumulates uniform and texture annotations during a Process call.
	// Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor processes WGSL source containing @oxy: annotations into plain WGSL.
type PreProcessor interface {
	// Process expands includes, evaluates feature blocks, and replaces uniform and texture
	// annotations with generated declarations placed at the top of the returned source.
	//
	// The declarations list is reset at the start of each call and can be retrieved
	// via Declarations() after Process returns.
	//
	// Parameters:
	//   - source: the annotated WGSL source
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error for malformed or unknown annotations, unknown snippets, unbalanced blocks, or duplicate names
	Process(source string) (string, error)

	// Declarations returns the uniform and texture annotations collected during the most recent
	// call to Process, in binding order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation

	// Register adds or replaces a named snippet available to include annotations.
	//
	// Parameters:
	//   - name: the include name
	//   - source: the snippet's annotated WGSL source
	Register(name, source string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with every built-in snippet registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	p := &preProcessor{snippets: make(map[string]string, len(builtinSnippets))}
	for name, src := range builtinSnippets {
		p.snippets[name] = src
	}
	return p
}

func (p *preProcessor) Register(name, source string) {
	p.snippets[name] = source
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

// processState is the scratch state of one Process call.
type processState struct {
	defined  map[string]bool
	included map[string]bool
	stack    []condFrame
	names    map[string]bool
	uniforms []Annotation
	textures []Annotation
	nextTex  uint32
	out      []string
}

func (s *processState) active() bool {
	if len(s.stack) == 0 {
		return true
	}
	top := s.stack[len(s.stack)-1]
	return top.parentActive && top.taken
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	st := &processState{
		defined:  make(map[string]bool),
		included: make(map[string]bool),
		names:    make(map[string]bool),
	}
	if err := p.processLines(st, "", source); err != nil {
		return "", err
	}
	if len(st.stack) > 0 {
		return "", fmt.Errorf("line %d: @oxy if block is never closed", st.stack[len(st.stack)-1].line)
	}

	var sb strings.Builder
	if len(st.uniforms) > 0 {
		fmt.Fprintf(&sb, "struct %s {\n", UniformBlockType)
		for _, u := range st.uniforms {
			fmt.Fprintf(&sb, "    %s: %s,\n", u.Name, u.WGSLType)
		}
		sb.WriteString("}\n\n")
		fmt.Fprintf(&sb, "@group(%d) @binding(0) var<uniform> %s: %s;\n", UniformGroup, UniformBlockName, UniformBlockType)
	}
	for _, t := range st.textures {
		fmt.Fprintf(&sb, "@group(%d) @binding(%d) var %s: %s;\n", t.Group, t.Binding, t.Name, t.WGSLType)
		if !isDepthTexture(t.WGSLType) {
			fmt.Fprintf(&sb, "@group(%d) @binding(%d) var %s%s: sampler;\n", t.Group, t.Binding+1, t.Name, SamplerSuffix)
		}
	}
	if sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Join(st.out, "\n"))

	p.declarations = append(p.declarations, st.uniforms...)
	p.declarations = append(p.declarations, st.textures...)
	return sb.String(), nil
}

// processLines walks one source text, recursing into includes. origin names the snippet
// for error messages and is empty for the top-level program.
func (p *preProcessor) processLines(st *processState, origin, source string) error {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return wrapOrigin(origin, err)
		}
		if a == nil {
			if st.active() {
				st.out = append(st.out, line)
			}
			continue
		}

		switch a.Type {
		case AnnotationTypeIf:
			parent := st.active()
			st.stack = append(st.stack, condFrame{
				parentActive: parent,
				taken:        st.defined[a.Name] != a.Negated,
				line:         a.Line,
			})
			continue
		case AnnotationTypeElse:
			if len(st.stack) == 0 {
				return wrapOrigin(origin, fmt.Errorf("line %d: @oxy else without if", a.Line))
			}
			top := &st.stack[len(st.stack)-1]
			if top.seenElse {
				return wrapOrigin(origin, fmt.Errorf("line %d: duplicate @oxy else", a.Line))
			}
			top.seenElse = true
			top.taken = !top.taken
			continue
		case AnnotationTypeEndif:
			if len(st.stack) == 0 {
				return wrapOrigin(origin, fmt.Errorf("line %d: @oxy endif without if", a.Line))
			}
			st.stack = st.stack[:len(st.stack)-1]
			continue
		}

		if !st.active() {
			continue
		}

		switch a.Type {
		case AnnotationTypeDefine:
			st.defined[a.Name] = true
		case AnnotationTypeInclude:
			if st.included[a.Name] {
				continue
			}
			snippet, ok := p.snippets[a.Name]
			if !ok {
				return wrapOrigin(origin, fmt.Errorf("line %d: unknown snippet %q", a.Line, a.Name))
			}
			st.included[a.Name] = true
			depth := len(st.stack)
			if err := p.processLines(st, a.Name, snippet); err != nil {
				return err
			}
			if len(st.stack) != depth {
				return fmt.Errorf("snippet %q: unbalanced @oxy if/endif", a.Name)
			}
		case AnnotationTypeUniform:
			if st.names[a.Name] {
				return wrapOrigin(origin, fmt.Errorf("line %d: %q is declared twice", a.Line, a.Name))
			}
			st.names[a.Name] = true
			a.Group = UniformGroup
			st.uniforms = append(st.uniforms, *a)
		case AnnotationTypeTexture:
			if st.names[a.Name] || st.names[a.Name+SamplerSuffix] {
				return wrapOrigin(origin, fmt.Errorf("line %d: %q is declared twice", a.Line, a.Name))
			}
			st.names[a.Name] = true
			a.Group = TextureGroup
			a.Binding = st.nextTex
			st.nextTex++
			if !isDepthTexture(a.WGSLType) {
				st.names[a.Name+SamplerSuffix] = true
				st.nextTex++
			}
			st.textures = append(st.textures, *a)
		}
	}
	return nil
}

func wrapOrigin(origin string, err error) error {
	if origin == "" {
		return err
	}
	return fmt.Errorf("snippet %q: %w", origin, err)
}

func isDepthTexture(wgslType string) bool {
	return strings.HasPrefix(wgslType, "texture_depth_")
}
