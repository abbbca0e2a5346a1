// annotations.go defines the annotation types and parser for the Oxy WGSL pre-processor.
// Annotations are single-line WGSL comments prefixed with @oxy: that splice in shared
// snippets, switch feature blocks on and off, and declare the uniforms and textures a
// program binds by name.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "//@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude splices a registered snippet into the program at the annotation site.
	// A snippet is spliced at most once per program; later includes of the same name are dropped.
	//
	// Syntax: //@oxy:include <snippet>
	//
	// Example: //@oxy:include tone_mapping
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeDefine sets a feature flag for the rest of the program.
	//
	// Syntax: //@oxy:define <NAME>
	AnnotationTypeDefine AnnotationType = "define"

	// AnnotationTypeIf opens a block that is kept only when the flag is defined.
	// A leading "!" negates the test.
	//
	// Syntax: //@oxy:if <NAME> | //@oxy:if !<NAME>
	AnnotationTypeIf AnnotationType = "if"

	// AnnotationTypeElse flips the innermost open block.
	AnnotationTypeElse AnnotationType = "else"

	// AnnotationTypeEndif closes the innermost open block.
	AnnotationTypeEndif AnnotationType = "endif"

	// AnnotationTypeUniform declares a named member of the program's uniform block.
	// All uniforms of a program share one block bound at group 0, binding 0, in declaration order.
	//
	// Syntax: //@oxy:uniform <name> <wgsl type>
	//
	// Example: //@oxy:uniform viewProjection mat4x4<f32>
	AnnotationTypeUniform AnnotationType = "uniform"

	// AnnotationTypeTexture declares a named texture in group 1. Non-depth textures get a
	// filtering sampler named <name>Sampler in the following binding.
	//
	// Syntax: //@oxy:texture <name> <wgsl texture type>
	//
	// Example: //@oxy:texture colorMap texture_2d<f32>
	AnnotationTypeTexture AnnotationType = "texture"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Name is the snippet, flag, uniform, or texture name. Empty for else and endif.
	Name string

	// WGSLType is the declared type for uniform and texture annotations.
	WGSLType string

	// Negated is set for "if !NAME".
	Negated bool

	// Line is the 1-based line number in the source being processed.
	Line int

	// Group and Binding are assigned by the pre-processor for uniform and texture declarations.
	Group   uint32
	Binding uint32
}

// DefineLine renders a define annotation line for the given flag.
func DefineLine(name string) string {
	return annotationPrefix + string(AnnotationTypeDefine) + " " + name + "\n"
}

// IncludeLine renders an include annotation line for the given snippet.
func IncludeLine(snippet string) string {
	return annotationPrefix + string(AnnotationTypeInclude) + " " + snippet + "\n"
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not start with the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	after, ok := strings.CutPrefix(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	a := &Annotation{Type: AnnotationType(args[0]), Line: lineNum}
	switch a.Type {
	case AnnotationTypeInclude, AnnotationTypeDefine:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy %s annotation requires exactly one argument", lineNum, a.Type)
		}
		a.Name = args[1]
	case AnnotationTypeIf:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy if annotation requires exactly one flag", lineNum)
		}
		a.Name, a.Negated = strings.CutPrefix(args[1], "!")
		if a.Name == "" {
			return nil, fmt.Errorf("line %d: @oxy if annotation has an empty flag", lineNum)
		}
	case AnnotationTypeElse, AnnotationTypeEndif:
		if len(args) != 1 {
			return nil, fmt.Errorf("line %d: @oxy %s annotation takes no arguments", lineNum, a.Type)
		}
	case AnnotationTypeUniform, AnnotationTypeTexture:
		if len(args) < 3 {
			return nil, fmt.Errorf("line %d: @oxy %s annotation requires a name and a type", lineNum, a.Type)
		}
		a.Name = args[1]
		// types such as array<mat4x4<f32>, 64> contain spaces
		a.WGSLType = strings.Join(args[2:], " ")
		if a.Type == AnnotationTypeTexture && !strings.HasPrefix(a.WGSLType, "texture_") {
			return nil, fmt.Errorf("line %d: %q is not a texture type", lineNum, a.WGSLType)
		}
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
	return a, nil
}
