package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Names of the vertex stage input structs. Members of VertexInput advance per vertex,
// members of InstanceInput per instance.
const (
	VertexInputStruct   = "VertexInput"
	InstanceInputStruct = "InstanceInput"
)

// ErrNoEntryPoint is returned by Reflect when a stage entry point is missing.
var ErrNoEntryPoint = errors.New("shader: missing entry point")

// UniformField is one member of a program's uniform block.
type UniformField struct {
	Name   string
	Type   string
	Offset uint64
	Size   uint64
}

// TextureBinding is a texture declared in the texture group with its optional companion sampler.
type TextureBinding struct {
	Name    string
	Type    string
	Group   uint32
	Binding uint32
	Depth   bool

	// Sampler is empty for textures read without a sampler.
	Sampler        string
	SamplerBinding uint32
}

// VertexAttribute is a member of VertexInput or InstanceInput.
type VertexAttribute struct {
	Name     string
	Type     string
	Location uint32
	Format   wgpu.VertexFormat
	Size     uint64
	Instance bool
}

// Reflection describes the named resources of a processed program: what a caller must bind
// before drawing with it.
type Reflection struct {
	Uniforms         []UniformField
	UniformBlockSize uint64
	Textures         []TextureBinding
	Attributes       []VertexAttribute
	VertexEntry      string
	FragmentEntry    string

	// Layouts holds bind group layout descriptors keyed by group, visible to both stages.
	Layouts map[uint32]wgpu.BindGroupLayoutDescriptor
}

// Reflect parses processed WGSL source into a Reflection.
//
// Parameters:
//   - source: WGSL source produced by a PreProcessor
//
// Returns:
//   - *Reflection: the resources declared by the program
//   - error: ErrNoEntryPoint when a stage is missing, or an error for types that cannot be laid out
func Reflect(source string) (*Reflection, error) {
	cleaned := stripComments(source)
	r := &Reflection{
		VertexEntry:   parseEntryPoint(cleaned, stageVertex),
		FragmentEntry: parseEntryPoint(cleaned, stageFragment),
	}
	if r.VertexEntry == "" {
		return nil, fmt.Errorf("%w: no @vertex function", ErrNoEntryPoint)
	}
	if r.FragmentEntry == "" {
		return nil, fmt.Errorf("%w: no @fragment function", ErrNoEntryPoint)
	}

	structs := parseStructBlocks(cleaned)
	sizes := computeStructSizes(structs)

	for _, ps := range structs {
		switch ps.name {
		case UniformBlockType:
			offsets, layout, ok := structFieldOffsets(ps, sizes)
			if !ok {
				return nil, fmt.Errorf("shader: cannot lay out uniform block %q", ps.name)
			}
			for i, f := range ps.fields {
				fl, _ := resolveTypeLayout(f.typeName, sizes)
				r.Uniforms = append(r.Uniforms, UniformField{Name: f.name, Type: f.typeName, Offset: offsets[i], Size: fl.size})
			}
			r.UniformBlockSize = layout.size
		case VertexInputStruct, InstanceInputStruct:
			for _, f := range ps.fields {
				if f.location < 0 {
					return nil, fmt.Errorf("shader: %s.%s has no @location", ps.name, f.name)
				}
				info, ok := wgslVertexFormatMap[f.typeName]
				if !ok {
					return nil, fmt.Errorf("shader: %s.%s has unsupported vertex type %q", ps.name, f.name, f.typeName)
				}
				r.Attributes = append(r.Attributes, VertexAttribute{
					Name:     f.name,
					Type:     f.typeName,
					Location: uint32(f.location),
					Format:   info.format,
					Size:     info.size,
					Instance: ps.name == InstanceInputStruct,
				})
			}
		}
	}

	decls := parseResourceDecls(cleaned)
	samplers := make(map[string]uint32)
	for _, d := range decls {
		if strings.HasPrefix(d.typeName, "sampler") {
			samplers[d.name] = d.binding
		}
	}
	for _, d := range decls {
		if !strings.HasPrefix(d.typeName, "texture_") {
			continue
		}
		t := TextureBinding{
			Name:    d.name,
			Type:    d.typeName,
			Group:   d.group,
			Binding: d.binding,
			Depth:   strings.HasPrefix(d.typeName, "texture_depth_"),
		}
		if b, ok := samplers[d.name+SamplerSuffix]; ok {
			t.Sampler = d.name + SamplerSuffix
			t.SamplerBinding = b
		}
		r.Textures = append(r.Textures, t)
	}
	r.Layouts = buildBindGroupLayouts(decls, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, sizes)
	return r, nil
}

// Uniform looks up a uniform block member by name.
func (r *Reflection) Uniform(name string) (UniformField, bool) {
	for _, u := range r.Uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return UniformField{}, false
}

// Attribute looks up a vertex or instance attribute by name.
func (r *Reflection) Attribute(name string) (VertexAttribute, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return VertexAttribute{}, false
}

// Texture looks up a texture binding by name.
func (r *Reflection) Texture(name string) (TextureBinding, bool) {
	for _, t := range r.Textures {
		if t.Name == name {
			return t, true
		}
	}
	return TextureBinding{}, false
}
