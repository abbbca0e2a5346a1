package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// stage identifies the entry point kind searched by parseEntryPoint.
type stage int

const (
	stageVertex stage = iota
	stageFragment
)

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct member: optional attributes, name, colon, type.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex and fragmentEntryRegex capture the entry point function names
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> uniforms: Uniforms;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// resourceDecl is one @group/@binding variable found in source.
type resourceDecl struct {
	group        uint32
	binding      uint32
	addressSpace string
	name         string
	typeName     string
}

// parseResourceDecls returns every bound resource variable in comment-free source, in source order.
func parseResourceDecls(cleaned string) []resourceDecl {
	matches := bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1)
	decls := make([]resourceDecl, 0, len(matches))
	for _, m := range matches {
		group, _ := strconv.ParseUint(m[1], 10, 32)
		binding, _ := strconv.ParseUint(m[2], 10, 32)
		decls = append(decls, resourceDecl{
			group:        uint32(group),
			binding:      uint32(binding),
			addressSpace: strings.TrimSpace(m[3]),
			name:         strings.TrimSpace(m[4]),
			typeName:     CanonicalType(m[5]),
		})
	}
	return decls
}

// buildBindGroupLayouts turns resource declarations into layout descriptors keyed by group.
// Entries are sorted by binding and uniform buffers get their minimum binding size from
// the resolved struct layouts.
//
// Parameters:
//   - decls: the declarations found in the program
//   - visibility: the stages every entry is visible to
//   - structSizes: resolved struct layouts
//
// Returns:
//   - map[uint32]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
func buildBindGroupLayouts(decls []resourceDecl, visibility wgpu.ShaderStage, structSizes map[string]wgslTypeLayout) map[uint32]wgpu.BindGroupLayoutDescriptor {
	groups := make(map[uint32][]wgpu.BindGroupLayoutEntry)
	for _, d := range decls {
		entry := classifyResource(d.binding, visibility, d.addressSpace, d.typeName)
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if layout, ok := resolveTypeLayout(d.typeName, structSizes); ok && layout.size > 0 {
				entry.Buffer.MinBindingSize = layout.size
			}
		}
		groups[d.group] = append(groups[d.group], entry)
	}

	result := make(map[uint32]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result
}

// parseEntryPoint returns the name of the first entry point of the given stage, or "".
func parseEntryPoint(cleaned string, s stage) string {
	re := vertexEntryRegex
	if s == stageFragment {
		re = fragmentEntryRegex
	}
	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseStructBlocks finds all struct blocks in comment-free WGSL source.
func parseStructBlocks(cleaned string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(cleaned, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}
	return structs
}

// parseStructFields parses a struct body into members with their @location and @builtin attributes.
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := parsedField{location: -1}
		field.isBuiltin = builtinRegex.MatchString(line)
		if m := locationRegex.FindStringSubmatch(line); m != nil {
			if loc, err := strconv.Atoi(m[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = CanonicalType(fm[2])
		fields = append(fields, field)
	}
	return fields
}
