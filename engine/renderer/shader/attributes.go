package shader

import "strings"

// FragmentAttributes is the set of per-vertex attributes a fragment stage reads from the vertex output.
// Materials and effects report what they require, geometries report which of those they can supply.
type FragmentAttributes struct {
	Normal   bool
	Tangents bool
	UV       bool
	Color    bool
}

// FragmentAttributesNone requires nothing beyond the position.
var FragmentAttributesNone = FragmentAttributes{}

// FragmentAttributesAll requires every attribute.
var FragmentAttributesAll = FragmentAttributes{Normal: true, Tangents: true, UV: true, Color: true}

// Intersect returns the attributes present in both sets.
//
// Parameters:
//   - other: the set to intersect with
//
// Returns:
//   - FragmentAttributes: the attributes set in both a and other
func (a FragmentAttributes) Intersect(other FragmentAttributes) FragmentAttributes {
	return FragmentAttributes{
		Normal:   a.Normal && other.Normal,
		Tangents: a.Tangents && other.Tangents,
		UV:       a.UV && other.UV,
		Color:    a.Color && other.Color,
	}
}

// Union returns the attributes present in either set.
func (a FragmentAttributes) Union(other FragmentAttributes) FragmentAttributes {
	return FragmentAttributes{
		Normal:   a.Normal || other.Normal,
		Tangents: a.Tangents || other.Tangents,
		UV:       a.UV || other.UV,
		Color:    a.Color || other.Color,
	}
}

// Defines returns the pre-processor define lines that switch on the vertex stage blocks for the set.
// Tangents imply normals since the bitangent is derived from both.
//
// Returns:
//   - string: zero or more "//@oxy:define" lines, each terminated by a newline
func (a FragmentAttributes) Defines() string {
	var sb strings.Builder
	if a.Normal || a.Tangents {
		sb.WriteString(DefineLine(DefineNormals))
	}
	if a.Tangents {
		sb.WriteString(DefineLine(DefineTangents))
	}
	if a.UV {
		sb.WriteString(DefineLine(DefineUVs))
	}
	if a.Color {
		sb.WriteString(DefineLine(DefineVertexColors))
	}
	return sb.String()
}

func (a FragmentAttributes) String() string {
	parts := make([]string, 0, 4)
	if a.Normal {
		parts = append(parts, "normal")
	}
	if a.Tangents {
		parts = append(parts, "tangents")
	}
	if a.UV {
		parts = append(parts, "uv")
	}
	if a.Color {
		parts = append(parts, "color")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}
