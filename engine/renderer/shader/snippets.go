package shader

import (
	"embed"
	"path"
	"strings"
)

//go:embed assets/*.wgsl
var assets embed.FS

// Include names of the built-in snippets.
const (
	SnippetVertexOutput       = "vertex_output"
	SnippetMeshVertex         = "mesh_vertex"
	SnippetToneMapping        = "tone_mapping"
	SnippetColorMapping       = "color_mapping"
	SnippetLighting           = "lighting"
	SnippetColorTextureSingle = "color_texture_single"
	SnippetColorTextureArray  = "color_texture_array"
	SnippetDepthTexture       = "depth_texture"
)

// builtinSnippets holds every embedded asset keyed by its file name without extension.
var builtinSnippets = loadSnippets()

// Program stage sources. Geometries provide the vertex stages, materials and effects the fragment stages.
var (
	LinesSource            = builtinSnippets["lines"]
	MeshSource             = builtinSnippets["mesh"]
	InstancedMeshSource    = builtinSnippets["instanced_mesh"]
	SkinnedMeshSource      = builtinSnippets["skinned_mesh"]
	ScreenQuadSource       = builtinSnippets["screen_quad"]
	ColorMaterialSource    = builtinSnippets["color_material"]
	PhysicalMaterialSource = builtinSnippets["physical_material"]
	OitResolveSource       = builtinSnippets["oit_resolve"]
	CopyEffectSource       = builtinSnippets["copy_effect"]
)

func loadSnippets() map[string]string {
	entries, err := assets.ReadDir("assets")
	if err != nil {
		panic("shader: embedded assets missing: " + err.Error())
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := assets.ReadFile(path.Join("assets", e.Name()))
		if err != nil {
			panic("shader: reading embedded asset " + e.Name() + ": " + err.Error())
		}
		out[strings.TrimSuffix(e.Name(), ".wgsl")] = string(data)
	}
	return out
}

// Snippet returns the source of a built-in snippet.
func Snippet(name string) (string, bool) {
	src, ok := builtinSnippets[name]
	return src, ok
}
