package gpu

import "github.com/cogentcore/webgpu/wgpu"

// VertexType is the primitive topology a geometry is drawn with.
type VertexType int

const (
	// Triangles draws every three vertices as a triangle.
	Triangles VertexType = iota

	// Lines draws every two vertices as a line segment.
	Lines

	// Points draws every vertex as a point.
	Points
)

// Topology maps the vertex type to the WebGPU primitive topology.
func (v VertexType) Topology() wgpu.PrimitiveTopology {
	switch v {
	case Lines:
		return wgpu.PrimitiveTopologyLineList
	case Points:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

func (v VertexType) String() string {
	switch v {
	case Lines:
		return "lines"
	case Points:
		return "points"
	default:
		return "triangles"
	}
}
