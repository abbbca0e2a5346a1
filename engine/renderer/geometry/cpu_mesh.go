package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CpuMesh is triangle mesh data on the CPU. Every attribute slice is either empty or has one
// entry per position.
type CpuMesh struct {
	Positions []mgl32.Vec3

	// Indices form triangles. Nil draws the positions as a triangle list.
	Indices []uint32

	Normals []mgl32.Vec3

	// Tangents carry the bitangent sign in w.
	Tangents []mgl32.Vec4

	UVs    []mgl32.Vec2
	Colors []common.Srgba

	// Joints and Weights are read by skinned meshes only.
	Joints  [][4]uint32
	Weights []mgl32.Vec4
}

// VertexCount returns the number of positions.
func (m *CpuMesh) VertexCount() int {
	return len(m.Positions)
}

// Validate checks the mesh for malformed data.
//
// Returns:
//   - error: ErrNoPositions, ErrInvalidIndices or ErrAttributeLength describing the first problem found
func (m *CpuMesh) Validate() error {
	n := len(m.Positions)
	if n == 0 {
		return ErrNoPositions
	}
	if m.Indices != nil {
		if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
			return fmt.Errorf("%w: %d indices do not form triangles", ErrInvalidIndices, len(m.Indices))
		}
		for i, idx := range m.Indices {
			if int(idx) >= n {
				return fmt.Errorf("%w: index %d at %d is out of range for %d vertices", ErrInvalidIndices, idx, i, n)
			}
		}
	} else if n%3 != 0 {
		return fmt.Errorf("%w: %d vertices do not form triangles", ErrInvalidIndices, n)
	}

	lengths := []struct {
		name string
		len  int
	}{
		{"normals", len(m.Normals)},
		{"tangents", len(m.Tangents)},
		{"uvs", len(m.UVs)},
		{"colors", len(m.Colors)},
		{"joints", len(m.Joints)},
		{"weights", len(m.Weights)},
	}
	for _, l := range lengths {
		if l.len != 0 && l.len != n {
			return fmt.Errorf("%w: %d %s for %d vertices", ErrAttributeLength, l.len, l.name, n)
		}
	}
	if (len(m.Joints) == 0) != (len(m.Weights) == 0) {
		return fmt.Errorf("%w: joints and weights must be given together", ErrAttributeLength)
	}
	return nil
}

// ComputeAABB returns the local space bounds of the positions.
func (m *CpuMesh) ComputeAABB() common.AxisAlignedBoundingBox {
	return common.ComputeAABB(m.Positions)
}

// ComputeNormals replaces the normals with smooth vertex normals averaged from the area weighted
// face normals of the triangles sharing each vertex.
func (m *CpuMesh) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(m.Positions))
	m.forEachTriangle(func(i0, i1, i2 uint32) {
		p0, p1, p2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	})
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	m.Normals = normals
}

func (m *CpuMesh) forEachTriangle(fn func(i0, i1, i2 uint32)) {
	if m.Indices != nil {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			fn(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		}
		return
	}
	for i := uint32(0); int(i)+2 < len(m.Positions); i += 3 {
		fn(i, i+1, i+2)
	}
}

// NewCubeMesh returns a unit cube centered at the origin with per-face normals and uvs.
func NewCubeMesh() *CpuMesh {
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	m := &CpuMesh{}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		center := f.normal.Mul(0.5)
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := center.Add(f.u.Mul(c[0] * 0.5)).Add(f.v.Mul(c[1] * 0.5))
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, f.normal)
			m.Tangents = append(m.Tangents, f.u.Vec4(1))
			m.UVs = append(m.UVs, mgl32.Vec2{(c[0] + 1) / 2, (1 - c[1]) / 2})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
