package geom

import (
	"github.com/achilleasa/raycast/types"
)

// Mesh is the raw triangle geometry consumed by the tree builder: a
// contiguous vertex position buffer and an index buffer with 3 entries per
// triangle. The mesh is owned by the geometry collaborator and must not be
// mutated while a tree built from it is in use.
type Mesh struct {
	Positions []types.Vec3
	Indices   []uint32
}

// Get the number of triangles defined by the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Fetch the three vertices of a triangle.
func (m *Mesh) Triangle(tri int) (v0, v1, v2 types.Vec3) {
	base := tri * 3
	return m.Positions[m.Indices[base]],
		m.Positions[m.Indices[base+1]],
		m.Positions[m.Indices[base+2]]
}

// Calculate the normalized geometric normal of a triangle from its winding.
// Degenerate triangles yield a zero vector.
func (m *Mesh) FaceNormal(tri int) types.Vec3 {
	v0, v1, v2 := m.Triangle(tri)
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// Calculate the centroid of a triangle.
func (m *Mesh) Centroid(tri int) types.Vec3 {
	v0, v1, v2 := m.Triangle(tri)
	return v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
}

// Calculate the bounding box of a triangle.
func (m *Mesh) TriangleBounds(tri int) AABB {
	v0, v1, v2 := m.Triangle(tri)
	return AABB{
		Min: types.MinVec3(v0, types.MinVec3(v1, v2)),
		Max: types.MaxVec3(v0, types.MaxVec3(v1, v2)),
	}
}
