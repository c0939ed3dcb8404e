package bvh

import (
	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/types"
)

// Nodes are comprised of two Vec3 extents and two multipurpose int32
// parameters whose value depends on the node type:
//
//   - For internal nodes LData is > 0 and holds the index of the right child;
//     RData holds the split axis. The left child is implicit: it is always
//     stored immediately after its parent (pre-order construction).
//   - For leafs LData is <= 0 and holds the negated offset into the tree's
//     reordered triangle-index array; RData holds the leaf triangle count.
//
// Each node takes 32 bytes so that a tree maps to one contiguous,
// reference-free buffer.
type Node struct {
	Min   types.Vec3
	LData int32

	Max   types.Vec3
	RData int32
}

// Set bounding box.
func (n *Node) SetBBox(bbox geom.AABB) {
	n.Min = bbox.Min
	n.Max = bbox.Max
}

// Get bounding box.
func (n *Node) BBox() geom.AABB {
	return geom.AABB{Min: n.Min, Max: n.Max}
}

// Set right child node index and split axis, marking the node internal.
func (n *Node) SetSplit(rightChild uint32, axis int) {
	n.LData = int32(rightChild)
	n.RData = int32(axis)
}

// Set triangle range offset and count, marking the node as a leaf.
func (n *Node) SetTriangles(offset, count uint32) {
	n.LData = -int32(offset)
	n.RData = int32(count)
}

// Check whether this node is a leaf.
func (n *Node) Leaf() bool {
	return n.LData <= 0
}

// Get right child node index. Only valid for internal nodes; the left child
// lives at the node's own index + 1.
func (n *Node) RightChild() uint32 {
	return uint32(n.LData)
}

// Get the split axis. Only valid for internal nodes.
func (n *Node) SplitAxis() int {
	return int(n.RData)
}

// Get triangle range offset and count. Only valid for leafs.
func (n *Node) Triangles() (offset, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// FlatBVH is an immutable bounding volume hierarchy stored as a contiguous
// node arena with the root at index 0. TriIndices is a permutation of the
// original triangle indices grouped so that every leaf's triangles are
// contiguous. The source mesh is referenced, not owned, and must outlive
// the tree. Once built, a tree is safe for concurrent read-only queries.
type FlatBVH struct {
	Mesh       *geom.Mesh
	Nodes      []Node
	TriIndices []uint32
}
