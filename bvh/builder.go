package bvh

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/types"
)

const (
	DefaultMaxLeafSize   = 4
	DefaultBinCount      = 32
	DefaultTraversalCost = 1.0
	DefaultIntersectCost = 1.5

	// Centroid extents below this threshold are treated as degenerate;
	// an axis this flat yields no usable split candidates.
	minCentroidExtent float32 = 1e-6
)

var ErrMalformedIndexBuffer = errors.New("bvh: index buffer length is not a multiple of 3")

// ConstructionError indicates that the input index buffer references a
// vertex outside the position buffer. No partial tree is returned.
type ConstructionError struct {
	Triangle int
	Index    uint32
	Vertices int
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("bvh: triangle %d references vertex %d; mesh defines %d vertices", e.Triangle, e.Index, e.Vertices)
}

// Options control tree construction. Zero values fall back to the package
// defaults.
type Options struct {
	// Ranges with this many triangles or fewer always become leafs.
	MaxLeafSize int

	// Number of spatial bins evaluated per axis when searching for the
	// best split.
	BinCount int

	// Cost model constants for the surface area heuristic.
	TraversalCost float32
	IntersectCost float32
}

func (o *Options) applyDefaults() {
	if o.MaxLeafSize <= 0 {
		o.MaxLeafSize = DefaultMaxLeafSize
	}
	if o.BinCount <= 1 {
		o.BinCount = DefaultBinCount
	}
	if o.TraversalCost <= 0 {
		o.TraversalCost = DefaultTraversalCost
	}
	if o.IntersectCost <= 0 {
		o.IntersectCost = DefaultIntersectCost
	}
}

type buildStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder struct {
	logger log.Logger
	mesh   *geom.Mesh
	opts   Options

	// Per-triangle precomputed data, indexed by original triangle index.
	centroids []types.Vec3
	triBounds []geom.AABB

	// The triangle index indirection array. It is permuted in place
	// during partitioning and becomes the tree's reordered index array.
	order []uint32

	// Scratch state reused across split searches.
	bins       []bin
	rightArea  []float32
	rightCount []int

	nodes []Node
	stats buildStats
}

type bin struct {
	count  int
	bounds geom.AABB
}

// Build constructs a tree over the mesh triangles using binned surface area
// heuristic partitioning. Construction is deterministic: identical input and
// options always produce identical node and index arrays.
func Build(mesh *geom.Mesh, opts Options) (*FlatBVH, error) {
	opts.applyDefaults()

	if len(mesh.Indices)%3 != 0 {
		return nil, ErrMalformedIndexBuffer
	}
	for i, index := range mesh.Indices {
		if int(index) >= len(mesh.Positions) {
			return nil, &ConstructionError{
				Triangle: i / 3,
				Index:    index,
				Vertices: len(mesh.Positions),
			}
		}
	}

	b := &builder{
		logger:     log.New("bvh builder"),
		mesh:       mesh,
		opts:       opts,
		bins:       make([]bin, opts.BinCount),
		rightArea:  make([]float32, opts.BinCount),
		rightCount: make([]int, opts.BinCount),
	}

	start := time.Now()
	triCount := mesh.TriangleCount()

	b.centroids = make([]types.Vec3, triCount)
	b.triBounds = make([]geom.AABB, triCount)
	b.order = make([]uint32, triCount)
	for tri := 0; tri < triCount; tri++ {
		b.centroids[tri] = mesh.Centroid(tri)
		b.triBounds[tri] = mesh.TriangleBounds(tri)
		b.order[tri] = uint32(tri)
	}

	b.partition(0, triCount, 0)

	b.logger.Debugf(
		"tree build time for %d triangles: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		triCount, time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes+b.stats.leafs, b.stats.leafs,
	)

	return &FlatBVH{
		Mesh:       mesh,
		Nodes:      b.nodes,
		TriIndices: b.order,
	}, nil
}

// Partition the triangle range [start, end) and return the index of the node
// that was emitted for it. The left sub-range of a split is always processed
// first so that the left child lands at the parent's own index + 1.
func (b *builder) partition(start, end, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	bounds := geom.NewAABB()
	for i := start; i < end; i++ {
		bounds.ExpandBox(b.triBounds[b.order[i]])
	}

	var node Node
	node.SetBBox(bounds)

	count := end - start
	if count <= b.opts.MaxLeafSize {
		return b.createLeaf(&node, start, count)
	}

	// The split search bins triangle centroids, so candidate positions are
	// derived from the centroid bounds rather than the node bounds.
	centroidBounds := geom.NewAABB()
	for i := start; i < end; i++ {
		centroidBounds.ExpandPoint(b.centroids[b.order[i]])
	}

	ext := centroidBounds.Extent()
	if ext[0] < minCentroidExtent && ext[1] < minCentroidExtent && ext[2] < minCentroidExtent {
		// All centroids coincide; no axis can separate them. Force a
		// leaf to guarantee termination.
		return b.createLeaf(&node, start, count)
	}

	axis, splitBin, splitCost, found := b.findSplit(start, end, centroidBounds, bounds.SurfaceArea())

	// Reject the split if leaving the range as a single leaf is cheaper.
	if !found || splitCost >= float32(count)*b.opts.IntersectCost {
		return b.createLeaf(&node, start, count)
	}

	mid := b.partitionRange(start, end, axis, splitBin, centroidBounds)

	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	b.stats.nodes++

	b.partition(start, mid, depth+1)
	rightIndex := b.partition(mid, end, depth+1)
	b.nodes[nodeIndex].SetSplit(rightIndex, axis)

	return nodeIndex
}

// Emit a leaf covering count triangles starting at offset in the indirection
// array and return its node index.
func (b *builder) createLeaf(node *Node, offset, count int) uint32 {
	node.SetTriangles(uint32(offset), uint32(count))

	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, *node)
	b.stats.leafs++

	return nodeIndex
}

// Search all three axes for the binned split with the lowest SAH cost:
//
//	cost = Ct + (leftArea/parentArea)*leftCount*Ci + (rightArea/parentArea)*rightCount*Ci
//
// Candidates are scanned in ascending axis then ascending bin order with a
// strict less-than comparison, so cost ties resolve to the lowest axis and
// bin for reproducible trees. Splits that leave one side empty are skipped.
func (b *builder) findSplit(start, end int, centroidBounds geom.AABB, parentArea float32) (bestAxis, bestBin int, bestCost float32, found bool) {
	if parentArea <= 0 {
		return 0, 0, 0, false
	}

	binCount := b.opts.BinCount
	bestCost = math.MaxFloat32

	for axis := 0; axis < 3; axis++ {
		ext := centroidBounds.Max[axis] - centroidBounds.Min[axis]
		if ext < minCentroidExtent {
			continue
		}

		for i := range b.bins {
			b.bins[i] = bin{bounds: geom.NewAABB()}
		}

		scale := float32(binCount) / ext
		for i := start; i < end; i++ {
			tri := b.order[i]
			bi := binIndex(b.centroids[tri][axis], centroidBounds.Min[axis], scale, binCount)
			b.bins[bi].count++
			b.bins[bi].bounds.ExpandBox(b.triBounds[tri])
		}

		// Suffix pass: accumulated bounds/counts to the right of each
		// split position.
		accBounds := geom.NewAABB()
		accCount := 0
		for s := binCount - 1; s > 0; s-- {
			accBounds.ExpandBox(b.bins[s].bounds)
			accCount += b.bins[s].count
			b.rightArea[s] = accBounds.SurfaceArea()
			b.rightCount[s] = accCount
		}

		// Prefix pass: evaluate every split position. Split s keeps
		// bins [0, s] on the left.
		accBounds = geom.NewAABB()
		accCount = 0
		for s := 0; s < binCount-1; s++ {
			accBounds.ExpandBox(b.bins[s].bounds)
			accCount += b.bins[s].count
			if accCount == 0 || b.rightCount[s+1] == 0 {
				continue
			}

			cost := b.opts.TraversalCost +
				(accBounds.SurfaceArea()/parentArea)*float32(accCount)*b.opts.IntersectCost +
				(b.rightArea[s+1]/parentArea)*float32(b.rightCount[s+1])*b.opts.IntersectCost
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestBin = s
				found = true
			}
		}
	}

	return bestAxis, bestBin, bestCost, found
}

// Partition the indirection array range in place around the selected bin so
// that triangles whose centroid falls in bins [0, splitBin] precede the
// rest. Returns the index of the first right-side triangle. The predicate
// reuses the exact bin assignment of the split search, so both sides are
// guaranteed non-empty.
func (b *builder) partitionRange(start, end, axis, splitBin int, centroidBounds geom.AABB) int {
	scale := float32(b.opts.BinCount) / (centroidBounds.Max[axis] - centroidBounds.Min[axis])
	cmin := centroidBounds.Min[axis]

	left, right := start, end-1
	for left <= right {
		for left <= right && binIndex(b.centroids[b.order[left]][axis], cmin, scale, b.opts.BinCount) <= splitBin {
			left++
		}
		for left <= right && binIndex(b.centroids[b.order[right]][axis], cmin, scale, b.opts.BinCount) > splitBin {
			right--
		}
		if left < right {
			b.order[left], b.order[right] = b.order[right], b.order[left]
			left++
			right--
		}
	}

	return left
}

// Map a centroid coordinate to its bin, clamping to the valid bin range to
// absorb float rounding at the extents.
func binIndex(coord, min, scale float32, binCount int) int {
	bi := int((coord - min) * scale)
	if bi < 0 {
		bi = 0
	}
	if bi >= binCount {
		bi = binCount - 1
	}
	return bi
}
