package bvh

import (
	"math"

	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/log"
)

// Capacity of the per-query work stack. Trees deep enough to exceed it are
// pathological; the individual query fails gracefully instead of crashing.
const maxStackDepth = 64

var queryLogger = log.New("bvh")

// NearestHit finds the intersection with the smallest hit distance within
// the ray interval, or reports false when nothing is hit. The result is the
// strict minimum t over all valid intersections and does not depend on
// traversal order.
func (t *FlatBVH) NearestHit(ray *geom.Ray) (geom.RayHit, bool) {
	var best geom.RayHit
	if len(t.Nodes) == 0 || ray.Degenerate() || ray.TMin > ray.TMax {
		return best, false
	}

	var stack [maxStackDepth]uint32
	stack[0] = 0
	sp := 1

	found := false
	bestT := float32(math.MaxFloat32)

	for sp > 0 {
		sp--
		node := &t.Nodes[stack[sp]]

		if node.Leaf() {
			offset, count := node.Triangles()
			for i := offset; i < offset+count; i++ {
				tri := t.TriIndices[i]
				v0, v1, v2 := t.Mesh.Triangle(int(tri))
				if ht, hu, hv, ok := geom.IntersectTriangle(ray, v0, v1, v2, bestT); ok {
					bestT = ht
					best = geom.RayHit{T: ht, U: hu, V: hv, Triangle: tri}
					found = true
				}
			}
			continue
		}

		leftIndex := stack[sp] + 1
		rightIndex := node.RightChild()

		// A child is a candidate only when the ray enters its box
		// before the current best hit and exits after TMin.
		lNear, lFar := t.Nodes[leftIndex].BBox().IntersectRange(ray)
		rNear, rFar := t.Nodes[rightIndex].BBox().IntersectRange(ray)
		lHit := lNear <= lFar && lNear <= bestT && lNear <= ray.TMax && lFar >= ray.TMin
		rHit := rNear <= rFar && rNear <= bestT && rNear <= ray.TMax && rFar >= ray.TMin

		switch {
		case lHit && rHit:
			// Descend the nearer child first; an early best hit
			// prunes the farther subtree.
			if rNear < lNear {
				leftIndex, rightIndex = rightIndex, leftIndex
			}
			if sp+2 > maxStackDepth {
				queryLogger.Warningf("traversal stack exhausted at depth %d; dropping query", sp)
				return geom.RayHit{}, false
			}
			stack[sp] = rightIndex
			stack[sp+1] = leftIndex
			sp += 2
		case lHit:
			stack[sp] = leftIndex
			sp++
		case rHit:
			stack[sp] = rightIndex
			sp++
		}
	}

	return best, found
}

// AnyHit reports whether the ray intersects any triangle within its
// interval. It shares the traversal shape of NearestHit but terminates on
// the first accepted intersection, making it the cheaper choice for
// occlusion-style queries.
func (t *FlatBVH) AnyHit(ray *geom.Ray) bool {
	if len(t.Nodes) == 0 || ray.Degenerate() || ray.TMin > ray.TMax {
		return false
	}

	var stack [maxStackDepth]uint32
	stack[0] = 0
	sp := 1

	for sp > 0 {
		sp--
		node := &t.Nodes[stack[sp]]

		if node.Leaf() {
			offset, count := node.Triangles()
			for i := offset; i < offset+count; i++ {
				tri := t.TriIndices[i]
				v0, v1, v2 := t.Mesh.Triangle(int(tri))
				if _, _, _, ok := geom.IntersectTriangle(ray, v0, v1, v2, math.MaxFloat32); ok {
					return true
				}
			}
			continue
		}

		leftIndex := stack[sp] + 1
		rightIndex := node.RightChild()

		lNear, lFar := t.Nodes[leftIndex].BBox().IntersectRange(ray)
		rNear, rFar := t.Nodes[rightIndex].BBox().IntersectRange(ray)
		lHit := lNear <= lFar && lNear <= ray.TMax && lFar >= ray.TMin
		rHit := rNear <= rFar && rNear <= ray.TMax && rFar >= ray.TMin

		switch {
		case lHit && rHit:
			if sp+2 > maxStackDepth {
				queryLogger.Warningf("traversal stack exhausted at depth %d; dropping query", sp)
				return false
			}
			stack[sp] = rightIndex
			stack[sp+1] = leftIndex
			sp += 2
		case lHit:
			stack[sp] = leftIndex
			sp++
		case rHit:
			stack[sp] = rightIndex
			sp++
		}
	}

	return false
}
