package geom

import (
	"math"

	"github.com/achilleasa/raycast/types"
)

// AABB is an axis-aligned bounding box defined by its min/max extents.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create an empty bounding box with inverted extents so that any expansion
// produces a valid box.
func NewAABB() AABB {
	return AABB{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Grow the box to include a point.
func (b *AABB) ExpandPoint(p types.Vec3) {
	b.Min = types.MinVec3(b.Min, p)
	b.Max = types.MaxVec3(b.Max, p)
}

// Grow the box to include another box.
func (b *AABB) ExpandBox(other AABB) {
	b.Min = types.MinVec3(b.Min, other.Min)
	b.Max = types.MaxVec3(b.Max, other.Max)
}

// Get the per-axis extents of the box.
func (b AABB) Extent() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Calculate the total surface area of the box.
func (b AABB) SurfaceArea() float32 {
	side := b.Max.Sub(b.Min)
	return 2.0 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Intersect a ray with the box using the slab method and return the
// parametric entry/exit distances. The box is hit iff tNear <= tFar; range
// checks against the ray interval are left to the caller.
//
// When a ray direction component is zero and the origin sits exactly on one
// of that axis's planes, the slab product is 0 * Inf = NaN. Every comparison
// against NaN is false, so such an axis never tightens the interval and the
// box still counts as touched.
func (b AABB) IntersectRange(r *Ray) (tNear, tFar float32) {
	tNear = float32(math.Inf(-1))
	tFar = float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		t1 := (b.Min[axis] - r.Origin[axis]) * r.InvDir[axis]
		t2 := (b.Max[axis] - r.Origin[axis]) * r.InvDir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
	}

	return tNear, tFar
}
