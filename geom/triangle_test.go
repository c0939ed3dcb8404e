package geom

import (
	"math"
	"testing"

	"github.com/achilleasa/raycast/types"
)

func TestIntersectTriangleHit(t *testing.T) {
	v0 := types.Vec3{-1, -1, 0}
	v1 := types.Vec3{1, -1, 0}
	v2 := types.Vec3{0, 1, 0}

	ray := NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	ht, hu, hv, ok := IntersectTriangle(&ray, v0, v1, v2, math.MaxFloat32)
	if !ok {
		t.Fatal("expected a hit through the triangle interior")
	}
	if ht != 5 {
		t.Fatalf("expected hit at t=5; got %g", ht)
	}
	if hu < 0 || hv < 0 || hu+hv > 1 {
		t.Fatalf("expected interior barycentric coordinates; got u=%g v=%g", hu, hv)
	}
}

func TestIntersectTriangleBarycentricReject(t *testing.T) {
	v0 := types.Vec3{-1, -1, 0}
	v1 := types.Vec3{1, -1, 0}
	v2 := types.Vec3{0, 1, 0}

	// Pass just outside the v1 corner.
	ray := NewRay(types.Vec3{1.5, -1, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	if _, _, _, ok := IntersectTriangle(&ray, v0, v1, v2, math.MaxFloat32); ok {
		t.Fatal("expected a miss outside the triangle bounds")
	}
}

func TestIntersectTriangleParallelReject(t *testing.T) {
	v0 := types.Vec3{-1, -1, 0}
	v1 := types.Vec3{1, -1, 0}
	v2 := types.Vec3{0, 1, 0}

	// The ray travels inside the triangle plane.
	ray := NewRay(types.Vec3{-5, 0, 0}, types.Vec3{1, 0, 0}, 0, math.MaxFloat32)
	if _, _, _, ok := IntersectTriangle(&ray, v0, v1, v2, math.MaxFloat32); ok {
		t.Fatal("expected a parallel ray to be rejected")
	}
}

func TestIntersectTriangleInterval(t *testing.T) {
	v0 := types.Vec3{-1, -1, 0}
	v1 := types.Vec3{1, -1, 0}
	v2 := types.Vec3{0, 1, 0}

	// The triangle sits at t=5; clip it away on both ends.
	ray := NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}, 0, 4)
	if _, _, _, ok := IntersectTriangle(&ray, v0, v1, v2, math.MaxFloat32); ok {
		t.Fatal("expected a miss beyond tMax")
	}

	ray = NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}, 6, math.MaxFloat32)
	if _, _, _, ok := IntersectTriangle(&ray, v0, v1, v2, math.MaxFloat32); ok {
		t.Fatal("expected a miss before tMin")
	}

	// A limit at the hit distance rejects too: best-hit updates are strict.
	ray = NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	if _, _, _, ok := IntersectTriangle(&ray, v0, v1, v2, 5); ok {
		t.Fatal("expected a miss when the limit equals the hit distance")
	}
}

func TestIntersectTriangleCulling(t *testing.T) {
	// Counter-clockwise as seen from +z, so +z is the front side.
	v0 := types.Vec3{-1, -1, 0}
	v1 := types.Vec3{1, -1, 0}
	v2 := types.Vec3{0, 1, 0}

	front := NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	back := NewRay(types.Vec3{0, 0, -5}, types.Vec3{0, 0, 1}, 0, math.MaxFloat32)

	front.Cull = CullBack
	if _, _, _, ok := IntersectTriangle(&front, v0, v1, v2, math.MaxFloat32); !ok {
		t.Fatal("expected a front-facing hit with back-face culling")
	}
	back.Cull = CullBack
	if _, _, _, ok := IntersectTriangle(&back, v0, v1, v2, math.MaxFloat32); ok {
		t.Fatal("expected a back-facing miss with back-face culling")
	}

	front.Cull = CullFront
	if _, _, _, ok := IntersectTriangle(&front, v0, v1, v2, math.MaxFloat32); ok {
		t.Fatal("expected a front-facing miss with front-face culling")
	}
	back.Cull = CullFront
	if _, _, _, ok := IntersectTriangle(&back, v0, v1, v2, math.MaxFloat32); !ok {
		t.Fatal("expected a back-facing hit with front-face culling")
	}

	front.Cull = CullNone
	back.Cull = CullNone
	if _, _, _, ok := IntersectTriangle(&front, v0, v1, v2, math.MaxFloat32); !ok {
		t.Fatal("expected a front-facing hit without culling")
	}
	if _, _, _, ok := IntersectTriangle(&back, v0, v1, v2, math.MaxFloat32); !ok {
		t.Fatal("expected a back-facing hit without culling")
	}
}

func TestAABBIntersectRange(t *testing.T) {
	box := AABB{Min: types.Vec3{-1, -1, -1}, Max: types.Vec3{1, 1, 1}}

	ray := NewRay(types.Vec3{0, 0, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	tNear, tFar := box.IntersectRange(&ray)
	if tNear > tFar {
		t.Fatal("expected the centered ray to enter the box")
	}
	if tNear != 4 || tFar != 6 {
		t.Fatalf("expected entry/exit at 4 and 6; got %g and %g", tNear, tFar)
	}

	// Negative direction components flip the slab ordering.
	ray = NewRay(types.Vec3{-5, 0.5, 0.5}, types.Vec3{1, 0, 0}, 0, math.MaxFloat32)
	tNear, tFar = box.IntersectRange(&ray)
	if tNear > tFar || tNear != 4 {
		t.Fatalf("expected entry at 4 along +x; got %g..%g", tNear, tFar)
	}

	ray = NewRay(types.Vec3{0, 5, 0}, types.Vec3{1, 0, 0}, 0, math.MaxFloat32)
	tNear, tFar = box.IntersectRange(&ray)
	if tNear <= tFar {
		t.Fatal("expected a miss for a ray passing above the box")
	}

	// Axis-parallel ray with zero components relies on the infinities
	// produced by the precomputed inverse direction.
	ray = NewRay(types.Vec3{0.5, 0.5, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	tNear, tFar = box.IntersectRange(&ray)
	if tNear > tFar {
		t.Fatal("expected an axis-parallel ray inside the slabs to hit")
	}
}

func TestAABBIntersectRangeGrazing(t *testing.T) {
	box := AABB{Min: types.Vec3{-1, -1, -1}, Max: types.Vec3{1, 1, 1}}

	// The origin sits exactly on a slab plane with a zero direction
	// component, making the slab products 0 * Inf = NaN. The grazing ray
	// must still report the box as hit.
	specs := []types.Vec3{
		{1, 0.5, 5},   // on the x max plane
		{-1, 0.5, 5},  // on the x min plane
		{0.5, 1, 5},   // on the y max plane
		{1, -1, 5},    // on two planes at once
	}
	for idx, origin := range specs {
		ray := NewRay(origin, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
		tNear, tFar := box.IntersectRange(&ray)
		if tNear > tFar {
			t.Fatalf("[spec %d] expected a grazing ray from %v to touch the box; got %g..%g", idx, origin, tNear, tFar)
		}
		if tNear != 4 || tFar != 6 {
			t.Fatalf("[spec %d] expected entry/exit at 4 and 6; got %g and %g", idx, tNear, tFar)
		}
	}

	// A negative-zero direction component must behave like positive zero.
	ray := NewRay(types.Vec3{1, 0.5, 5}, types.Vec3{float32(math.Copysign(0, -1)), 0, -1}, 0, math.MaxFloat32)
	if tNear, tFar := box.IntersectRange(&ray); tNear > tFar {
		t.Fatalf("expected a grazing ray with a -0 component to touch the box; got %g..%g", tNear, tFar)
	}

	// Outside the slab the zero component still rejects.
	ray = NewRay(types.Vec3{1.5, 0.5, 5}, types.Vec3{0, 0, -1}, 0, math.MaxFloat32)
	if tNear, tFar := box.IntersectRange(&ray); tNear <= tFar {
		t.Fatal("expected a miss for an axis-parallel ray outside the slabs")
	}
}

func TestMeshHelpers(t *testing.T) {
	mesh := &Mesh{
		Positions: []types.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 4}},
		Indices:   []uint32{0, 1, 2, 0, 1, 3},
	}

	if n := mesh.TriangleCount(); n != 2 {
		t.Fatalf("expected 2 triangles; got %d", n)
	}
	if c := mesh.Centroid(0); !approxVec3(c, types.Vec3{2.0 / 3.0, 2.0 / 3.0, 0}, 1e-6) {
		t.Fatalf("expected centroid (2/3, 2/3, 0); got %v", c)
	}
	if n := mesh.FaceNormal(0); n != (types.Vec3{0, 0, 1}) {
		t.Fatalf("expected face normal (0, 0, 1); got %v", n)
	}

	bounds := mesh.TriangleBounds(1)
	if bounds.Min != (types.Vec3{0, 0, 0}) || bounds.Max != (types.Vec3{2, 0, 4}) {
		t.Fatalf("expected bounds (0,0,0)-(2,0,4); got %v-%v", bounds.Min, bounds.Max)
	}
}

func approxVec3(a, b types.Vec3, tolerance float32) bool {
	for i := 0; i < 3; i++ {
		diff := a[i] - b[i]
		if diff < -tolerance || diff > tolerance {
			return false
		}
	}
	return true
}
