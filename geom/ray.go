package geom

import (
	"github.com/achilleasa/raycast/types"
)

// CullMode selects which triangle facings a query accepts.
type CullMode uint8

const (
	// Accept intersections with both triangle facings.
	CullNone CullMode = iota

	// Reject back faces; only front-facing triangles report hits.
	CullBack

	// Reject front faces; only back-facing triangles report hits.
	CullFront
)

// Ray describes a single intersection query. Direction is expected to be
// normalized and non-zero; a degenerate direction never matches anything.
// TMin/TMax bound the interval of valid hit distances.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3

	// Component-wise reciprocal of Dir. Zero components map to +/-Inf
	// which the slab test handles without branching.
	InvDir types.Vec3

	TMin float32
	TMax float32

	Cull CullMode
}

// Create a ray with a precomputed inverse direction. Negative-zero direction
// components are canonicalized to +0 so zero components always invert to
// +Inf, keeping the slab test's NaN handling symmetric.
func NewRay(origin, dir types.Vec3, tMin, tMax float32) Ray {
	dir = types.Vec3{dir[0] + 0, dir[1] + 0, dir[2] + 0}
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: types.Vec3{1.0 / dir[0], 1.0 / dir[1], 1.0 / dir[2]},
		TMin:   tMin,
		TMax:   tMax,
	}
}

// Get the point at parametric distance t along the ray.
func (r *Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Check whether the ray direction is the zero vector.
func (r *Ray) Degenerate() bool {
	return r.Dir[0] == 0 && r.Dir[1] == 0 && r.Dir[2] == 0
}

// RayHit describes an accepted ray-triangle intersection in the queried
// mesh's local space. Triangle indexes the original, pre-reorder index
// buffer.
type RayHit struct {
	T        float32
	U, V     float32
	Triangle uint32
}
