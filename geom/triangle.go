package geom

import (
	"github.com/achilleasa/raycast/types"
)

// Rays whose direction lies in the triangle plane produce a determinant
// close to zero and are rejected as parallel.
const parallelEpsilon float32 = 1e-10

// Intersect a ray with a single triangle using the Moller-Trumbore
// algorithm. A hit is accepted when the barycentric coordinates fall inside
// the triangle and the hit distance lies in [ray.TMin, ray.TMax] and is
// strictly less than limit. The ray's culling mode decides which facings
// are considered based on the determinant sign.
func IntersectTriangle(r *Ray, v0, v1, v2 types.Vec3, limit float32) (t, u, v float32, ok bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	pvec := r.Dir.Cross(edge2)
	det := edge1.Dot(pvec)

	switch r.Cull {
	case CullBack:
		if det < parallelEpsilon {
			return 0, 0, 0, false
		}
	case CullFront:
		if det > -parallelEpsilon {
			return 0, 0, 0, false
		}
	default:
		if det > -parallelEpsilon && det < parallelEpsilon {
			return 0, 0, 0, false
		}
	}

	invDet := 1.0 / det
	tvec := r.Origin.Sub(v0)
	u = tvec.Dot(pvec) * invDet
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(edge1)
	v = r.Dir.Dot(qvec) * invDet
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = edge2.Dot(qvec) * invDet
	if t < r.TMin || t > r.TMax || t >= limit {
		return 0, 0, 0, false
	}

	return t, u, v, true
}
