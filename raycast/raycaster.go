package raycast

import (
	"math"
	"sort"

	"github.com/achilleasa/raycast/bvh"
	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/types"
)

// Hit describes an intersection in world space.
type Hit struct {
	// Distance from the ray origin to the intersection point in world
	// units.
	Distance float32

	// World-space intersection point and geometric normal.
	Point  types.Vec3
	Normal types.Vec3

	// Barycentric coordinates on the hit triangle.
	U, V float32

	// Index of the hit triangle in the object's original index buffer.
	Triangle uint32

	// The object that owns the hit triangle.
	Object *Object
}

// Raycaster maps world-space rays into per-object local space, queries each
// object's tree and aggregates the results. Candidate filtering (broad
// phase) is the scene-graph collaborator's job; every object handed in is
// queried.
type Raycaster struct {
	// World-space distance interval of valid hits.
	Near float32
	Far  float32

	// Triangle facings accepted by queries.
	Cull geom.CullMode

	// Construction options applied when an object tree needs building.
	Options bvh.Options

	logger log.Logger
}

// Create a raycaster accepting hits at any non-negative distance.
func New() *Raycaster {
	return &Raycaster{
		Far:    math.MaxFloat32,
		logger: log.New("raycaster"),
	}
}

// Find the nearest intersection on the object, plus its children when
// recursive is set. Results are sorted ascending by world distance. A build
// failure on any visited object aborts the query.
func (rc *Raycaster) IntersectObject(obj *Object, origin, dir types.Vec3, recursive bool) ([]Hit, error) {
	hits, err := rc.collect(obj, origin, dir, recursive, nil)
	if err != nil {
		return nil, err
	}

	sortHits(hits)
	return hits, nil
}

// Find the nearest intersection per candidate object and aggregate all
// results into a single list sorted ascending by world distance.
func (rc *Raycaster) IntersectObjects(objects []*Object, origin, dir types.Vec3, recursive bool) ([]Hit, error) {
	var hits []Hit
	var err error

	for _, obj := range objects {
		hits, err = rc.collect(obj, origin, dir, recursive, hits)
		if err != nil {
			return nil, err
		}
	}

	sortHits(hits)
	return hits, nil
}

// Report whether any geometry in the object list blocks the ray within
// maxDist world units. Children are always visited.
func (rc *Raycaster) Occluded(objects []*Object, origin, dir types.Vec3, maxDist float32) (bool, error) {
	for _, obj := range objects {
		ray, _, scale, ok := rc.localRay(obj, origin, dir)
		if ok {
			ray.TMax = maxDist * scale

			tree, err := obj.Tree(rc.Options)
			if err != nil {
				return false, err
			}
			if tree.AnyHit(&ray) {
				return true, nil
			}
		}

		if len(obj.Children) > 0 {
			blocked, err := rc.Occluded(obj.Children, origin, dir, maxDist)
			if err != nil || blocked {
				return blocked, err
			}
		}
	}

	return false, nil
}

func (rc *Raycaster) collect(obj *Object, origin, dir types.Vec3, recursive bool, hits []Hit) ([]Hit, error) {
	hit, ok, err := rc.intersectSingle(obj, origin, dir)
	if err != nil {
		return nil, err
	}
	if ok {
		hits = append(hits, hit)
	}

	if recursive {
		for _, child := range obj.Children {
			hits, err = rc.collect(child, origin, dir, recursive, hits)
			if err != nil {
				return nil, err
			}
		}
	}

	return hits, nil
}

func (rc *Raycaster) intersectSingle(obj *Object, origin, dir types.Vec3) (Hit, bool, error) {
	ray, inv, scale, ok := rc.localRay(obj, origin, dir)
	if !ok {
		return Hit{}, false, nil
	}

	tree, err := obj.Tree(rc.Options)
	if err != nil {
		return Hit{}, false, err
	}

	local, ok := tree.NearestHit(&ray)
	if !ok {
		return Hit{}, false, nil
	}

	// Hit point and normal map back through the object transform; normals
	// use the inverse transpose so non-uniform scale keeps them
	// perpendicular.
	point := obj.Transform.TransformPoint(ray.At(local.T))
	normal := inv.Transposed().TransformDir(obj.Mesh.FaceNormal(int(local.Triangle))).Normalize()

	return Hit{
		Distance: local.T / scale,
		Point:    point,
		Normal:   normal,
		U:        local.U,
		V:        local.V,
		Triangle: local.Triangle,
		Object:   obj,
	}, true, nil
}

// Transform the world ray into the object's local space. The inverse object
// transform is returned for reuse by normal mapping. The local direction is
// renormalized and the scale factor between local parametric distance and
// world distance returned alongside; the ray interval is mapped into local
// units with it. Degenerate rays and non-invertible transforms report false.
func (rc *Raycaster) localRay(obj *Object, origin, dir types.Vec3) (geom.Ray, types.Mat4, float32, bool) {
	inv := obj.Transform.Inv()

	localDir := inv.TransformDir(dir)
	scale := localDir.Len()
	if scale == 0 {
		rc.logger.Debugf("skipping object: degenerate ray direction %v under transform", dir)
		return geom.Ray{}, inv, 0, false
	}

	ray := geom.NewRay(
		inv.TransformPoint(origin),
		localDir.Mul(1/scale),
		rc.Near*scale,
		rc.Far*scale,
	)
	ray.Cull = rc.Cull
	return ray, inv, scale, true
}

func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}
