package raycast

import (
	"sync"

	"github.com/achilleasa/raycast/bvh"
	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/types"
)

// BuildState tracks the lifecycle of an object's cached tree.
type BuildState uint8

const (
	StateUnbuilt BuildState = iota
	StateBuilding
	StateReady
	StateStale
)

func (s BuildState) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateStale:
		return "stale"
	}
	return "unknown"
}

// Object binds a mesh to a world transform and caches the tree built over
// its geometry. The tree is built lazily on the first query and rebuilt in
// full after MarkGeometryChanged; there is no incremental refit. Children
// allow a scene-graph collaborator to hand over nested pickable objects;
// each child carries its own full world transform.
type Object struct {
	Mesh      *geom.Mesh
	Transform types.Mat4
	Children  []*Object

	// Guards the build critical section: a query arriving while another
	// goroutine builds the same geometry blocks until the tree is ready.
	mu    sync.Mutex
	state BuildState
	tree  *bvh.FlatBVH
}

// Create an object from a mesh and its local-to-world transform.
func NewObject(mesh *geom.Mesh, transform types.Mat4) *Object {
	return &Object{
		Mesh:      mesh,
		Transform: transform,
		state:     StateUnbuilt,
	}
}

// Signal that the object's geometry buffers changed. A ready tree becomes
// stale and the next query triggers a blocking full rebuild.
func (o *Object) MarkGeometryChanged() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateReady {
		o.state = StateStale
	}
}

// Get the current build state.
func (o *Object) State() BuildState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Get the cached tree, building it first when unbuilt or stale. Build errors
// surface synchronously and leave the object unbuilt.
func (o *Object) Tree(opts bvh.Options) (*bvh.FlatBVH, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateReady {
		return o.tree, nil
	}

	o.state = StateBuilding
	tree, err := bvh.Build(o.Mesh, opts)
	if err != nil {
		o.state = StateUnbuilt
		o.tree = nil
		return nil, err
	}

	o.state = StateReady
	o.tree = tree
	return tree, nil
}
