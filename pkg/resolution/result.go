package resolution

import (
	"sync"
)

// RootHandle defers the root lookup until a consumer asks for it.
// The first Get resolves and caches the component; later calls return the same object.
type RootHandle struct {
	once     sync.Once
	registry *Registry
	id       ComponentID
	root     *ResolvedComponent
}

// Get returns the root component
func (h *RootHandle) Get() *ResolvedComponent {
	h.once.Do(func() {
		h.root, _ = h.registry.Get(h.id)
	})
	return h.root
}

// ID returns the root identity without materializing the root
func (h *RootHandle) ID() ComponentID {
	return h.id
}

// Result is the read-only outcome of a resolution run. It is safe for
// concurrent use by any number of readers.
type Result struct {
	root       *RootHandle
	registry   *Registry
	cacheStats EdgeCacheStats

	reachableOnce sync.Once
	reachable     []*ResolvedComponent
	edges         []*DependencyEdge

	dagOnce sync.Once
	dag     *DAG
	dagErr  error
}

func newResult(registry *Registry, rootID ComponentID, stats EdgeCacheStats) *Result {
	return &Result{
		root:       &RootHandle{registry: registry, id: rootID},
		registry:   registry,
		cacheStats: stats,
	}
}

// Root returns the root component
func (r *Result) Root() *ResolvedComponent {
	return r.root.Get()
}

// RootHandle returns the lazy handle wrapping the root
func (r *Result) RootHandle() *RootHandle {
	return r.root
}

// Component looks up any registered component by id
func (r *Result) Component(id ComponentID) (*ResolvedComponent, bool) {
	return r.registry.Get(id)
}

// Size returns the number of registered components, reachable or not
func (r *Result) Size() int {
	return r.registry.Len()
}

// EdgeCacheStats returns the edge cache counters captured at completion
func (r *Result) EdgeCacheStats() EdgeCacheStats {
	return r.cacheStats
}

// AllComponents returns every component reachable from the root, breadth first
func (r *Result) AllComponents() []*ResolvedComponent {
	r.walkReachable()
	out := make([]*ResolvedComponent, len(r.reachable))
	copy(out, r.reachable)
	return out
}

// AllDependencies returns every distinct edge declared by a reachable component
func (r *Result) AllDependencies() []*DependencyEdge {
	r.walkReachable()
	out := make([]*DependencyEdge, len(r.edges))
	copy(out, r.edges)
	return out
}

// UnresolvedDependencies returns the reachable edges that failed to resolve
func (r *Result) UnresolvedDependencies() []*DependencyEdge {
	var out []*DependencyEdge
	for _, e := range r.AllDependencies() {
		if e.Kind() == EdgeUnresolved {
			out = append(out, e)
		}
	}
	return out
}

func (r *Result) walkReachable() {
	r.reachableOnce.Do(func() {
		root := r.Root()
		seen := map[ComponentID]bool{root.ID(): true}
		seenEdges := make(map[*DependencyEdge]bool)
		queue := []*ResolvedComponent{root}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			r.reachable = append(r.reachable, c)

			for _, e := range c.dependencies {
				if !seenEdges[e] {
					seenEdges[e] = true
					r.edges = append(r.edges, e)
				}
				to, ok := e.Selected()
				if !ok || seen[to] {
					continue
				}
				seen[to] = true
				if target, found := r.registry.Get(to); found {
					queue = append(queue, target)
				}
			}
		}
	})
}
