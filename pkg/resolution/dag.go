package resolution

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

// DAG is a presentation view of the resolved edges of a Result. Despite the
// name, dependency graphs may contain cycles; ordering queries report them.
type DAG struct {
	// graph holds one vertex per reachable component and one edge per resolved source/target pair
	graph graph.Graph[ComponentID, ComponentID]

	root ComponentID
	ids  []ComponentID
}

// DAG returns the graph view of the result, building it on first use
func (r *Result) DAG() (*DAG, error) {
	r.dagOnce.Do(func() {
		r.dag, r.dagErr = buildDAG(r)
	})
	return r.dag, r.dagErr
}

func buildDAG(r *Result) (*DAG, error) {
	g := graph.New(func(id ComponentID) ComponentID { return id }, graph.Directed())

	components := r.AllComponents()
	ids := make([]ComponentID, 0, len(components))
	for _, c := range components {
		if err := g.AddVertex(c.ID()); err != nil {
			return nil, fmt.Errorf("failed to add vertex %d: %w", c.ID(), err)
		}
		ids = append(ids, c.ID())
	}

	// Several selectors may resolve to the same target; the view keeps one edge per pair
	for _, c := range components {
		for _, e := range c.dependencies {
			to, ok := e.Selected()
			if !ok {
				continue
			}
			if err := g.AddEdge(c.ID(), to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %d -> %d: %w", c.ID(), to, err)
			}
		}
	}

	return &DAG{graph: g, root: r.root.ID(), ids: ids}, nil
}

// TopologicalOrder returns component ids with every component before its
// dependencies. Ties are broken by id so the order is deterministic.
func (d *DAG) TopologicalOrder() ([]ComponentID, error) {
	order, err := graph.StableTopologicalSort(d.graph, func(a, b ComponentID) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("failed to compute topological order (possible cycle): %w", err)
	}
	return order, nil
}

// HasCycles checks if any component depends on itself transitively
func (d *DAG) HasCycles() bool {
	cycles, err := d.Cycles()
	return err != nil || len(cycles) > 0
}

// Cycles returns the groups of components that depend on each other
func (d *DAG) Cycles() ([][]ComponentID, error) {
	sccs, err := graph.StronglyConnectedComponents(d.graph)
	if err != nil {
		return nil, fmt.Errorf("failed to compute strongly connected components: %w", err)
	}

	var cycles [][]ComponentID
	for _, scc := range sccs {
		if len(scc) > 1 {
			cycles = append(cycles, scc)
			continue
		}
		if _, err := d.graph.Edge(scc[0], scc[0]); err == nil {
			cycles = append(cycles, scc)
		}
	}
	return cycles, nil
}

// PathTo returns the shortest chain of component ids from the root to target
func (d *DAG) PathTo(target ComponentID) ([]ComponentID, error) {
	path, err := graph.ShortestPath(d.graph, d.root, target)
	if err != nil {
		return nil, fmt.Errorf("no path from root %d to %d: %w", d.root, target, err)
	}
	return path, nil
}

// Size returns the number of components in the view
func (d *DAG) Size() int {
	return len(d.ids)
}

// Leaves returns components without resolved dependencies
func (d *DAG) Leaves() ([]ComponentID, error) {
	adjacency, err := d.graph.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read adjacency map: %w", err)
	}

	var leaves []ComponentID
	for _, id := range d.ids {
		if len(adjacency[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves, nil
}
