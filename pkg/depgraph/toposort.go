package depgraph

import "errors"

// ErrCycleDetected is returned by Sort when no total build order exists.
// It is the sorter's own cycle signal, independent of CycleDetector; the
// two always agree on the same graph.
var ErrCycleDetected = errors.New("dependency cycle detected")

// TopologicalSorter derives a build order using Kahn's algorithm. Each
// run consumes a fresh in-degree snapshot, so sorting is pure and
// repeatable: the graph is never mutated and a second Sort on the same
// graph returns the same result.
type TopologicalSorter struct{}

// NewTopologicalSorter creates a topological sorter.
func NewTopologicalSorter() *TopologicalSorter {
	return &TopologicalSorter{}
}

// Sort returns the packages in build order. Edges point
// dependent -> dependency and the queue seeds from packages with
// in-degree zero, so packages nothing depends on come first and every
// package precedes all of its dependencies in the result.
//
// When the graph contains a cycle, Sort returns ErrCycleDetected along
// with the partial order it could schedule; the partial order is always
// strictly shorter than the package count in that case.
func (s *TopologicalSorter) Sort(g *Graph) ([]Package, error) {
	inDegree := g.InDegreeSnapshot()

	// Seed with every package no one depends on, in deterministic order.
	queue := make([]Package, 0, g.Len())
	for _, p := range g.Packages() {
		if inDegree[p] == 0 {
			queue = append(queue, p)
		}
	}

	order := make([]Package, 0, g.Len())
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		order = append(order, pkg)

		for _, dep := range g.dependencyList(pkg) {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != g.Len() {
		return order, ErrCycleDetected
	}
	return order, nil
}
