package depgraph

import (
	"errors"
	"testing"
)

func TestTopologicalSorter_OrderRespectsEveryEdge(t *testing.T) {
	g := NewGraph()
	g.AddDependency(pkg("app", "v1"), pkg("lib", "v1"))
	g.AddDependency(pkg("app", "v1"), pkg("util", "v1"))
	g.AddDependency(pkg("lib", "v1"), pkg("base", "v1"))
	g.AddDependency(pkg("util", "v1"), pkg("base", "v1"))

	order, err := NewTopologicalSorter().Sort(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != g.Len() {
		t.Fatalf("expected %d packages in order, got %d", g.Len(), len(order))
	}

	assertOrderValid(t, g, order)
}

func assertOrderValid(t *testing.T, g *Graph, order []Package) {
	t.Helper()
	position := make(map[Package]int, len(order))
	for i, p := range order {
		position[p] = i
	}
	// Dependents-first convention: every package precedes its dependencies.
	for _, e := range g.Edges() {
		if position[e.From] > position[e.To] {
			t.Errorf("edge %s -> %s violated: dependent at %d, dependency at %d",
				e.From.Key(), e.To.Key(), position[e.From], position[e.To])
		}
	}
}

func TestTopologicalSorter_PureAndRepeatable(t *testing.T) {
	g := NewGraph()
	g.AddDependency(pkg("a", "v1"), pkg("b", "v1"))
	g.AddDependency(pkg("b", "v1"), pkg("c", "v1"))

	sorter := NewTopologicalSorter()

	first, err := sorter.Sort(g)
	if err != nil {
		t.Fatalf("first sort: %v", err)
	}

	// The graph's own counters must survive a sort.
	deg, err := g.InDegree(pkg("c", "v1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deg != 1 {
		t.Errorf("sort mutated graph in-degree: got %d, want 1", deg)
	}

	second, err := sorter.Sort(g)
	if err != nil {
		t.Fatalf("second sort: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("second sort degenerated: %d vs %d packages", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("sort not deterministic at index %d: %s vs %s",
				i, first[i].Key(), second[i].Key())
		}
	}
}

func TestTopologicalSorter_CycleInfeasible(t *testing.T) {
	g := NewGraph()
	g.AddDependency(pkg("a", "v1"), pkg("b", "v1"))
	g.AddDependency(pkg("b", "v1"), pkg("c", "v1"))
	g.AddDependency(pkg("c", "v1"), pkg("a", "v1"))
	g.AddPackage(pkg("standalone", "v1"))

	order, err := NewTopologicalSorter().Sort(g)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
	if len(order) >= g.Len() {
		t.Errorf("infeasible sort produced %d of %d packages", len(order), g.Len())
	}
}

func TestTopologicalSorter_EmptyGraph(t *testing.T) {
	order, err := NewTopologicalSorter().Sort(NewGraph())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestTopologicalSorter_IndependentPackagesSorted(t *testing.T) {
	g := NewGraph()
	g.AddPackage(pkg("zeta", "v1"))
	g.AddPackage(pkg("alpha", "v1"))
	g.AddPackage(pkg("mid", "v1"))

	order, err := NewTopologicalSorter().Sort(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Package{pkg("alpha", "v1"), pkg("mid", "v1"), pkg("zeta", "v1")}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, order[i].Key(), want[i].Key())
		}
	}
}
