package depgraph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPackageNotFound is returned when a lookup names a package that was
// never registered in the graph.
var ErrPackageNotFound = errors.New("package not found")

// Graph owns the set of packages and the directed depends-on edges
// between them, plus a derived in-degree counter per package. Edges point
// dependent -> dependency. The in-degree of a package counts how many
// other packages depend on it.
//
// Graphs are built once and then treated as read-only by every analysis;
// none of the analyses in this package mutate the graph.
type Graph struct {
	adjacency map[Package]map[Package]struct{}
	inDegree  map[Package]int
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		adjacency: make(map[Package]map[Package]struct{}),
		inDegree:  make(map[Package]int),
	}
}

// AddPackage registers p with an empty dependency set. Calling it again
// for a known package is a no-op: the dependency set and any in-degree
// accumulated from earlier AddDependency calls are left untouched.
func (g *Graph) AddPackage(p Package) {
	if _, ok := g.adjacency[p]; !ok {
		g.adjacency[p] = make(map[Package]struct{})
	}
	if _, ok := g.inDegree[p]; !ok {
		g.inDegree[p] = 0
	}
}

// AddDependency records that p depends on d. Both endpoints are
// registered automatically if they were never added explicitly, so the
// graph can never hold an edge to a package it does not know about.
// Duplicate edges are ignored and do not inflate d's in-degree.
func (g *Graph) AddDependency(p, d Package) {
	g.AddPackage(p)
	g.AddPackage(d)

	if _, ok := g.adjacency[p][d]; ok {
		return
	}
	g.adjacency[p][d] = struct{}{}
	g.inDegree[d]++
}

// Contains reports whether p is registered in the graph.
func (g *Graph) Contains(p Package) bool {
	_, ok := g.adjacency[p]
	return ok
}

// Len returns the number of registered packages.
func (g *Graph) Len() int {
	return len(g.adjacency)
}

// Dependencies returns p's direct dependencies in deterministic order.
func (g *Graph) Dependencies(p Package) ([]Package, error) {
	deps, ok := g.adjacency[p]
	if !ok {
		return nil, fmt.Errorf("dependencies of %s: %w", p.Key(), ErrPackageNotFound)
	}
	return sortedPackages(deps), nil
}

// DependsOn reports whether the edge p -> d exists.
func (g *Graph) DependsOn(p, d Package) bool {
	_, ok := g.adjacency[p][d]
	return ok
}

// InDegree returns the number of packages that directly depend on p.
func (g *Graph) InDegree(p Package) (int, error) {
	deg, ok := g.inDegree[p]
	if !ok {
		return 0, fmt.Errorf("in-degree of %s: %w", p.Key(), ErrPackageNotFound)
	}
	return deg, nil
}

// InDegreeSnapshot returns a fresh copy of the in-degree counters.
// Consumers that decrement counters (the topological sorter) work on the
// snapshot, so the graph's own state survives any number of runs.
func (g *Graph) InDegreeSnapshot() map[Package]int {
	snapshot := make(map[Package]int, len(g.inDegree))
	for p, deg := range g.inDegree {
		snapshot[p] = deg
	}
	return snapshot
}

// Packages returns every registered package in deterministic order.
func (g *Graph) Packages() []Package {
	pkgs := make([]Package, 0, len(g.adjacency))
	for p := range g.adjacency {
		pkgs = append(pkgs, p)
	}
	sortPackages(pkgs)
	return pkgs
}

// Edges returns every depends-on edge in deterministic order. This is
// the structured form consumed by renderers and conflict detection.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.adjacency))
	for _, p := range g.Packages() {
		for _, d := range sortedPackages(g.adjacency[p]) {
			edges = append(edges, Edge{From: p, To: d})
		}
	}
	return edges
}

// dependencyList is the internal, error-free variant of Dependencies.
// An unknown package simply has no further dependencies.
func (g *Graph) dependencyList(p Package) []Package {
	deps, ok := g.adjacency[p]
	if !ok {
		return nil
	}
	return sortedPackages(deps)
}

func sortedPackages(set map[Package]struct{}) []Package {
	pkgs := make([]Package, 0, len(set))
	for p := range set {
		pkgs = append(pkgs, p)
	}
	sortPackages(pkgs)
	return pkgs
}

func sortPackages(pkgs []Package) {
	sort.Slice(pkgs, func(i, j int) bool {
		if pkgs[i].Name != pkgs[j].Name {
			return pkgs[i].Name < pkgs[j].Name
		}
		return pkgs[i].Version < pkgs[j].Version
	})
}
