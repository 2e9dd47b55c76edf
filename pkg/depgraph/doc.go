// Package depgraph provides the package dependency graph engine and its
// structural analyses.
//
// # Overview
//
// This package models packages as (name, version) identities, stores the
// directed depends-on relation between them, and runs read-only analyses
// over the resulting graph: cycle detection, topological build ordering,
// version conflict flagging, impact analysis, and graph rendering.
//
// # Key Features
//
// Graph Construction: AddPackage/AddDependency with automatic registration
// Cycle Detection: iterative DFS with a cycle witness path
// Build Ordering: Kahn's algorithm over an in-degree snapshot
// Conflict Detection: pluggable version compatibility policies
// Impact Analysis: direct and transitive reverse-dependency lookup
// Rendering: structured edge lists, Graphviz DOT, Cytoscape.js JSON
//
// # Usage Example
//
// Build a graph and derive a build order:
//
//	g := depgraph.NewGraph()
//	g.AddPackage(depgraph.Package{Name: "api", Version: "v1.2.0"})
//	g.AddDependency(
//		depgraph.Package{Name: "api", Version: "v1.2.0"},
//		depgraph.Package{Name: "common", Version: "v1.0.0"},
//	)
//
//	if depgraph.NewCycleDetector().DetectCycle(g) {
//		// resolution impossible, stop here
//	}
//	order, err := depgraph.NewTopologicalSorter().Sort(g)
//
// Find what breaks when a package changes:
//
//	report := depgraph.NewImpactAnalyzer().Impact(g, target)
//	for _, dep := range report.DirectDependents {
//		fmt.Println(dep.Key())
//	}
//
// All analyses are pure reads: the graph is never mutated after
// construction, so any number of analyses can run against the same
// instance. The graph itself is not safe for concurrent mutation;
// callers that share one across goroutines must serialize writes.
//
// # Related Packages
//
//   - pkg/registry: manifest catalog that builds these graphs
//   - pkg/cache: caching of analysis reports by graph fingerprint
package depgraph
