// Package registry holds the in-memory catalog of package manifests and
// drives the depgraph engine from it.
//
// # Overview
//
// A manifest declares one package (name, version) and its direct
// dependencies as name@version references. The catalog accepts manifests
// over HTTP, builds dependency graphs from them, and exposes the graph
// analyses: build order, cycle check, version conflicts, impact, and
// graph renderings.
//
// # Usage Example
//
// Register and analyze:
//
//	catalog := registry.NewCatalog()
//	_ = catalog.Put(&registry.Manifest{
//		Name:         "api",
//		Version:      "v1.2.0",
//		Dependencies: []string{"common@v1.0.0"},
//	})
//
//	g := catalog.BuildGraph()
//	order, err := depgraph.NewTopologicalSorter().Sort(g)
//
// The catalog fingerprint changes whenever its manifest set changes, so
// cached analysis reports invalidate naturally:
//
//	key := catalog.Fingerprint() + ":build-order"
//
// # Related Packages
//
//   - pkg/depgraph: the graph engine the catalog feeds
//   - pkg/cache: report caching keyed by catalog fingerprint
package registry
