package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/depscope/depscope/pkg/depgraph"
)

// ErrManifestNotFound is returned when a lookup names a manifest the
// catalog does not hold.
var ErrManifestNotFound = errors.New("manifest not found")

// Catalog is the in-memory manifest store. It is safe for concurrent
// use; the graphs it builds are independent snapshots, so analyses never
// race with catalog writes.
type Catalog struct {
	mu        sync.RWMutex
	manifests map[string]*Manifest
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		manifests: make(map[string]*Manifest),
	}
}

// Put validates and stores a manifest, replacing any previous manifest
// for the same package.
func (c *Catalog) Put(m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.manifests[m.Key()] = m
	return nil
}

// Get retrieves the manifest for a package.
func (c *Catalog) Get(name, version string) (*Manifest, error) {
	key := depgraph.Package{Name: name, Version: version}.Key()

	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.manifests[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrManifestNotFound)
	}
	return m, nil
}

// List returns every manifest sorted by key.
func (c *Catalog) List() []*Manifest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	manifests := make([]*Manifest, 0, len(c.manifests))
	for _, m := range c.manifests {
		manifests = append(manifests, m)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Key() < manifests[j].Key()
	})
	return manifests
}

// Len returns the number of stored manifests.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.manifests)
}

// Fingerprint returns a stable hash of the catalog's contents. Any
// manifest change produces a new fingerprint, which cache keys embed so
// stale analysis reports can never be served.
func (c *Catalog) Fingerprint() string {
	h := sha256.New()
	for _, m := range c.List() {
		deps := append([]string(nil), m.Dependencies...)
		sort.Strings(deps)
		fmt.Fprintf(h, "%s:%s\n", m.Key(), strings.Join(deps, ","))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildGraph builds the dependency graph of the whole catalog. Declared
// references without a stored manifest become leaf packages with no
// dependencies of their own.
func (c *Catalog) BuildGraph() *depgraph.Graph {
	g := depgraph.NewGraph()
	for _, m := range c.List() {
		g.AddPackage(m.Package())
		refs, err := m.DependencyRefs()
		if err != nil {
			// Put validated every stored manifest; an unparseable ref
			// cannot occur here.
			continue
		}
		for _, dep := range refs {
			g.AddDependency(m.Package(), dep)
		}
	}
	return g
}

// BuildGraphFor builds the subgraph reachable from one root package,
// following stored manifests breadth-first.
func (c *Catalog) BuildGraphFor(name, version string) (*depgraph.Graph, error) {
	root, err := c.Get(name, version)
	if err != nil {
		return nil, err
	}

	g := depgraph.NewGraph()
	seen := map[string]bool{root.Key(): true}
	frontier := []*Manifest{root}

	for len(frontier) > 0 {
		m := frontier[0]
		frontier = frontier[1:]

		g.AddPackage(m.Package())
		refs, err := m.DependencyRefs()
		if err != nil {
			continue
		}
		for _, dep := range refs {
			g.AddDependency(m.Package(), dep)
			if seen[dep.Key()] {
				continue
			}
			seen[dep.Key()] = true
			if next, err := c.Get(dep.Name, dep.Version); err == nil {
				frontier = append(frontier, next)
			}
		}
	}

	return g, nil
}
