package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/pkg/depgraph"
)

func manifest(name, version string, deps ...string) *Manifest {
	return &Manifest{Name: name, Version: version, Dependencies: deps}
}

func TestCatalog_PutGet(t *testing.T) {
	catalog := NewCatalog()

	require.NoError(t, catalog.Put(manifest("api", "v1.0.0", "lib@v1.0.0")))

	m, err := catalog.Get("api", "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "api@v1.0.0", m.Key())

	_, err = catalog.Get("api", "v9.9.9")
	assert.True(t, errors.Is(err, ErrManifestNotFound))
}

func TestCatalog_PutRejectsInvalid(t *testing.T) {
	catalog := NewCatalog()

	err := catalog.Put(manifest("", "v1.0.0"))
	assert.Error(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func TestCatalog_PutReplaces(t *testing.T) {
	catalog := NewCatalog()

	require.NoError(t, catalog.Put(manifest("api", "v1.0.0", "old@v1")))
	require.NoError(t, catalog.Put(manifest("api", "v1.0.0", "new@v1")))

	assert.Equal(t, 1, catalog.Len())
	m, err := catalog.Get("api", "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"new@v1"}, m.Dependencies)
}

func TestCatalog_ListSorted(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Put(manifest("zeta", "v1")))
	require.NoError(t, catalog.Put(manifest("alpha", "v1")))

	list := catalog.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha@v1", list[0].Key())
	assert.Equal(t, "zeta@v1", list[1].Key())
}

func TestCatalog_BuildGraph(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Put(manifest("app", "v1", "lib@v1", "util@v1")))
	require.NoError(t, catalog.Put(manifest("lib", "v1", "base@v1")))

	g := catalog.BuildGraph()

	// app, lib, util, base: referenced-only packages become leaves.
	assert.Equal(t, 4, g.Len())

	util := depgraph.Package{Name: "util", Version: "v1"}
	require.True(t, g.Contains(util))
	deps, err := g.Dependencies(util)
	require.NoError(t, err)
	assert.Empty(t, deps)

	deg, err := g.InDegree(depgraph.Package{Name: "base", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, 1, deg)
}

func TestCatalog_BuildGraphFor(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Put(manifest("app", "v1", "lib@v1")))
	require.NoError(t, catalog.Put(manifest("lib", "v1", "base@v1")))
	require.NoError(t, catalog.Put(manifest("unrelated", "v1")))

	g, err := catalog.BuildGraphFor("app", "v1")
	require.NoError(t, err)

	// Only the reachable slice: app, lib, base.
	assert.Equal(t, 3, g.Len())
	assert.False(t, g.Contains(depgraph.Package{Name: "unrelated", Version: "v1"}))

	_, err = catalog.BuildGraphFor("ghost", "v1")
	assert.True(t, errors.Is(err, ErrManifestNotFound))
}

func TestCatalog_BuildGraphForCyclicCatalog(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Put(manifest("a", "v1", "b@v1")))
	require.NoError(t, catalog.Put(manifest("b", "v1", "a@v1")))

	g, err := catalog.BuildGraphFor("a", "v1")
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	assert.True(t, depgraph.NewCycleDetector().DetectCycle(g))
}

func TestCatalog_Fingerprint(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Put(manifest("app", "v1", "lib@v1")))

	before := catalog.Fingerprint()
	assert.Equal(t, before, catalog.Fingerprint(), "fingerprint must be stable")

	require.NoError(t, catalog.Put(manifest("lib", "v1")))
	assert.NotEqual(t, before, catalog.Fingerprint(), "fingerprint must change with the catalog")
}

func TestCatalog_FingerprintIgnoresDependencyOrder(t *testing.T) {
	a := NewCatalog()
	require.NoError(t, a.Put(manifest("app", "v1", "x@v1", "y@v1")))

	b := NewCatalog()
	require.NoError(t, b.Put(manifest("app", "v1", "y@v1", "x@v1")))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
