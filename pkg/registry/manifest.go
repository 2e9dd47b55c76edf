package registry

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/depscope/depscope/pkg/depgraph"
)

// Manifest declares a package and its direct dependencies. Dependencies
// are name@version references; versions are opaque tokens.
type Manifest struct {
	Name         string   `yaml:"name" json:"name"`
	Version      string   `yaml:"version" json:"version"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// ParseManifest decodes a manifest from YAML (JSON bodies parse too,
// YAML being a superset) and validates it.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest's own fields and every dependency
// reference. It does not require referenced packages to exist in the
// catalog; unknown references become leaf packages at graph build time.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest name is required")
	}
	if strings.Contains(m.Name, "@") {
		return fmt.Errorf("manifest name %q must not contain '@'", m.Name)
	}
	if m.Version == "" {
		return fmt.Errorf("manifest version is required")
	}
	for _, ref := range m.Dependencies {
		if _, err := ParseRef(ref); err != nil {
			return fmt.Errorf("manifest %s: %w", m.Key(), err)
		}
	}
	return nil
}

// Package returns the manifest's own package identity.
func (m *Manifest) Package() depgraph.Package {
	return depgraph.Package{Name: m.Name, Version: m.Version}
}

// Key returns the catalog key, name@version.
func (m *Manifest) Key() string {
	return m.Package().Key()
}

// DependencyRefs resolves the declared references into package
// identities. Manifests admitted through Validate never fail here.
func (m *Manifest) DependencyRefs() ([]depgraph.Package, error) {
	refs := make([]depgraph.Package, 0, len(m.Dependencies))
	for _, ref := range m.Dependencies {
		p, err := ParseRef(ref)
		if err != nil {
			return nil, err
		}
		refs = append(refs, p)
	}
	return refs, nil
}

// ParseRef parses a name@version reference.
func ParseRef(ref string) (depgraph.Package, error) {
	name, version, ok := strings.Cut(ref, "@")
	if !ok || name == "" || version == "" {
		return depgraph.Package{}, fmt.Errorf("invalid dependency reference %q: want name@version", ref)
	}
	return depgraph.Package{Name: name, Version: version}, nil
}
