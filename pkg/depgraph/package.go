package depgraph

// Package identifies a package by name and version. The version is an
// opaque token; nothing in this package parses or orders version strings.
// Package is a comparable value type and is used directly as a map key,
// which gives two packages the same identity exactly when both fields
// match.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Key returns the canonical name@version form used in rendered output,
// JSON edge IDs, and cache keys.
func (p Package) Key() string {
	return p.Name + "@" + p.Version
}

func (p Package) String() string {
	return p.Key()
}

// Edge is a single directed depends-on relation: From requires To.
type Edge struct {
	From Package `json:"from"`
	To   Package `json:"to"`
}
