package depgraph

// CompatibilityPolicy reports whether the versions on a dependency edge
// can coexist. Policies see both endpoints so they can consider names as
// well as version tokens.
type CompatibilityPolicy func(pkg, dep Package) bool

// ExactVersionPolicy is the default policy: an edge is clean only when
// both endpoints carry the identical version string. It is a naive
// consistency check, not constraint resolution.
func ExactVersionPolicy(pkg, dep Package) bool {
	return pkg.Version == dep.Version
}

// Conflict is a single dependency edge flagged by the active policy.
type Conflict struct {
	Package    Package `json:"package"`
	Dependency Package `json:"dependency"`
}

// ConflictDetector scans every dependency edge against a compatibility
// policy.
type ConflictDetector struct {
	policy CompatibilityPolicy
}

// NewConflictDetector creates a conflict detector. A nil policy selects
// ExactVersionPolicy.
func NewConflictDetector(policy CompatibilityPolicy) *ConflictDetector {
	if policy == nil {
		policy = ExactVersionPolicy
	}
	return &ConflictDetector{policy: policy}
}

// DetectConflict reports whether any edge violates the policy,
// short-circuiting on the first hit.
func (cd *ConflictDetector) DetectConflict(g *Graph) bool {
	for _, e := range g.Edges() {
		if !cd.policy(e.From, e.To) {
			return true
		}
	}
	return false
}

// Conflicts returns every edge that violates the policy, in the graph's
// deterministic edge order.
func (cd *ConflictDetector) Conflicts(g *Graph) []Conflict {
	conflicts := make([]Conflict, 0)
	for _, e := range g.Edges() {
		if !cd.policy(e.From, e.To) {
			conflicts = append(conflicts, Conflict{Package: e.From, Dependency: e.To})
		}
	}
	return conflicts
}
