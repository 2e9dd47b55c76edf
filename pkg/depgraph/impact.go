package depgraph

// ImpactAnalyzer answers reverse-dependency questions: who breaks when a
// package changes.
type ImpactAnalyzer struct{}

// NewImpactAnalyzer creates an impact analyzer.
func NewImpactAnalyzer() *ImpactAnalyzer {
	return &ImpactAnalyzer{}
}

// Dependents returns exactly the packages whose dependency set contains
// target — a single-hop reverse lookup, no transitive closure.
func (a *ImpactAnalyzer) Dependents(g *Graph, target Package) []Package {
	dependents := make([]Package, 0)
	for _, p := range g.Packages() {
		if g.DependsOn(p, target) {
			dependents = append(dependents, p)
		}
	}
	return dependents
}

// ImpactReport describes everything affected by a change to Target.
type ImpactReport struct {
	Target               Package   `json:"target"`
	DirectDependents     []Package `json:"direct_dependents"`
	TransitiveDependents []Package `json:"transitive_dependents"`
	TotalImpact          int       `json:"total_impact"`
}

// Impact builds the full blast radius for target: its direct dependents
// plus every package that reaches target through them. The transitive
// list never repeats a direct dependent or the target itself.
func (a *ImpactAnalyzer) Impact(g *Graph, target Package) *ImpactReport {
	direct := a.Dependents(g, target)

	seen := make(map[Package]bool, len(direct)+1)
	seen[target] = true
	for _, p := range direct {
		seen[p] = true
	}

	transitive := make([]Package, 0)
	frontier := direct
	for len(frontier) > 0 {
		next := make([]Package, 0)
		for _, p := range frontier {
			for _, dependent := range a.Dependents(g, p) {
				if seen[dependent] {
					continue
				}
				seen[dependent] = true
				transitive = append(transitive, dependent)
				next = append(next, dependent)
			}
		}
		frontier = next
	}
	sortPackages(transitive)

	return &ImpactReport{
		Target:               target,
		DirectDependents:     direct,
		TransitiveDependents: transitive,
		TotalImpact:          len(direct) + len(transitive),
	}
}
