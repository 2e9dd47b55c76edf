package depgraph

// CycleDetector finds circular dependencies via depth-first traversal.
// The traversal keeps an explicit frame stack instead of recursing, so
// adversarially deep dependency chains cannot blow the goroutine stack.
type CycleDetector struct{}

// NewCycleDetector creates a cycle detector.
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// DetectCycle reports whether the graph contains any circular
// dependency. Traversal short-circuits on the first back edge found.
func (cd *CycleDetector) DetectCycle(g *Graph) bool {
	return cd.FindCycle(g) != nil
}

// FindCycle returns a witness path for the first cycle encountered, as
// a package sequence whose last element repeats the first. It returns
// nil when the graph is acyclic. Which cycle is reported first depends
// on traversal order and is not part of the contract; only nil/non-nil
// is.
func (cd *CycleDetector) FindCycle(g *Graph) []Package {
	visited := make(map[Package]bool, g.Len())
	onStack := make(map[Package]bool)

	type frame struct {
		pkg  Package
		deps []Package
		next int
	}

	for _, start := range g.Packages() {
		if visited[start] {
			continue
		}

		stack := []frame{{pkg: start, deps: g.dependencyList(start)}}
		visited[start] = true
		onStack[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(top.deps) {
				dep := top.deps[top.next]
				top.next++

				if onStack[dep] {
					// Back edge: the active path from dep to the top of
					// the stack, closed with dep again, is the cycle.
					cycle := make([]Package, 0, len(stack)+1)
					collecting := false
					for _, f := range stack {
						if f.pkg == dep {
							collecting = true
						}
						if collecting {
							cycle = append(cycle, f.pkg)
						}
					}
					return append(cycle, dep)
				}

				if !visited[dep] {
					visited[dep] = true
					onStack[dep] = true
					stack = append(stack, frame{pkg: dep, deps: g.dependencyList(dep)})
				}
				continue
			}

			onStack[top.pkg] = false
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}
