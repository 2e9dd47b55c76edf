package depgraph

import (
	"fmt"
	"strings"
)

// Visualizer renders a graph for external consumption. Traversal and
// formatting are separated: Graph.Edges is the structured form, and the
// render methods here only format it.
type Visualizer struct{}

// NewVisualizer creates a visualizer.
func NewVisualizer() *Visualizer {
	return &Visualizer{}
}

// RenderDOT renders the graph in Graphviz DOT notation, one edge per
// line. Quote and backslash characters in names and versions are escaped
// so the output stays well-formed for arbitrary labels.
func (v *Visualizer) RenderDOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  \"%s\" -> \"%s\";\n", dotLabel(e.From), dotLabel(e.To))
	}
	b.WriteString("}\n")
	return b.String()
}

func dotLabel(p Package) string {
	return escapeDOT(p.Name) + " " + escapeDOT(p.Version)
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains node data for Cytoscape.js.
type CytoscapeNodeData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains edge data for Cytoscape.js.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// CytoscapeGraph is the complete graph in Cytoscape.js format.
type CytoscapeGraph struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// RenderCytoscape converts the graph to Cytoscape.js elements. Node and
// edge IDs are the stable name@version keys, so repeated renders of the
// same graph are identical.
func (v *Visualizer) RenderCytoscape(g *Graph) CytoscapeGraph {
	cyto := CytoscapeGraph{
		Nodes: make([]CytoscapeNode, 0, g.Len()),
		Edges: make([]CytoscapeEdge, 0),
	}

	for _, p := range g.Packages() {
		cyto.Nodes = append(cyto.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:      p.Key(),
				Name:    p.Name,
				Version: p.Version,
			},
		})
	}

	for _, e := range g.Edges() {
		cyto.Edges = append(cyto.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     e.From.Key() + "->" + e.To.Key(),
				Source: e.From.Key(),
				Target: e.To.Key(),
			},
		})
	}

	return cyto
}
