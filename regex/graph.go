package regex

import (
	"slices"
	"strings"
)

// Edge is one arc leaving a node together with every node it leads to.
type Edge struct {
	Arc     Arc
	Targets []string
}

type arcTable struct {
	edges []Edge
	// index maps Arc.key to a position in edges
	index map[string]int
}

// Graph maps (node, arc) to a set of target nodes. Edges keep the order in
// which their arcs were first inserted so matching is deterministic.
type Graph struct {
	nodes map[string]*arcTable
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*arcTable)}
}

func (g *Graph) table(node string) *arcTable {
	t, ok := g.nodes[node]
	if !ok {
		t = &arcTable{index: make(map[string]int)}
		g.nodes[node] = t
	}
	return t
}

// Add unions target into the targets of (node, arc).
func (g *Graph) Add(node string, arc Arc, target string) {
	t := g.table(node)
	k := arc.key()
	i, ok := t.index[k]
	if !ok {
		t.index[k] = len(t.edges)
		t.edges = append(t.edges, Edge{Arc: arc, Targets: []string{target}})
		return
	}
	if !slices.Contains(t.edges[i].Targets, target) {
		t.edges[i].Targets = append(t.edges[i].Targets, target)
	}
}

// Put replaces the targets of (node, arc).
func (g *Graph) Put(node string, arc Arc, targets ...string) {
	t := g.table(node)
	k := arc.key()
	targets = slices.Clone(targets)
	if i, ok := t.index[k]; ok {
		t.edges[i].Targets = targets
		return
	}
	t.index[k] = len(t.edges)
	t.edges = append(t.edges, Edge{Arc: arc, Targets: targets})
}

// Edges returns the outgoing edges of node; nil if node has none.
func (g *Graph) Edges(node string) []Edge {
	if t, ok := g.nodes[node]; ok {
		return t.edges
	}
	return nil
}

// Nodes returns every node with outgoing edges, sorted.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

func (g *Graph) String() string {
	var b strings.Builder
	for _, node := range g.Nodes() {
		for _, e := range g.Edges(node) {
			b.WriteString(node)
			b.WriteString(" --")
			b.WriteString(e.Arc.String())
			b.WriteString("--> ")
			b.WriteString(strings.Join(e.Targets, ", "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
