package regex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func edgeStrings(g *Graph, node string) []string {
	var out []string
	for _, e := range g.Edges(node) {
		for _, t := range e.Targets {
			out = append(out, e.Arc.String()+">"+t)
		}
	}
	return out
}

func TestGraphAdd(t *testing.T) {
	g := NewGraph()
	g.Add("n0", LiteralArc(Sequence{"a"}), "n1")
	g.Add("n0", EpsilonArc(), "n2")
	g.Add("n0", LiteralArc(Sequence{"a"}), "n3")
	g.Add("n0", LiteralArc(Sequence{"a"}), "n1")

	want := []string{"a>n1", "a>n3", "ε>n2"}
	if d := cmp.Diff(want, edgeStrings(g, "n0")); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
	if d := cmp.Diff(2, len(g.Edges("n0"))); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
}

func TestGraphPut(t *testing.T) {
	g := NewGraph()
	g.Add("n0", DotArc(), "n1")
	g.Add("n0", DotArc(), "n2")
	g.Put("n0", DotArc(), "n3")
	g.Put("n1", EpsilonArc(), "n4", "n5")

	if d := cmp.Diff([]string{"dot>n3"}, edgeStrings(g, "n0")); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"ε>n4", "ε>n5"}, edgeStrings(g, "n1")); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
}

func TestGraphLookup(t *testing.T) {
	g := NewGraph()
	g.Add("b", DotArc(), "c")
	g.Add("a", DotArc(), "b")

	if g.Edges("c") != nil {
		t.Errorf("leaf node has edges: %v", g.Edges("c"))
	}
	if d := cmp.Diff([]string{"a", "b"}, g.Nodes()); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
	if d := cmp.Diff("a --dot--> b\nb --dot--> c\n", g.String()); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
}
