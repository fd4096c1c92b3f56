package regex

import (
	"maps"
	"slices"
)

// negation builds the unit for !inner. Two automata are built from inner:
// the literal one and a shape one where every consuming arc is replaced by
// wildcards. The pair matches where the shape matches and the literal
// pattern does not end at the same index.
//
// Nested negations are not reliably supported: inside a shape automaton both
// halves of the inner negation become wildcards, so it never matches.
func (b *builder) negation(anchor string, inner *Expr) (int, error) {
	literal, err := b.unit(anchor+"n", inner.body())
	if err != nil {
		return 0, err
	}
	shape, err := b.unit(anchor+"w", inner.body())
	if err != nil {
		return 0, err
	}
	b.wildcard(shape)
	return b.add(&unit{kind: negationUnit, positive: shape, negative: literal}), nil
}

// wildcard rewrites unit h and every unit below it in place. Zero-width arcs
// are kept; a registered special becomes one chain of dots per distinct
// alternative length; anything else consuming becomes a single dot.
func (b *builder) wildcard(h int) {
	u := b.units[h]
	if u.kind == negationUnit {
		b.wildcard(u.positive)
		b.wildcard(u.negative)
		return
	}
	for _, sub := range u.subs {
		b.wildcard(sub)
	}

	specials := b.factory.Specials()
	g := NewGraph()
	for _, node := range u.graph.Nodes() {
		for _, e := range u.graph.Edges(node) {
			if e.Arc.zeroWidth() {
				g.Put(node, e.Arc, e.Targets...)
				continue
			}
			if alts, ok := specials[e.Arc.name]; ok && e.Arc.kind == Set {
				dotChains(u, g, node, alternativeLengths(alts), e.Targets)
				continue
			}
			for _, t := range e.Targets {
				g.Add(node, DotArc(), t)
			}
		}
	}
	u.graph = g
	u.index()
}

func dotChains(u *unit, g *Graph, from string, lengths []int, targets []string) {
	for _, l := range lengths {
		if l == 0 {
			for _, t := range targets {
				g.Add(from, EpsilonArc(), t)
			}
			continue
		}
		node := from
		for i := 1; i < l; i++ {
			next := u.newNode("d")
			g.Add(node, DotArc(), next)
			node = next
		}
		for _, t := range targets {
			g.Add(node, DotArc(), t)
		}
	}
}

func alternativeLengths(alts []Sequence) []int {
	seen := make(map[int]struct{})
	for _, alt := range alts {
		seen[len(alt)] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// negate matches the pair built by negation.
func (m *Machine) negate(u *unit, seq Sequence, start int) Match {
	if start >= len(seq) {
		return m.noMatch()
	}
	shape := m.match(u.positive, seq, start)
	literal := m.match(u.negative, seq, start)
	if shape.End == literal.End || !shape.Found() {
		return m.noMatch()
	}
	return shape
}
