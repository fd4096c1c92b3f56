package regex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

type unitKind uint8

const (
	// graphUnit is an automaton with its own transition graph.
	graphUnit unitKind = iota
	// negationUnit pairs a wildcard shape automaton with a literal one.
	negationUnit
)

type groupNodes struct {
	start string
	end   string
}

// unit is one automaton of the arena owned by a Machine. Sub-automata are
// referred to by their arena index, never by pointer.
type unit struct {
	kind unitKind

	prefix string
	// next is the node counter, only advanced while the Machine is built
	next   int
	graph  *Graph
	start  string
	accept map[string]bool
	// subs maps an anchor node to the unit that has to match on arrival
	subs map[string]int
	// groups is indexed by global group number; only groups declared in
	// this unit have nodes
	groups     []groupNodes
	groupStart map[string]int
	groupEnd   map[string]int
	ordinal    map[string]int

	positive int
	negative int
}

func (u *unit) newNode(tag string) string {
	id := fmt.Sprintf("%s%s%d", u.prefix, tag, u.next)
	u.next++
	return id
}

// index recomputes the lookup tables derived from graph and groups.
func (u *unit) index() {
	u.ordinal = make(map[string]int)
	add := func(node string) {
		if _, ok := u.ordinal[node]; !ok {
			u.ordinal[node] = len(u.ordinal)
		}
	}
	add(u.start)
	for _, node := range u.graph.Nodes() {
		add(node)
		for _, e := range u.graph.Edges(node) {
			for _, t := range e.Targets {
				add(t)
			}
		}
	}

	u.groupStart = make(map[string]int)
	u.groupEnd = make(map[string]int)
	for g, nodes := range u.groups {
		if nodes.start == "" {
			continue
		}
		u.groupStart[nodes.start] = g
		u.groupEnd[nodes.end] = g
	}
}

// Machine is a compiled automaton. It is never modified after Build returns
// and may be used from several goroutines at once.
type Machine struct {
	units []*unit
	root  int
	// groups counts capturing groups, group 0 excluded
	groups int
}

// Groups returns the number of capturing groups, not counting group 0.
func (m *Machine) Groups() int {
	return m.groups
}

// Span is a half-open range of sequence indices; -1 bounds mean absent.
type Span struct {
	Start int
	End   int
}

var absent = Span{Start: -1, End: -1}

func (s Span) Absent() bool {
	return s.Start < 0
}

// Match is the longest match found from a given start index. End is -1 if
// nothing matched. Groups[0] covers the whole match.
type Match struct {
	Start  int
	End    int
	Groups []Span
}

func (m Match) Found() bool {
	return m.End >= 0
}

// Group returns the span of group i. It panics if i is not a group of the
// pattern that produced m.
func (m Match) Group(i int) Span {
	if i < 0 || i >= len(m.Groups) {
		panic(fmt.Sprintf("regex: group %d out of range [0, %d)", i, len(m.Groups)))
	}
	return m.Groups[i]
}

func (m *Machine) noMatch() Match {
	groups := make([]Span, m.groups+1)
	for i := range groups {
		groups[i] = absent
	}
	return Match{Start: -1, End: -1, Groups: groups}
}

type cursor struct {
	index  int
	node   string
	starts []int
	ends   []int
}

func (c cursor) spawn(index int, node string) cursor {
	return cursor{
		index:  index,
		node:   node,
		starts: slices.Clone(c.starts),
		ends:   slices.Clone(c.ends),
	}
}

// merge copies the groups of a sub-automaton match that c has not set yet.
func (c cursor) merge(sub Match) {
	for g := 1; g < len(sub.Groups); g++ {
		s := sub.Groups[g]
		if s.Absent() {
			continue
		}
		if c.starts[g] < 0 {
			c.starts[g] = s.Start
		}
		if c.ends[g] < 0 {
			c.ends[g] = s.End
		}
	}
}

func (c cursor) materialize(start int) Match {
	groups := make([]Span, len(c.starts))
	groups[0] = Span{Start: start, End: c.index}
	for g := 1; g < len(groups); g++ {
		groups[g] = absent
		if c.starts[g] >= 0 && c.ends[g] >= 0 && c.starts[g] < c.ends[g] {
			groups[g] = Span{Start: c.starts[g], End: c.ends[g]}
		}
	}
	return Match{Start: start, End: c.index, Groups: groups}
}

// visited records the (node, index) pairs one match call has reached.
// Bits are laid out by offset from start, so the set only grows as far
// into the input as the match gets.
type visited struct {
	bits  *bitset.BitSet
	nodes uint
	start int
}

func newVisited(nodes, start int) *visited {
	return &visited{bits: bitset.New(0), nodes: uint(nodes), start: start}
}

// visit marks (node, index) and reports whether it was new.
func (v *visited) visit(node, index int) bool {
	bit := uint(index-v.start)*v.nodes + uint(node)
	if v.bits.Test(bit) {
		return false
	}
	v.bits.Set(bit)
	return true
}

// Match returns the longest match of m in seq starting exactly at start.
func (m *Machine) Match(seq Sequence, start int) Match {
	if start < 0 || start > len(seq) {
		return m.noMatch()
	}
	return m.match(m.root, seq, start)
}

func (m *Machine) match(h int, seq Sequence, start int) Match {
	u := m.units[h]
	if u.kind == negationUnit {
		return m.negate(u, seq, start)
	}

	seen := newVisited(len(u.ordinal), start)
	visit := func(node string, index int) bool {
		return seen.visit(u.ordinal[node], index)
	}

	first := cursor{
		index:  start,
		node:   u.start,
		starts: make([]int, m.groups+1),
		ends:   make([]int, m.groups+1),
	}
	for g := range first.starts {
		first.starts[g] = -1
		first.ends[g] = -1
	}
	visit(first.node, first.index)

	best := m.noMatch()
	frontier := []cursor{first}
	for len(frontier) > 0 {
		var next []cursor
		for _, c := range frontier {
			if sub, ok := u.subs[c.node]; ok {
				sm := m.match(sub, seq, c.index)
				if !sm.Found() {
					continue
				}
				c.index = sm.End
				c.merge(sm)
			}

			if u.accept[c.node] && c.index > best.End {
				best = c.materialize(start)
			}

			for _, e := range u.graph.Edges(c.node) {
				j, ok := e.Arc.Match(seq, c.index)
				if !ok {
					continue
				}
				for _, target := range e.Targets {
					if !visit(target, j) {
						continue
					}
					nc := c.spawn(j, target)
					if g, ok := u.groupStart[target]; ok && nc.starts[g] < 0 {
						nc.starts[g] = j
					}
					if g, ok := u.groupEnd[target]; ok && nc.ends[g] < 0 {
						nc.ends[g] = j
					}
					next = append(next, nc)
				}
			}
		}
		frontier = next
	}
	return best
}

func (m *Machine) String() string {
	var b strings.Builder
	m.dump(&b, m.root)
	return b.String()
}

func (m *Machine) dump(b *strings.Builder, h int) {
	u := m.units[h]
	if u.kind == negationUnit {
		fmt.Fprintf(b, "negation %d: shape %d, literal %d\n", h, u.positive, u.negative)
		m.dump(b, u.positive)
		m.dump(b, u.negative)
		return
	}

	accept := make([]string, 0, len(u.accept))
	for n := range u.accept {
		accept = append(accept, n)
	}
	slices.Sort(accept)
	fmt.Fprintf(b, "automaton %d: start %s, accept %s\n", h, u.start, strings.Join(accept, ", "))
	b.WriteString(u.graph.String())

	anchors := make([]string, 0, len(u.subs))
	for n := range u.subs {
		anchors = append(anchors, n)
	}
	slices.Sort(anchors)
	for _, n := range anchors {
		fmt.Fprintf(b, "%s => %d\n", n, u.subs[n])
	}
	for g, nodes := range u.groups {
		if nodes.start != "" {
			fmt.Fprintf(b, "group %d: %s .. %s\n", g, nodes.start, nodes.end)
		}
	}
	for _, n := range anchors {
		m.dump(b, u.subs[n])
	}
}
