package regex

import "fmt"

// builder owns the arena while a Machine is under construction.
type builder struct {
	factory Factory
	units   []*unit
	// numbers holds the group number of every capturing expression
	numbers map[*Expr]int
	groups  int
}

// unitBuilder emits the graph of a single unit.
type unitBuilder struct {
	*builder
	u *unit
}

// Build compiles an expression tree into a Machine. Group 0 is the whole
// match. Capturing expressions, root included, are numbered from 1 depth
// first, left to right.
func Build(root *Expr, f Factory) (*Machine, error) {
	b := &builder{factory: f, numbers: make(map[*Expr]int)}
	body := root.body()
	for _, c := range body {
		b.number(c)
	}

	h, err := b.unit("S", body)
	if err != nil {
		return nil, err
	}
	return &Machine{units: b.units, root: h, groups: b.groups}, nil
}

func (b *builder) number(e *Expr) {
	if e.Capturing {
		b.groups++
		b.numbers[e] = b.groups
	}
	for _, c := range e.Children {
		b.number(c)
	}
}

func (b *builder) newUnit(prefix string) *unitBuilder {
	u := &unit{
		kind:   graphUnit,
		prefix: prefix,
		graph:  NewGraph(),
		accept: make(map[string]bool),
		subs:   make(map[string]int),
		groups: make([]groupNodes, b.groups+1),
	}
	u.start = u.newNode("")
	return &unitBuilder{builder: b, u: u}
}

// add appends a finished unit to the arena and returns its handle.
func (b *builder) add(u *unit) int {
	b.units = append(b.units, u)
	return len(b.units) - 1
}

// unit builds the concatenation of children as a stand-alone automaton.
func (b *builder) unit(prefix string, children []*Expr) (int, error) {
	ub := b.newUnit(prefix)
	end, err := ub.sequence(children, ub.u.start)
	if err != nil {
		return 0, err
	}
	ub.u.accept[end] = true
	return ub.freeze(), nil
}

// parallel builds an automaton in which every branch leaves the shared
// start node and joins a shared accepting node.
func (b *builder) parallel(prefix string, branches []*Expr) (int, error) {
	ub := b.newUnit(prefix)
	out := ub.node()
	for _, branch := range branches {
		end, err := ub.sequence(branch.body(), ub.u.start)
		if err != nil {
			return 0, err
		}
		ub.u.graph.Add(end, EpsilonArc(), out)
	}
	ub.u.accept[out] = true
	return ub.freeze(), nil
}

func (ub *unitBuilder) freeze() int {
	ub.u.index()
	return ub.add(ub.u)
}

func (ub *unitBuilder) node() string {
	return ub.u.newNode("")
}

// sequence emits children one after another starting at prev and returns
// the node reached after the last one.
func (ub *unitBuilder) sequence(children []*Expr, prev string) (string, error) {
	for _, child := range children {
		if child.Kind == Terminal && !child.Negative && !child.Capturing {
			arc, err := ub.factory.ArcFor(child.Text)
			if err != nil {
				return "", fmt.Errorf("terminal %q: %w", child.Text, err)
			}
			prev = ub.terminal(prev, arc, child.Quantifier)
			continue
		}

		var err error
		prev, err = ub.embed(child, prev)
		if err != nil {
			return "", err
		}
	}
	return prev, nil
}

// terminal wires arc from prev to a fresh node. Loops are placed on the
// fresh node so prev, which may be shared by parallel branches, gets only
// forward edges.
func (ub *unitBuilder) terminal(prev string, arc Arc, q Quantifier) string {
	current := ub.node()
	g := ub.u.graph
	switch q {
	case One:
		g.Add(prev, arc, current)
	case Optional:
		g.Add(prev, arc, current)
		g.Add(prev, EpsilonArc(), current)
	case Star:
		g.Add(prev, EpsilonArc(), current)
		g.Add(current, arc, current)
	case Plus:
		g.Add(prev, arc, current)
		g.Add(current, arc, current)
	default:
		panic(fmt.Sprintf("unexpected quantifier %d", q))
	}
	return current
}

// embed wires a sub-automaton for child between prev and a fresh end node:
//
//	prev -ε-> start -ε-> machine [child] ... -ε-> end
//
// The quantifier decides how start, machine and end are joined.
func (ub *unitBuilder) embed(child *Expr, prev string) (string, error) {
	g := ub.u.graph
	start := ub.node()
	machine := ub.node()
	g.Add(prev, EpsilonArc(), start)
	g.Add(start, EpsilonArc(), machine)

	var (
		h   int
		err error
	)
	switch {
	case child.Negative:
		h, err = ub.negation(machine, child.stripped())
	case child.Kind == Parallel:
		h, err = ub.parallel(machine+"a", child.Children)
	default:
		h, err = ub.unit(machine+"g", child.stripped().body())
	}
	if err != nil {
		return "", err
	}
	ub.u.subs[machine] = h

	end := ub.node()
	switch child.Quantifier {
	case One:
		g.Add(machine, EpsilonArc(), end)
	case Optional:
		g.Add(machine, EpsilonArc(), end)
		g.Add(start, EpsilonArc(), end)
	case Star:
		g.Add(machine, EpsilonArc(), start)
		g.Add(start, EpsilonArc(), end)
	case Plus:
		g.Add(machine, EpsilonArc(), end)
		g.Add(end, EpsilonArc(), start)
	default:
		panic(fmt.Sprintf("unexpected quantifier %d", child.Quantifier))
	}

	if child.Capturing {
		ub.u.groups[ub.numbers[child]] = groupNodes{start: machine, end: end}
	}
	return end, nil
}
