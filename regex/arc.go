package regex

import (
	"strconv"
	"strings"
)

type ArcKind uint8

const (
	Epsilon ArcKind = iota
	Literal
	Dot
	Set
	WordStart
	WordEnd
)

var arcKindNames = [...]string{
	Epsilon:   "ε",
	Literal:   "lit",
	Dot:       "dot",
	Set:       "set",
	WordStart: "^",
	WordEnd:   "$",
}

func (k ArcKind) String() string {
	if int(k) < len(arcKindNames) {
		return arcKindNames[k]
	}
	return "ArcKind(" + strconv.Itoa(int(k)) + ")"
}

// Arc is the test attached to an edge of the automaton. Arcs are values and
// never change after construction.
type Arc struct {
	kind ArcKind
	// token is the element run of a Literal.
	token Sequence
	// name and alternatives describe a Set; name is empty for anonymous sets.
	name         string
	alternatives []Sequence
}

func EpsilonArc() Arc {
	return Arc{kind: Epsilon}
}

func DotArc() Arc {
	return Arc{kind: Dot}
}

func LiteralArc(token Sequence) Arc {
	return Arc{kind: Literal, token: token}
}

// SetArc matches the first of alternatives found at the current index.
func SetArc(name string, alternatives []Sequence) Arc {
	return Arc{kind: Set, name: name, alternatives: alternatives}
}

func WordStartArc() Arc {
	return Arc{kind: WordStart}
}

func WordEndArc() Arc {
	return Arc{kind: WordEnd}
}

func (a Arc) Kind() ArcKind {
	return a.kind
}

// Match returns the index reached after consuming what the arc accepts at
// index i of seq.
func (a Arc) Match(seq Sequence, i int) (int, bool) {
	switch a.kind {
	case Epsilon:
		return i, true
	case Literal:
		if seq.HasPrefixAt(i, a.token) {
			return i + len(a.token), true
		}
	case Dot:
		if i >= 0 && i < len(seq) {
			return i + 1, true
		}
	case Set:
		for _, alt := range a.alternatives {
			if seq.HasPrefixAt(i, alt) {
				return i + len(alt), true
			}
		}
	case WordStart:
		if i == 0 {
			return i, true
		}
	case WordEnd:
		if i == len(seq) {
			return i, true
		}
	default:
		panic("unexpected arc kind " + a.kind.String())
	}
	return i, false
}

// zeroWidth reports whether the arc never consumes input.
func (a Arc) zeroWidth() bool {
	return a.kind == Epsilon || a.kind == WordStart || a.kind == WordEnd
}

// key identifies arcs that test the same thing; the graph keys edges by it.
func (a Arc) key() string {
	switch a.kind {
	case Literal:
		return "lit:" + strings.Join(a.token, "\x00")
	case Set:
		var b strings.Builder
		b.WriteString("set:")
		b.WriteString(a.name)
		for _, alt := range a.alternatives {
			b.WriteByte('\x01')
			b.WriteString(strings.Join(alt, "\x00"))
		}
		return b.String()
	}
	return a.kind.String()
}

func (a Arc) String() string {
	switch a.kind {
	case Literal:
		return a.token.String()
	case Set:
		if a.name != "" {
			return a.name
		}
		alts := make([]string, len(a.alternatives))
		for i, alt := range a.alternatives {
			alts[i] = alt.String()
		}
		return "{" + strings.Join(alts, " ") + "}"
	}
	return a.kind.String()
}
