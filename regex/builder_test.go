package regex

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildDump(t *testing.T) {
	tests := map[string]struct {
		givenRe  string
		wantDump string
	}{
		"concatenation": {
			givenRe: "ab",
			wantDump: "automaton 0: start S0, accept S2\n" +
				"S0 --a--> S1\n" +
				"S1 --b--> S2\n",
		},
		"star loops on the fresh node": {
			givenRe: "a*",
			wantDump: "automaton 0: start S0, accept S1\n" +
				"S0 --ε--> S1\n" +
				"S1 --a--> S1\n",
		},
		"group is an embedded automaton": {
			givenRe: "(a)",
			wantDump: "automaton 1: start S0, accept S3\n" +
				"S0 --ε--> S1\n" +
				"S1 --ε--> S2\n" +
				"S2 --ε--> S3\n" +
				"S2 => 0\n" +
				"group 1: S2 .. S3\n" +
				"automaton 0: start S2g0, accept S2g1\n" +
				"S2g0 --a--> S2g1\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			re, err := Compile(tt.givenRe)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			// then
			if d := cmp.Diff(tt.wantDump, re.Dump()); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestBuildGroups(t *testing.T) {
	tests := map[string]struct {
		givenExpr  *Expr
		givenInput string
		wantMatch  Match
	}{
		"star keeps the first iteration": {
			givenExpr:  Seq(Group(Term("a"), Term("b")).With(Star)),
			givenInput: "abab",
			wantMatch:  Match{Start: 0, End: 4, Groups: []Span{{0, 4}, {0, 2}}},
		},
		"plus keeps the first iteration": {
			givenExpr:  Seq(Group(Term("a"), Term("b")).With(Plus)),
			givenInput: "abab",
			wantMatch:  Match{Start: 0, End: 4, Groups: []Span{{0, 4}, {0, 2}}},
		},
		"skipped optional group is absent": {
			givenExpr:  Seq(Group(Term("a"), Term("b")).With(Optional)),
			givenInput: "",
			wantMatch:  Match{Start: 0, End: 0, Groups: []Span{{0, 0}, absent}},
		},
		"capturing terminal": {
			givenExpr:  Seq(&Expr{Kind: Terminal, Text: "a", Capturing: true}, Term("b")),
			givenInput: "ab",
			wantMatch:  Match{Start: 0, End: 2, Groups: []Span{{0, 2}, {0, 1}}},
		},
		"nested groups are numbered outside in": {
			givenExpr:  Seq(Group(Group(Term("a")), Term("b"))),
			givenInput: "ab",
			wantMatch:  Match{Start: 0, End: 2, Groups: []Span{{0, 2}, {0, 2}, {0, 1}}},
		},
		"capturing root is group 1": {
			givenExpr:  Group(Term("a")),
			givenInput: "a",
			wantMatch:  Match{Start: 0, End: 1, Groups: []Span{{0, 1}, {0, 1}}},
		},
		"capturing alternation": {
			givenExpr:  Seq(Group(Alt(Seq(Term("a")), Seq(Term("b"), Term("c")))), Term("d")),
			givenInput: "bcd",
			wantMatch:  Match{Start: 0, End: 3, Groups: []Span{{0, 3}, {0, 2}}},
		},
		"empty expression matches empty": {
			givenExpr:  Seq(),
			givenInput: "xyz",
			wantMatch:  Match{Start: 0, End: 0, Groups: []Span{{0, 0}}},
		},
		"empty terminal is epsilon": {
			givenExpr:  Seq(Term(""), Term("x")),
			givenInput: "x",
			wantMatch:  Match{Start: 0, End: 1, Groups: []Span{{0, 1}}},
		},
		"no match": {
			givenExpr:  Seq(Term("a")),
			givenInput: "b",
			wantMatch:  Match{Start: -1, End: -1, Groups: []Span{absent}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := Build(tt.givenExpr, Characters)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			// when
			got := m.Match(Characters.Transform(tt.givenInput), 0)

			// then
			if d := cmp.Diff(tt.wantMatch, got); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestBuildEmptyMatchesAnywhere(t *testing.T) {
	m, err := Build(Seq(), Characters)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Match{Start: 1, End: 1, Groups: []Span{{1, 1}}}
	if d := cmp.Diff(want, m.Match(Sequence{"x", "y"}, 1)); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
}

func TestBuildPropagatesErrors(t *testing.T) {
	_, err := Build(Seq(Term("a"), Group(Term(`\`)).Not()), Characters)
	if err == nil {
		t.Fatal("want error for dangling escape inside a negated group")
	}
}

func TestMatchTerminatesOnEpsilonCycles(t *testing.T) {
	for _, re := range []string{"(a?)*", "(a*)*", "(a*)+", "((a?)*)*b"} {
		r := MustCompile(re)
		if !r.MatchesString("aaa") && !r.MatchesString("aaab") {
			t.Errorf("%s: want a match", re)
		}
	}
}

func TestGroupsDoNotBacktrack(t *testing.T) {
	// an embedded automaton only reports its longest match
	if MustCompile("(a*)a").MatchesString("aa") {
		t.Error("(a*)a should not match aa")
	}
	if !MustCompile("a*a").MatchesString("aa") {
		t.Error("a*a should match aa")
	}
}

func TestMatchNeverRegresses(t *testing.T) {
	patterns := []string{"", "a", "a*", "(ab)?c", "{a b}+", "!a", "!a*b#", "^a", "a$", "(a|b)*c"}
	inputs := []string{"", "a", "ab", "abc", "bac", "cab", "aaab"}

	for _, p := range patterns {
		re := MustCompile(p)
		for _, in := range inputs {
			seq := re.Transform(in)
			for i := 0; i <= len(seq); i++ {
				m := re.Match(seq, i)
				if m.End != -1 && (m.End < i || m.Start != i) {
					t.Errorf("%q on %q from %d: got [%d, %d)", p, in, i, m.Start, m.End)
				}
			}
		}
	}
}

func TestMatchGroupOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic")
		}
	}()
	re := MustCompile("(a)")
	m := re.Find(re.Transform("a"))
	m.Group(2)
}

func TestVisitedGrowsWithReach(t *testing.T) {
	v := newVisited(4, 100000)

	// when
	first := v.visit(3, 100000)
	again := v.visit(3, 100000)

	// then
	if !first || again {
		t.Errorf("got first %v, again %v, want true, false", first, again)
	}
	if v.bits.Len() > 4 {
		t.Errorf("got %d bits for one position, want at most 4", v.bits.Len())
	}
}

func TestFindAllLongLine(t *testing.T) {
	re := MustCompile("abx")
	seq := re.Transform(strings.Repeat("c", 200000) + "abx")

	// when
	got := re.FindAll(seq, -1)

	// then
	if d := cmp.Diff([]Span{{200000, 200003}}, spans(got)); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
}

func spans(ms []Match) []Span {
	out := make([]Span, len(ms))
	for i, m := range ms {
		out[i] = Span{Start: m.Start, End: m.End}
	}
	return out
}

func BenchmarkFindAllLongLine(b *testing.B) {
	re := MustCompile("abx")
	seq := re.Transform(strings.Repeat("c", 80000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.FindAll(seq, -1)
	}
}
