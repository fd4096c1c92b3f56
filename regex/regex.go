package regex

import "fmt"

// Regex is a compiled pattern bound to the Factory it was compiled with.
// It is immutable and safe for concurrent use.
type Regex struct {
	pattern string
	factory Factory
	machine *Machine
}

// Compile compiles re over plain characters.
func Compile(re string) (Regex, error) {
	return CompileWith(re, Characters)
}

// CompileWith compiles re with f splitting its literals and resolving its
// terminals.
func CompileWith(re string, f Factory) (Regex, error) {
	root, err := Parse(re, f)
	if err != nil {
		return Regex{}, fmt.Errorf("failed to construct regex from %q: %w", re, err)
	}
	m, err := Build(root, f)
	if err != nil {
		return Regex{}, fmt.Errorf("failed to build automaton for %q: %w", re, err)
	}
	return Regex{pattern: re, factory: f, machine: m}, nil
}

func MustCompile(re string) Regex {
	r, err := Compile(re)
	if err != nil {
		panic(err)
	}
	return r
}

func (re Regex) String() string {
	return re.pattern
}

// Dump describes the compiled automaton, one edge per line.
func (re Regex) Dump() string {
	return re.machine.String()
}

// Groups returns the number of capturing groups, not counting group 0.
func (re Regex) Groups() int {
	return re.machine.Groups()
}

// Transform splits s the way the pattern's literals were split.
func (re Regex) Transform(s string) Sequence {
	return re.factory.Transform(s)
}

// Match returns the longest match starting exactly at start.
func (re Regex) Match(seq Sequence, start int) Match {
	return re.machine.Match(seq, start)
}

// Matches reports whether the pattern matches all of seq.
func (re Regex) Matches(seq Sequence) bool {
	m := re.machine.Match(seq, 0)
	return m.Start == 0 && m.End == len(seq)
}

func (re Regex) MatchesString(s string) bool {
	return re.Matches(re.Transform(s))
}

// Find returns the match with the smallest start index.
func (re Regex) Find(seq Sequence) Match {
	for i := 0; i <= len(seq); i++ {
		if m := re.machine.Match(seq, i); m.Found() {
			return m
		}
	}
	return re.machine.noMatch()
}

// FindAll returns up to n successive non-overlapping matches of seq.
// To return all matches pass a n of -1.
// An empty match directly after a non-empty one is not reported.
func (re Regex) FindAll(seq Sequence, n int) []Match {
	var (
		matches []Match
		prevEnd = -1
	)
	for i := 0; i <= len(seq); {
		if n >= 0 && len(matches) >= n {
			break
		}
		m := re.machine.Match(seq, i)
		if !m.Found() || (m.End == i && i == prevEnd) {
			i++
			continue
		}
		matches = append(matches, m)
		prevEnd = m.End
		if m.End > i {
			i = m.End
		} else {
			i++
		}
	}
	return matches
}

// Split slices seq into the pieces between non-empty matches. A limit of
// 0 returns nil, a negative limit returns every piece, otherwise at most
// limit pieces are returned with the unsplit remainder last.
func (re Regex) Split(seq Sequence, limit int) []Sequence {
	if limit == 0 {
		return nil
	}

	var (
		pieces []Sequence
		last   int
	)
	for _, m := range re.FindAll(seq, -1) {
		if limit > 0 && len(pieces) == limit-1 {
			break
		}
		if m.End == m.Start {
			continue
		}
		pieces = append(pieces, seq.Sub(last, m.Start))
		last = m.End
	}
	return append(pieces, seq.Sub(last, len(seq)))
}

func (re Regex) SplitString(s string, limit int) []string {
	pieces := re.Split(re.Transform(s), limit)
	if pieces == nil {
		return nil
	}
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.String()
	}
	return out
}

// Replace replaces every match in seq by template, with $N standing for
// group N of the match.
func (re Regex) Replace(seq Sequence, template string) Sequence {
	var (
		out  Sequence
		last int
	)
	for _, m := range re.FindAll(seq, -1) {
		out = append(out, seq.Sub(last, m.Start)...)
		out = append(out, expandTemplate(template, m, seq, re.factory)...)
		last = m.End
	}
	return out.Concat(seq.Sub(last, len(seq)))
}

func (re Regex) ReplaceString(s string, template string) string {
	return re.Replace(re.Transform(s), template).String()
}
