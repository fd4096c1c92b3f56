package regex

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports a malformed pattern together with the byte offset at
// which parsing stopped.
type ParseError struct {
	Offset  int
	Message string
	inner   error
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("parser error at %d: %s", p.Offset, p.Message)
}

func (p *ParseError) Unwrap() error {
	return p.inner
}

func newParserError(i int, str string, inner error) *ParseError {
	return &ParseError{Offset: i, Message: str, inner: inner}
}

var errUnexpectedEOS = errors.New("unexpected end of pattern")

const metaChars = `(){}!?*+.^$#|\`

type parser struct {
	re       string
	i        int
	factory  Factory
	specials []string
}

// Parse turns pattern text into an expression tree. Specials known to f are
// recognised as single terminals and literal text is split with
// f.Transform.
func Parse(re string, f Factory) (*Expr, error) {
	p := &parser{re: re, factory: f, specials: specialNames(f)}
	root, err := p.parseChoices(0)
	if err != nil {
		return nil, err
	}
	if p.i < len(p.re) {
		r, _ := p.peek()
		return nil, newParserError(p.i, fmt.Sprintf("unexpected %q", r), nil)
	}
	if root.Kind == Parallel {
		return Seq(root), nil
	}
	return root, nil
}

func (p *parser) peek() (rune, int) {
	if p.i >= len(p.re) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.re[p.i:])
}

func (p *parser) skipSpace() {
	for p.i < len(p.re) {
		r, w := p.peek()
		if !unicode.IsSpace(r) {
			return
		}
		p.i += w
	}
}

// ...|...|...
// closer is the rune that ends the enclosing group, 0 at top level.
func (p *parser) parseChoices(closer rune) (*Expr, error) {
	var choices []*Expr
	for {
		children, err := p.parseSequence(func(r rune) bool { return r == '|' || r == closer })
		if err != nil {
			return nil, err
		}
		choices = append(choices, Seq(children...))

		r, w := p.peek()
		if w == 0 || r != '|' {
			break
		}
		p.i += w
	}

	// if we parsed just one, we are not a choice
	if len(choices) == 1 {
		return choices[0], nil
	}
	return Alt(choices...), nil
}

// parseSequence reads atoms until stop accepts the next rune or the pattern
// ends. Whitespace between atoms is insignificant.
func (p *parser) parseSequence(stop func(rune) bool) ([]*Expr, error) {
	var children []*Expr
	for {
		p.skipSpace()
		r, w := p.peek()
		if w == 0 || stop(r) {
			return children, nil
		}
		atom, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		children = append(children, atom)
	}
}

func (p *parser) parseQuantified() (*Expr, error) {
	start := p.i
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	q, ok := p.parseQuantifier()
	if !ok {
		return atom, nil
	}
	if atom.boundary() {
		return nil, newParserError(start, "boundary cannot be quantified", nil)
	}
	if _, again := p.parseQuantifier(); again {
		return nil, newParserError(p.i-1, "repeated quantifier", nil)
	}
	atom.Quantifier = q
	return atom, nil
}

// ? and * and +
func (p *parser) parseQuantifier() (Quantifier, bool) {
	r, w := p.peek()
	var q Quantifier
	switch {
	case w == 0:
		return One, false
	case r == '?':
		q = Optional
	case r == '*':
		q = Star
	case r == '+':
		q = Plus
	default:
		return One, false
	}
	p.i += w
	return q, true
}

func (p *parser) parseAtom() (*Expr, error) {
	start := p.i
	r, w := p.peek()
	if w == 0 {
		return nil, newParserError(p.i, "unexpected EOS", errUnexpectedEOS)
	}

	switch r {
	case '!':
		p.i += w
		return p.parseNegation(start)
	case '(':
		p.i += w
		return p.parseGroup(start)
	case '{':
		p.i += w
		return p.parseSet(start)
	case ')', '}', '|':
		return nil, newParserError(p.i, fmt.Sprintf("unmatched %q", r), nil)
	case '?', '*', '+':
		return nil, newParserError(p.i, fmt.Sprintf("quantifier %q without operand", r), nil)
	case '.', '^', '$':
		p.i += w
		return Term(string(r)), nil
	case '#':
		p.i += w
		// first token of the pattern marks the word start
		if strings.TrimSpace(p.re[:start]) == "" {
			return Term("^"), nil
		}
		return Term("$"), nil
	case '\\':
		p.i += w
		e, ew := p.peek()
		if ew == 0 {
			return nil, newParserError(start, "dangling escape", errUnexpectedEOS)
		}
		p.i += ew
		return Term(`\` + string(e)), nil
	}

	if name := p.special(); name != "" {
		p.i += len(name)
		return Term(name), nil
	}
	return p.parseLiteral()
}

// !atom
func (p *parser) parseNegation(start int) (*Expr, error) {
	r, w := p.peek()
	if w == 0 {
		return nil, newParserError(start, "nothing to negate", errUnexpectedEOS)
	}
	if strings.ContainsRune("?*+", r) {
		return nil, newParserError(start, "quantifier cannot be negated", nil)
	}
	inner, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if inner.boundary() {
		return nil, newParserError(start, "boundary cannot be negated", nil)
	}
	if inner.Negative {
		return &Expr{Kind: Concat, Children: []*Expr{inner}, Negative: true}, nil
	}
	inner.Negative = true
	return inner, nil
}

// (...)
func (p *parser) parseGroup(start int) (*Expr, error) {
	inner, err := p.parseChoices(')')
	if err != nil {
		return nil, err
	}
	r, w := p.peek()
	if w == 0 {
		return nil, newParserError(start, "did not find closing ')'", errUnexpectedEOS)
	}
	if r != ')' {
		return nil, newParserError(p.i, "did not find closing ')'", nil)
	}
	p.i += w

	if inner.Kind == Parallel {
		return Group(inner), nil
	}
	inner.Capturing = true
	return inner, nil
}

// {a b c} and {a,b,c}
func (p *parser) parseSet(start int) (*Expr, error) {
	var branches []*Expr
	for {
		p.skipSpace()
		r, w := p.peek()
		if w == 0 {
			return nil, newParserError(start, "did not find closing '}'", errUnexpectedEOS)
		}
		if r == '}' {
			p.i += w
			break
		}
		if r == ',' {
			p.i += w
			continue
		}

		var children []*Expr
		for {
			r, w := p.peek()
			if w == 0 || r == '}' || r == ',' || unicode.IsSpace(r) {
				break
			}
			atom, err := p.parseQuantified()
			if err != nil {
				return nil, err
			}
			children = append(children, atom)
		}
		branches = append(branches, Seq(children...))
	}

	if len(branches) == 0 {
		return nil, newParserError(start, "empty set", nil)
	}
	return Alt(branches...), nil
}

// special returns the longest special name at the current position.
func (p *parser) special() string {
	for _, name := range p.specials {
		if strings.HasPrefix(p.re[p.i:], name) {
			return name
		}
	}
	return ""
}

// parseLiteral reads the run of literal text at the current position and
// consumes only its first element, so a following quantifier or the
// preceding negation applies to that element alone.
func (p *parser) parseLiteral() (*Expr, error) {
	start := p.i
	end := p.i
	for end < len(p.re) {
		r, w := utf8.DecodeRuneInString(p.re[end:])
		if end > start {
			if unicode.IsSpace(r) || r == ',' || strings.ContainsRune(metaChars, r) {
				break
			}
			if p.specialAt(end) {
				break
			}
		}
		end += w
	}

	elems := p.factory.Transform(p.re[start:end])
	if len(elems) == 0 || !strings.HasPrefix(p.re[start:end], elems[0]) {
		return nil, newParserError(start, fmt.Sprintf("cannot split %q into elements", p.re[start:end]), nil)
	}
	p.i += len(elems[0])
	return Term(elems[0]), nil
}

func (p *parser) specialAt(i int) bool {
	for _, name := range p.specials {
		if strings.HasPrefix(p.re[i:], name) {
			return true
		}
	}
	return false
}
