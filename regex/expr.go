package regex

type ExprKind uint8

const (
	// Terminal holds one token text, resolved to an Arc by the Factory.
	Terminal ExprKind = iota
	// Concat matches its children one after another.
	Concat
	// Parallel matches any one of its children.
	Parallel
)

type Quantifier uint8

const (
	One Quantifier = iota
	Optional
	Star
	Plus
)

func (q Quantifier) String() string {
	switch q {
	case Optional:
		return "?"
	case Star:
		return "*"
	case Plus:
		return "+"
	}
	return ""
}

// Expr is a node of a parsed pattern. Trees are built by Parse (or by hand)
// and only read afterwards.
type Expr struct {
	Kind       ExprKind
	Text       string
	Children   []*Expr
	Quantifier Quantifier
	Negative   bool
	Capturing  bool
}

func Term(text string) *Expr {
	return &Expr{Kind: Terminal, Text: text}
}

func Seq(children ...*Expr) *Expr {
	return &Expr{Kind: Concat, Children: children}
}

func Alt(children ...*Expr) *Expr {
	return &Expr{Kind: Parallel, Children: children}
}

// Group returns a capturing Concat of children.
func Group(children ...*Expr) *Expr {
	return &Expr{Kind: Concat, Children: children, Capturing: true}
}

func (e *Expr) With(q Quantifier) *Expr {
	c := *e
	c.Quantifier = q
	return &c
}

func (e *Expr) Not() *Expr {
	c := *e
	c.Negative = true
	return &c
}

// plain reports whether e carries none of the wrapper flags.
func (e *Expr) plain() bool {
	return e.Quantifier == One && !e.Negative && !e.Capturing
}

// stripped returns e without quantifier, negation and capture. The children
// are shared, so nested groups keep their numbers.
func (e *Expr) stripped() *Expr {
	c := *e
	c.Quantifier = One
	c.Negative = false
	c.Capturing = false
	return &c
}

// body is the sibling list a sub-automaton for e is built from.
func (e *Expr) body() []*Expr {
	if e.Kind == Concat && e.plain() {
		return e.Children
	}
	return []*Expr{e}
}

func (e *Expr) boundary() bool {
	return e.Kind == Terminal && (e.Text == "^" || e.Text == "$")
}
