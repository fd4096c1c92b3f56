package regex

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Factory turns text into sequences and pattern terminals into arcs.
type Factory interface {
	// Transform splits text into sequence elements.
	Transform(text string) Sequence
	// ArcFor resolves the text of a Terminal expression.
	ArcFor(text string) (Arc, error)
	// Specials returns the named alternative sets usable as single tokens.
	Specials() map[string][]Sequence
}

// Alphabet is the stock Factory: a split function plus a table of specials.
type Alphabet struct {
	split    func(string) Sequence
	specials map[string][]Sequence
}

// Characters splits text into runes and has no specials.
var Characters = NewAlphabet(nil, nil)

// NewAlphabet returns an Alphabet splitting text with split (runes if nil).
// Every special alternative is split the same way.
func NewAlphabet(split func(string) Sequence, specials map[string][]string) *Alphabet {
	if split == nil {
		split = splitRunes
	}
	a := &Alphabet{split: split, specials: make(map[string][]Sequence, len(specials))}
	for name, alts := range specials {
		seqs := make([]Sequence, 0, len(alts))
		for _, alt := range alts {
			seqs = append(seqs, split(alt))
		}
		a.specials[name] = seqs
	}
	return a
}

func (a *Alphabet) Transform(text string) Sequence {
	return a.split(text)
}

func (a *Alphabet) Specials() map[string][]Sequence {
	return a.specials
}

func (a *Alphabet) ArcFor(text string) (Arc, error) {
	switch text {
	case "":
		return EpsilonArc(), nil
	case ".":
		return DotArc(), nil
	case "^":
		return WordStartArc(), nil
	case "$":
		return WordEndArc(), nil
	}
	if strings.HasPrefix(text, `\`) {
		if len(text) == 1 {
			return Arc{}, errors.New("dangling escape")
		}
		return LiteralArc(Sequence{text[1:]}), nil
	}
	if alts, ok := a.specials[text]; ok {
		return SetArc(text, alts), nil
	}
	token := a.split(text)
	if len(token) == 0 {
		return Arc{}, fmt.Errorf("terminal %q splits into no elements", text)
	}
	return LiteralArc(token), nil
}

// specialNames returns the special names of f, longest first.
func specialNames(f Factory) []string {
	names := slices.Collect(maps.Keys(f.Specials()))
	slices.SortFunc(names, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}
