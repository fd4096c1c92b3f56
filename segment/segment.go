// Package segment splits phonetic transcriptions into segments: a base
// symbol together with the diacritics and modifier letters attached to it.
package segment

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mfroeh/segrep/regex"
)

const tieBar = '\u0361'

// Segmenter splits text into segments. Multigraphs listed at construction
// are kept together as one base, longest first.
type Segmenter struct {
	multigraphs []string
}

func New(multigraphs ...string) *Segmenter {
	mg := slices.Clone(multigraphs)
	mg = slices.DeleteFunc(mg, func(s string) bool { return s == "" })
	slices.SortFunc(mg, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return &Segmenter{multigraphs: slices.Compact(mg)}
}

// Split returns the segments of text. Whitespace is dropped.
func (s *Segmenter) Split(text string) regex.Sequence {
	var seq regex.Sequence
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += w
			continue
		}

		start := i
		i += s.base(text[i:])
		for i < len(text) {
			r, w := utf8.DecodeRuneInString(text[i:])
			if r == tieBar {
				// t͡s: the tie bar pulls the next base into this segment
				i += w
				if i < len(text) {
					i += s.base(text[i:])
				}
				continue
			}
			if !attaches(r) {
				break
			}
			i += w
		}
		seq = append(seq, text[start:i])
	}
	return seq
}

// base returns the byte length of the base symbol at the start of text.
func (s *Segmenter) base(text string) int {
	for _, mg := range s.multigraphs {
		if strings.HasPrefix(text, mg) {
			return len(mg)
		}
	}
	_, w := utf8.DecodeRuneInString(text)
	return w
}

// attaches reports whether r modifies the preceding base: combining marks
// and spacing modifier letters such as ʰ, ʷ or ː.
func attaches(r rune) bool {
	return r != tieBar && (unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Lm, r))
}

// Factory returns a regex.Factory that splits with s. Each special maps a
// name to its alternatives, themselves split with s.
func (s *Segmenter) Factory(specials map[string][]string) *regex.Alphabet {
	return regex.NewAlphabet(s.Split, specials)
}
