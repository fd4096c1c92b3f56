package regex

import "strings"

// Sequence is the unit both patterns and inputs are matched over. Every
// element is one token: a single character for plain text, a whole segment
// (base plus diacritics) for phonetic text.
type Sequence []string

func (s Sequence) Len() int {
	return len(s)
}

// Sub returns the elements in [i, j). The result shares storage with s.
func (s Sequence) Sub(i, j int) Sequence {
	return s[i:j]
}

// Concat returns a new sequence holding s followed by other.
func (s Sequence) Concat(other Sequence) Sequence {
	out := make(Sequence, 0, len(s)+len(other))
	out = append(out, s...)
	return append(out, other...)
}

// HasPrefixAt reports whether token occurs in s starting at element i.
func (s Sequence) HasPrefixAt(i int, token Sequence) bool {
	if i < 0 || i+len(token) > len(s) {
		return false
	}
	for j, t := range token {
		if s[i+j] != t {
			return false
		}
	}
	return true
}

func (s Sequence) String() string {
	return strings.Join(s, "")
}

// splitRunes is the element split used for plain character input.
func splitRunes(text string) Sequence {
	seq := make(Sequence, 0, len(text))
	for _, r := range text {
		seq = append(seq, string(r))
	}
	return seq
}
