package regex

import (
	"strings"
	"unicode"
)

// expandTemplate builds the replacement for m. $N inserts group N of input,
// $$ inserts a literal '$'. Groups that did not take part in the match, or
// that the pattern does not have, expand to nothing. Literal text is split
// with f.
func expandTemplate(template string, m Match, input Sequence, f Factory) Sequence {
	var (
		out Sequence
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, f.Transform(lit.String())...)
			lit.Reset()
		}
	}

	for i := 0; i < len(template); i++ {
		if template[i] != '$' || i+1 >= len(template) {
			lit.WriteByte(template[i])
			continue
		}
		if template[i+1] == '$' {
			lit.WriteByte('$')
			i++
			continue
		}
		if !unicode.IsDigit(rune(template[i+1])) {
			lit.WriteByte(template[i])
			continue
		}

		// digits past the group count cannot name a group, so num stops
		// growing there and long runs cannot overflow
		num := 0
		for j := i + 1; j < len(template) && unicode.IsDigit(rune(template[j])); j++ {
			if num < len(m.Groups) {
				num = num*10 + int(template[j]-'0')
			}
			i++
		}

		flush()
		if num < len(m.Groups) && !m.Groups[num].Absent() {
			span := m.Groups[num]
			out = append(out, input.Sub(span.Start, span.End)...)
		}
	}
	flush()
	return out
}
