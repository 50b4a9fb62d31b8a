package jsonout

import "strings"

// Escape quotes the characters that would break a JSON string literal:
// backslash, double quote, newline and tab. Every other byte, including
// other control bytes and non-ASCII text, is copied verbatim.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\t") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
