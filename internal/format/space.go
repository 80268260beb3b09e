package format

import (
	"strings"
	"unicode"
)

// spaceClass is the whitespace the formatter collapses and trims: ASCII
// whitespace including \v, the Unicode space separators (NBSP and friends),
// the line and paragraph separators and the byte order mark.
const spaceClass = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// trimSpace trims the same set spaceClass matches.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
