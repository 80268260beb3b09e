package format

import (
	"regexp"
	"strconv"
	"strings"
)

var stringLiteralRe = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

// Placeholder delimiters live in the Unicode private use area: they are not
// operators or whitespace, so the spacing passes leave them alone.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

// stringMask holds the literals extracted from one line, in order.
type stringMask struct {
	literals []string
}

func placeholder(i int) string {
	return placeholderOpen + strconv.Itoa(i) + placeholderClose
}

// maskStrings replaces every double-quoted literal in line with a positional
// placeholder. An unterminated quote is left in place.
func maskStrings(line string) (string, stringMask) {
	locs := stringLiteralRe.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return line, stringMask{}
	}
	mask := stringMask{literals: make([]string, 0, len(locs))}
	var sb strings.Builder
	sb.Grow(len(line))
	prev := 0
	for i, loc := range locs {
		sb.WriteString(line[prev:loc[0]])
		sb.WriteString(placeholder(i))
		mask.literals = append(mask.literals, line[loc[0]:loc[1]])
		prev = loc[1]
	}
	sb.WriteString(line[prev:])
	return sb.String(), mask
}

// restore puts the literals back, replacing the first occurrence of each
// placeholder.
func (m stringMask) restore(s string) string {
	for i, lit := range m.literals {
		s = strings.Replace(s, placeholder(i), lit, 1)
	}
	return s
}

// Len reports how many literals were masked.
func (m stringMask) Len() int {
	return len(m.literals)
}
