package format

import "strings"

// Format reformats src using the defaults with o applied on top.
func Format(src string, o Overrides) string {
	return FormatConfig(src, o.Resolve())
}

// FormatConfig reformats src line by line. It never fails: unbalanced braces
// pin the indentation at zero and unterminated literals are left unmasked.
func FormatConfig(src string, cfg Config) string {
	w := NewWriter(cfg, len(src)+len(src)/4)
	for _, line := range strings.Split(src, "\n") {
		if trimSpace(line) == "" {
			w.Newline()
			continue
		}
		for i, stmt := range processLine(w, line) {
			if stmt == "" {
				continue
			}
			// split-off returns get their own paragraph
			if i > 0 && strings.HasPrefix(trimSpace(stmt), "return") {
				w.Newline()
			}
			w.WriteLine(stmt)
		}
	}
	return w.String()
}

// processLine formats one non-blank line and updates the brace depth of w.
// The returned statements are written at the depth in effect after the line's
// own braces have been counted.
func processLine(w *Writer, line string) []string {
	line = trimSpace(line)

	if strings.HasPrefix(line, "#") {
		return []string{normalizeDirective(line)}
	}

	masked, mask := maskStrings(line)

	if strings.Contains(masked, "{") {
		w.IndentPush()
	}
	if strings.Contains(masked, "}") {
		w.IndentPop()
	}

	if !strings.Contains(masked, ";") {
		return []string{mask.restore(spaceOperators(masked))}
	}

	parts := strings.Split(masked, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = trimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, mask.restore(spaceOperators(part))+";")
	}
	return out
}
