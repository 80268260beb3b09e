package format

import (
	"regexp"
	"strings"
)

type spacingRule struct {
	re   *regexp.Regexp
	repl string
}

// Stream operators go first. Single '<' and '>' are never padded, so
// comparisons only pick up spacing when they happen to look like shifts.
var operatorRules = buildOperatorRules()

var whitespaceRunRe = regexp.MustCompile(spaceClass + `+`)

func buildOperatorRules() []spacingRule {
	ops := []string{"<<", ">>", "=", "+", "-", "*", "/", "%", "&", "|", "^", "!"}
	rules := make([]spacingRule, 0, len(ops))
	for _, op := range ops {
		rules = append(rules, spacingRule{
			re:   regexp.MustCompile(spaceClass + `*` + regexp.QuoteMeta(op) + spaceClass + `*`),
			repl: " " + op + " ",
		})
	}
	return rules
}

// spaceOperators pads every known operator with single spaces, collapses
// whitespace runs and trims the result.
func spaceOperators(stmt string) string {
	for _, rule := range operatorRules {
		stmt = rule.re.ReplaceAllLiteralString(stmt, rule.repl)
	}
	return trimSpace(whitespaceRunRe.ReplaceAllString(stmt, " "))
}

// normalizeDirective handles preprocessor lines: whitespace is collapsed and
// the include brackets are tightened. No operator spacing is applied.
func normalizeDirective(line string) string {
	line = whitespaceRunRe.ReplaceAllString(line, " ")
	line = strings.Replace(line, "#include < ", "#include <", 1)
	line = strings.Replace(line, " >", ">", 1)
	return line
}
