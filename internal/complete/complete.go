package complete

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
)

// Kind tags where a candidate came from.
type Kind string

const (
	// KindSnippet is a multi-line template.
	KindSnippet Kind = "snippet"
	// KindKeyword is a language keyword.
	KindKeyword Kind = "keyword"
	// KindModule is a standard header offered as an #include directive.
	KindModule Kind = "module"
)

// Candidate is one completion suggestion.
type Candidate struct {
	Label      string `json:"label" yaml:"label"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	Detail     string `json:"detail,omitempty" yaml:"detail,omitempty"`
	InsertText string `json:"insertText" yaml:"insert_text"`
}

// Summary returns the detail text, or a generic description of the kind.
func (c Candidate) Summary() string {
	if c.Detail != "" {
		return c.Detail
	}
	return "C++ " + string(c.Kind)
}

func (s Snippet) candidate() Candidate {
	return Candidate{
		Label:      s.Prefix,
		Kind:       KindSnippet,
		Detail:     s.Description,
		InsertText: strings.Join(s.Body, "\n"),
	}
}

func fold(s string) string {
	// a Caser keeps state, so each call gets its own
	return cases.Fold().String(s)
}

func hasFoldedPrefix(label, foldedPrefix string) bool {
	return strings.HasPrefix(fold(label), foldedPrefix)
}

// Query yields every candidate whose label starts with prefix, ignoring case:
// snippets first, then keywords, then libraries, each in table order.
// An empty prefix matches everything.
func Query(prefix string) iter.Seq[Candidate] {
	folded := fold(prefix)
	return func(yield func(Candidate) bool) {
		for _, s := range Snippets {
			if hasFoldedPrefix(s.Prefix, folded) && !yield(s.candidate()) {
				return
			}
		}
		for _, kw := range Keywords {
			if hasFoldedPrefix(kw, folded) && !yield(Candidate{Label: kw, Kind: KindKeyword, InsertText: kw}) {
				return
			}
		}
		for _, lib := range Libraries {
			if !hasFoldedPrefix(lib, folded) {
				continue
			}
			c := Candidate{Label: lib, Kind: KindModule, InsertText: "#include <" + lib + ">"}
			if !yield(c) {
				return
			}
		}
	}
}

// Collect returns all candidates for prefix as a slice.
func Collect(prefix string) []Candidate {
	var out []Candidate
	for c := range Query(prefix) {
		out = append(out, c)
	}
	return out
}

// Lookup returns the first candidate whose label starts with word, ignoring
// case, in Query order. It is a prefix match, not an exact one: "a" resolves
// to the auto keyword. Used for hover text.
func Lookup(word string) (Candidate, bool) {
	if word == "" {
		return Candidate{}, false
	}
	for c := range Query(word) {
		return c, true
	}
	return Candidate{}, false
}

// WordBeforeCursor extracts the completion prefix from the text between the
// start of the line and the cursor: the last whitespace-separated field.
func WordBeforeCursor(lineText string) string {
	fields := strings.Fields(lineText)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
