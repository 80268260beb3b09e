package lsp

import "fortio.org/safecast"

// indentFromTabSize converts the client's tabSize into an indent width.
// ok is false when the value does not fit or is zero.
func indentFromTabSize(tabSize uint32) (int, bool) {
	v, err := safecast.Conv[int](tabSize)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// wholeRange spans all of text.
func wholeRange(text string) lspRange {
	return lspRange{End: endPosition(text)}
}
