package lsp

import "testing"

func TestApplyChangesIncremental(t *testing.T) {
	text := "int main() {\n    return 0;\n}"
	got := applyChanges(text, []textDocumentContentChangeEvent{{
		Range: &lspRange{Start: position{Line: 1, Character: 11}, End: position{Line: 1, Character: 12}},
		Text:  "1",
	}})
	if want := "int main() {\n    return 1;\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = applyChanges(got, []textDocumentContentChangeEvent{{Text: "replaced"}})
	if got != "replaced" {
		t.Fatalf("full change not applied: %q", got)
	}
}

func TestOffsetForPositionUTF16(t *testing.T) {
	// 😀 is two UTF-16 units and four bytes
	text := "a😀b\nx"
	cases := []struct {
		pos  position
		want int
	}{
		{position{0, 0}, 0},
		{position{0, 1}, 1},
		{position{0, 2}, 1}, // inside the surrogate pair
		{position{0, 3}, 5},
		{position{0, 4}, 6},
		{position{0, 99}, 6},
		{position{1, 0}, 7},
		{position{5, 0}, len(text)},
	}
	for _, tc := range cases {
		if got := offsetForPosition(text, tc.pos); got != tc.want {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tc.pos, got, tc.want)
		}
	}
}

func TestEndPosition(t *testing.T) {
	if got := endPosition("ab\ncd😀"); got != (position{Line: 1, Character: 4}) {
		t.Fatalf("got %+v", got)
	}
	if got := endPosition(""); got != (position{}) {
		t.Fatalf("got %+v", got)
	}
	if got := endPosition("x\n"); got != (position{Line: 1}) {
		t.Fatalf("got %+v", got)
	}
}

func TestWordAt(t *testing.T) {
	text := "  vector<int> v;\nstd::cout"
	word, r, ok := wordAt(text, position{Line: 0, Character: 4})
	if !ok || word != "vector" {
		t.Fatalf("got %q %v", word, ok)
	}
	if r.Start.Character != 2 || r.End.Character != 8 {
		t.Fatalf("range %+v", r)
	}

	// cursor right after the word
	if word, _, _ := wordAt(text, position{Line: 1, Character: 9}); word != "cout" {
		t.Fatalf("got %q", word)
	}
	if _, _, ok := wordAt(text, position{Line: 0, Character: 0}); ok {
		t.Fatalf("whitespace should not yield a word")
	}
}

func TestIndentFromTabSize(t *testing.T) {
	if v, ok := indentFromTabSize(2); !ok || v != 2 {
		t.Fatalf("got %d %v", v, ok)
	}
	if _, ok := indentFromTabSize(0); ok {
		t.Fatalf("zero tab size must be rejected")
	}
}

func TestCanonicalURI(t *testing.T) {
	if got := canonicalURI("file:///tmp/a%20b.cpp"); got != "file:///tmp/a%20b.cpp" {
		t.Fatalf("got %q", got)
	}
	if got := canonicalURI("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Fatalf("got %q", got)
	}
	if got := bufferName("file:///tmp/proj/main.cpp"); got != "main.cpp" {
		t.Fatalf("got %q", got)
	}
	if got := bufferName("untitled:Untitled-1"); got != "Untitled-1" {
		t.Fatalf("got %q", got)
	}
}
