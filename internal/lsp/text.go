package lsp

import (
	"strings"
	"unicode/utf8"
)

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		start = min(max(start, 0), len(text))
		end = min(max(end, start), len(text))
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition maps an LSP position (UTF-16 code units) to a byte offset.
// Positions past the end of a line clamp to the line end.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := 0
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	units := 0
	for i < len(text) && units < pos.Character {
		if text[i] == '\n' {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16Len(r)
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

// endPosition returns the position just past the last character of text.
func endPosition(text string) position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return position{Line: line, Character: utf16Count(last)}
}

// lineBefore returns the text between the start of pos's line and pos.
func lineBefore(text string, pos position) string {
	off := offsetForPosition(text, pos)
	start := strings.LastIndexByte(text[:off], '\n') + 1
	return text[start:off]
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// wordAt returns the identifier touching pos together with its range.
// A cursor right after the last character still counts as touching.
// Identifier bytes are ASCII, so the word's byte length is its UTF-16 length.
func wordAt(text string, pos position) (string, lspRange, bool) {
	off := offsetForPosition(text, pos)
	start, end := off, off
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	if start == end {
		return "", lspRange{}, false
	}
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	startChar := utf16Count(text[lineStart:start])
	r := lspRange{
		Start: position{Line: pos.Line, Character: startChar},
		End:   position{Line: pos.Line, Character: startChar + (end - start)},
	}
	return text[start:end], r, true
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func utf16Count(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Len(r)
	}
	return n
}
