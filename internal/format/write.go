package format

import "regexp"

var blankRunRe = regexp.MustCompile(`\n` + spaceClass + `*\n` + spaceClass + `*\n`)

// Writer accumulates formatted lines and tracks the brace indentation level.
type Writer struct {
	cfg         Config
	buf         []byte
	indentLevel int
}

// NewWriter creates a writer for cfg. sizeHint preallocates the buffer.
func NewWriter(cfg Config, sizeHint int) *Writer {
	if cfg.IndentSize < 0 {
		cfg.IndentSize = 0
	}
	return &Writer{
		cfg: cfg,
		buf: make([]byte, 0, sizeHint),
	}
}

// Level reports the current indentation level.
func (w *Writer) Level() int {
	return w.indentLevel
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level, never below zero.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteLine writes s at the current indentation followed by a newline.
func (w *Writer) WriteLine(s string) {
	for range w.cfg.IndentSize * w.indentLevel {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\n')
}

// Newline writes a bare newline.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
}

// String returns the document with outer whitespace trimmed and blank line
// runs collapsed.
func (w *Writer) String() string {
	out := trimSpace(string(w.buf))
	return blankRunRe.ReplaceAllString(out, "\n\n")
}
