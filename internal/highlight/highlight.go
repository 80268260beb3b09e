// Package highlight renders C/C++ source with ANSI colors for terminal output.
package highlight

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style name is given.
const DefaultStyle = "monokai"

// Lexer picks a lexer by file name. Unknown or empty names get the C++ lexer.
func Lexer(name string) chroma.Lexer {
	var lexer chroma.Lexer
	if name != "" {
		lexer = lexers.Match(name)
	}
	if lexer == nil {
		lexer = lexers.Get("cpp")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Write highlights text as if it were the file name and writes it to w using
// 256-color escapes. An unknown style falls back to DefaultStyle.
func Write(w io.Writer, name, text, style string) error {
	if _, ok := styles.Registry[style]; !ok {
		style = DefaultStyle
	}
	s := styles.Get(style)
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := Lexer(name).Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return formatter.Format(w, s, it)
}

// Styles lists the available style names.
func Styles() []string {
	return styles.Names()
}
