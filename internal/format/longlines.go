package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LongLine describes a line wider than Config.MaxLineLength.
type LongLine struct {
	Line  int `json:"line"` // 1-based
	Width int `json:"width"`
}

// LongLines reports lines of text whose display width exceeds
// cfg.MaxLineLength. It is advisory only; FormatConfig never wraps lines.
func LongLines(text string, cfg Config) []LongLine {
	if cfg.MaxLineLength <= 0 || text == "" {
		return nil
	}
	var out []LongLine
	for i, line := range strings.Split(text, "\n") {
		width := runewidth.StringWidth(strings.TrimRight(line, "\r"))
		if width > cfg.MaxLineLength {
			out = append(out, LongLine{Line: i + 1, Width: width})
		}
	}
	return out
}
