package lsp

import (
	"encoding/json"

	"cppedit/internal/format"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	return s.sendResponse(msg.ID, buildFormatting(text, s.format, params.Options))
}

// buildFormatting returns at most one edit replacing the whole document.
func buildFormatting(text string, cfg format.Config, opts formattingOptions) []textEdit {
	if opts.TabSize != nil {
		if indent, ok := indentFromTabSize(*opts.TabSize); ok {
			cfg.IndentSize = indent
		}
	}
	formatted := format.FormatConfig(text, cfg)
	if formatted == text {
		return []textEdit{}
	}
	return []textEdit{{Range: wholeRange(text), NewText: formatted}}
}
