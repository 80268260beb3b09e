package lsp

import (
	"encoding/json"
	"fmt"

	"cppedit/internal/complete"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	return s.sendResponse(msg.ID, buildCompletion(text, params.Position))
}

func buildCompletion(text string, pos position) completionList {
	before := lineBefore(text, pos)
	prefix := complete.WordBeforeCursor(before)
	cursor := position{Line: pos.Line, Character: utf16Count(before)}
	replace := lspRange{
		Start: position{Line: cursor.Line, Character: max(cursor.Character-utf16Count(prefix), 0)},
		End:   cursor,
	}

	items := []completionItem{}
	for c := range complete.Query(prefix) {
		items = append(items, completionItem{
			Label:            c.Label,
			Kind:             completionKind(c.Kind),
			Detail:           c.Detail,
			Documentation:    c.Summary(),
			InsertText:       c.InsertText,
			InsertTextFormat: insertTextFormatSnippet,
			TextEdit:         &textEdit{Range: replace, NewText: c.InsertText},
			// keeps the index order: snippets, keywords, libraries
			SortText: fmt.Sprintf("%04d", len(items)),
		})
	}
	return completionList{IsIncomplete: false, Items: items}
}

func completionKind(k complete.Kind) int {
	switch k {
	case complete.KindSnippet:
		return completionItemKindSnippet
	case complete.KindModule:
		return completionItemKindModule
	default:
		return completionItemKindKeyword
	}
}
