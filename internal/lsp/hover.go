package lsp

import (
	"encoding/json"

	"cppedit/internal/complete"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	if h := buildHover(text, params.Position); h != nil {
		return s.sendResponse(msg.ID, h)
	}
	return s.sendResponse(msg.ID, nil)
}

func buildHover(text string, pos position) *hover {
	word, r, ok := wordAt(text, pos)
	if !ok {
		return nil
	}
	c, ok := complete.Lookup(word)
	if !ok {
		return nil
	}
	return &hover{
		Contents: markupContent{
			Kind:  "markdown",
			Value: "**" + c.Label + "**\n\n" + c.Summary(),
		},
		Range: &r,
	}
}
