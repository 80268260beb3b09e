package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"cppedit/internal/format"
	"cppedit/internal/store"
)

type session struct {
	buf bytes.Buffer
	id  int
}

func (s *session) request(t *testing.T, method string, params any) int {
	t.Helper()
	s.id++
	s.write(t, map[string]any{"jsonrpc": "2.0", "id": s.id, "method": method, "params": params})
	return s.id
}

func (s *session) notify(t *testing.T, method string, params any) {
	t.Helper()
	s.write(t, map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *session) write(t *testing.T, msg map[string]any) {
	t.Helper()
	payload, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := writeMessage(&s.buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
}

type response struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// run feeds the scripted session to a server and returns responses by id.
func run(t *testing.T, s *session, opts ServerOptions) (map[int]response, error) {
	t.Helper()
	var out bytes.Buffer
	server := NewServer(&s.buf, &out, opts)
	runErr := server.Run(context.Background())

	responses := make(map[int]response)
	reader := bufio.NewReader(&out)
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("read response: %v", err)
		}
		var resp response
		if err := json.Unmarshal(payload, &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		responses[resp.ID] = resp
	}
	return responses, runErr
}

const docURI = "file:///tmp/cppedit-test/main.cpp"

func openDoc(t *testing.T, s *session, text string) {
	t.Helper()
	s.notify(t, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: docURI, LanguageID: "cpp", Version: 1, Text: text},
	})
}

func TestInitializeAndExit(t *testing.T) {
	s := &session{}
	initID := s.request(t, "initialize", map[string]any{"rootUri": "file:///tmp"})
	s.notify(t, "initialized", map[string]any{})
	shutdownID := s.request(t, "shutdown", nil)
	s.notify(t, "exit", nil)

	responses, err := run(t, s, ServerOptions{Version: "1.2.3"})
	if !errors.Is(err, ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}

	var init initializeResult
	if err := json.Unmarshal(responses[initID].Result, &init); err != nil {
		t.Fatalf("decode initialize: %v", err)
	}
	caps := init.Capabilities
	if caps.TextDocumentSync.Change != textDocumentSyncFull || !caps.HoverProvider || !caps.DocumentFormattingProvider || caps.CompletionProvider == nil {
		t.Fatalf("unexpected capabilities %+v", caps)
	}
	if init.ServerInfo == nil || init.ServerInfo.Version != "1.2.3" {
		t.Fatalf("server info %+v", init.ServerInfo)
	}
	if _, ok := responses[shutdownID]; !ok {
		t.Fatalf("shutdown not answered")
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	s := &session{}
	s.notify(t, "exit", nil)
	if _, err := run(t, s, ServerOptions{}); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}
}

func TestUnknownMethodAndInvalidParams(t *testing.T) {
	s := &session{}
	unknown := s.request(t, "textDocument/definition", map[string]any{})
	invalid := s.request(t, "textDocument/completion", "not an object")
	s.notify(t, "$/cancelRequest", map[string]any{"id": 1})

	responses, err := run(t, s, ServerOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if e := responses[unknown].Error; e == nil || e.Code != codeMethodNotFound {
		t.Fatalf("unknown method: %+v", responses[unknown])
	}
	if e := responses[invalid].Error; e == nil || e.Code != codeInvalidParams {
		t.Fatalf("invalid params: %+v", responses[invalid])
	}
	if len(responses) != 2 {
		t.Fatalf("notifications must not be answered: %v", responses)
	}
}

func TestFormattingAfterChanges(t *testing.T) {
	s := &session{}
	openDoc(t, s, "int main(){\nreturn 0;\n}")
	s.notify(t, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: docURI, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{Line: 1, Character: 0}, End: position{Line: 1, Character: 0}},
			Text:  "int x=1;",
		}},
	})
	tab := uint32(2)
	fmtID := s.request(t, "textDocument/formatting", documentFormattingParams{
		TextDocument: textDocumentIdentifier{URI: docURI},
		Options:      formattingOptions{TabSize: &tab, InsertSpaces: true},
	})

	responses, err := run(t, s, ServerOptions{Format: format.DefaultConfig()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var edits []textEdit
	if err := json.Unmarshal(responses[fmtID].Result, &edits); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected one edit, got %+v", edits)
	}
	want := "int main(){\n  int x = 1;\n\n  return 0;\n}"
	if edits[0].NewText != want {
		t.Fatalf("new text %q, want %q", edits[0].NewText, want)
	}
	if edits[0].Range.End != (position{Line: 2, Character: 1}) {
		t.Fatalf("edit must span the whole document, got %+v", edits[0].Range)
	}
}

func TestFormattingUnchangedDocument(t *testing.T) {
	edits := buildFormatting("int x = 1;", format.DefaultConfig(), formattingOptions{})
	if len(edits) != 0 {
		t.Fatalf("expected no edits, got %+v", edits)
	}
}

func TestCompletion(t *testing.T) {
	s := &session{}
	openDoc(t, s, "int main() {\n    vec\n}")
	id := s.request(t, "textDocument/completion", completionParams{
		TextDocument: textDocumentIdentifier{URI: docURI},
		Position:     position{Line: 1, Character: 7},
	})

	responses, err := run(t, s, ServerOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var list completionList
	if err := json.Unmarshal(responses[id].Result, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected snippet and module, got %+v", list.Items)
	}
	snippet, module := list.Items[0], list.Items[1]
	if snippet.Label != "vector" || snippet.Kind != completionItemKindSnippet || snippet.InsertTextFormat != insertTextFormatSnippet {
		t.Fatalf("unexpected snippet %+v", snippet)
	}
	if module.Kind != completionItemKindModule || module.InsertText != "#include <vector>" {
		t.Fatalf("unexpected module %+v", module)
	}
	r := snippet.TextEdit.Range
	if r.Start != (position{Line: 1, Character: 4}) || r.End != (position{Line: 1, Character: 7}) {
		t.Fatalf("unexpected replace range %+v", r)
	}
}

func TestCompletionEmptyPrefixReturnsEverything(t *testing.T) {
	list := buildCompletion("", position{})
	if len(list.Items) != 8+68+27 {
		t.Fatalf("got %d items", len(list.Items))
	}
	if list.Items[0].SortText >= list.Items[1].SortText {
		t.Fatalf("sort text must keep index order")
	}
}

func TestHover(t *testing.T) {
	h := buildHover("std::cout << x;", position{Line: 0, Character: 6})
	if h == nil {
		t.Fatalf("expected hover")
	}
	if !strings.HasPrefix(h.Contents.Value, "**cout**\n\n") || h.Contents.Kind != "markdown" {
		t.Fatalf("unexpected hover %q", h.Contents.Value)
	}
	if h.Range.Start.Character != 5 || h.Range.End.Character != 9 {
		t.Fatalf("range %+v", h.Range)
	}

	// a short variable name shows the first candidate it prefixes
	h = buildHover("int a = 1;", position{Line: 0, Character: 4})
	if h == nil || !strings.HasPrefix(h.Contents.Value, "**auto**") {
		t.Fatalf("hover on a should show auto, got %+v", h)
	}

	if buildHover("zzz", position{Character: 1}) != nil {
		t.Fatalf("unknown words should have no hover")
	}
	if buildHover("  ", position{Character: 1}) != nil {
		t.Fatalf("whitespace should have no hover")
	}
}

func TestDidSaveAutosaves(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s := &session{}
	openDoc(t, s, "int a;")
	saved := "int b;"
	s.notify(t, "textDocument/didSave", didSaveTextDocumentParams{
		TextDocument: textDocumentIdentifier{URI: docURI},
		Text:         &saved,
	})
	s.notify(t, "textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: docURI}})
	// saving a closed document without text is ignored
	s.notify(t, "textDocument/didSave", didSaveTextDocumentParams{TextDocument: textDocumentIdentifier{URI: docURI}})

	if _, err := run(t, s, ServerOptions{Store: st}); err != nil {
		t.Fatalf("run: %v", err)
	}
	buf, err := st.Get(filepath.Base(docURI))
	if err != nil {
		t.Fatalf("autosave missing: %v", err)
	}
	if buf.Text != saved {
		t.Fatalf("autosaved %q", buf.Text)
	}
}
