package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"cppedit/internal/format"
	"cppedit/internal/store"
	"cppedit/internal/trace"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Format is the formatter configuration for textDocument/formatting.
	Format format.Config
	// Store, when set, receives every saved document (autosave).
	Store *store.Store
	// Version is reported in serverInfo.
	Version string
}

// Server handles stdio JSON-RPC for the cppedit language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	mu                sync.Mutex
	openDocs          map[string]string
	versions          map[string]int
	shutdownRequested bool

	format  format.Config
	store   *store.Store
	version string
	tracer  trace.Tracer
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	cfg := opts.Format
	if cfg.IndentSize < 1 {
		cfg = format.DefaultConfig()
	}
	return &Server{
		in:       bufio.NewReader(in),
		out:      bufio.NewWriter(out),
		openDocs: make(map[string]string),
		versions: make(map[string]int),
		format:   cfg,
		store:    opts.Store,
		version:  opts.Version,
		tracer:   trace.Nop,
	}
}

// Run serves LSP requests until exit, EOF or a transport error.
// It returns ErrExit or ErrExitWithoutShutdown when the client sent "exit".
func (s *Server) Run(ctx context.Context) error {
	s.tracer = trace.FromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			trace.Point(s.tracer, trace.ScopeMessage, "parse-error", err.Error())
			continue
		}
		if msg.Method == "" {
			continue
		}
		trace.Point(s.tracer, trace.ScopeMessage, msg.Method, string(msg.ID))
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    textDocumentSyncFull,
				Save:      saveOptions{IncludeText: true},
			},
			CompletionProvider:         &completionOptions{},
			HoverProvider:              true,
			DocumentFormattingProvider: true,
		},
		ServerInfo: &serverInfo{Name: "cppedit", Version: s.version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

// Notifications carry no ID, so malformed params are dropped rather than
// answered.
func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		trace.Point(s.tracer, trace.ScopeMessage, "invalid-params", err.Error())
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	s.openDocs[uri] = params.TextDocument.Text
	s.versions[uri] = params.TextDocument.Version
	s.mu.Unlock()
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		trace.Point(s.tracer, trace.ScopeMessage, "invalid-params", err.Error())
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	s.openDocs[uri] = applyChanges(s.openDocs[uri], params.ContentChanges)
	s.versions[uri] = params.TextDocument.Version
	s.mu.Unlock()
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		trace.Point(s.tracer, trace.ScopeMessage, "invalid-params", err.Error())
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	if params.Text != nil {
		s.openDocs[uri] = *params.Text
	}
	text, open := s.openDocs[uri]
	s.mu.Unlock()

	if s.store == nil || !open {
		return nil
	}
	name := bufferName(uri)
	span := trace.Begin(s.tracer, trace.ScopeFile, "autosave:"+name, 0)
	if _, err := s.store.Put(name, text); err != nil {
		// autosave failures must not kill the session
		span.Fail(err)
		return nil
	}
	span.End("")
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		trace.Point(s.tracer, trace.ScopeMessage, "invalid-params", err.Error())
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.openDocs, uri)
	delete(s.versions, uri)
	s.mu.Unlock()
	return nil
}

// document returns the open text for uri.
func (s *Server) document(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.openDocs[canonicalURI(uri)]
	return text, ok
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("lsp: encode: %w", err)
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
