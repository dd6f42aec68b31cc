// Package lsp serves the component tree of designed classes over the
// Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/formkit/java/ast"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "formkit"

var log = commonlog.GetLogger("formkit.lsp")

type Server struct {
	workspace *Workspace
	watcher   *ProjectWatcher
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewServer(version string) *Server {
	ls := &Server{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = NewWorkspace(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.LoadProject(); err != nil {
		log.Warningf("load project: %s", err)
	}
	ls.watcher = NewProjectWatcher(ls.workspace)
	ls.watcher.Start()
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.RemoveFile(path)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.workspace.ScanFile(path); err != nil {
		return err
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	symbols := ls.workspace.Symbols(path)
	if len(symbols) == 0 {
		return nil, nil
	}
	return toDocumentSymbols(symbols), nil
}

// publishDiagnostics reports the problems of a document at its first line,
// since discovery warnings carry no position.
func (ls *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, path string) {
	doc := ls.workspace.GetFile(path)
	if doc == nil || ctx == nil || ctx.Notify == nil {
		return
	}
	severity := protocol.DiagnosticSeverityWarning
	source := lsName
	diagnostics := []protocol.Diagnostic{}
	for _, problem := range doc.Problems() {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Severity: &severity,
			Source:   &source,
			Message:  problem.Error(),
		})
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toDocumentSymbols(symbols []Symbol) []protocol.DocumentSymbol {
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		detail := s.Class
		r := toRange(s.Span)
		kind := protocol.SymbolKindObject
		if len(s.Children) > 0 {
			kind = protocol.SymbolKindClass
		}
		result = append(result, protocol.DocumentSymbol{
			Name:           s.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
			Children:       toDocumentSymbols(s.Children),
		})
	}
	return result
}

func toRange(span ast.Span) protocol.Range {
	position := func(p ast.Position) protocol.Position {
		line := p.Line - 1
		if line < 0 {
			line = 0
		}
		return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(p.Column)}
	}
	return protocol.Range{Start: position(span.Start), End: position(span.End)}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
