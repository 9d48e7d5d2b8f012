package lsp

import (
	"fmt"
	"path/filepath"
	"sync"

	"bennypowers.dev/gqlls/internal/documents"
	"bennypowers.dev/gqlls/internal/log"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/schema"
	"bennypowers.dev/gqlls/internal/template"
	"bennypowers.dev/gqlls/lsp/methods/lifecycle"
	"bennypowers.dev/gqlls/lsp/methods/textDocument"
	"bennypowers.dev/gqlls/lsp/methods/textDocument/completion"
	"bennypowers.dev/gqlls/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/gqlls/lsp/methods/textDocument/hover"
	"bennypowers.dev/gqlls/lsp/methods/workspace"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the GraphQL Language Server
type Server struct {
	documents  *documents.Manager
	schemas    *schema.Registry
	glspServer *server.Server
	context    *glsp.Context

	rootURI  string             // Workspace root URI
	rootPath string             // Workspace root path (file system)
	config   types.ServerConfig // Server configuration
	configMu sync.RWMutex       // Protects config, rootURI, rootPath, context, and diagnostics flags

	clientDiagnosticCapability *bool // Detected from raw initialize params (nil = not detected yet)
	usePullDiagnostics         bool  // Pull (LSP 3.17) vs push diagnostics
}

// NewServer creates a new GraphQL LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		schemas:   schema.NewRegistry(),
		config:    types.DefaultConfig(),
	}

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               method(s, "textDocument/hover", hover.Hover),
		TextDocumentCompletion:          method(s, "textDocument/completion", completion.Completion),
	}

	// WORKAROUND: Wrap with custom handler to support LSP 3.17 features.
	// The CustomHandler intercepts textDocument/diagnostic before it reaches
	// protocol.Handler, which only knows about LSP 3.16 methods.
	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	// Create GLSP server with debug enabled for stdio
	s.glspServer = server.NewServer(customHandler, "graphql-language-server", true)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources including the JS parser pool.
// It is safe to call Close multiple times.
func (s *Server) Close() error {
	js.ClosePool()
	return nil
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// SchemaRegistry returns the schema registry
func (s *Server) SchemaRegistry() *schema.Registry {
	return s.schemas
}

// TagCondition returns the template tag condition built from configuration
func (s *Server) TagCondition() template.TagCondition {
	cfg := s.GetConfig()
	return template.TagCondition{Names: cfg.Tags}
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// ClientDiagnosticCapability returns the detected client diagnostic capability.
// Returns nil if capability detection has not yet occurred (e.g., before initialize).
func (s *Server) ClientDiagnosticCapability() *bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.clientDiagnosticCapability
}

// SetClientDiagnosticCapability sets the client's diagnostic capability based
// on detection from raw initialize params. Called by the CustomHandler when it
// intercepts the initialize request.
func (s *Server) SetClientDiagnosticCapability(hasCapability bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.clientDiagnosticCapability = &hasCapability
}

// UsePullDiagnostics returns whether the client supports pull diagnostics (LSP 3.17).
// If true, the server does NOT push textDocument/publishDiagnostics and instead
// waits for the client to request diagnostics via textDocument/diagnostic.
func (s *Server) UsePullDiagnostics() bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.usePullDiagnostics
}

// SetUsePullDiagnostics sets whether to use pull diagnostics based on client capabilities
func (s *Server) SetUsePullDiagnostics(use bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.usePullDiagnostics = use
}

// PublishDiagnostics publishes diagnostics for a document
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	log.Info("Publishing diagnostics for: %s", uri)

	// Select a working context: use passed-in context if non-nil, otherwise
	// fall back to the server's stored context
	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}

	if workingContext == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	// If server is configured to use pull diagnostics, don't publish (client will request)
	if s.UsePullDiagnostics() {
		return nil
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})

	return nil
}

// IsSchemaFile checks if a file path names the schema the server reads from
func (s *Server) IsSchemaFile(path string) bool {
	ext := filepath.Ext(path)
	if ext != ".graphql" && ext != ".graphqls" && ext != ".gql" {
		return false
	}

	cleanPath := filepath.Clean(path)

	// The file currently loaded in the registry
	if loaded := s.schemas.Path(); loaded != "" && filepath.Clean(loaded) == cleanPath {
		return true
	}

	cfg := s.GetConfig()
	state := s.GetState()

	// The explicitly configured schema path
	if cfg.Schema != "" {
		schemaPath := cfg.Schema
		if state.RootPath != "" && !filepath.IsAbs(schemaPath) {
			schemaPath = filepath.Join(state.RootPath, schemaPath)
		}
		return filepath.Clean(schemaPath) == cleanPath
	}

	// Auto-discovery mode: any SDL file may become the schema
	return true
}

// RegisterFileWatchers registers schema file watchers with the client
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// Guard against nil or empty context (tests without a real LSP connection)
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	cfg := s.GetConfig()
	state := s.GetState()

	var patterns []string
	if cfg.Schema != "" {
		schemaPath := cfg.Schema
		if state.RootPath != "" && !filepath.IsAbs(schemaPath) {
			schemaPath = filepath.Join(state.RootPath, schemaPath)
		}
		patterns = append(patterns, filepath.ToSlash(filepath.Clean(schemaPath)))
	} else if state.RootPath != "" {
		root := filepath.ToSlash(filepath.Clean(state.RootPath))
		for _, pattern := range schema.DiscoverPatterns {
			patterns = append(patterns, root+"/"+pattern)
		}
	}

	if len(patterns) == 0 {
		log.Info("No file watchers to register")
		return nil
	}

	watchers := make([]protocol.FileSystemWatcher, 0, len(patterns))
	for _, pattern := range patterns {
		watchers = append(watchers, protocol.FileSystemWatcher{
			GlobPattern: pattern,
		})
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     "graphql-schema-file-watcher",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request, not a notification. Calling it
	// synchronously from the handler loop would deadlock waiting on the
	// client's response, so it goes through a goroutine. glsp logs any error
	// response itself, and a rejected registration only costs file watching.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
