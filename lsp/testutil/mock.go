// Package testutil provides shared fakes for LSP handler tests.
package testutil

import (
	"bennypowers.dev/gqlls/internal/documents"
	"bennypowers.dev/gqlls/internal/schema"
	"bennypowers.dev/gqlls/internal/template"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via
// callback functions.
type MockServerContext struct {
	docs        *documents.Manager
	schemas     *schema.Registry
	rootURI     string
	rootPath    string
	config      types.ServerConfig
	glspContext *glsp.Context

	clientDiagnosticCapability *bool
	usePullDiagnostics         bool

	// Optional callbacks for custom behavior in tests
	LoadWorkspaceConfigFunc func() error
	LoadSchemaFunc          func() error
	RegisterWatchersFunc    func(*glsp.Context) error
	IsSchemaFileFunc        func(string) bool
	PublishDiagnosticsFunc  func(*glsp.Context, string) error

	// Tracking flags for tests that need to verify methods were called
	LoadSchemaCalled       bool
	RegisterWatchersCalled bool
	PublishedURIs          []string
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:    documents.NewManager(),
		schemas: schema.NewRegistry(),
		config:  types.DefaultConfig(),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// SchemaRegistry returns the schema registry
func (m *MockServerContext) SchemaRegistry() *schema.Registry {
	return m.schemas
}

// TagCondition returns the tag condition derived from the mock's config
func (m *MockServerContext) TagCondition() template.TagCondition {
	return template.TagCondition{Names: m.config.Tags}
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// GetConfig returns the mock configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	return m.config
}

// SetConfig sets the mock configuration
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.config = config
}

// IsSchemaFile delegates to IsSchemaFileFunc or reports false
func (m *MockServerContext) IsSchemaFile(path string) bool {
	if m.IsSchemaFileFunc != nil {
		return m.IsSchemaFileFunc(path)
	}
	return false
}

// LoadWorkspaceConfig delegates to LoadWorkspaceConfigFunc or succeeds
func (m *MockServerContext) LoadWorkspaceConfig() error {
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// LoadSchemaFromConfig delegates to LoadSchemaFunc or succeeds
func (m *MockServerContext) LoadSchemaFromConfig() error {
	m.LoadSchemaCalled = true
	if m.LoadSchemaFunc != nil {
		return m.LoadSchemaFunc()
	}
	return nil
}

// RegisterFileWatchers delegates to RegisterWatchersFunc or succeeds
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// GLSPContext returns the stored GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext stores the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

// ClientDiagnosticCapability returns the stored capability flag
func (m *MockServerContext) ClientDiagnosticCapability() *bool {
	return m.clientDiagnosticCapability
}

// SetClientDiagnosticCapability stores the capability flag
func (m *MockServerContext) SetClientDiagnosticCapability(hasCapability bool) {
	m.clientDiagnosticCapability = &hasCapability
}

// UsePullDiagnostics returns the stored pull-diagnostics flag
func (m *MockServerContext) UsePullDiagnostics() bool {
	return m.usePullDiagnostics
}

// SetUsePullDiagnostics stores the pull-diagnostics flag
func (m *MockServerContext) SetUsePullDiagnostics(use bool) {
	m.usePullDiagnostics = use
}

// PublishDiagnostics records the URI and delegates to PublishDiagnosticsFunc
func (m *MockServerContext) PublishDiagnostics(ctx *glsp.Context, uri string) error {
	m.PublishedURIs = append(m.PublishedURIs, uri)
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(ctx, uri)
	}
	return nil
}

// Verify interface compliance
var _ types.ServerContext = (*MockServerContext)(nil)
