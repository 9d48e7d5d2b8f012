package types

import (
	"bennypowers.dev/gqlls/internal/documents"
	"bennypowers.dev/gqlls/internal/schema"
	"bennypowers.dev/gqlls/internal/template"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// This unified context eliminates the need for handler-specific interfaces
// and enables dependency injection for testing.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Schema operations
	SchemaRegistry() *schema.Registry
	TagCondition() template.TagCondition

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)
	IsSchemaFile(path string) bool

	// Workspace initialization (called by lifecycle handlers)
	LoadWorkspaceConfig() error
	LoadSchemaFromConfig() error
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context (for publishing diagnostics, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics model negotiation
	ClientDiagnosticCapability() *bool
	SetClientDiagnosticCapability(hasCapability bool)
	UsePullDiagnostics() bool
	SetUsePullDiagnostics(use bool)

	// Diagnostics publishing
	PublishDiagnostics(context *glsp.Context, uri string) error
}
